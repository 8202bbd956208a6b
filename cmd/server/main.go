package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"clubcms/config"
	_ "clubcms/docs"
	authadapter "clubcms/internal/adapters/auth"
	emailadapter "clubcms/internal/adapters/email"
	"clubcms/internal/adapters/storage"
	delivery "clubcms/internal/delivery/http"
	"clubcms/internal/delivery/http/controllers"
	"clubcms/internal/delivery/http/middleware"
	"clubcms/internal/domain"
	"clubcms/internal/repository/memory"
	mongorepo "clubcms/internal/repository/mongo"
	redisrepo "clubcms/internal/repository/redis"
	"clubcms/internal/services"
)

// @title Club CMS API
// @version 1.0
// @description Admin backend for club events and team members with OTP login.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mongorepo.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			logger.Error("mongodb disconnect failed", "err", err)
		}
	}()
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	adminRepo := mongorepo.NewAdminRepository(db)
	if _, err := adminRepo.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminSecretHash, cfg.AdminSecretSalt); err != nil {
		log.Fatalf("failed to provision admin account: %v", err)
	}

	otpStore, err := newOtpStore(cfg)
	if err != nil {
		log.Fatalf("failed to initialize otp store: %v", err)
	}

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretKey,
		},
	})
	if err != nil {
		log.Fatalf("failed to initialize mailer: %v", err)
	}
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())

	files, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to initialize upload store: %v", err)
	}

	tokens := authadapter.NewJWTAuthority(cfg.JWTSecret)
	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)

	authService := services.NewAuthService(adminRepo, otpStore, hasher, tokens, emailService, cfg.AdminEmail)
	eventService := services.NewEventService(mongorepo.NewEventRepository(db), files, logger)
	memberService := services.NewTeamMemberService(mongorepo.NewTeamMemberRepository(db), files, logger)

	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService, files)
	memberController := controllers.NewTeamMemberController(logger, memberService, files)

	mux := delivery.NewRouter(logger, tokens, cfg.UploadDir, authController, eventController, memberController)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// newOtpStore picks the login code backend: a Redis-backed store when
// OTP_STORE=redis, an in-process map otherwise.
func newOtpStore(cfg *config.Config) (domain.OtpStore, error) {
	if cfg.OtpStore != "redis" {
		return memory.NewOtpStore(), nil
	}
	opts, err := goredis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := goredis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return redisrepo.NewOtpStore(client), nil
}
