package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"clubcms/internal/delivery/http/controllers"
	"clubcms/internal/delivery/http/helpers"
	"clubcms/internal/delivery/http/middleware"
	"clubcms/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	uploadDir string,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	memberController *controllers.TeamMemberController,
) *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(verifier, logger)
	requireAdmin := middleware.RequireRole("admin")
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return requireAuth(requireAdmin(h))
	}

	// Auth
	mux.HandleFunc("POST /auth/generate-otp", authController.GenerateOtp)
	mux.HandleFunc("POST /auth/verify-otp", authController.VerifyOtp)

	// Events
	mux.HandleFunc("GET /events", eventController.List)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetByID)
	mux.HandleFunc("POST /events", admin(eventController.Create))
	mux.HandleFunc("PUT /events/{eventID}", admin(eventController.Update))
	mux.HandleFunc("DELETE /events/{eventID}", admin(eventController.Delete))

	// Team members
	mux.HandleFunc("GET /team-members", memberController.List)
	mux.HandleFunc("GET /team-members/{memberID}", memberController.GetByID)
	mux.HandleFunc("POST /team-members", admin(memberController.Create))
	mux.HandleFunc("PUT /team-members/{memberID}", admin(memberController.Update))
	mux.HandleFunc("DELETE /team-members/{memberID}", admin(memberController.Delete))

	// Uploaded images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "route not found")
	})

	return mux
}
