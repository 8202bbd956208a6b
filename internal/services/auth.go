package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"clubcms/internal/domain"
)

const (
	otpLength     = 6
	otpExpiry     = 10 * time.Minute
	tokenExpiry   = time.Hour
	adminRoleCode = "admin"
)

type authService struct {
	adminRepo    domain.AdminRepository
	otpStore     domain.OtpStore
	hasher       domain.PasswordHasher
	tokenIssuer  domain.TokenIssuer
	emailService domain.EmailService
	adminEmail   string
}

// NewAuthService creates the OTP login service for the single admin identity.
// adminEmail is the configured address allowed to log in.
func NewAuthService(adminRepo domain.AdminRepository, otpStore domain.OtpStore, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, emailService domain.EmailService, adminEmail string) domain.AuthService {
	return &authService{
		adminRepo:    adminRepo,
		otpStore:     otpStore,
		hasher:       hasher,
		tokenIssuer:  tokenIssuer,
		emailService: emailService,
		adminEmail:   strings.TrimSpace(strings.ToLower(adminEmail)),
	}
}

// RequestOtp generates a one-time code for the admin, stores it (overwriting
// any prior code for the address), and emails it. The stored entry survives a
// failed send so a retried request issues a fresh code.
func (s *authService) RequestOtp(ctx context.Context, email, secret string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email != s.adminEmail {
		return domain.ErrInvalidEmail
	}
	account, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to load admin account: %w", err)
	}
	if err := s.hasher.Compare(account.SecretHash, account.SecretSalt, secret); err != nil {
		return domain.ErrInvalidCredentials
	}
	code, err := generateOtp(otpLength)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	entry := domain.OtpEntry{Code: code, ExpiresAt: time.Now().Add(otpExpiry)}
	if err := s.otpStore.Put(ctx, email, entry); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}
	data := &domain.OtpEmailData{
		Email:            email,
		Code:             code,
		ExpiresInMinutes: int(otpExpiry.Minutes()),
	}
	if err := s.emailService.SendOtp(ctx, data); err != nil {
		return fmt.Errorf("failed to send code email: %w", err)
	}
	return nil
}

// VerifyOtp checks the submitted code against the stored entry, consumes it
// on success, and returns a signed session token for the admin identity.
func (s *authService) VerifyOtp(ctx context.Context, email, code string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email != s.adminEmail {
		return "", domain.ErrInvalidEmail
	}
	entry, err := s.otpStore.Get(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to load code: %w", err)
	}
	code = strings.TrimSpace(code)
	if entry == nil || entry.Code != code || time.Now().After(entry.ExpiresAt) {
		return "", domain.ErrInvalidOrExpiredCode
	}
	if err := s.otpStore.Delete(ctx, email); err != nil {
		return "", fmt.Errorf("failed to consume code: %w", err)
	}
	account, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to load admin account: %w", err)
	}
	token, err := s.tokenIssuer.Issue(account.ID, account.Email, adminRoleCode, tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func generateOtp(length int) (string, error) {
	b := make([]byte, (length+1)/2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b)[:length], nil
}
