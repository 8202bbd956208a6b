package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	h "clubcms/internal/delivery/http/helpers"
	"clubcms/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// GenerateOtpRequest is the request body for POST /auth/generate-otp
type GenerateOtpRequest struct {
	Email       string `json:"email"`
	AdminSecret string `json:"adminSecret"`
}

// Validate implements Validator.
func (g GenerateOtpRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(g.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if g.AdminSecret == "" {
		errs = append(errs, "adminSecret is required")
	}
	return errs
}

// VerifyOtpRequest is the request body for POST /auth/verify-otp
type VerifyOtpRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

// Validate implements Validator.
func (v VerifyOtpRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(v.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(v.Otp) == "" {
		errs = append(errs, "otp is required")
	}
	return errs
}

// GenerateOtpResponse is the response body for POST /auth/generate-otp
type GenerateOtpResponse struct {
	Message string `json:"message"`
}

// VerifyOtpResponse is the response body for POST /auth/verify-otp
type VerifyOtpResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// GenerateOtp godoc
// @Summary Request an admin login code
// @Description Checks the email and admin secret against the provisioned admin identity, then emails a one-time passcode valid for 10 minutes. A new request overwrites any previous unconsumed code.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body GenerateOtpRequest true "Admin email and secret"
// @Success 200 {object} helpers.APIResponse "data contains message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid email)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (invalid secret)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error (delivery failure)"
// @Router /auth/generate-otp [post]
func (c *AuthController) GenerateOtp(w http.ResponseWriter, r *http.Request) {
	var req GenerateOtpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	err := c.Service.RequestOtp(r.Context(), req.Email, req.AdminSecret)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid email")
			return
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "failed to send login code")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, GenerateOtpResponse{Message: "login code sent"})
}

// VerifyOtp godoc
// @Summary Verify an admin login code
// @Description Verifies the one-time passcode for the admin email. The code is single-use; on success a Bearer session token valid for 1 hour is returned.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body VerifyOtpRequest true "Admin email and code"
// @Success 200 {object} helpers.APIResponse "data contains message, token and token_type"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid email or invalid/expired code)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/verify-otp [post]
func (c *AuthController) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req VerifyOtpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.VerifyOtp(r.Context(), req.Email, req.Otp)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid email")
			return
		}
		if errors.Is(err, domain.ErrInvalidOrExpiredCode) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid or expired otp")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, VerifyOtpResponse{Message: "login successful", Token: token, TokenType: "Bearer"})
}
