package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clubcms/internal/delivery/http/helpers"
	"clubcms/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	requestErr    error
	verifyErr     error
	token         string
	lastEmail     string
	lastSecret    string
	lastOtp       string
	requestCalled bool
	verifyCalled  bool
}

func (f *fakeAuthService) RequestOtp(ctx context.Context, email, secret string) error {
	f.requestCalled = true
	f.lastEmail = email
	f.lastSecret = secret
	return f.requestErr
}

func (f *fakeAuthService) VerifyOtp(ctx context.Context, email, code string) (string, error) {
	f.verifyCalled = true
	f.lastEmail = email
	f.lastOtp = code
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.token, nil
}

func TestAuthController_GenerateOtp(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		svc         *fakeAuthService
		wantStatus  int
		wantErrCode string
		wantCalled  bool
	}{
		{
			name:       "success",
			body:       `{"email":"admin@club.example","adminSecret":"s3cret"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:        "missing email",
			body:        `{"adminSecret":"s3cret"}`,
			svc:         &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "malformed email",
			body:        `{"email":"not-an-email","adminSecret":"s3cret"}`,
			svc:         &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "missing secret",
			body:        `{"email":"admin@club.example"}`,
			svc:         &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "invalid body",
			body:        `{`,
			svc:         &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "wrong email address",
			body:        `{"email":"other@club.example","adminSecret":"s3cret"}`,
			svc:         &fakeAuthService{requestErr: domain.ErrInvalidEmail},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
			wantCalled:  true,
		},
		{
			name:        "wrong secret",
			body:        `{"email":"admin@club.example","adminSecret":"nope"}`,
			svc:         &fakeAuthService{requestErr: domain.ErrInvalidCredentials},
			wantStatus:  http.StatusUnauthorized,
			wantErrCode: helpers.ErrCodeUnauthorized,
			wantCalled:  true,
		},
		{
			name:        "email delivery failure",
			body:        `{"email":"admin@club.example","adminSecret":"s3cret"}`,
			svc:         &fakeAuthService{requestErr: errors.New("smtp down")},
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: helpers.ErrCodeInternalError,
			wantCalled:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/auth/generate-otp", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			ctrl.GenerateOtp(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, tt.svc.requestCalled)

			var resp helpers.APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			if tt.wantErrCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantErrCode, resp.Error.Code)
				return
			}
			assert.Nil(t, resp.Error)
		})
	}
}

func TestAuthController_VerifyOtp(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		svc         *fakeAuthService
		wantStatus  int
		wantErrCode string
		wantToken   string
	}{
		{
			name:       "success returns bearer token",
			body:       `{"email":"admin@club.example","otp":"abc123"}`,
			svc:        &fakeAuthService{token: "jwt-token"},
			wantStatus: http.StatusOK,
			wantToken:  "jwt-token",
		},
		{
			name:        "missing otp",
			body:        `{"email":"admin@club.example"}`,
			svc:         &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "wrong email address",
			body:        `{"email":"other@club.example","otp":"abc123"}`,
			svc:         &fakeAuthService{verifyErr: domain.ErrInvalidEmail},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "invalid or expired code",
			body:        `{"email":"admin@club.example","otp":"zzz999"}`,
			svc:         &fakeAuthService{verifyErr: domain.ErrInvalidOrExpiredCode},
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "internal error",
			body:        `{"email":"admin@club.example","otp":"abc123"}`,
			svc:         &fakeAuthService{verifyErr: errors.New("store down")},
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/auth/verify-otp", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			ctrl.VerifyOtp(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantErrCode != "" {
				var resp helpers.APIResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantErrCode, resp.Error.Code)
				return
			}
			var resp struct {
				Data  VerifyOtpResponse  `json:"data"`
				Error *helpers.APIError  `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Nil(t, resp.Error)
			assert.Equal(t, tt.wantToken, resp.Data.Token)
			assert.Equal(t, "Bearer", resp.Data.TokenType)
		})
	}
}
