package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for authentication operations.
var (
	ErrInvalidEmail         = errors.New("invalid email")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
)

// AdminAccount is the single provisioned admin identity.
// swagger:model AdminAccount
type AdminAccount struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Email      string    `json:"email" bson:"email"`
	SecretHash string    `json:"-" bson:"secret_hash"`
	SecretSalt string    `json:"-" bson:"secret_salt"`
	Role       string    `json:"role" bson:"role"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// TokenClaims is the decoded identity carried by a verified session token.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, secret string) (hash string, err error)
	Compare(hash, salt, secret string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated identity.
type TokenIssuer interface {
	Issue(userID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the embedded claims.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// OtpEntry is a pending one-time passcode for an email address.
type OtpEntry struct {
	Code      string
	ExpiresAt time.Time
}

// OtpStore keeps at most one live OTP entry per email. Put overwrites any
// prior entry for the email; Get returns the current entry or nil; Delete
// consumes it.
type OtpStore interface {
	Put(ctx context.Context, email string, entry OtpEntry) error
	Get(ctx context.Context, email string) (*OtpEntry, error)
	Delete(ctx context.Context, email string) error
}

// AdminRepository defines the interface for admin account storage.
type AdminRepository interface {
	EnsureAdmin(ctx context.Context, email, secretHash, secretSalt string) (*AdminAccount, error)
	GetByEmail(ctx context.Context, email string) (*AdminAccount, error)
}

// AuthService defines the OTP login flow for the admin identity.
type AuthService interface {
	RequestOtp(ctx context.Context, email, secret string) error
	VerifyOtp(ctx context.Context, email, code string) (token string, err error)
}
