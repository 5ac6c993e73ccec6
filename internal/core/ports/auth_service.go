package ports

import (
	"context"

	"github.com/clubhub/clubhub-api/internal/core/domain"
)

// RegisterInput carries the raw decoded body; type checks happen in the service.
type RegisterInput struct {
	Email    any
	Password any
	Username any
	RemoteIP string
}

type LoginInput struct {
	Email    any
	Password any
	RemoteIP string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (string, *domain.User, error)
	Me(ctx context.Context, userID int64) (*domain.User, error)
}

// PasswordHasher is a salted one-way hash with constant-time verification.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer mints bearer tokens.
type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
}

// TokenVerifier checks signature and expiry and returns the embedded claims.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
