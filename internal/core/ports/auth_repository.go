package ports

import (
	"context"

	"github.com/clubhub/clubhub-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	// Create inserts the user and fills in ID and CreatedAt. A uniqueness
	// violation is reported as domain.ErrEmailTaken or domain.ErrUsernameTaken.
	Create(ctx context.Context, user *domain.User) error
}

// AuditRepository persists the authentication audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
