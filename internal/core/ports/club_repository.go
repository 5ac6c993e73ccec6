package ports

import (
	"context"

	"github.com/clubhub/clubhub-api/internal/core/domain"
)

// ClubRepository defines persistence operations for clubs.
type ClubRepository interface {
	Create(ctx context.Context, c *domain.Club) error
	FindByID(ctx context.Context, id int64) (*domain.Club, error)
	// ListRecent returns up to limit clubs, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.Club, error)
}
