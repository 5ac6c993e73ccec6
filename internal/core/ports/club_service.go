package ports

import (
	"context"

	"github.com/clubhub/clubhub-api/internal/core/domain"
)

// CreateClubInput carries a validated create request. A nil MinAge means
// "use domain.DefaultMinAge".
type CreateClubInput struct {
	Name           string
	Description    string
	Address        string
	City           string
	MinAge         *int
	Genres         []string
	ImageURL       string
	IdempotencyKey string
}

type ClubService interface {
	List(ctx context.Context) ([]*domain.Club, error)
	Get(ctx context.Context, id int64) (*domain.Club, error)
	Create(ctx context.Context, owner domain.Identity, in CreateClubInput) (*domain.Club, error)
}
