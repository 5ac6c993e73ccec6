package ports

import (
	"context"
	"time"

	"github.com/clubhub/clubhub-api/internal/core/domain"
)

// ListEventsFilter carries the query parameters for listing events.
type ListEventsFilter struct {
	ClubID int64     // 0 = all clubs
	From   time.Time // zero = no lower bound on starts_at
	Limit  int
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	FindByID(ctx context.Context, id int64) (*domain.Event, error)
	// List returns events ordered by start time ascending.
	List(ctx context.Context, filter ListEventsFilter) ([]*domain.Event, error)
}
