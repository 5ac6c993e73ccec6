package ports

import (
	"context"
	"time"

	"github.com/clubhub/clubhub-api/internal/core/domain"
)

type ListEventsInput struct {
	ClubID   int64
	Upcoming bool
}

// CreateEventInput carries a validated create request. An empty Status
// means domain.EventScheduled.
type CreateEventInput struct {
	ClubID         int64
	Title          string
	Description    string
	StartsAt       time.Time
	EndsAt         time.Time
	Status         domain.EventStatus
	IdempotencyKey string
}

type EventService interface {
	List(ctx context.Context, in ListEventsInput) ([]*domain.Event, error)
	Get(ctx context.Context, id int64) (*domain.Event, error)
	Create(ctx context.Context, actor domain.Identity, in CreateEventInput) (*domain.Event, error)
}

// IdempotencyStore remembers which resource a create request produced so a
// retried request with the same key gets the same resource back.
type IdempotencyStore interface {
	// Reserve claims key for the caller. When reserved is false, id is the
	// resource an earlier request created, or 0 while that request is still
	// running.
	Reserve(ctx context.Context, scope, key string) (id int64, reserved bool, err error)
	// Remember completes a reservation with the created resource id.
	Remember(ctx context.Context, scope, key string, id int64) error
	// Release drops a reservation whose create failed.
	Release(ctx context.Context, scope, key string) error
}
