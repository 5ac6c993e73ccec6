package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/internal/core/ports"
	"github.com/clubhub/clubhub-api/pkg/metrics"
)

const eventListLimit = 200

type EventService struct {
	events ports.EventRepository
	clubs  ports.ClubRepository
	idem   ports.IdempotencyStore
	log    zerolog.Logger
	now    func() time.Time
}

// NewEventService returns an EventService. idem may be nil.
func NewEventService(
	events ports.EventRepository,
	clubs ports.ClubRepository,
	idem ports.IdempotencyStore,
	log zerolog.Logger,
) *EventService {
	return &EventService{events: events, clubs: clubs, idem: idem, log: log, now: time.Now}
}

// List returns events ordered by start time. Upcoming restricts the result
// to events that have not started yet.
func (s *EventService) List(ctx context.Context, in ports.ListEventsInput) ([]*domain.Event, error) {
	filter := ports.ListEventsFilter{ClubID: in.ClubID, Limit: eventListLimit}
	if in.Upcoming {
		filter.From = s.now().UTC()
	}
	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return ev, nil
}

// Create adds an event to a club. Business accounts may only do so for clubs
// they own; admins for any club.
func (s *EventService) Create(ctx context.Context, actor domain.Identity, in ports.CreateEventInput) (*domain.Event, error) {
	if !in.EndsAt.After(in.StartsAt) {
		return nil, domain.ErrInvalidTimeRange
	}
	status := in.Status
	if status == "" {
		status = domain.EventScheduled
	}
	if !status.Valid() {
		return nil, domain.InvalidInput("status must be one of: scheduled cancelled finished")
	}

	club, err := s.clubs.FindByID(ctx, in.ClubID)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if !club.CanManage(actor) {
		s.log.Warn().
			Int64("user_id", actor.UserID).
			Int64("club_id", club.ID).
			Msg("event creation denied: not club owner")
		return nil, domain.ErrNotClubOwner
	}

	claim, err := claimKey(ctx, s.idem, s.log, "event:"+strconv.FormatInt(actor.UserID, 10), in.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if claim.priorID != 0 {
		return s.replay(ctx, claim)
	}

	ev := &domain.Event{
		ClubID:      club.ID,
		Title:       in.Title,
		Description: in.Description,
		StartsAt:    in.StartsAt.UTC(),
		EndsAt:      in.EndsAt.UTC(),
		Status:      status,
	}
	if err := s.events.Create(ctx, ev); err != nil {
		claim.settle(ctx, s.idem, s.log, 0)
		return nil, fmt.Errorf("create event: %w", err)
	}
	claim.settle(ctx, s.idem, s.log, ev.ID)

	metrics.EventsCreatedTotal.WithLabelValues(actor.Role).Inc()
	s.log.Info().
		Int64("event_id", ev.ID).
		Int64("club_id", club.ID).
		Int64("user_id", actor.UserID).
		Msg("event created")
	return ev, nil
}

func (s *EventService) replay(ctx context.Context, claim idemClaim) (*domain.Event, error) {
	ev, err := s.events.FindByID(ctx, claim.priorID)
	if err != nil {
		return nil, fmt.Errorf("replay event: %w", err)
	}
	metrics.IdempotentReplaysTotal.WithLabelValues("event").Inc()
	return ev, nil
}
