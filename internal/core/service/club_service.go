package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/internal/core/ports"
	"github.com/clubhub/clubhub-api/pkg/metrics"
)

const clubListLimit = 100

type ClubService struct {
	repo   ports.ClubRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
}

// NewClubService wires the club use cases. idem may be nil, which disables
// Idempotency-Key replays.
func NewClubService(repo ports.ClubRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *ClubService {
	return &ClubService{repo: repo, idem: idem, logger: logger}
}

// List returns the newest clubs.
func (s *ClubService) List(ctx context.Context) ([]*domain.Club, error) {
	clubs, err := s.repo.ListRecent(ctx, clubListLimit)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	return clubs, nil
}

func (s *ClubService) Get(ctx context.Context, id int64) (*domain.Club, error) {
	club, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get club: %w", err)
	}
	return club, nil
}

// Create stores a club owned by the caller. If an idempotency key is provided
// and already seen for this caller, the previously created club is returned.
func (s *ClubService) Create(ctx context.Context, owner domain.Identity, in ports.CreateClubInput) (*domain.Club, error) {
	claim, err := claimKey(ctx, s.idem, s.logger, "club:"+strconv.FormatInt(owner.UserID, 10), in.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if claim.priorID != 0 {
		return s.replay(ctx, claim)
	}

	minAge := domain.DefaultMinAge
	if in.MinAge != nil {
		minAge = *in.MinAge
	}
	genres := in.Genres
	if genres == nil {
		genres = []string{}
	}

	club := &domain.Club{
		OwnerID:     owner.UserID,
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		City:        in.City,
		MinAge:      minAge,
		Genres:      genres,
		ImageURL:    in.ImageURL,
	}
	if err := s.repo.Create(ctx, club); err != nil {
		claim.settle(ctx, s.idem, s.logger, 0)
		s.logger.Error().Err(err).Int64("owner_id", owner.UserID).Msg("failed to create club")
		return nil, fmt.Errorf("create club: %w", err)
	}
	claim.settle(ctx, s.idem, s.logger, club.ID)

	metrics.ClubsCreatedTotal.Inc()
	s.logger.Info().Int64("club_id", club.ID).Int64("owner_id", owner.UserID).Msg("club created")
	return club, nil
}

func (s *ClubService) replay(ctx context.Context, claim idemClaim) (*domain.Club, error) {
	club, err := s.repo.FindByID(ctx, claim.priorID)
	if err != nil {
		return nil, fmt.Errorf("replay club: %w", err)
	}
	metrics.IdempotentReplaysTotal.WithLabelValues("club").Inc()
	s.logger.Info().Str("idempotency_key", claim.key).Int64("club_id", club.ID).Msg("idempotent replay")
	return club, nil
}
