package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/internal/core/ports"
)

const eventColumns = `id, club_id, title, description, starts_at, ends_at, status, created_at`

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	if err := row.Scan(&e.ID, &e.ClubID, &e.Title, &e.Description,
		&e.StartsAt, &e.EndsAt, &e.Status, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts the event. A club removed since the ownership check shows
// up as a foreign key violation and is reported as domain.ErrClubNotFound.
func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO events (club_id, title, description, starts_at, ends_at, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		e.ClubID, e.Title, e.Description, e.StartsAt, e.EndsAt, string(e.Status),
	).Scan(&e.ID, &e.CreatedAt)
	if _, ok := pgError(err, foreignKeyViolation); ok {
		return domain.ErrClubNotFound
	}
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	e, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	return e, nil
}

// List returns events ordered by start time. Zero-valued filter fields are
// not applied.
func (r *EventRepository) List(ctx context.Context, f ports.ListEventsFilter) ([]*domain.Event, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var (
		conds []string
		args  []any
	)
	if f.ClubID != 0 {
		args = append(args, f.ClubID)
		conds = append(conds, fmt.Sprintf("club_id = $%d", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		conds = append(conds, fmt.Sprintf("starts_at >= $%d", len(args)))
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(` ORDER BY starts_at ASC, id ASC LIMIT $%d`, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
