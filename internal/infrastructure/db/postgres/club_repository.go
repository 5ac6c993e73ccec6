package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/clubhub/clubhub-api/internal/core/domain"
)

const clubColumns = `id, owner_id, name, description, address, city, min_age, genres, image_url, created_at`

type ClubRepository struct {
	db *sql.DB
}

func NewClubRepository(db *sql.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClub(row rowScanner) (*domain.Club, error) {
	var (
		c        domain.Club
		imageURL sql.NullString
	)
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.Address, &c.City,
		&c.MinAge, pq.Array(&c.Genres), &imageURL, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.ImageURL = imageURL.String
	if c.Genres == nil {
		c.Genres = []string{}
	}
	return &c, nil
}

func (r *ClubRepository) Create(ctx context.Context, c *domain.Club) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	genres := c.Genres
	if genres == nil {
		genres = []string{}
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO clubs (owner_id, name, description, address, city, min_age, genres, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		c.OwnerID, c.Name, c.Description, c.Address, c.City, c.MinAge, pq.Array(genres),
		sql.NullString{String: c.ImageURL, Valid: c.ImageURL != ""},
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert club: %w", err)
	}
	return nil
}

func (r *ClubRepository) FindByID(ctx context.Context, id int64) (*domain.Club, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	c, err := scanClub(r.db.QueryRowContext(ctx, `SELECT `+clubColumns+` FROM clubs WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrClubNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find club: %w", err)
	}
	return c, nil
}

// ListRecent returns up to limit clubs, newest first.
func (r *ClubRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Club, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clubColumns+` FROM clubs ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	defer rows.Close()

	clubs := make([]*domain.Club, 0)
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("scan club: %w", err)
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	return clubs, nil
}
