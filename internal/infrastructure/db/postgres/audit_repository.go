package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clubhub/clubhub-api/internal/core/domain"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert stores one entry. A zero UserID is written as NULL.
func (r *AuditRepository) Insert(ctx context.Context, e *domain.AuditEntry) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_audit (action, subject, user_id, remote_ip, occurred_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		string(e.Action), e.Subject, sql.NullInt64{Int64: e.UserID, Valid: e.UserID != 0}, e.RemoteIP, e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
