// Package postgres implements the repositories on PostgreSQL through
// database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"
)

const (
	defaultConnectTimeout = 5 * time.Second
	queryTimeout          = 5 * time.Second

	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Config captures the settings for the connection pool.
type Config struct {
	URL          string
	MaxOpenConns int
	Timeout      time.Duration
}

// Connect opens the pool, applies the TLS policy to the DSN and validates
// connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	db, err := sql.Open("postgres", WithSSLMode(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns / 2)
	}
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return db, nil
}

// WithSSLMode sets sslmode when the DSN does not: disable for a local
// server, require for anything else. Both URL and key=value DSNs work.
func WithSSLMode(dsn string) string {
	if strings.Contains(dsn, "sslmode=") {
		return dsn
	}

	u, err := url.Parse(dsn)
	if err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
		q := u.Query()
		q.Set("sslmode", sslModeFor(u.Hostname()))
		u.RawQuery = q.Encode()
		return u.String()
	}

	return strings.TrimSpace(dsn) + " sslmode=" + sslModeFor(keywordHost(dsn))
}

func sslModeFor(host string) string {
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return "disable"
	}
	if strings.HasPrefix(host, "/") {
		return "disable"
	}
	return "require"
}

func keywordHost(dsn string) string {
	for _, field := range strings.Fields(dsn) {
		if v, ok := strings.CutPrefix(field, "host="); ok {
			return strings.Trim(v, "'")
		}
	}
	return ""
}

// Migrate applies the embedded schema migrations on a dedicated connection.
func Migrate(dsn string) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	db, err := sql.Open("postgres", WithSSLMode(dsn))
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{
		MigrationsTable: "clubhub_schema_migrations",
	})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// pgError extracts a server error carrying the given SQLSTATE.
func pgError(err error, code pq.ErrorCode) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == code {
		return pqErr, true
	}
	return nil, false
}
