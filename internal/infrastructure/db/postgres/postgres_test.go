package postgres

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMockDB creates a sqlmock-backed *sql.DB and checks all expectations
// were met when the test ends.
func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestWithSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		dsn      string
		expected string
	}{
		{
			name:     "local url",
			dsn:      "postgres://u:p@localhost:5432/clubhub",
			expected: "postgres://u:p@localhost:5432/clubhub?sslmode=disable",
		},
		{
			name:     "loopback ipv6 url",
			dsn:      "postgres://u:p@[::1]:5432/clubhub",
			expected: "postgres://u:p@[::1]:5432/clubhub?sslmode=disable",
		},
		{
			name:     "remote url keeps other params",
			dsn:      "postgresql://u:p@db.example.com/clubhub?connect_timeout=5",
			expected: "postgresql://u:p@db.example.com/clubhub?connect_timeout=5&sslmode=require",
		},
		{
			name:     "explicit sslmode wins",
			dsn:      "postgres://u:p@db.example.com/clubhub?sslmode=verify-full",
			expected: "postgres://u:p@db.example.com/clubhub?sslmode=verify-full",
		},
		{
			name:     "keyword dsn on loopback",
			dsn:      "host=127.0.0.1 dbname=clubhub",
			expected: "host=127.0.0.1 dbname=clubhub sslmode=disable",
		},
		{
			name:     "keyword dsn remote",
			dsn:      "host=db.internal dbname=clubhub",
			expected: "host=db.internal dbname=clubhub sslmode=require",
		},
		{
			name:     "keyword dsn on unix socket",
			dsn:      "host=/var/run/postgresql dbname=clubhub",
			expected: "host=/var/run/postgresql dbname=clubhub sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WithSSLMode(tt.dsn))
		})
	}
}

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	up, err := migrationFiles.ReadFile("migrations/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "users_email_key")
	assert.Contains(t, string(up), "users_username_key")
}
