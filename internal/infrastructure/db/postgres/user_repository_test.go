package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhub/clubhub-api/internal/core/domain"
)

var userRowColumns = []string{"id", "email", "username", "password_hash", "role", "created_at"}

func TestUserRepository_FindByEmail(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedErr   error
		expectedUser  *domain.User
		expectedWraps bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
					WithArgs("a@b.com").
					WillReturnRows(sqlmock.NewRows(userRowColumns).
						AddRow(1, "a@b.com", "alice_1", "$2a$hash", "user", now))
			},
			expectedUser: &domain.User{ID: 1, Email: "a@b.com", Username: "alice_1", PasswordHash: "$2a$hash", Role: "user", CreatedAt: now},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
					WithArgs("a@b.com").
					WillReturnRows(sqlmock.NewRows(userRowColumns))
			},
			expectedErr: domain.ErrUserNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
					WithArgs("a@b.com").
					WillReturnError(errors.New("connection reset"))
			},
			expectedWraps: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tt.setupMock(mock)

			user, err := NewUserRepository(db).FindByEmail(context.Background(), "a@b.com")

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.expectedWraps:
				require.Error(t, err)
				assert.Equal(t, domain.KindInternal, domain.KindOf(err))
				assert.Contains(t, err.Error(), "connection reset")
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}
		})
	}
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := NewUserRepository(db).FindByID(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE email = \$1\)`).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE username = \$1\)`).
		WithArgs("alice_1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	found, err := repo.EmailExists(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.UsernameExists(context.Background(), "alice_1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserRepository_Create(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name        string
		insertErr   error
		expectedErr error
		internal    bool
	}{
		{name: "success"},
		{
			name:        "email taken by a concurrent insert",
			insertErr:   &pq.Error{Code: "23505", Constraint: "users_email_key"},
			expectedErr: domain.ErrEmailTaken,
		},
		{
			name:        "username taken by a concurrent insert",
			insertErr:   &pq.Error{Code: "23505", Constraint: "users_username_key"},
			expectedErr: domain.ErrUsernameTaken,
		},
		{
			name:      "other constraint",
			insertErr: &pq.Error{Code: "23514", Constraint: "users_role_check"},
			internal:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			expect := mock.ExpectQuery(`INSERT INTO users`).
				WithArgs("a@b.com", "alice_1", "$2a$hash", "user")
			if tt.insertErr != nil {
				expect.WillReturnError(tt.insertErr)
			} else {
				expect.WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, now))
			}

			user := &domain.User{Email: "a@b.com", Username: "alice_1", PasswordHash: "$2a$hash", Role: "user"}
			err := NewUserRepository(db).Create(context.Background(), user)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Equal(t, domain.KindConflict, domain.KindOf(err))
			case tt.internal:
				require.Error(t, err)
				assert.Equal(t, domain.KindInternal, domain.KindOf(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(42), user.ID)
				assert.Equal(t, now, user.CreatedAt)
			}
		})
	}
}
