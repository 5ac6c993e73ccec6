package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/internal/infrastructure/security"
)

type stubVerifier struct {
	id    *domain.Identity
	err   error
	calls int
	got   string
}

func (s *stubVerifier) Verify(token string) (*domain.Identity, error) {
	s.calls++
	s.got = token
	return s.id, s.err
}

func newCtx(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	want := domain.Identity{UserID: 3, Email: "a@b.com", Username: "alice_1", Role: domain.RoleBusiness}
	verifier := &stubVerifier{id: &want}
	c, rec := newCtx("Bearer abc.def.ghi")

	called := false
	handler := Auth(verifier)(func(c echo.Context) error {
		called = true
		got, ok := IdentityFrom(c)
		if !ok || got != want {
			t.Fatalf("identity not set: %+v", got)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if verifier.got != "abc.def.ghi" {
		t.Fatalf("verifier got %q", verifier.got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	for _, header := range []string{"", "Token abc", "Bearer", "Bearer ", "bearerabc", "Basic YTpi"} {
		t.Run(header, func(t *testing.T) {
			verifier := &stubVerifier{}
			c, _ := newCtx(header)

			err := Auth(verifier)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})(c)

			if !errors.Is(err, domain.ErrMissingToken) {
				t.Fatalf("expected ErrMissingToken, got %v", err)
			}
			if verifier.calls != 0 {
				t.Fatalf("verifier must not be called")
			}
		})
	}
}

func TestAuthMiddleware_VerifyErrorsPassThrough(t *testing.T) {
	for _, want := range []error{
		domain.ErrTokenExpired,
		domain.ErrTokenInvalidSignature,
		domain.ErrTokenMalformed,
		domain.ErrConfigurationMissing,
	} {
		c, _ := newCtx("Bearer x")
		err := Auth(&stubVerifier{err: want})(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})(c)
		if !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestAuthMiddleware_TokenLifetime(t *testing.T) {
	issuedAt := time.Unix(1_800_000_000, 0)
	tokens := security.NewTokenService("secret", 0)

	token, err := tokens.At(func() time.Time { return issuedAt }).Issue(domain.Identity{UserID: 1, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"just issued", issuedAt, nil},
		{"one second before expiry", issuedAt.Add(30*24*time.Hour - time.Second), nil},
		{"at expiry", issuedAt.Add(30 * 24 * time.Hour), domain.ErrTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := tokens.At(func() time.Time { return tt.at })
			c, _ := newCtx("Bearer " + token)
			err := Auth(verifier)(func(c echo.Context) error { return nil })(c)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
