package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/clubhub-api/internal/api/middleware"
	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (string, *domain.User, error)
	meFn       func(ctx context.Context, userID int64) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

type stubClubService struct {
	listFn   func(ctx context.Context) ([]*domain.Club, error)
	getFn    func(ctx context.Context, id int64) (*domain.Club, error)
	createFn func(ctx context.Context, owner domain.Identity, in ports.CreateClubInput) (*domain.Club, error)
}

func (s *stubClubService) List(ctx context.Context) ([]*domain.Club, error) { return s.listFn(ctx) }

func (s *stubClubService) Get(ctx context.Context, id int64) (*domain.Club, error) {
	return s.getFn(ctx, id)
}

func (s *stubClubService) Create(ctx context.Context, owner domain.Identity, in ports.CreateClubInput) (*domain.Club, error) {
	return s.createFn(ctx, owner, in)
}

type stubEventService struct {
	listFn   func(ctx context.Context, in ports.ListEventsInput) ([]*domain.Event, error)
	getFn    func(ctx context.Context, id int64) (*domain.Event, error)
	createFn func(ctx context.Context, actor domain.Identity, in ports.CreateEventInput) (*domain.Event, error)
}

func (s *stubEventService) List(ctx context.Context, in ports.ListEventsInput) ([]*domain.Event, error) {
	return s.listFn(ctx, in)
}

func (s *stubEventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	return s.getFn(ctx, id)
}

func (s *stubEventService) Create(ctx context.Context, actor domain.Identity, in ports.CreateEventInput) (*domain.Event, error) {
	return s.createFn(ctx, actor, in)
}

// newContext builds an echo context with the validator installed and, when
// id is non-nil, an authenticated caller.
func newContext(method, target string, body io.Reader, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		middleware.SetIdentity(c, *id)
	}
	return c, rec
}
