package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/internal/core/ports"
	"github.com/clubhub/clubhub-api/pkg/metrics"
)

// AuditRecorder accepts audit entries without blocking the caller.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuthService implements registration, login and profile lookup.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	audit  AuditRecorder
	log    zerolog.Logger
	now    func() time.Time

	dummyOnce   sync.Once
	dummyDigest string
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	audit AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		audit:  audit,
		log:    log,
		now:    time.Now,
	}
}

// Register validates the input, checks uniqueness and stores a new account
// with the default role. The store's unique constraints remain the final
// arbiter; the pre-checks only make the common case precise.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	reg, err := domain.ParseRegistration(in.Email, in.Password, in.Username)
	if err != nil {
		s.count("register", err)
		return nil, err
	}

	user, err := s.register(ctx, reg)
	s.count("register", err)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditRegister, user.Email, user.ID, in.RemoteIP)
	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

func (s *AuthService) register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	taken, err := s.users.EmailExists(ctx, reg.Email)
	if err != nil {
		return nil, fmt.Errorf("register: check email: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	taken, err = s.users.UsernameExists(ctx, reg.Username)
	if err != nil {
		return nil, fmt.Errorf("register: check username: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Email:        reg.Email,
		Username:     reg.Username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and issues a bearer token. An unknown email
// and a wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (string, *domain.User, error) {
	creds, err := domain.ParseLogin(in.Email, in.Password)
	if err != nil {
		s.count("login", err)
		return "", nil, err
	}

	token, user, err := s.login(ctx, creds)
	s.count("login", err)
	switch {
	case err == nil:
		s.record(domain.AuditLoginSuccess, creds.Email, user.ID, in.RemoteIP)
	case errors.Is(err, domain.ErrInvalidCredentials):
		var uid int64
		if user != nil {
			uid = user.ID
		}
		s.record(domain.AuditLoginFailure, creds.Email, uid, in.RemoteIP)
		return "", nil, err
	default:
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, creds.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Burn the same bcrypt work as a real comparison.
		s.hasher.Verify(creds.Password, s.dummy())
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: find user: %w", err)
	}

	if !s.hasher.Verify(creds.Password, user.PasswordHash) {
		return "", user, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.IdentityOf(user))
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}
	return token, user, nil
}

// Me returns the profile of the authenticated caller.
func (s *AuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return user, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash("clubhub-timing-equalizer")
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to prepare dummy digest")
			return
		}
		s.dummyDigest = digest
	})
	return s.dummyDigest
}

func (s *AuthService) record(action domain.AuditAction, subject string, userID int64, ip string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		Action:     action,
		Subject:    subject,
		UserID:     userID,
		RemoteIP:   ip,
		OccurredAt: s.now().UTC(),
	})
}

func (s *AuthService) count(operation string, err error) {
	result := "success"
	if err != nil {
		result = "rejected"
		if k := domain.KindOf(err); k == domain.KindInternal || k == domain.KindConfiguration {
			result = "error"
		}
	}
	metrics.AuthAttemptsTotal.WithLabelValues(operation, result).Inc()
}
