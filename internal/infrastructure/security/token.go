package security

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clubhub/clubhub-api/internal/core/domain"
)

// DefaultTokenTTL is the lifetime of an issued token.
const DefaultTokenTTL = 30 * 24 * time.Hour

// tokenClaims is the JWT payload: identity plus the registered iat/exp.
// Expiry shadows RegisteredClaims.ExpiresAt so exp keeps sub-second precision.
type tokenClaims struct {
	UserID   int64   `json:"id"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Expiry   *expiry `json:"exp,omitempty"`
	jwt.RegisteredClaims
}

func (c tokenClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	if c.Expiry == nil {
		return nil, nil
	}
	return &jwt.NumericDate{Time: time.Time(*c.Expiry)}, nil
}

// expiry is a NumericDate carrying nanoseconds. It is decoded from the
// decimal text, never through float64, so the boundary does not drift.
type expiry time.Time

func (e expiry) MarshalJSON() ([]byte, error) {
	t := time.Time(e)
	return fmt.Appendf(nil, "%d.%09d", t.Unix(), t.Nanosecond()), nil
}

func (e *expiry) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("exp: %w", err)
	}

	whole, frac, _ := strings.Cut(n.String(), ".")
	secs, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return fmt.Errorf("exp: %w", err)
	}

	var nanos int64
	if frac != "" {
		if len(frac) > 9 {
			frac = frac[:9]
		}
		nanos, err = strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
		if err != nil {
			return fmt.Errorf("exp: %w", err)
		}
	}
	*e = expiry(time.Unix(secs, nanos))
	return nil
}

// TokenService issues and verifies HS256 bearer tokens. With an empty secret
// every operation fails with domain.ErrConfigurationMissing.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// At returns a copy of the service that reads time from now.
func (s *TokenService) At(now func() time.Time) *TokenService {
	clone := *s
	clone.now = now
	return &clone
}

// Configured reports whether a signing secret is present.
func (s *TokenService) Configured() bool { return len(s.secret) > 0 }

func (s *TokenService) Issue(id domain.Identity) (string, error) {
	if !s.Configured() {
		return "", domain.ErrConfigurationMissing
	}

	now := s.now()
	exp := expiry(now.Add(s.ttl))
	claims := tokenClaims{
		UserID:   id.UserID,
		Email:    id.Email,
		Username: id.Username,
		Role:     id.Role,
		Expiry:   &exp,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature first, then expiry, and returns the embedded identity.
func (s *TokenService) Verify(token string) (*domain.Identity, error) {
	if !s.Configured() {
		return nil, domain.ErrConfigurationMissing
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	return &domain.Identity{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		// Bad signature, unexpected algorithm, or claims that fail validation.
		return domain.ErrTokenInvalidSignature
	}
}
