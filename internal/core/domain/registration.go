package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	MinUsernameLength = 3
	MaxUsernameLength = 20
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Registration is a sign-up request that passed every input check. Email is
// trimmed and lowercased, Username trimmed; Password is untouched.
type Registration struct {
	Email    string
	Password string
	Username string
}

// Credentials is a normalized login request.
type Credentials struct {
	Email    string
	Password string
}

// ParseRegistration runs the registration input checks in order and returns
// the first failure. Values come straight from the decoded JSON body, so any
// of them may be nil or a non-string.
func ParseRegistration(email, password, username any) (Registration, error) {
	if missing(email) || missing(password) || missing(username) {
		return Registration{}, ErrMissingFields
	}
	e, ok1 := email.(string)
	p, ok2 := password.(string)
	u, ok3 := username.(string)
	if !ok1 || !ok2 || !ok3 {
		return Registration{}, ErrInvalidTypes
	}

	r := Registration{
		Email:    NormalizeEmail(e),
		Password: p,
		Username: strings.TrimSpace(u),
	}

	if !strings.Contains(r.Email, "@") {
		return Registration{}, ErrInvalidEmail
	}
	if utf8.RuneCountInString(r.Password) < MinPasswordLength {
		return Registration{}, ErrPasswordTooShort
	}
	switch n := utf8.RuneCountInString(r.Username); {
	case n < MinUsernameLength:
		return Registration{}, ErrUsernameTooShort
	case n > MaxUsernameLength:
		return Registration{}, ErrUsernameTooLong
	}
	if !usernamePattern.MatchString(r.Username) {
		return Registration{}, ErrInvalidUsername
	}
	return r, nil
}

// ParseLogin checks presence and type of the login fields and normalizes the
// email.
func ParseLogin(email, password any) (Credentials, error) {
	if missing(email) || missing(password) {
		return Credentials{}, ErrMissingFields
	}
	e, ok1 := email.(string)
	p, ok2 := password.(string)
	if !ok1 || !ok2 {
		return Credentials{}, ErrInvalidTypes
	}
	return Credentials{Email: NormalizeEmail(e), Password: p}, nil
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// missing treats absent values and empty strings alike.
func missing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
