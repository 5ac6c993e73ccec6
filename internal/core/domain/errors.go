package domain

import "errors"

// Kind classifies every error the API can surface. The transport layer maps
// each kind to exactly one HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindConfiguration:
		return "configuration"
	default:
		return "internal"
	}
}

// Error is a classified, client-safe error. Message is returned to callers
// verbatim, so it must never carry internal details.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// InvalidInput builds an ad hoc validation error.
func InvalidInput(msg string) error {
	return newError(KindInvalidInput, "INVALID_INPUT", msg)
}

// KindOf reports the kind of err, or KindInternal when err is unclassified.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Registration / login input.
var (
	ErrMissingFields    = newError(KindInvalidInput, "MISSING_FIELDS", "missing required fields")
	ErrInvalidTypes     = newError(KindInvalidInput, "INVALID_TYPES", "fields must be strings")
	ErrInvalidEmail     = newError(KindInvalidInput, "INVALID_EMAIL", "invalid email")
	ErrPasswordTooShort = newError(KindInvalidInput, "PASSWORD_TOO_SHORT", "password must be at least 8 characters")
	ErrUsernameTooShort = newError(KindInvalidInput, "USERNAME_TOO_SHORT", "username must be at least 3 characters")
	ErrUsernameTooLong  = newError(KindInvalidInput, "USERNAME_TOO_LONG", "username must be at most 20 characters")
	ErrInvalidUsername  = newError(KindInvalidInput, "INVALID_USERNAME", "username may only contain letters, digits and underscores")
	ErrInvalidID        = newError(KindInvalidInput, "INVALID_ID", "invalid id")
	ErrInvalidTimeRange = newError(KindInvalidInput, "INVALID_TIME_RANGE", "endsAt must be after startsAt")
	ErrInvalidPayload   = newError(KindInvalidInput, "INVALID_PAYLOAD", "invalid payload")
)

// Uniqueness.
var (
	ErrEmailTaken    = newError(KindConflict, "EMAIL_TAKEN", "email already in use")
	ErrUsernameTaken = newError(KindConflict, "USERNAME_TAKEN", "username already in use")

	ErrIdempotencyKeyInUse = newError(KindConflict, "IDEMPOTENCY_KEY_IN_USE", "a request with this Idempotency-Key is still in progress")
)

// Authentication. ErrInvalidCredentials is shared by "no such user" and
// "wrong password".
var (
	ErrInvalidCredentials    = newError(KindUnauthenticated, "INVALID_CREDENTIALS", "invalid credentials")
	ErrMissingToken          = newError(KindUnauthenticated, "MISSING_TOKEN", "missing bearer token")
	ErrTokenMalformed        = newError(KindUnauthenticated, "TOKEN_MALFORMED", "malformed token")
	ErrTokenInvalidSignature = newError(KindUnauthenticated, "TOKEN_INVALID_SIGNATURE", "invalid token signature")
	ErrTokenExpired          = newError(KindUnauthenticated, "TOKEN_EXPIRED", "token expired")
)

// Authorization.
var (
	ErrForbidden    = newError(KindForbidden, "FORBIDDEN", "access forbidden")
	ErrNotClubOwner = newError(KindForbidden, "NOT_CLUB_OWNER", "you do not own this club")
)

// Lookups.
var (
	ErrUserNotFound  = newError(KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrClubNotFound  = newError(KindNotFound, "CLUB_NOT_FOUND", "club not found")
	ErrEventNotFound = newError(KindNotFound, "EVENT_NOT_FOUND", "event not found")
)

// ErrConfigurationMissing is returned by every token operation when no
// signing secret is configured.
var ErrConfigurationMissing = newError(KindConfiguration, "CONFIGURATION_MISSING", "server misconfiguration")
