package domain

import "time"

// AuditAction names an authentication event worth keeping a trail of.
type AuditAction string

const (
	AuditRegister     AuditAction = "register"
	AuditLoginSuccess AuditAction = "login_success"
	AuditLoginFailure AuditAction = "login_failure"
)

// AuditEntry records one authentication event. Subject is the normalized
// email the caller presented; UserID is zero when no account matched.
type AuditEntry struct {
	Action     AuditAction
	Subject    string
	UserID     int64
	RemoteIP   string
	OccurredAt time.Time
}
