package domain

import "time"

const (
	RoleUser     = "user"
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleBusiness, RoleAdmin:
		return true
	}
	return false
}

// User models an account. The password hash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the set of claims carried by a bearer token and attached to an
// authenticated request.
type Identity struct {
	UserID   int64
	Email    string
	Username string
	Role     string
}

// IdentityOf returns the token claims for u.
func IdentityOf(u *User) Identity {
	return Identity{UserID: u.ID, Email: u.Email, Username: u.Username, Role: u.Role}
}
