package domain

import "time"

// DefaultMinAge applies when a club is created without an explicit minimum age.
const DefaultMinAge = 18

// Club is a venue owned by a business account.
type Club struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	MinAge      int       `json:"minAge"`
	Genres      []string  `json:"genres"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CanManage reports whether id may act on the club: admins always, business
// accounts only on clubs they own.
func (c *Club) CanManage(id Identity) bool {
	switch id.Role {
	case RoleAdmin:
		return true
	case RoleBusiness:
		return c.OwnerID == id.UserID
	}
	return false
}
