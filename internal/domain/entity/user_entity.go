package entity

import "time"

// Roles recognized by the authorization policy.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User is the aggregate root for the identity domain.
// Password holds a bcrypt hash; the plaintext never touches storage.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
