package models

import "time"

// User roles. A super admin passes every admin check and may
// additionally create new admin accounts.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Password  string     `json:"-"` // bcrypt hash, never the plaintext
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsAdmin reports whether the user holds admin privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// Session is the server-side record behind the opaque session cookie.
// The client only ever holds the ID; everything else stays in the
// store. Unauthenticated sessions exist solely to carry ReturnTo
// across a login redirect.
type Session struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id,omitempty"`
	Username        string    `json:"username,omitempty"`
	Email           string    `json:"email,omitempty"`
	Role            string    `json:"role,omitempty"`
	IsAuthenticated bool      `json:"is_authenticated"`
	ReturnTo        string    `json:"return_to,omitempty"`
	ExpiresAt       time.Time `json:"expires_at"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// IsAdmin reports whether the session belongs to an admin or super admin.
func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated && (s.Role == RoleAdmin || s.Role == RoleSuperAdmin)
}

// IsSuperAdmin reports whether the session belongs to a super admin.
func (s *Session) IsSuperAdmin() bool {
	return s.IsAuthenticated && s.Role == RoleSuperAdmin
}
