package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User models an account owning tasks.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the caller resolved by the auth resolver. Only the fields
// exposed to handlers are carried.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"-"`
	// Channel names the credential that produced the identity and Token is
	// that credential: the session token or the API token.
	Channel string `json:"-"`
	Token   string `json:"-"`
}

const (
	ChannelSession = "session"
	ChannelBearer  = "bearer"
)

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// UserStats aggregates account counts for the admin dashboard.
type UserStats struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	Inactive     int64 `json:"inactive"`
	Admins       int64 `json:"admins"`
	NewThisMonth int64 `json:"new_this_month"`
}
