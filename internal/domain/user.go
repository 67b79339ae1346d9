package domain

// Role of an authenticated user supplied by the identity layer
type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole validates a raw role value, unknown values fall back to RoleUser
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleOwner, RoleAdmin:
		return Role(s)
	}
	return RoleUser
}

// Identity is the authenticated caller
type Identity struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true for platform administrators
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
