package models

// Roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a credential record of the local registry. Passwords and security
// answers are stored in cleartext; the registry is for development only.
type User struct {
	Username         string `json:"username"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	Enabled          bool   `json:"enabled"`
	SecurityQuestion string `json:"securityQuestion"`
	SecurityAnswer   string `json:"securityAnswer"`

	// BuiltIn is set for the hardcoded accounts. It is not persisted.
	BuiltIn bool `json:"-"`
}

// IsActiveAdmin reports whether u counts toward the enabled-admin minimum.
func (u User) IsActiveAdmin() bool {
	return u.Role == RoleAdmin && u.Enabled
}

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// RemoteUser is a user as listed by the remote /api/users endpoint.
type RemoteUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Enabled  *bool  `json:"enabled,omitempty"`
}
