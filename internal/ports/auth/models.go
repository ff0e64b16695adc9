package auth

// RoleAdmin marks platform administrators (application review, shelter CRUD).
const RoleAdmin = "admin"

// Claims is the caller identity extracted from a verified token.
type Claims struct {
	UserID string
	Email  string
	Roles  []string
}

// HasRole reports whether the claims carry the given role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin is a shorthand for HasRole(RoleAdmin).
func (c Claims) IsAdmin() bool {
	return c.HasRole(RoleAdmin)
}
