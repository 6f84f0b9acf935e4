package models

// RoleType is a user role.
type RoleType string

// Supported roles
const (
	RoleUser  RoleType = "USER"
	RoleAdmin RoleType = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Roles is a set of roles without duplicates.
type Roles []RoleType

// Has reports whether the set contains role.
func (rs Roles) Has(role RoleType) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Add appends role if it is not already present.
func (rs Roles) Add(role RoleType) Roles {
	if rs.Has(role) {
		return rs
	}
	return append(rs, role)
}
