package models

import "somnolink-service/internal/pkg/constvars"

// Principal is the already-authenticated identity attached to every request
// by the authentication middleware. The role is assigned once by the external
// identity provider and trusted as-is.
type Principal struct {
	ID   string
	Role string
}

func (p Principal) IsPatient() bool {
	return p.Role == constvars.RolePatient
}

func (p Principal) IsPractitioner() bool {
	return p.Role == constvars.RolePractitioner
}
