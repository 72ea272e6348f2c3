package domain

import (
	dErrors "github.com/theusc6/global-impact-platform/pkg/domain-errors"
)

// Role is the fixed enumeration of caller roles. This is deliberately not
// an extensible RBAC engine.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole converts a claim value into a Role. Unknown values are a
// verification failure, not a downstream property-access surprise.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidCredential, "unknown role claim")
	}
}

// Satisfies reports whether a caller holding r meets a field's required
// role. ADMIN satisfies any requirement; USER satisfies only USER-level
// requirements.
func (r Role) Satisfies(required Role) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser:
		return required == RoleUser
	default:
		return false
	}
}
