// Package policy holds the single access-control decision shared by every
// entity manager: superadmins act across tenants, school admins only inside
// their own school.
package policy

import "github.com/noah-isme/school-admin-api/internal/models"

// Actor is the authenticated principal a decision is evaluated for.
type Actor struct {
	Role     models.UserRole
	SchoolID string
}

// FromClaims builds an Actor from decoded session claims.
func FromClaims(claims *models.SessionClaims) Actor {
	if claims == nil {
		return Actor{}
	}
	return Actor{Role: claims.Role, SchoolID: claims.SchoolID}
}

// IsSuperadmin reports whether the actor holds the superadmin role.
func (a Actor) IsSuperadmin() bool {
	return a.Role == models.RoleSuperadmin
}

// CanAccess reports whether the actor may act on a resource owned by the
// given school. Existence of the resource is checked by the caller first;
// this answers only the tenant question.
func CanAccess(a Actor, resourceSchoolID string) bool {
	switch a.Role {
	case models.RoleSuperadmin:
		return true
	case models.RoleSchoolAdmin:
		return a.SchoolID != "" && a.SchoolID == resourceSchoolID
	default:
		return false
	}
}

// ResolveSchoolScope returns the school a create or list operation targets.
// School admins are always forced onto their own school, ignoring any
// caller-supplied value; superadmins use the requested school, which may be
// empty (required for creates, "all schools" for lists). ok is false when the
// role is not recognised.
func ResolveSchoolScope(a Actor, requested string) (schoolID string, ok bool) {
	switch a.Role {
	case models.RoleSchoolAdmin:
		return a.SchoolID, true
	case models.RoleSuperadmin:
		return requested, true
	default:
		return "", false
	}
}
