// Package auth implements the authorization policy: pure predicates that
// decide, per role and per entity ownership, whether an operation is
// permitted. It performs no I/O; command handlers consult it before any
// store access.
package auth

import (
	"github.com/google/uuid"

	"pressroom/internal/models"
)

// Actor identifies the caller of an operation. A nil *Actor means the
// request carried no valid session and is treated as an anonymous guest.
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

// role normalizes an actor to its effective role. Anonymous callers and
// callers with an unknown role act as guests.
func role(a *Actor) models.Role {
	if a == nil || !a.Role.Valid() {
		return models.RoleGuest
	}
	return a.Role
}

// Authenticated reports whether the actor carries a real writer
// identity. Guests and anonymous callers are not authenticated.
func Authenticated(a *Actor) bool {
	switch role(a) {
	case models.RoleContributor, models.RoleSuperAdmin:
		return true
	case models.RoleGuest:
		return false
	}
	return false
}

// CanCreateArticle reports whether the actor may create articles.
// Any authenticated writer role qualifies; guests may not.
func CanCreateArticle(a *Actor) bool {
	switch role(a) {
	case models.RoleContributor, models.RoleSuperAdmin:
		return true
	case models.RoleGuest:
		return false
	}
	return false
}

// CanModifyArticle reports whether the actor may update or delete an
// article authored by authorID. Super admins may modify any article;
// contributors only their own.
func CanModifyArticle(a *Actor, authorID uuid.UUID) bool {
	switch role(a) {
	case models.RoleSuperAdmin:
		return true
	case models.RoleContributor:
		return a.ID == authorID
	case models.RoleGuest:
		return false
	}
	return false
}

// CanManageCategories reports whether the actor may create, update, or
// delete categories.
func CanManageCategories(a *Actor) bool {
	return role(a) == models.RoleSuperAdmin
}

// CanManageStaticPages reports whether the actor may create, update, or
// delete static pages.
func CanManageStaticPages(a *Actor) bool {
	return role(a) == models.RoleSuperAdmin
}

// CanManageUsers reports whether the actor may create, update, or delete
// user accounts.
func CanManageUsers(a *Actor) bool {
	return role(a) == models.RoleSuperAdmin
}

// CanListUsers reports whether the actor may list user accounts.
func CanListUsers(a *Actor) bool {
	return role(a) == models.RoleSuperAdmin
}

// CanSeeUnpublished reports whether article and static page listings
// should include unpublished records for this actor. Guests and anonymous
// callers only ever see published content.
func CanSeeUnpublished(a *Actor) bool {
	switch role(a) {
	case models.RoleContributor, models.RoleSuperAdmin:
		return true
	case models.RoleGuest:
		return false
	}
	return false
}
