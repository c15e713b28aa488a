package service

import (
	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

// CanMutate is the owner-or-admin rule: a write to a resource is permitted
// iff the actor created it or holds the admin role. Every mutating listing
// operation goes through this single predicate. A false result must surface
// as Forbidden, never NotFound: the resource exists, the actor lacks rights.
func CanMutate(actor ports.Identity, resourceOwnerID string) bool {
	return actor.ID == resourceOwnerID || actor.Role == domain.RoleAdmin
}
