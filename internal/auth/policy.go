package auth

import (
	"github.com/wilideparisdenode/bloggerBackend/internal/models"
)

// CanMutate decides whether actor may update or delete a resource owned by
// ownerID. Admins may mutate anything; everyone else only their own
// resources. A nil actor is always denied.
func CanMutate(actor *models.User, ownerID string) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin || actor.ID == ownerID
}
