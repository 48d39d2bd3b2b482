package middleware

import (
	"github.com/SscSPs/mission_finance_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// actorKey is the key used to store the authenticated actor in the Gin context.
const actorKey = contextKey("actor")

// GetActorFromContext retrieves the authenticated actor from the Gin context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	actorVal, exists := c.Get(string(actorKey))
	if !exists {
		// check in the request context as well
		if ctxVal := c.Request.Context().Value(actorKey); ctxVal != nil {
			if actor, ok := ctxVal.(domain.Actor); ok {
				return actor, true
			}
		}
		return domain.Actor{}, false
	}

	actor, ok := actorVal.(domain.Actor)
	if !ok {
		// This should not happen if the auth middleware sets it correctly
		return domain.Actor{}, false
	}

	return actor, true
}
