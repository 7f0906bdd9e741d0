package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/fleetpulse/fleet_expense_app/internal/core/domain"
)

// principalKey is the key used to store the authenticated principal.
// Using a custom type prevents collisions.
const principalKey = contextKey("principal")

// GetPrincipalFromContext retrieves the authenticated principal from the Gin
// context. It returns the principal and a boolean indicating if it was found.
func GetPrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	principalVal, exists := c.Get(string(principalKey))
	if !exists {
		// check in the request context as well
		if p, ok := c.Request.Context().Value(principalKey).(domain.Principal); ok {
			return p, true
		}
		return domain.Principal{}, false
	}

	principal, ok := principalVal.(domain.Principal)
	if !ok {
		return domain.Principal{}, false
	}

	return principal, true
}
