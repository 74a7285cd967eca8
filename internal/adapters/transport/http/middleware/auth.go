package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appsvc "github.com/Miraines/MoonyAndStarry/menu-service/internal/app/auth/service"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
)

const identityKey = "identity"

// RequireToken admits requests carrying "Authorization: Bearer <token>" of the
// given class and stores the caller's identity for the handler.
func RequireToken(gate appsvc.Gate, class model.TokenClass) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gate.Authorize(c.Request.Context(), BearerToken(c), class)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

func IdentityFrom(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return model.Identity{}, false
	}
	id, ok := v.(model.Identity)
	return id, ok
}
