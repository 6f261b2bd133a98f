package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medibook/medibook-api/internal/model"
	authservice "github.com/medibook/medibook-api/internal/service/auth"
	"github.com/medibook/medibook-api/pkg/httputil"
)

const (
	ContextActorID   = "actor_id"
	ContextActorRole = "actor_role"
)

type AuthMiddleware struct {
	authService *authservice.Service
}

func NewAuthMiddleware(authService *authservice.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token and requires one of the given
// roles. The verified identity is stored on the context; handlers trust it
// without re-checking credentials.
func (m *AuthMiddleware) Authenticate(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		allowed := len(roles) == 0
		for _, role := range roles {
			if claims.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			abortUnauthorized(c, "insufficient role")
			return
		}

		c.Set(ContextActorID, claims.Subject)
		c.Set(ContextActorRole, string(claims.Role))
		c.Next()
	}
}

// ActorID returns the authenticated actor's id, empty for admins.
func ActorID(c *gin.Context) string {
	return c.GetString(ContextActorID)
}

// ActorRole returns the authenticated actor's role.
func ActorRole(c *gin.Context) model.Role {
	return model.Role(c.GetString(ContextActorRole))
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
		Success: false,
		Message: message,
	})
}
