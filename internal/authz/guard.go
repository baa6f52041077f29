// Package authz holds the per-request authorization decision made by every
// protected endpoint: local access-token validation, role checks, and
// resource-ownership checks that may require a synchronous call into the
// service that owns the resource.
package authz

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"talenthire/internal/domain"
	"talenthire/internal/token"
)

const claimsContextKey = "authz.claims"

// Guard classifies requests into the endpoint tiers: public (no middleware),
// authenticated, admin-only, and owner-or-admin. It is stateless; every
// decision derives from the bearer token and, for remote resources, one
// ownership lookup.
type Guard struct {
	validator *token.Validator
}

func NewGuard(validator *token.Validator) *Guard {
	return &Guard{validator: validator}
}

// Authenticate validates the bearer token and stores its claims in the request
// context. Missing, malformed, badly signed and expired tokens all yield 401.
func (g *Guard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := g.validator.Validate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireAdmin allows only callers whose role claim is Admin. It must run
// after Authenticate.
func (g *Guard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		if claims.Role != string(domain.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// RequireOwnerOrAdmin passes admins unconditionally; every other caller must be
// resolved as the owner of the request's target resource. NotOwner and
// Unreachable both deny: an ownership lookup that cannot complete never grants
// access.
func (g *Guard) RequireOwnerOrAdmin(resolve OwnerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		if claims.Role == string(domain.RoleAdmin) {
			c.Next()
			return
		}
		if resolve(c, claims) != Owner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not the resource owner"})
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(c *gin.Context) (token.Claims, bool) {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return token.Claims{}, false
	}
	claims, ok := v.(token.Claims)
	return claims, ok
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	raw := strings.TrimSpace(header[len(prefix):])
	return raw, raw != ""
}
