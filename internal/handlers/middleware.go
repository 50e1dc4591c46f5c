package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/services"
	"github.com/Ibtida01/Shobarkhamar/utils"
)

const identityKey = "identity"

type Middleware struct {
	jwtService *services.JWTService
}

func NewMiddleware(jwtService *services.JWTService) *Middleware {
	return &Middleware{jwtService: jwtService}
}

// RequireAuth validates the bearer token and stashes the caller's identity in
// the request context. Missing, expired and malformed tokens each get their
// own error code so clients can tell a stale session from a broken one.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.CreateErrorResponse("MISSING_TOKEN", "authorization header required"))
			return
		}

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}

		claims, err := m.jwtService.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, models.ErrExpiredToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					utils.CreateErrorResponse("TOKEN_EXPIRED", "token has expired"))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.CreateErrorResponse("INVALID_TOKEN", "token validation failed"))
			return
		}

		// Refresh tokens carry no role and must not reach protected routes.
		if claims.Role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.CreateErrorResponse("INVALID_TOKEN", "token validation failed"))
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.CreateErrorResponse("INVALID_TOKEN", "token validation failed"))
			return
		}

		c.Set(identityKey, models.Identity{UserID: userID, Role: claims.Role})
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after RequireAuth.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := identityFrom(c)
		if !ok || !caller.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				utils.CreateErrorResponse("FORBIDDEN", "admin access required"))
			return
		}
		c.Next()
	}
}

// CORS applies the configured allowed origins.
func CORS(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	allowAll := false
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return models.Identity{}, false
	}
	caller, ok := v.(models.Identity)
	return caller, ok
}

// mustIdentity is for routes behind RequireAuth, where the identity is
// guaranteed to be present.
func mustIdentity(c *gin.Context) models.Identity {
	caller, _ := identityFrom(c)
	return caller
}
