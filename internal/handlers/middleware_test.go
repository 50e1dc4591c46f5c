package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibtida01/Shobarkhamar/internal/config"
	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/services"
)

func newTestRouter(accessExpiry time.Duration) (*gin.Engine, *services.JWTService) {
	gin.SetMode(gin.TestMode)

	jwtService := services.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: 24 * time.Hour,
	})
	m := NewMiddleware(jwtService)

	router := gin.New()
	router.GET("/protected", m.RequireAuth(), func(c *gin.Context) {
		caller := mustIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": caller.UserID.String()})
	})
	router.GET("/admin", m.RequireAuth(), m.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, jwtService
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingToken(t *testing.T) {
	router, _ := newTestRouter(time.Minute)

	w := doRequest(router, "/protected", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_TOKEN")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	router, _ := newTestRouter(time.Minute)

	w := doRequest(router, "/protected", "garbage")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	router, jwtService := newTestRouter(-time.Minute)

	token, err := jwtService.GenerateAccessToken(uuid.New(), models.RoleFarmer)
	require.NoError(t, err)

	w := doRequest(router, "/protected", token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	router, jwtService := newTestRouter(time.Minute)

	// A refresh token is valid JWT but has no role claim.
	token, err := jwtService.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	w := doRequest(router, "/protected", token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestRequireAuth_ValidToken(t *testing.T) {
	router, jwtService := newTestRouter(time.Minute)
	userID := uuid.New()

	token, err := jwtService.GenerateAccessToken(userID, models.RoleFarmer)
	require.NoError(t, err)

	w := doRequest(router, "/protected", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestRequireAdmin_FarmerForbidden(t *testing.T) {
	router, jwtService := newTestRouter(time.Minute)

	token, err := jwtService.GenerateAccessToken(uuid.New(), models.RoleFarmer)
	require.NoError(t, err)

	w := doRequest(router, "/admin", token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	router, jwtService := newTestRouter(time.Minute)

	token, err := jwtService.GenerateAccessToken(uuid.New(), models.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(router, "/admin", token)

	assert.Equal(t, http.StatusOK, w.Code)
}
