package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stayserve/marketplace-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(jwtService *jwt.Service, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	group := router.Group("/", AuthMiddleware(jwtService))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		userCtx, _ := GetUserContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userCtx.UserID})
	})

	return router
}

func newTestJWTService() *jwt.Service {
	return jwt.NewService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()

	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload["code"]
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	router := newTestRouter(jwtService)

	token, err := jwtService.GenerateAccessToken("guest-1", "alex@example.com", []string{RoleGuest}, "", "")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "guest-1")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := newTestRouter(newTestJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "MISSING_AUTH_HEADER", errorCode(t, w.Body.Bytes()))
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := newTestRouter(newTestJWTService())

	for _, header := range []string{"Basic abc123", "Bearer", "token-without-scheme"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Equal(t, "INVALID_AUTH_FORMAT", errorCode(t, w.Body.Bytes()), "header %q", header)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := newTestRouter(newTestJWTService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, w.Body.Bytes()))
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	jwtService := newTestJWTService()
	router := newTestRouter(jwtService)

	refreshToken, err := jwtService.GenerateRefreshToken("guest-1", "alex@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, w.Body.Bytes()))
}

func TestRequireRole(t *testing.T) {
	jwtService := newTestJWTService()
	router := newTestRouter(jwtService, RoleHotelAdmin)

	guestToken, err := jwtService.GenerateAccessToken("guest-1", "alex@example.com", []string{RoleGuest}, "", "")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+guestToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", errorCode(t, w.Body.Bytes()))

	adminToken, err := jwtService.GenerateAccessToken("admin-1", "manager@grandpalm.test", []string{RoleHotelAdmin}, "hotel-1", "")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_AnyOfSeveral(t *testing.T) {
	jwtService := newTestJWTService()
	router := newTestRouter(jwtService, RoleProvider, RoleHotelAdmin)

	token, err := jwtService.GenerateAccessToken("prov-user-1", "ops@citylaundry.test", []string{RoleProvider}, "", "prov-1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetUserContext_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, exists := GetUserContext(c)
	assert.False(t, exists)
}
