package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/middleware"
	"storefront/models"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, userID, role string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"role":   role,
		"exp":    time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := append([]gin.HandlerFunc{middleware.Auth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetString("userId"),
			"role":   c.GetString("role"),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuth_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := protectedRouter()

	token := signTestToken(t, "64f000000000000000000001", models.RoleCustomer, time.Hour)
	rec := request(r, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "64f000000000000000000001")
}

func TestAuth_MissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	rec := request(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_NotBearer(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	token := signTestToken(t, "64f000000000000000000001", models.RoleCustomer, time.Hour)
	rec := request(protectedRouter(), token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	token := signTestToken(t, "64f000000000000000000001", models.RoleCustomer, -time.Hour)
	rec := request(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-different-secret")
	token := signTestToken(t, "64f000000000000000000001", models.RoleCustomer, time.Hour)
	rec := request(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	r := protectedRouter(middleware.AdminOnly())

	customer := signTestToken(t, "64f000000000000000000001", models.RoleCustomer, time.Hour)
	rec := request(r, "Bearer "+customer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := signTestToken(t, "64f000000000000000000002", models.RoleAdmin, time.Hour)
	rec = request(r, "Bearer "+admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}
