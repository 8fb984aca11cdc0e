package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"photostack/internal/http-api/dto"
)

const testSecret = "test-secret-key-that-is-long-enough"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func setupAuthRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"subject": identity.SubjectID, "role": identity.Role})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("MissingHeader", func(t *testing.T) {
		r := setupAuthRouter(AuthMiddleware(testSecret))

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		r := setupAuthRouter(AuthMiddleware(testSecret))

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		r := setupAuthRouter(AuthMiddleware(testSecret))
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":   "sub-123",
			"email": "viewer@example.com",
			"name":  "Viewer",
			"role":  "consumer",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "sub-123")
		assert.Contains(t, w.Body.String(), "consumer")
	})

	t.Run("OidClaimPreferredOverSub", func(t *testing.T) {
		r := setupAuthRouter(AuthMiddleware(testSecret))
		token := signToken(t, testSecret, jwt.MapClaims{
			"oid": "object-id-1",
			"sub": "sub-123",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "object-id-1")
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		r := setupAuthRouter(AuthMiddleware(testSecret))
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "sub-123",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		r := setupAuthRouter(AuthMiddleware(testSecret))
		token := signToken(t, "a-completely-different-secret-value", jwt.MapClaims{
			"sub": "sub-123",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("TokenWithoutSubject", func(t *testing.T) {
		r := setupAuthRouter(AuthMiddleware(testSecret))
		token := signToken(t, testSecret, jwt.MapClaims{
			"email": "viewer@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("AnonymousAllowedThrough", func(t *testing.T) {
		r := setupAuthRouter(OptionalAuth(testSecret))

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "anonymous")
	})

	t.Run("InvalidTokenStillRejected", func(t *testing.T) {
		r := setupAuthRouter(OptionalAuth(testSecret))

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCurrentIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := CurrentIdentity(c)
	assert.False(t, ok)

	c.Set("identity", dto.Identity{SubjectID: "sub-1"})
	identity, ok := CurrentIdentity(c)
	assert.True(t, ok)
	assert.Equal(t, "sub-1", identity.SubjectID)
}
