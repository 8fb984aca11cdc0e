package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"photostack/internal/http-api/dto"
)

const identityKey = "identity"

// AuthMiddleware validates the Bearer token and stores the caller's
// identity in the request context. Requests without a valid token are
// rejected with 401.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := identityFromHeader(c, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": err.Error(),
			})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a token is present but lets
// anonymous requests through. Invalid tokens are still rejected.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		identity, err := identityFromHeader(c, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": err.Error(),
			})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

func identityFromHeader(c *gin.Context, jwtSecret string) (dto.Identity, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return dto.Identity{}, fmt.Errorf("authorization header required")
	}

	tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return dto.Identity{}, fmt.Errorf("authorization header must be a bearer token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return dto.Identity{}, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return dto.Identity{}, fmt.Errorf("invalid token claims")
	}

	// "oid" is preferred when the provider issues one, "sub" otherwise
	subject, _ := claims["oid"].(string)
	if subject == "" {
		subject, _ = claims["sub"].(string)
	}
	if subject == "" {
		return dto.Identity{}, fmt.Errorf("token missing subject claim")
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return dto.Identity{
		SubjectID:   subject,
		Email:       email,
		DisplayName: name,
		Role:        role,
	}, nil
}

// CurrentIdentity extracts the identity set by AuthMiddleware. The second
// return is false on routes that allow anonymous access.
func CurrentIdentity(c *gin.Context) (dto.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return dto.Identity{}, false
	}
	identity, ok := value.(dto.Identity)
	return identity, ok
}
