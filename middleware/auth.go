package middleware

import (
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"storefront/apperr"
	"storefront/httpx"
	"storefront/models"
)

// Auth validates the bearer token and attaches the caller's identity to the
// request context under "userId" and "role".
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			httpx.Abort(c, apperr.Unauthorized("Authorization token required"))
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			httpx.Abort(c, apperr.Unauthorized("Authorization header must be 'Bearer <token>'"))
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			httpx.Abort(c, apperr.Unauthorized("Invalid or expired token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httpx.Abort(c, apperr.Unauthorized("Invalid or expired token"))
			return
		}

		userID, _ := claims["userId"].(string)
		role, _ := claims["role"].(string)
		if userID == "" {
			httpx.Abort(c, apperr.Unauthorized("Invalid or expired token"))
			return
		}

		c.Set("userId", userID)
		c.Set("role", role)
		c.Next()
	}
}

// AdminOnly gates a route to admin callers. It runs after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != models.RoleAdmin {
			httpx.Abort(c, apperr.Forbidden("Access denied: admin only"))
			return
		}
		c.Next()
	}
}
