package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rainadr/veripass/internal/helpers"
)

func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			helpers.RespondWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or malformed authorization header.")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			helpers.RespondWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token claims.")
			c.Abort()
			return
		}

		userIDStr, _ := claims["user_id"].(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid user id in token.")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// ActiveOrganization reads the optional X-Active-Organization header.
// Returns nil when absent or malformed; the gate treats nil as "no
// delegated access".
func ActiveOrganization(c *gin.Context) *uuid.UUID {
	raw := c.GetHeader("X-Active-Organization")
	if raw == "" {
		return nil
	}
	orgID, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &orgID
}
