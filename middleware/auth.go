package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/robbedeclerk/webshop-eindwerk/models"
	"gorm.io/gorm"
)

// SessionCookie carries the signed session token between requests.
const SessionCookie = "session"

// Authenticate validates the session token (cookie first, Authorization
// header as fallback) and stores the user id in the request context. It does
// NOT check admin rights: handlers that need elevated access perform their own
// capability check on the loaded principal.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookie)
		if err != nil || tokenString == "" {
			tokenString = c.GetHeader("Authorization")
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session claims"})
			c.Abort()
			return
		}
		userID, ok := claims["user_id"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session claims"})
			c.Abort()
			return
		}

		c.Set("user_id", uint(userID))
		c.Next()
	}
}

// CurrentUser loads the authenticated principal for the request.
func CurrentUser(c *gin.Context, db *gorm.DB) (*models.User, error) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil, errors.New("no authenticated user")
	}
	userID, ok := userIDVal.(uint)
	if !ok {
		return nil, errors.New("no authenticated user")
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
