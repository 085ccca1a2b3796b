package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/robbedeclerk/webshop-eindwerk/middleware"
	"github.com/robbedeclerk/webshop-eindwerk/models"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already in use")

type EditProfileInput struct {
	Email        string `json:"email" binding:"required,email"`
	Country      string `json:"country" binding:"required"`
	Street       string `json:"street" binding:"required"`
	PostalNumber string `json:"postal_number" binding:"required"`
	HouseNumber  string `json:"house_number" binding:"required"`
	BusNumber    string `json:"bus_number"`
}

// UpdateProfile applies a profile edit. The email must not belong to another
// user; the username never changes.
func UpdateProfile(db *gorm.DB, userID uint, input EditProfileInput) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("email = ? AND id <> ?", input.Email, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	updates := map[string]interface{}{
		"email":         input.Email,
		"country":       input.Country,
		"street":        input.Street,
		"postal_number": input.PostalNumber,
		"house_number":  input.HouseNumber,
		"bus_number":    input.BusNumber,
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GET /profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// POST /edit_profile
func EditProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}

		var input EditProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updated, err := UpdateProfile(db, user.ID, input)
		if err != nil {
			if errors.Is(err, ErrEmailTaken) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Your changes have been saved.", "user": updated})
	}
}
