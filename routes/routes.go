package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/robbedeclerk/webshop-eindwerk/config"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public shop,
// authenticated user, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	// 1. Public shop + auth routes (no middleware)
	SetupPublicRoutes(r, db, cfg)

	// 2. User routes (session-protected)
	SetupUserRoutes(r, db, cfg)

	// 3. Admin routes (session-protected; handlers check admin rights)
	SetupAdminRoutes(r, db, cfg)
}
