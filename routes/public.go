package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/robbedeclerk/webshop-eindwerk/config"
	authControllers "github.com/robbedeclerk/webshop-eindwerk/controllers/auth"
	catalogControllers "github.com/robbedeclerk/webshop-eindwerk/controllers/catalog"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers the storefront and auth endpoints.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	// ──────────────── Storefront ────────────────
	r.GET("/", catalogControllers.Index(db))
	r.GET("/index", catalogControllers.Index(db))
	r.GET("/product/:id", catalogControllers.GetProduct(db))
	r.GET("/popular_items", catalogControllers.GetPopularItems(db))
	r.GET("/new_items", catalogControllers.GetNewItems(db))

	// A GET on add_to_cart just sends the visitor back to the catalog.
	r.GET("/add_to_cart/:product_id", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})

	// ──────────────── Auth ────────────────
	r.POST("/register", authControllers.Register(db))
	r.POST("/login", authControllers.Login(db, cfg.SecretKey))
	r.GET("/logout", authControllers.Logout())
}
