package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/robbedeclerk/webshop-eindwerk/config"
	authControllers "github.com/robbedeclerk/webshop-eindwerk/controllers/auth"
	cartControllers "github.com/robbedeclerk/webshop-eindwerk/controllers/cart"
	orderControllers "github.com/robbedeclerk/webshop-eindwerk/controllers/order"
	userControllers "github.com/robbedeclerk/webshop-eindwerk/controllers/user"
	"github.com/robbedeclerk/webshop-eindwerk/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers everything that needs a logged-in session.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	userGroup := r.Group("/")
	userGroup.Use(middleware.Authenticate(cfg.SecretKey))
	{
		// ──────────────── Profile ────────────────
		userGroup.GET("/profile", userControllers.GetProfile(db))
		userGroup.POST("/edit_profile", userControllers.EditProfile(db))
		userGroup.POST("/reset_password", authControllers.ResetPassword(db))

		// ──────────────── Shopping Cart ────────────────
		userGroup.GET("/cart", cartControllers.GetCartHandler(db))
		userGroup.POST("/add_to_cart/:product_id", cartControllers.AddToCartHandler(db))
		userGroup.POST("/update_cart/:cart_item_id", cartControllers.UpdateCartHandler(db))
		userGroup.POST("/remove_from_cart/:cart_item_id", cartControllers.RemoveFromCartHandler(db))

		// ──────────────── Checkout ────────────────
		userGroup.GET("/checkout", orderControllers.CheckoutPreview(db))
		userGroup.POST("/place_order", orderControllers.PlaceOrderHandler(db))
	}
}
