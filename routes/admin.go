package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/robbedeclerk/webshop-eindwerk/config"
	adminControllers "github.com/robbedeclerk/webshop-eindwerk/controllers/admin"
	orderControllers "github.com/robbedeclerk/webshop-eindwerk/controllers/order"
	"github.com/robbedeclerk/webshop-eindwerk/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the management surface. The middleware only
// authenticates; every handler checks the principal's admin rights itself.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	adminGroup := r.Group("/")
	adminGroup.Use(middleware.Authenticate(cfg.SecretKey))
	{
		// ─────────── Category & Product Management ───────────
		adminGroup.GET("/manage_shop_data", adminControllers.ManageShopData(db))
		adminGroup.POST("/add_category", adminControllers.AddCategory(db))
		adminGroup.POST("/add_product", adminControllers.AddProduct(db, cfg.UploadDir))
		adminGroup.POST("/delete_category/:id", adminControllers.DeleteCategoryHandler(db))
		adminGroup.POST("/delete_product/:id", adminControllers.DeleteProductHandler(db))

		// ─────────── Orders ───────────
		adminGroup.GET("/orders", orderControllers.ListOrdersHandler(db))
		adminGroup.GET("/order/:id", orderControllers.GetOrderHandler(db))
		adminGroup.POST("/toggle_order_status/:id", orderControllers.ToggleOrderStatusHandler(db))
		adminGroup.GET("/orders/ws", orderControllers.OrderWebSocketHandler(db))

		// ─────────── Statistics ───────────
		adminGroup.GET("/statistics", adminControllers.GetStatistics(db))
		adminGroup.GET("/statistics/export", adminControllers.ExportStatisticsToExcel(db))
	}
}
