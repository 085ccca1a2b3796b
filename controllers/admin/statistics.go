package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/robbedeclerk/webshop-eindwerk/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ProductSales is one row of the sales aggregation: total quantity ordered
// across all orders, zero when the product was never ordered.
type ProductSales struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	TotalSold int     `json:"total_sold"`
}

// SalesStatistics lists every product with its all-time ordered quantity.
func SalesStatistics(db *gorm.DB) ([]ProductSales, error) {
	var rows []ProductSales
	err := db.Model(&models.Product{}).
		Select("products.id AS product_id, products.name, products.price, COALESCE(SUM(order_items.quantity), 0) AS total_sold").
		Joins("LEFT JOIN order_items ON order_items.product_id = products.id").
		Group("products.id, products.name, products.price").
		Order("total_sold DESC, products.id ASC").
		Find(&rows).Error
	return rows, err
}

// GET /statistics
func GetStatistics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireAdmin(c, db) == nil {
			return
		}

		rows, err := SalesStatistics(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// GET /statistics/export — the same aggregation as an Excel download.
func ExportStatisticsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireAdmin(c, db) == nil {
			return
		}

		rows, err := SalesStatistics(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Sales")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range []string{"ProductID", "Name", "Price", "TotalSold"} {
			headerRow.AddCell().SetValue(h)
		}
		for _, r := range rows {
			row := sheet.AddRow()
			row.AddCell().SetValue(r.ProductID)
			row.AddCell().SetValue(r.Name)
			row.AddCell().SetValue(r.Price)
			row.AddCell().SetValue(r.TotalSold)
		}

		c.Header("Content-Disposition", "attachment; filename=sales_statistics.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
