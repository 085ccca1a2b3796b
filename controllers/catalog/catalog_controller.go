package catalogControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/robbedeclerk/webshop-eindwerk/models"
	"gorm.io/gorm"
)

// PopularLimit caps the storefront highlight lists.
const PopularLimit = 4

// PopularProduct is a product annotated with how often it was ordered.
type PopularProduct struct {
	models.Product
	TotalSold int `json:"total_sold"`
}

// PopularProducts returns the top products by total ordered quantity, category
// attached. Products that were never ordered do not make the list unless fewer
// than PopularLimit products have sales at all.
func PopularProducts(db *gorm.DB) ([]PopularProduct, error) {
	var rows []PopularProduct
	err := db.Model(&models.Product{}).
		Select("products.*, COALESCE(SUM(order_items.quantity), 0) AS total_sold").
		Joins("LEFT JOIN order_items ON order_items.product_id = products.id").
		Group("products.id").
		Order("total_sold DESC, products.id ASC").
		Limit(PopularLimit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if err := attachCategories(db, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// NewestProducts returns the most recently added products.
func NewestProducts(db *gorm.DB) ([]models.Product, error) {
	var products []models.Product
	err := db.Preload("Category").
		Order("created_at DESC, id DESC").
		Limit(PopularLimit).
		Find(&products).Error
	return products, err
}

func attachCategories(db *gorm.DB, rows []PopularProduct) error {
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.CategoryID)
	}
	if len(ids) == 0 {
		return nil
	}

	var categories []models.Category
	if err := db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return err
	}
	byID := make(map[uint]models.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}
	for i := range rows {
		if cat, ok := byID[rows[i].CategoryID]; ok {
			cat.Products = nil
			rows[i].Category = &cat
		}
	}
	return nil
}

// -------- Handlers --------

// GET / and GET /index
func Index(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		var products []models.Product
		if err := db.Preload("Category").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories, "products": products})
	}
}

// GET /product/:id
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Category").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /popular_items
func GetPopularItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := PopularProducts(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch popular items"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// GET /new_items
func GetNewItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := NewestProducts(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch new items"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
