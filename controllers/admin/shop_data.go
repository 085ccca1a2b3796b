package adminControllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/robbedeclerk/webshop-eindwerk/middleware"
	"github.com/robbedeclerk/webshop-eindwerk/models"
	"gorm.io/gorm"
)

var (
	ErrCategoryExists   = errors.New("category name already exists")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
	ErrInvalidImageType = errors.New("image must be png, jpg, jpeg or gif")
	ErrCategoryNotFound = errors.New("category does not exist")
)

// allowedImageExtensions mirrors the upload form's accept list.
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	CategoryID    uint
	ImageFilename string
}

// -------- Core Logic --------

// CreateCategory adds a category with a unique name.
func CreateCategory(db *gorm.DB, name string) (*models.Category, error) {
	var count int64
	if err := db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryExists
	}

	category := models.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateProduct adds a product under an existing category. The image filename
// is already resolved by the upload handler; empty means the placeholder.
func CreateProduct(db *gorm.DB, input ProductInput) (*models.Product, error) {
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	var count int64
	if err := db.Model(&models.Category{}).Where("id = ?", input.CategoryID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrCategoryNotFound
	}

	product := models.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		CategoryID:    input.CategoryID,
		ImageFilename: input.ImageFilename,
	}
	if err := db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product and the cart rows that reference it, in one
// transaction. Order items are historical snapshots and stay.
func DeleteProduct(db *gorm.DB, productID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

// DeleteCategory removes a category and everything under it: its products and
// the cart rows referencing those products. The cascade is explicit here
// rather than left to the database.
func DeleteCategory(db *gorm.DB, categoryID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
			return err
		}

		var productIDs []uint
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", categoryID).
			Pluck("id", &productIDs).Error; err != nil {
			return err
		}

		if len(productIDs) > 0 {
			if err := tx.Where("product_id IN ?", productIDs).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", productIDs).Delete(&models.Product{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&category).Error
	})
}

// StoreProductImage validates the extension and reserves a fresh uuid filename
// under uploadDir for the upload.
func StoreProductImage(uploadDir, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedImageExtensions[ext] {
		return "", ErrInvalidImageType
	}
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", err
	}
	return uuid.NewString() + ext, nil
}

// -------- Handlers --------

func requireAdmin(c *gin.Context, db *gorm.DB) *models.User {
	user, err := middleware.CurrentUser(c, db)
	if err != nil || !user.AdminRights {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin rights required"})
		return nil
	}
	return user
}

// GET /manage_shop_data — categories and products backing the admin form.
func ManageShopData(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireAdmin(c, db) == nil {
			return
		}

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

// POST /add_category
func AddCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireAdmin(c, db) == nil {
			return
		}

		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		category, err := CreateCategory(db, name)
		if err != nil {
			if errors.Is(err, ErrCategoryExists) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Category added successfully!", "category": category})
	}
}

// POST /add_product — multipart form with an optional image upload.
func AddProduct(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireAdmin(c, db) == nil {
			return
		}

		name := strings.TrimSpace(c.PostForm("name"))
		description := strings.TrimSpace(c.PostForm("description"))
		priceStr := c.PostForm("price")
		categoryIDStr := c.PostForm("category_id")
		if name == "" || description == "" || priceStr == "" || categoryIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, description, price and category_id are required"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}

		// Optional image: no file means the default placeholder is used.
		var imageFilename string
		if file, err := c.FormFile("image"); err == nil {
			imageFilename, err = StoreProductImage(uploadDir, file.Filename)
			if err != nil {
				if errors.Is(err, ErrInvalidImageType) {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
				return
			}
			if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, imageFilename)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
				return
			}
		}

		product, err := CreateProduct(db, ProductInput{
			Name:          name,
			Description:   description,
			Price:         price,
			CategoryID:    uint(categoryID),
			ImageFilename: imageFilename,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrCategoryNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully!", "product": product})
	}
}

// POST /delete_category/:id
func DeleteCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireAdmin(c, db) == nil {
			return
		}

		categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}

		if err := DeleteCategory(db, uint(categoryID)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully!"})
	}
}

// POST /delete_product/:id
func DeleteProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if requireAdmin(c, db) == nil {
			return
		}

		productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		if err := DeleteProduct(db, uint(productID)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully!"})
	}
}
