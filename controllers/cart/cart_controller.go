package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/robbedeclerk/webshop-eindwerk/models"
	"gorm.io/gorm"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type AddToCartInput struct {
	Quantity int `json:"quantity"`
}

type UpdateCartInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

// -------- Core Logic --------

// AddToCart puts quantity of a product in the user's cart. A second add of the
// same product accumulates on the existing row instead of creating another.
func AddToCart(db *gorm.DB, userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		return nil, err
	}

	var item models.CartItem
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
		item.Product = &product
		return &item, nil
	}

	item.Quantity += quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	item.Product = &product
	return &item, nil
}

// UpdateCartItem overwrites the quantity of one of the user's cart rows. A
// non-positive quantity leaves the row untouched.
func UpdateCartItem(db *gorm.DB, userID, cartItemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var item models.CartItem
	if err := db.Where("id = ? AND user_id = ?", cartItemID, userID).First(&item).Error; err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem deletes one of the user's cart rows. A missing row reports
// gorm.ErrRecordNotFound; callers may treat that as already satisfied.
func RemoveCartItem(db *gorm.DB, userID, cartItemID uint) error {
	result := db.Where("id = ? AND user_id = ?", cartItemID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetCartItems lists the user's cart with products attached.
func GetCartItems(db *gorm.DB, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error
	return items, err
}

// CartTotal prices the cart at current product prices. Computed on demand,
// never stored.
func CartTotal(db *gorm.DB, userID uint) (float64, error) {
	items, err := GetCartItems(db, userID)
	if err != nil {
		return 0, err
	}
	var total float64
	for i := range items {
		total += items[i].LineTotal()
	}
	return total, nil
}

// -------- Handlers --------

// POST /add_to_cart/:product_id (GET redirects to the catalog)
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		input := AddToCartInput{Quantity: 1}
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
				return
			}
		}

		item, err := AddToCart(db, userID, uint(productID), input.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidQuantity):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart successfully!", "item": item})
	}
}

// GET /cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		items, err := GetCartItems(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		var total float64
		for i := range items {
			total += items[i].LineTotal()
		}

		c.JSON(http.StatusOK, gin.H{"items": items, "total_price": total})
	}
}

// POST /update_cart/:cart_item_id
func UpdateCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		cartItemID, err := strconv.ParseUint(c.Param("cart_item_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item id"})
			return
		}

		var input UpdateCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity."})
			return
		}

		item, err := UpdateCartItem(db, userID, uint(cartItemID), input.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidQuantity):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item updated successfully!", "item": item})
	}
}

// POST /remove_from_cart/:cart_item_id
func RemoveFromCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		cartItemID, err := strconv.ParseUint(c.Param("cart_item_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item id"})
			return
		}

		if err := RemoveCartItem(db, userID, uint(cartItemID)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart successfully!"})
	}
}
