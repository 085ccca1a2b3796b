package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robbedeclerk/webshop-eindwerk/middleware"
	"github.com/robbedeclerk/webshop-eindwerk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEmptyCart = errors.New("cart is empty")

// AddressOverride lets checkout ship somewhere other than the profile address.
// Every field is independent: an empty field keeps the user's stored default.
type AddressOverride struct {
	Country      string `json:"alt_country"`
	Street       string `json:"alt_street"`
	PostalNumber string `json:"alt_postal_number"`
	HouseNumber  string `json:"alt_house_number"`
	BusNumber    string `json:"alt_bus_number"`
}

func resolveAddress(stored models.Address, override AddressOverride) models.Address {
	resolved := stored
	if override.Country != "" {
		resolved.Country = override.Country
	}
	if override.Street != "" {
		resolved.Street = override.Street
	}
	if override.PostalNumber != "" {
		resolved.PostalNumber = override.PostalNumber
	}
	if override.HouseNumber != "" {
		resolved.HouseNumber = override.HouseNumber
	}
	if override.BusNumber != "" {
		resolved.BusNumber = override.BusNumber
	}
	return resolved
}

// -------- Core Logic --------

// PlaceOrder converts the user's cart into an order in a single transaction:
// one Order row with the total and address snapshot, one OrderItem per cart
// line with name and unit price copied at this moment, and the cart emptied.
// Any failure rolls everything back and leaves the cart untouched.
//
// The cart rows are read under a row lock so two concurrent checkouts of the
// same cart serialize: the second one finds an empty cart and gets ErrEmptyCart
// instead of a duplicate order.
func PlaceOrder(db *gorm.DB, userID uint, override AddressOverride) (*models.Order, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		itemQuery := tx
		if tx.Dialector.Name() == "postgres" {
			// SQLite serializes writers on its own; the explicit lock is for
			// Postgres, where concurrent transactions would otherwise both
			// read the same cart rows.
			itemQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var cartItems []models.CartItem
		if err := itemQuery.Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		var total float64
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}

			total += product.Price * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    item.Quantity,
			})
		}

		order = models.Order{
			UserID:      userID,
			Items:       orderItems,
			TotalPrice:  total,
			Address:     resolveAddress(user.Address, override),
			Complete:    false,
			DateOrdered: time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	broadcastNewOrder(order)
	return &order, nil
}

// -------- Handlers --------

// GET /checkout — preview items and total without committing anything.
func CheckoutPreview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var items []models.CartItem
		if err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		var total float64
		for i := range items {
			total += items[i].LineTotal()
		}

		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":            items,
			"total_price":      total,
			"shipping_address": user.Address,
		})
	}
}

// POST /place_order
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var override AddressOverride
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&override); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
				return
			}
		}

		order, err := PlaceOrder(db, userID, override)
		if err != nil {
			if errors.Is(err, ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ErrEmptyCart.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
	}
}
