package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/robbedeclerk/webshop-eindwerk/middleware"
	"github.com/robbedeclerk/webshop-eindwerk/models"
	"gorm.io/gorm"
)

// OrdersPageSize is the fixed page size of the admin order listing.
const OrdersPageSize = 10

var (
	ErrInvalidStatusFilter = errors.New("status must be all, complete or not_complete")
	ErrInvalidSearch       = errors.New("search must be a numeric order id")
)

// OrderPage is one page of the admin order listing.
type OrderPage struct {
	Orders     []models.Order `json:"orders"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	TotalCount int64          `json:"total_count"`
}

// -------- Core Logic --------

// ListOrders filters by completion status, optionally matches a numeric order
// id exactly, and pages the result newest-first.
func ListOrders(db *gorm.DB, status, search string, page int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}

	query := db.Model(&models.Order{})
	switch status {
	case "", "all":
	case "complete":
		query = query.Where("complete = ?", true)
	case "not_complete":
		query = query.Where("complete = ?", false)
	default:
		return nil, ErrInvalidStatusFilter
	}

	if search != "" {
		orderID, err := strconv.ParseUint(search, 10, 64)
		if err != nil {
			return nil, ErrInvalidSearch
		}
		query = query.Where("id = ?", orderID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := query.
		Preload("Items").
		Preload("User").
		Order("date_ordered DESC").
		Offset((page - 1) * OrdersPageSize).
		Limit(OrdersPageSize).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	totalPages := int((count + OrdersPageSize - 1) / OrdersPageSize)
	return &OrderPage{Orders: orders, Page: page, TotalPages: totalPages, TotalCount: count}, nil
}

// ToggleOrderComplete flips the completion flag, the only mutable part of an
// order.
func ToggleOrderComplete(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&order).Update("complete", !order.Complete).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// GET /orders?status=all|complete|not_complete&search=<id>&page=<n>
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := middleware.CurrentUser(c, db)
		if err != nil || !admin.AdminRights {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin rights required"})
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		result, err := ListOrders(db, c.DefaultQuery("status", "all"), c.Query("search"), page)
		if err != nil {
			if errors.Is(err, ErrInvalidStatusFilter) || errors.Is(err, ErrInvalidSearch) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// GET /order/:id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := middleware.CurrentUser(c, db)
		if err != nil || !admin.AdminRights {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin rights required"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").Preload("User").First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// POST /toggle_order_status/:id
func ToggleOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := middleware.CurrentUser(c, db)
		if err != nil || !admin.AdminRights {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin rights required"})
			return
		}

		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}

		order, err := ToggleOrderComplete(db, uint(orderID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
