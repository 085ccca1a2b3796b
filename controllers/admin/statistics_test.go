package adminControllers

import (
	"testing"

	"github.com/robbedeclerk/webshop-eindwerk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesStatistics(t *testing.T) {
	db := setupTestDB(t)
	category, err := CreateCategory(db, "Snacks")
	require.NoError(t, err)

	waffles, err := CreateProduct(db, ProductInput{
		Name: "Waffles", Description: "Belgian", Price: 4.50, CategoryID: category.ID,
	})
	require.NoError(t, err)
	cola, err := CreateProduct(db, ProductInput{
		Name: "Cola", Description: "Fizzy", Price: 2.00, CategoryID: category.ID,
	})
	require.NoError(t, err)

	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	// Waffles sold in two orders, cola never.
	for _, quantity := range []int{2, 3} {
		order := models.Order{
			UserID:     user.ID,
			TotalPrice: 4.50 * float64(quantity),
			Items: []models.OrderItem{
				{ProductID: waffles.ID, ProductName: waffles.Name, UnitPrice: 4.50, Quantity: quantity},
			},
		}
		require.NoError(t, db.Create(&order).Error)
	}

	rows, err := SalesStatistics(db)
	require.NoError(t, err)
	require.Len(t, rows, 2, "every product is listed, sold or not")

	byID := make(map[uint]ProductSales, len(rows))
	for _, r := range rows {
		byID[r.ProductID] = r
	}
	assert.Equal(t, 5, byID[waffles.ID].TotalSold)
	assert.Equal(t, 0, byID[cola.ID].TotalSold)

	// Sorted by quantity sold, best seller first.
	assert.Equal(t, waffles.ID, rows[0].ProductID)
}

func TestSalesStatisticsEmptyShop(t *testing.T) {
	db := setupTestDB(t)

	rows, err := SalesStatistics(db)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
