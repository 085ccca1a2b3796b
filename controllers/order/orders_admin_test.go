package orderControllers

import (
	"fmt"
	"testing"
	"time"

	"github.com/robbedeclerk/webshop-eindwerk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB, userID uint, complete bool, age time.Duration) models.Order {
	t.Helper()
	order := models.Order{
		UserID:      userID,
		TotalPrice:  10.00,
		Complete:    complete,
		DateOrdered: time.Now().Add(-age),
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestToggleOrderComplete(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")
	order := seedOrder(t, db, user.ID, false, 0)

	toggled, err := ToggleOrderComplete(db, order.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Complete)

	toggled, err = ToggleOrderComplete(db, order.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Complete)
}

func TestToggleOrderCompleteNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := ToggleOrderComplete(db, 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListOrdersStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")
	seedOrder(t, db, user.ID, true, time.Hour)
	seedOrder(t, db, user.ID, false, 2*time.Hour)
	seedOrder(t, db, user.ID, false, 3*time.Hour)

	page, err := ListOrders(db, "not_complete", "", 1)
	require.NoError(t, err)
	require.Len(t, page.Orders, 2)
	for _, order := range page.Orders {
		assert.False(t, order.Complete)
	}

	page, err = ListOrders(db, "complete", "", 1)
	require.NoError(t, err)
	assert.Len(t, page.Orders, 1)

	page, err = ListOrders(db, "all", "", 1)
	require.NoError(t, err)
	assert.Len(t, page.Orders, 3)
}

func TestListOrdersInvalidStatus(t *testing.T) {
	db := setupTestDB(t)

	_, err := ListOrders(db, "shipped", "", 1)
	assert.ErrorIs(t, err, ErrInvalidStatusFilter)
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")
	older := seedOrder(t, db, user.ID, false, 2*time.Hour)
	newer := seedOrder(t, db, user.ID, false, time.Hour)

	page, err := ListOrders(db, "all", "", 1)
	require.NoError(t, err)
	require.Len(t, page.Orders, 2)
	assert.Equal(t, newer.ID, page.Orders[0].ID)
	assert.Equal(t, older.ID, page.Orders[1].ID)
}

func TestListOrdersSearchByID(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")
	seedOrder(t, db, user.ID, false, time.Hour)
	wanted := seedOrder(t, db, user.ID, false, 2*time.Hour)

	page, err := ListOrders(db, "all", fmt.Sprint(wanted.ID), 1)
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, wanted.ID, page.Orders[0].ID)
}

func TestListOrdersRejectsNonNumericSearch(t *testing.T) {
	db := setupTestDB(t)

	_, err := ListOrders(db, "all", "abc", 1)
	assert.ErrorIs(t, err, ErrInvalidSearch)
}

func TestListOrdersPagination(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")
	for i := 0; i < OrdersPageSize+1; i++ {
		seedOrder(t, db, user.ID, false, time.Duration(i)*time.Minute)
	}

	first, err := ListOrders(db, "all", "", 1)
	require.NoError(t, err)
	assert.Len(t, first.Orders, OrdersPageSize)
	assert.Equal(t, 2, first.TotalPages)
	assert.EqualValues(t, OrdersPageSize+1, first.TotalCount)

	second, err := ListOrders(db, "all", "", 2)
	require.NoError(t, err)
	assert.Len(t, second.Orders, 1)
}
