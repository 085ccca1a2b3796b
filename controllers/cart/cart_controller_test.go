package cartControllers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/robbedeclerk/webshop-eindwerk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.CartItem{}, &models.Order{}, &models.OrderItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	category := models.Category{Name: "Category for " + name}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{Name: name, Description: "desc", Price: price, CategoryID: category.ID}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, "Waffles", 4.50)

	_, err := AddToCart(db, user.ID, product.ID, 2)
	require.NoError(t, err)
	item, err := AddToCart(db, user.ID, product.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 5, item.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "repeat adds must not create a second row")
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, "Waffles", 4.50)

	for _, quantity := range []int{0, -1} {
		_, err := AddToCart(db, user.ID, product.ID, quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")

	_, err := AddToCart(db, user.ID, 999, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateCartItemOverwritesQuantity(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, "Waffles", 4.50)

	item, err := AddToCart(db, user.ID, product.ID, 2)
	require.NoError(t, err)

	updated, err := UpdateCartItem(db, user.ID, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
}

func TestUpdateCartItemRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, "Waffles", 4.50)

	item, err := AddToCart(db, user.ID, product.ID, 2)
	require.NoError(t, err)

	_, err = UpdateCartItem(db, user.ID, item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	var stored models.CartItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, 2, stored.Quantity, "stored quantity must stay unchanged")
}

func TestUpdateCartItemNotFound(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")

	_, err := UpdateCartItem(db, user.ID, 42, 3)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateCartItemOtherUsersRow(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	product := seedProduct(t, db, "Waffles", 4.50)

	item, err := AddToCart(db, alice.ID, product.ID, 2)
	require.NoError(t, err)

	_, err = UpdateCartItem(db, bob.ID, item.ID, 3)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRemoveCartItem(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, "Waffles", 4.50)

	item, err := AddToCart(db, user.ID, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, RemoveCartItem(db, user.ID, item.ID))

	// A second removal reports not found; callers treat it as already done.
	assert.ErrorIs(t, RemoveCartItem(db, user.ID, item.ID), gorm.ErrRecordNotFound)
}

func TestCartTotal(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")
	waffles := seedProduct(t, db, "Waffles", 10.00)
	syrup := seedProduct(t, db, "Syrup", 5.00)

	_, err := AddToCart(db, user.ID, waffles.ID, 2)
	require.NoError(t, err)
	_, err = AddToCart(db, user.ID, syrup.ID, 1)
	require.NoError(t, err)

	total, err := CartTotal(db, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 25.00, total, 1e-9)
}

func TestCartTotalEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "alice")

	total, err := CartTotal(db, user.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}
