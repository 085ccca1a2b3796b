package authControllers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/robbedeclerk/webshop-eindwerk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func registrationInput(username, email string) RegisterInput {
	return RegisterInput{
		Username:     username,
		Email:        email,
		Password:     "correct horse",
		Password2:    "correct horse",
		Country:      "Belgium",
		Street:       "Main Street",
		PostalNumber: "2000",
		HouseNumber:  "12",
	}
}

func TestRegisterUser(t *testing.T) {
	db := setupTestDB(t)

	user, err := RegisterUser(db, registrationInput("alice", "alice@example.com"))
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.False(t, user.AdminRights)
	assert.NotEqual(t, "correct horse", user.PasswordHash, "password must never be stored in clear text")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)

	_, err := RegisterUser(db, registrationInput("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = RegisterUser(db, registrationInput("alice", "other@example.com"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)

	_, err := RegisterUser(db, registrationInput("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = RegisterUser(db, registrationInput("bob", "alice@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterUserShortPassword(t *testing.T) {
	db := setupTestDB(t)

	input := registrationInput("alice", "alice@example.com")
	input.Password = "short"
	input.Password2 = "short"

	_, err := RegisterUser(db, input)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthenticateUser(t *testing.T) {
	db := setupTestDB(t)

	registered, err := RegisterUser(db, registrationInput("alice", "alice@example.com"))
	require.NoError(t, err)

	user, err := AuthenticateUser(db, "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthenticateUserWrongPassword(t *testing.T) {
	db := setupTestDB(t)

	_, err := RegisterUser(db, registrationInput("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = AuthenticateUser(db, "alice", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUserUnknownUsername(t *testing.T) {
	db := setupTestDB(t)

	// Unknown user and wrong password must be indistinguishable.
	_, err := AuthenticateUser(db, "nobody", "whatever password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)

	user, err := RegisterUser(db, registrationInput("alice", "alice@example.com"))
	require.NoError(t, err)

	require.NoError(t, ChangePassword(db, user.ID, "correct horse", "battery staple"))

	_, err = AuthenticateUser(db, "alice", "battery staple")
	assert.NoError(t, err)
	_, err = AuthenticateUser(db, "alice", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	db := setupTestDB(t)

	user, err := RegisterUser(db, registrationInput("alice", "alice@example.com"))
	require.NoError(t, err)

	err = ChangePassword(db, user.ID, "not my password", "battery staple")
	assert.ErrorIs(t, err, ErrWrongPassword)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash, "stored hash must stay unchanged")
}

func TestChangePasswordTooShort(t *testing.T) {
	db := setupTestDB(t)

	user, err := RegisterUser(db, registrationInput("alice", "alice@example.com"))
	require.NoError(t, err)

	err = ChangePassword(db, user.ID, "correct horse", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = AuthenticateUser(db, "alice", "correct horse")
	assert.NoError(t, err)
}

func TestIssueSessionTokenLifetime(t *testing.T) {
	token, lifetime, err := IssueSessionToken("secret", 1, false)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "24h0m0s", lifetime.String())

	_, remembered, err := IssueSessionToken("secret", 1, true)
	require.NoError(t, err)
	assert.Equal(t, "720h0m0s", remembered.String())
}
