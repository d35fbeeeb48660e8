package services

import (
	"testing"

	"flatly-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser_HashesPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	created, err := svc.Create(models.UserDTO{
		FirstName: "Anna",
		LastName:  "Smith",
		Email:     "anna@example.com",
		Password:  "s3cret",
		Roles:     "USER",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Empty(t, created.Password)

	var stored models.User
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := NewUserService(setupTestDB(t))
	dto := models.UserDTO{FirstName: "Anna", Email: "anna@example.com"}

	_, err := svc.Create(dto)
	require.NoError(t, err)
	_, err = svc.Create(dto)
	assert.Error(t, err)
}

func TestGetAndListUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	anna := createUser(t, db, "Anna", "Smith")
	createUser(t, db, "Ben", "Jones")

	got, err := svc.GetByID(anna.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", got.Email)

	_, err = svc.GetByID(999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	all, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
