package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"flatly-backend/models"
	"flatly-backend/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Flat{}, &models.Booking{}))
	return db
}

// fakeBlobs is an in-memory BlobStore. Uploads of names listed in failUpload
// and every delete while deleteErr is set fail.
type fakeBlobs struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failUpload map[string]bool
	deleteErr  error
	deleted    []string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}, failUpload: map[string]bool{}}
}

func (f *fakeBlobs) Upload(_ context.Context, data []byte, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload[name] {
		return "", errors.New("upload rejected: " + name)
	}
	url := "https://blobs.test/" + storage.NewObjectKey(name)
	f.objects[url] = data
	return url, nil
}

func (f *fakeBlobs) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, url)
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeBlobs) has(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[url]
	return ok
}

func createFlat(t *testing.T, db *gorm.DB, name, location string, price float64, room int, distance *float64) models.Flat {
	t.Helper()
	flat := models.Flat{
		Name:       name,
		Location:   location,
		Price:      price,
		RoomNumber: room,
		Distance:   distance,
		Amenities:  datatypes.JSONSlice[string]{},
		Images:     datatypes.JSONSlice[string]{},
	}
	require.NoError(t, db.Create(&flat).Error)
	return flat
}

func createUser(t *testing.T, db *gorm.DB, first, last string) models.User {
	t.Helper()
	user := models.User{
		FirstName: first,
		LastName:  last,
		Email:     strings.ToLower(first) + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createBooking(t *testing.T, db *gorm.DB, flatID uint, userID *uint, email string, status models.BookingStatus) models.Booking {
	t.Helper()
	start, err := models.ParseDate("2025-06-01")
	require.NoError(t, err)
	end, err := models.ParseDate("2025-06-10")
	require.NoError(t, err)
	booking := models.Booking{
		FlatID:    flatID,
		UserID:    userID,
		UserEmail: email,
		StartDate: start,
		EndDate:   end,
		Status:    status,
		System:    "test",
		CreatedAt: models.Today(),
	}
	require.NoError(t, db.Omit("Flat", "User").Create(&booking).Error)
	return booking
}

func ptr[T any](v T) *T {
	return &v
}
