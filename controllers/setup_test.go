package controllers

import (
	"testing"

	"flatly-backend/models"
	"flatly-backend/services"
	"flatly-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
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
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Flat{}, &models.Booking{}))
	return db
}

type testControllers struct {
	db        *gorm.DB
	flats     *FlatController
	bookings  *BookingController
	dashboard *DashboardController
	users     *UserController
	health    *HealthController
}

func newTestControllers(t *testing.T) testControllers {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	blobs, err := storage.NewLocalStore(storage.LocalConfig{Dir: t.TempDir(), BaseURL: "http://localhost:8080"})
	require.NoError(t, err)
	return testControllers{
		db:        db,
		flats:     NewFlatController(services.NewFlatService(db, blobs)),
		bookings:  NewBookingController(services.NewBookingService(db)),
		dashboard: NewDashboardController(services.NewDashboardService(db)),
		users:     NewUserController(services.NewUserService(db)),
		health:    NewHealthController(db),
	}
}
