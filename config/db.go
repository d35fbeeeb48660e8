package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"flatly-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// resolveDSN builds a driver DSN. cfg.URL wins over the discrete fields.
func resolveDSN(cfg DBConfig) (string, error) {
	switch cfg.Driver {
	case "postgres":
		if cfg.URL != "" {
			return cfg.URL, nil
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port,
		), nil
	case "mysql", "":
		if cfg.URL != "" {
			if strings.HasPrefix(cfg.URL, "mysql://") {
				return mysqlDSNFromURL(cfg.URL)
			}
			return cfg.URL, nil
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name,
		), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func NewGormLogger(level string) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

// ConnectDatabase opens the configured database, sizes the pool and runs
// the migrations.
func ConnectDatabase(cfg DBConfig) (*gorm.DB, error) {
	dsn, err := resolveDSN(cfg)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	if cfg.Driver == "postgres" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = mysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: NewGormLogger(cfg.LogLevel)})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the tables parent first: users and flats before bookings.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Flat{},
		&models.Booking{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

func mustParseDate(value string) datatypes.Date {
	d, err := models.ParseDate(value)
	if err != nil {
		log.Fatalf("Error parsing date for seeding (%s): %v", value, err)
	}
	return d
}

func ptr[T any](v T) *T {
	return &v
}

// SeedDatabase inserts demo users, flats and bookings into empty tables.
// Tables that already hold rows are left alone.
func SeedDatabase(db *gorm.DB) error {
	// ---------------- Users ----------------
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		users := []models.User{
			{FirstName: "Admin", LastName: "User", Email: "admin@flatly.local", Password: string(hash), Roles: "ADMIN"},
			{FirstName: "Anna", LastName: "Smith", Email: "anna@example.com", Password: string(hash), Roles: "USER"},
			{FirstName: "Ben", LastName: "Jones", Email: "ben@example.com", Password: string(hash), Roles: "USER"},
		}
		if err := db.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		log.Println("Users seeded")
	}

	// ---------------- Flats ----------------
	var flatCount int64
	if err := db.Model(&models.Flat{}).Count(&flatCount).Error; err != nil {
		return err
	}
	if flatCount == 0 {
		flats := []models.Flat{
			{
				Name: "Riverside Studio", Location: "Berlin", Price: 650, RoomNumber: 1,
				Description: "Bright studio near the river", Distance: ptr(1.2),
				Amenities: datatypes.JSONSlice[string]{"wifi", "kitchen"}, Availability: "available",
				Images: datatypes.JSONSlice[string]{},
			},
			{
				Name: "Old Town Loft", Location: "Prague", Price: 900, RoomNumber: 2,
				Description: "Loft in the historic centre", Distance: ptr(0.4),
				Amenities: datatypes.JSONSlice[string]{"wifi", "washer"}, Availability: "available",
				Images: datatypes.JSONSlice[string]{},
			},
			{
				Name: "Campus Flat", Location: "Berlin", Price: 480, RoomNumber: 3,
				Description: "Shared flat next to the university", Distance: ptr(3.5),
				Amenities: datatypes.JSONSlice[string]{"wifi"}, Availability: "available",
				Images: datatypes.JSONSlice[string]{},
			},
		}
		if err := db.Create(&flats).Error; err != nil {
			return fmt.Errorf("failed to seed flats: %w", err)
		}
		log.Println("Flats seeded")
	}

	// ---------------- Bookings ----------------
	var bookingCount int64
	if err := db.Model(&models.Booking{}).Count(&bookingCount).Error; err != nil {
		return err
	}
	if bookingCount > 0 {
		log.Println("Bookings already seeded")
		return nil
	}

	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return err
	}
	var flats []models.Flat
	if err := db.Order("id").Find(&flats).Error; err != nil {
		return err
	}
	if len(users) < 2 || len(flats) < 2 {
		log.Println("⚠️  not enough users or flats to seed bookings")
		return nil
	}

	today := models.Today()
	bookings := []models.Booking{
		{
			FlatID: flats[0].ID, UserID: &users[1].ID, UserEmail: users[1].Email,
			StartDate: mustParseDate("2025-07-01"), EndDate: mustParseDate("2025-07-14"),
			Status: models.BookingActive, System: "seed", CreatedAt: today,
		},
		{
			FlatID: flats[1].ID, UserID: &users[1].ID, UserEmail: users[1].Email,
			StartDate: mustParseDate("2025-08-01"), EndDate: mustParseDate("2025-08-05"),
			Status: models.BookingCancelled, System: "seed", CreatedAt: today,
		},
		{
			FlatID: flats[1].ID, UserID: &users[len(users)-1].ID, UserEmail: users[len(users)-1].Email,
			StartDate: mustParseDate("2025-09-10"), EndDate: mustParseDate("2025-09-20"),
			Status: models.BookingActive, System: "seed", CreatedAt: today,
		},
	}
	if err := db.Omit(clause.Associations).Create(&bookings).Error; err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}
	log.Println("Bookings seeded successfully")
	return nil
}
