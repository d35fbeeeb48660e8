package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flatly-backend/config"
	"flatly-backend/controllers"
	"flatly-backend/routes"
	"flatly-backend/services"
	"flatly-backend/storage"
)

// newBlobStore builds the store selected by STORAGE_DRIVER. uploadsDir is
// non-empty when the files must be served by this process.
func newBlobStore(ctx context.Context, cfg config.StorageConfig) (blobs storage.BlobStore, uploadsPath, uploadsDir string, err error) {
	if cfg.Driver == "s3" {
		s3Store, err := storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, "", "", err
		}
		return s3Store, "", "", nil
	}
	local, err := storage.NewLocalStore(cfg.Local)
	if err != nil {
		return nil, "", "", err
	}
	return local, local.PublicPath(), local.Dir(), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	db, err := config.ConnectDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Println("✅ Database connection established and migrations applied.")

	if cfg.SeedData {
		if err := config.SeedDatabase(db); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
	}

	blobs, uploadsPath, uploadsDir, err := newBlobStore(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("❌ Blob store init failed: %v", err)
	}
	log.Printf("✅ Blob store ready (driver=%s)", cfg.Storage.Driver)

	// Initialize services
	flatService := services.NewFlatService(db, blobs)
	bookingService := services.NewBookingService(db)
	dashboardService := services.NewDashboardService(db)
	userService := services.NewUserService(db)

	router := routes.SetupRouter(routes.Controllers{
		Flats:     controllers.NewFlatController(flatService),
		Bookings:  controllers.NewBookingController(bookingService),
		Dashboard: controllers.NewDashboardController(dashboardService),
		Users:     controllers.NewUserController(userService),
		Health:    controllers.NewHealthController(db),
	}, routes.Options{
		CorsOrigins: cfg.CorsOrigins,
		UploadsPath: uploadsPath,
		UploadsDir:  uploadsDir,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
