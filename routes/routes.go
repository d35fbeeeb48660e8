package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"flatly-backend/controllers"
	"flatly-backend/middleware"
)

// Controllers groups the handlers mounted by SetupRouter.
type Controllers struct {
	Flats     *controllers.FlatController
	Bookings  *controllers.BookingController
	Dashboard *controllers.DashboardController
	Users     *controllers.UserController
	Health    *controllers.HealthController
}

// Options tunes the router. UploadsDir, when set, is served at UploadsPath.
type Options struct {
	CorsOrigins []string
	UploadsPath string
	UploadsDir  string
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

func SetupRouter(ctl Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Use(cors.New(corsConfig(opts.CorsOrigins)))

	if opts.UploadsDir != "" {
		path := opts.UploadsPath
		if path == "" {
			path = "/uploads"
		}
		r.Static(path, opts.UploadsDir)
	}

	r.GET("/health", ctl.Health.Health)

	api := r.Group("/api")
	{
		flats := api.Group("/flats")
		{
			flats.GET("", ctl.Flats.GetFlats)

			// must be registered before /:id
			flats.GET("/filter", ctl.Flats.FilterFlats)

			flats.GET("/:id", ctl.Flats.GetFlat)
			flats.POST("", ctl.Flats.CreateFlat)
			flats.PUT("/:id", ctl.Flats.UpdateFlat)
			flats.DELETE("/:id", ctl.Flats.DeleteFlat)

			flats.POST("/:id/images", ctl.Flats.UploadImages)
			flats.GET("/:id/images", ctl.Flats.GetImages)
			flats.DELETE("/:id/images", ctl.Flats.DeleteImage)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", ctl.Bookings.GetBookings)
			bookings.GET("/active", ctl.Bookings.GetActiveBookings)
			bookings.GET("/active/flats", ctl.Bookings.GetActiveFlats)
			bookings.GET("/:id", ctl.Bookings.GetBooking)
			bookings.POST("", ctl.Bookings.CreateBooking)
			bookings.PUT("/:id", ctl.Bookings.UpdateBooking)
			bookings.DELETE("/:id", ctl.Bookings.DeleteBooking)
			bookings.POST("/:id/cancel", ctl.Bookings.CancelBooking)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/stats", ctl.Dashboard.GetStats)
			dashboard.GET("/recent-activities", ctl.Dashboard.GetRecentActivities)
			dashboard.GET("/most-active-user", ctl.Dashboard.GetMostActiveUser)
		}

		users := api.Group("/users")
		{
			users.GET("", ctl.Users.GetUsers)
			users.GET("/:id", ctl.Users.GetUser)
			users.POST("", ctl.Users.CreateUser)
		}
	}

	return r
}
