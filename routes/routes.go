package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"salon-agenda-backend/config"
	"salon-agenda-backend/controllers"
	"salon-agenda-backend/utils"
)

func SetupRouter(settings *config.Settings) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     settings.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Public booking flow
	public := r.Group("/api/public")
	{
		public.GET("/services", controllers.GetServices)
		public.GET("/staff", controllers.GetStaffMembers)
		public.GET("/slots", controllers.GetAvailableSlots)
		public.POST("/bookings", controllers.CreateBooking)
	}

	// Messaging channel callback
	r.POST("/webhooks/messages", controllers.HandleInboundMessage)

	// Shared-secret task triggers (idempotent, safe to call redundantly)
	tasks := r.Group("/tasks")
	{
		tasks.POST("/reminders", controllers.TriggerReminderScan)
		tasks.POST("/birthdays", controllers.TriggerBirthdayGreetings)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Staff API
	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		appointments := api.Group("/appointments")
		{
			appointments.GET("", controllers.GetAppointments)
			appointments.POST("", controllers.CreateStaffBooking)
			appointments.PUT("/:id/status", controllers.UpdateAppointmentStatus)
		}

		api.GET("/clients", controllers.GetClients)
		api.GET("/services", controllers.GetServices)
	}

	return r
}
