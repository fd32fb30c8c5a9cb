package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"salon-agenda-backend/config"
	"salon-agenda-backend/controllers"
	"salon-agenda-backend/models"
	"salon-agenda-backend/routes"
	"salon-agenda-backend/services"
)

func main() {
	// Optional .env for local development; production reads the process env.
	_ = godotenv.Load()

	settings, err := config.LoadSettings()
	if err != nil {
		panic("invalid configuration: " + err.Error())
	}
	config.InitLogger(settings.Env)
	defer config.Log.Sync()

	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		config.Log.Fatal("invalid timezone", zap.String("timezone", settings.Timezone), zap.Error(err))
	}

	config.ConnectDB(settings.DBURL)
	if err := config.DB.AutoMigrate(
		&models.StaffMember{},
		&models.Service{},
		&models.Cabin{},
		&models.Client{},
		&models.Appointment{},
		&models.Product{},
		&models.AppointmentProduct{},
		&models.MessageLog{},
	); err != nil {
		config.Log.Fatal("migration failed", zap.Error(err))
	}

	messenger := services.NewTwilioMessenger(
		settings.TwilioAccountSID,
		settings.TwilioAuthToken,
		settings.TwilioPhoneNumber,
		settings.TwilioWhatsAppNumber,
	)

	bookingSvc := services.NewBookingService(config.DB, config.Log, loc, services.PointsPerEuro{})
	reminderSvc := services.NewReminderService(config.DB, messenger, config.Log)
	confirmationSvc := services.NewConfirmationService(config.DB, config.Log)

	controllers.Setup(settings, loc, bookingSvc, reminderSvc, confirmationSvc)

	scheduler := services.NewScheduler(reminderSvc, config.Log, loc)
	if err := scheduler.Start(); err != nil {
		config.Log.Fatal("failed to start scheduler", zap.Error(err))
	}

	r := routes.SetupRouter(settings)

	go func() {
		if err := r.Run(":" + settings.Port); err != nil {
			config.Log.Fatal("server stopped", zap.Error(err))
		}
	}()
	config.Log.Info("listening", zap.String("port", settings.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	scheduler.Stop()
	config.Log.Info("shutdown complete")
}
