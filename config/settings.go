package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Settings holds everything read from the environment at startup.
type Settings struct {
	Env  string `envconfig:"APP_ENV" default:"production"`
	Port string `envconfig:"PORT" default:"8080"`

	DBURL     string `envconfig:"DB_URL" required:"true"`
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// Shared secret for the /tasks endpoints (reminder and birthday scans).
	TasksSecret string `envconfig:"TASKS_SECRET" required:"true"`

	TwilioAccountSID     string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber    string `envconfig:"TWILIO_PHONE_NUMBER"`
	TwilioWhatsAppNumber string `envconfig:"TWILIO_WHATSAPP_NUMBER"`

	// Business hours and slot grid, minutes from midnight / minutes.
	BusinessStartMin int `envconfig:"BUSINESS_START_MIN" default:"540"`
	BusinessEndMin   int `envconfig:"BUSINESS_END_MIN" default:"1200"`
	SlotStepMin      int `envconfig:"SLOT_STEP_MIN" default:"15"`
	BookingBufferMin int `envconfig:"BOOKING_BUFFER_MIN" default:"30"`

	// Local timezone used for slot grids and the birthday scan.
	Timezone string `envconfig:"TIMEZONE" default:"Europe/Madrid"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
}

func LoadSettings() (*Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return nil, err
	}
	return &s, nil
}
