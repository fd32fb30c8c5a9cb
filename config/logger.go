package config

import (
	"go.uber.org/zap"
)

var Log *zap.Logger = zap.NewNop()

// InitLogger replaces the no-op default. Production config unless APP_ENV=dev.
func InitLogger(env string) {
	var err error
	if env == "dev" {
		Log, err = zap.NewDevelopment()
	} else {
		Log, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}

func zapError(err error) zap.Field {
	return zap.Error(err)
}
