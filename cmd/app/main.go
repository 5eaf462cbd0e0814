package main

import (
	"studio/config"
	"studio/di"
	"studio/helper"
	"studio/shared/logger"
	"studio/shared/timezone"
)

// @title Studio Booking API
// @version 1.0
// @description Bookings, commissions and settlements for a tattoo studio.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	helper.AutoMigrate(cfg)

	http := di.InitializeService()
	http.Serve()
}
