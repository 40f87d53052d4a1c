package main

import (
	"os"

	"github.com/Anuragprasad270204/hostel-management/internal/pkg/logger"
	"github.com/Anuragprasad270204/hostel-management/internal/server"
	"github.com/joho/godotenv"
)

// @title Hostel Management API
// @version 1.0
// @description REST API for managing hostels, rooms, students and occupancy
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@hostel.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// A .env file is optional; environment variables win either way
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, relying on environment variables")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
