package main

import (
	"context"
	"os"

	"github.com/yigit/registrar/internal/pkg/logger"
	"github.com/yigit/registrar/internal/server"
)

// @title Registrar API
// @version 1.0
// @description Course types, courses, offerings and student registrations
// @BasePath /api/v1
// @schemes http

func main() {
	// Config is read from configs/config.yaml; use "registrar serve --config" for another path.
	srv, err := server.NewServer(context.Background(), "")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
