package server

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/coursecms/coursesite/internal/database"
)

// ServerTestInterface is the lifecycle surface of Server that tests and
// the command entry point rely on.
type ServerTestInterface interface {
	// SetupRoutes configures the HTTP routes for the server
	SetupRoutes()

	// GetRouter returns the configured router for request handling
	GetRouter() chi.Router

	// Start begins listening for HTTP requests
	Start() error

	// Shutdown gracefully stops the server
	Shutdown(ctx context.Context) error

	// SetupMaintenanceTasks initializes background maintenance operations
	SetupMaintenanceTasks()
}

// ServerDBHealthChecker is what the health endpoint needs from the database.
type ServerDBHealthChecker interface {
	// HealthCheck verifies the database connection is working properly
	HealthCheck(ctx context.Context) error

	// Close terminates the database connection
	Close()
}

var (
	_ ServerTestInterface   = (*Server)(nil)
	_ ServerDBHealthChecker = (*database.Pool)(nil)
)
