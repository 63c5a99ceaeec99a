// Package constants provides shared constant values used throughout the application.
//
// The timeouts.go file defines time-related constants for server, database and
// upstream operations.
package constants

import "time"

// Server timeouts.
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database timeouts.
const (
	DBConnectionTimeout  = 10 * time.Second
	DBHealthCheckTimeout = 5 * time.Second
	DBConnMaxLifetime    = 1 * time.Hour
	DBConnMaxIdleTime    = 30 * time.Minute
)

// Identity token lifetime.
const (
	DefaultJWTExpiry = 24 * time.Hour
)

// Upstream and session timeouts.
const (
	// GitHubRequestTimeout bounds each call to the hosting API.
	GitHubRequestTimeout = 20 * time.Second

	// AdminSessionTTL is how long an admin-mode session stays valid without use.
	AdminSessionTTL = 12 * time.Hour

	// DraftEventsWriteTimeout bounds a single websocket write to a subscriber.
	DraftEventsWriteTimeout = 5 * time.Second
)

// Maintenance intervals.
const (
	// AdminPurgeInterval is how often expired admin sessions are dropped.
	AdminPurgeInterval = 15 * time.Minute

	RateLimitCleanupInterval = 5 * time.Minute
	RateLimitIdleTTL         = 30 * time.Minute
)
