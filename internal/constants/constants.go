package constants

import "time"

// Pagination
const (
	DefaultSkip  = 0
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Context keys
const (
	ContextKeyResourceID = "resource_id"
)

const (
	APIName    = "Task Management API"
	APIVersion = "1.0.0"
)

// Client defaults
const (
	DefaultAPIBaseURL = "http://localhost:8080"
	DefaultAPITimeout = 30 * time.Second
	HealthTimeout     = 5 * time.Second
	RecentTaskCount   = 5
)
