// File: utils/constants.go
package utils

import "time"

// StoreCallTimeout bounds every booking store call.
const StoreCallTimeout = 5 * time.Second

// HealthCheckInterval is how often StartHealthMonitor refreshes its snapshot.
const HealthCheckInterval = 60 * time.Second

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"
