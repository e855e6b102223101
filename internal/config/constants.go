package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Identity service client timeouts
const (
	IdentityReadTimeout  = 2 * time.Second
	IdentityWriteTimeout = 5 * time.Second
)

// Background job intervals
const CacheWarmInterval = 5 * time.Minute

// Login rate limiting
const (
	LoginMaxAttempts   = 5
	LoginWindowSeconds = 60
)
