package constants

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Echo context keys
const (
	ContextTokenData = "token_data"
)

// Pagination defaults
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// Token lifetimes
const (
	AccessTokenTTLMinutes = 60
	RefreshTokenTTLHours  = 24 * 7
)

// Asynq queue names
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)
