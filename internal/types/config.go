package types

type RunMode string

const (
	// ModeLocal runs the API server and the event router with developer logging
	ModeLocal RunMode = "local"
	// ModeAPI runs the API server and the event router
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// StoreBackend selects the persistence adapter for account-scoped stores
type StoreBackend string

const (
	StoreBackendPostgres StoreBackend = "postgres"
	StoreBackendSupabase StoreBackend = "supabase"
)
