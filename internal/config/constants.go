package config

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	// DefaultDatabasePath is the default path for the SQLite database file
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultEnvFile is loaded on startup when present
	DefaultEnvFile = ".env"
)
