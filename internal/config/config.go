package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Log
		UI
		Security
		Session
		ReadOnly
	}

	HTTP struct {
		Port    int32
		Host    string
		GinMode string // debug, release or test
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   string // sqlite or postgres
		Path     string // SQLite file path
		DSN      string // PostgreSQL connection string
		LogLevel string // GORM logger level: silent, error, warn, info
	}
	Log struct {
		Level  string // zap level name
		Format string // console or json
	}
	UI struct {
		TemplatesPath string // Overrides the embedded templates when set
		StaticPath    string
	}
	Security struct {
		CSRFEnabled   bool
		CSRFSecret    string // Generated on startup if empty
		SecureCookies bool   // Set to false for local dev without HTTPS
	}
	Session struct {
		Lifetime time.Duration
	}
	ReadOnly struct {
		Enabled bool // Blocks save and delete
	}
)

// LoadEnvFile loads variables from a dotenv file into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetDefault("templates_path", "") // Embedded templates
	v.SetDefault("static_path", "./static")

	v.SetDefault("csrf_enabled", true)
	v.SetDefault("csrf_secret", "")
	v.SetDefault("secure_cookies", false)
	v.SetDefault("session_lifetime", "24h")

	v.SetDefault("read_only", false)

	return &Config{
		HTTP: HTTP{
			Port:    v.GetInt32("PORT"),
			Host:    v.GetString("HOST"),
			GinMode: v.GetString("GIN_MODE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   v.GetString("DATABASE_DRIVER"),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Security: Security{
			CSRFEnabled:   v.GetBool("CSRF_ENABLED"),
			CSRFSecret:    v.GetString("CSRF_SECRET"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		Session: Session{
			Lifetime: v.GetDuration("SESSION_LIFETIME"),
		},
		ReadOnly: ReadOnly{
			Enabled: v.GetBool("READ_ONLY"),
		},
	}
}
