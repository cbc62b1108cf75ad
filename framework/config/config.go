// Package config loads typed settings from .env files and the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the typed configuration for the garage binary.
type Config struct {
	App       AppConfig
	Log       LogConfig
	Garage    GarageConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // text | json
}

// GarageConfig holds the default build used by the demo and by requests
// that do not name one.
type GarageConfig struct {
	Power         string
	Optionals     string
	ChassisSerial string
	OrdersFile    string // optional YAML order sheet
}

type TelemetryConfig struct {
	Metrics bool
	Tracing bool
}

// Load reads .env (if present) and populates a Config from environment variables.
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "eustace"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", false),
			Port:  env("APP_PORT", "8000"),
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "text"),
		},
		Garage: GarageConfig{
			Power:         env("GARAGE_POWER", "standard"),
			Optionals:     env("GARAGE_OPTIONALS", "standard"),
			ChassisSerial: env("GARAGE_CHASSIS_SERIAL", "abc_1"),
			OrdersFile:    env("GARAGE_ORDERS_FILE", ""),
		},
		Telemetry: TelemetryConfig{
			Metrics: envBool("TELEMETRY_METRICS", false),
			Tracing: envBool("TELEMETRY_TRACING", false),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	i, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}
