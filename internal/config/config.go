package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds application configuration
type Config struct {
	DB        DBConfig
	Server    ServerConfig
	Upstream  UpstreamConfig
	Display   DisplayConfig
	Gazetteer GazetteerConfig
	Seeder    SeederConfig
	Log       LogConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// GeocoderBackend selects which resolver answers place-name lookups
type GeocoderBackend string

const (
	GeocoderOpenMeteo GeocoderBackend = "open-meteo"
	GeocoderGazetteer GeocoderBackend = "gazetteer"
)

// DBConfig holds gazetteer database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		if c.Name != "" && c.Name != "geoweather" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port       string
	SessionTTL time.Duration
}

// UpstreamConfig describes the geocoding and forecast providers
type UpstreamConfig struct {
	GeocodingBaseURL string
	ForecastBaseURL  string
	Timeout          time.Duration
	UserAgent        string
	Geocoder         GeocoderBackend
}

// DisplayConfig holds presentation defaults
type DisplayConfig struct {
	DefaultLocation string
	DefaultLocale   string
}

// GazetteerConfig toggles the local place-name database
type GazetteerConfig struct {
	Enabled bool
}

// SeederConfig holds settings for the GeoNames import
type SeederConfig struct {
	DataDir       string
	CitiesFile    string
	BatchSize     int
	MinPopulation int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	geocoder := GeocoderBackend(getEnv("GEOCODER", string(GeocoderOpenMeteo)))
	if geocoder != GeocoderOpenMeteo && geocoder != GeocoderGazetteer {
		return nil, fmt.Errorf("unknown geocoder %q", geocoder)
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "geoweather"),
			Password: getEnv("DB_PASSWORD", "geoweather_password"),
			Name:     getEnv("DB_NAME", "geoweather"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port:       getEnv("APP_PORT", "8080"),
			SessionTTL: getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		},
		Upstream: UpstreamConfig{
			GeocodingBaseURL: strings.TrimRight(getEnv("GEOCODING_BASE_URL", "https://geocoding-api.open-meteo.com"), "/"),
			ForecastBaseURL:  strings.TrimRight(getEnv("FORECAST_BASE_URL", "https://api.open-meteo.com"), "/"),
			Timeout:          getEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second),
			UserAgent:        getEnv("USER_AGENT", "geoweather/1.0"),
			Geocoder:         geocoder,
		},
		Display: DisplayConfig{
			DefaultLocation: getEnv("DEFAULT_LOCATION", "Bhopal"),
			DefaultLocale:   getEnv("DEFAULT_LOCALE", "en-US"),
		},
		Gazetteer: GazetteerConfig{
			Enabled: getEnvAsBool("GAZETTEER_ENABLED", false),
		},
		Seeder: SeederConfig{
			DataDir:       getEnv("SEEDER_DATA_DIR", "data"),
			CitiesFile:    getEnv("SEEDER_CITIES_FILE", "cities15000"),
			BatchSize:     getEnvAsInt("SEEDER_BATCH_SIZE", 1000),
			MinPopulation: getEnvAsInt("SEEDER_MIN_POPULATION", 15000),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if config.Upstream.Geocoder == GeocoderGazetteer && !config.Gazetteer.Enabled {
		return nil, fmt.Errorf("geocoder %q requires GAZETTEER_ENABLED=true", GeocoderGazetteer)
	}

	return config, nil
}

// NewLogger builds a zap logger from the log configuration
func (c *Config) NewLogger() (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(c.Log.Level))); err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	if strings.ToLower(c.Log.Format) == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
	}
	return defaultValue
}
