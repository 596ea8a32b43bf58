package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when the loaded configuration fails validation
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	App       AppConfig
	Providers ProvidersConfig
	Breaker   BreakerConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int    `validate:"min=1,max=65535"`
	GinMode string `validate:"oneof=debug release test"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	DefaultDays     int              `validate:"min=1,ltefield=MaxDays"`
	MaxDays         int              `validate:"min=1,max=14"`
	DefaultLocation string           `validate:"required"`
	FetchTimeout    time.Duration    `validate:"min=1s"`
	RefreshSchedule string           // cron spec, empty disables background refresh
	RefreshProvider string           `validate:"oneof=grid commercial"`
	Locations       []LocationConfig `validate:"dive"`
}

// LocationConfig is one entry of the city picker
type LocationConfig struct {
	Name       string  `validate:"required"`
	PostalCode string  `mapstructure:"postalcode"`
	Latitude   float64 `validate:"min=-90,max=90"`
	Longitude  float64 `validate:"min=-180,max=180"`
}

// ProvidersConfig holds upstream API settings
type ProvidersConfig struct {
	WeatherAPI WeatherAPIConfig
	NWS        NWSConfig
	Nominatim  NominatimConfig
	Google     GoogleConfig
}

// WeatherAPIConfig configures the commercial forecast provider
type WeatherAPIConfig struct {
	APIKey            string  `mapstructure:"apikey"`
	BaseURL           string  `mapstructure:"baseurl" validate:"required,url"`
	RequestsPerSecond float64 `mapstructure:"rps" validate:"gt=0"`
	Burst             int     `validate:"min=1"`
}

// NWSConfig configures the National Weather Service provider
type NWSConfig struct {
	BaseURL           string  `mapstructure:"baseurl" validate:"required,url"`
	UserAgent         string  `mapstructure:"useragent" validate:"required"`
	RequestsPerSecond float64 `mapstructure:"rps" validate:"gt=0"`
	Burst             int     `validate:"min=1"`
}

// NominatimConfig configures postal code geocoding through OpenStreetMap
type NominatimConfig struct {
	BaseURL   string `mapstructure:"baseurl" validate:"required,url"`
	UserAgent string `mapstructure:"useragent" validate:"required"`
}

// GoogleConfig enables Google geocoding when an API key is present
type GoogleConfig struct {
	APIKey string `mapstructure:"apikey"`
}

// BreakerConfig configures the per-provider circuit breakers
type BreakerConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32  `mapstructure:"minrequests"`
	FailureRatio float64 `mapstructure:"failureratio" validate:"gt=0,lte=1"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// A missing .env file is fine; the environment may already be populated
	_ = godotenv.Load()

	// Set config file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.medi-forecast")

	setDefaults(viper.GetViper())

	// Read from environment variables
	viper.SetEnvPrefix("MEDI_FORECAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("app.defaultdays", 3)
	v.SetDefault("app.maxdays", 14)
	v.SetDefault("app.defaultlocation", "33598")
	v.SetDefault("app.fetchtimeout", 15*time.Second)
	v.SetDefault("app.refreshschedule", "@every 30m")
	v.SetDefault("app.refreshprovider", "grid")
	v.SetDefault("app.locations", []map[string]any{
		{"name": "Dexter", "postalcode": "04930", "latitude": 45.0239, "longitude": -69.2898},
		{"name": "Moorestown", "postalcode": "08057", "latitude": 39.9689, "longitude": -74.9488},
		{"name": "Weston", "postalcode": "06883", "latitude": 41.2009, "longitude": -73.3807},
		{"name": "Wimauma", "postalcode": "33598", "latitude": 27.7125, "longitude": -82.2990},
	})

	v.SetDefault("providers.weatherapi.apikey", "")
	v.SetDefault("providers.weatherapi.baseurl", "https://api.weatherapi.com/v1")
	v.SetDefault("providers.weatherapi.rps", 0.4)
	v.SetDefault("providers.weatherapi.burst", 3)
	v.SetDefault("providers.nws.baseurl", "https://api.weather.gov")
	v.SetDefault("providers.nws.useragent", "medi-forecast/1.0 (support@example.com)")
	v.SetDefault("providers.nws.rps", 5.0)
	v.SetDefault("providers.nws.burst", 6)
	v.SetDefault("providers.nominatim.baseurl", "https://nominatim.openstreetmap.org")
	v.SetDefault("providers.nominatim.useragent", "medi-forecast/1.0 (support@example.com)")

	v.SetDefault("providers.google.apikey", "")

	v.SetDefault("breaker.maxrequests", 1)
	v.SetDefault("breaker.interval", 0)
	v.SetDefault("breaker.timeout", 30*time.Second)
	v.SetDefault("breaker.minrequests", 3)
	v.SetDefault("breaker.failureratio", 0.6)
}

// Validate checks field constraints declared in struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
