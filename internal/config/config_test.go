package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, GinMode: "release"},
		Log:    LogConfig{Level: "info", Format: "text"},
		App: AppConfig{
			DefaultDays:     3,
			MaxDays:         14,
			DefaultLocation: "33598",
			FetchTimeout:    15 * time.Second,
			RefreshProvider: "grid",
			Locations: []LocationConfig{
				{Name: "Wimauma", PostalCode: "33598", Latitude: 27.7125, Longitude: -82.2990},
			},
		},
		Providers: ProvidersConfig{
			WeatherAPI: WeatherAPIConfig{BaseURL: "https://api.weatherapi.com/v1", RequestsPerSecond: 1, Burst: 1},
			NWS:        NWSConfig{BaseURL: "https://api.weather.gov", UserAgent: "test", RequestsPerSecond: 1, Burst: 1},
			Nominatim:  NominatimConfig{BaseURL: "https://nominatim.openstreetmap.org", UserAgent: "test"},
		},
		Breaker: BreakerConfig{MaxRequests: 1, Timeout: time.Second, MinRequests: 3, FailureRatio: 0.5},
	}
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(8080, cfg.Server.Port)
	assert.Equal(3, cfg.App.DefaultDays)
	assert.Equal("33598", cfg.App.DefaultLocation)
	assert.Equal(15*time.Second, cfg.App.FetchTimeout)
	assert.Equal("grid", cfg.App.RefreshProvider)
	assert.Len(cfg.App.Locations, 4)
	assert.Equal("Dexter", cfg.App.Locations[0].Name)
	assert.Equal("04930", cfg.App.Locations[0].PostalCode)
	assert.Equal("https://api.weather.gov", cfg.Providers.NWS.BaseURL)
	assert.InDelta(0.6, cfg.Breaker.FailureRatio, 1e-9)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("MEDI_FORECAST_SERVER_PORT", "9090")
	t.Setenv("MEDI_FORECAST_PROVIDERS_WEATHERAPI_APIKEY", "secret")
	t.Setenv("MEDI_FORECAST_APP_FETCHTIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Providers.WeatherAPI.APIKey)
	assert.Equal(t, 5*time.Second, cfg.App.FetchTimeout)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "default days above max",
			mutate:  func(c *Config) { c.App.DefaultDays = 20 },
			wantErr: true,
		},
		{
			name:    "unknown refresh provider",
			mutate:  func(c *Config) { c.App.RefreshProvider = "satellite" },
			wantErr: true,
		},
		{
			name:    "fetch timeout too short",
			mutate:  func(c *Config) { c.App.FetchTimeout = time.Millisecond },
			wantErr: true,
		},
		{
			name:    "location latitude out of range",
			mutate:  func(c *Config) { c.App.Locations[0].Latitude = 91 },
			wantErr: true,
		},
		{
			name:    "missing nws user agent",
			mutate:  func(c *Config) { c.Providers.NWS.UserAgent = "" },
			wantErr: true,
		},
		{
			name:    "failure ratio above one",
			mutate:  func(c *Config) { c.Breaker.FailureRatio = 1.5 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_GetServerAddr(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, ":8080", cfg.GetServerAddr())
}

func TestConfig_NewLogger(t *testing.T) {
	tests := []struct {
		level string
		debug bool
	}{
		{level: "debug", debug: true},
		{level: "info", debug: false},
		{level: "bogus", debug: false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Log.Level = tt.level
			logger := cfg.NewLogger()
			require.NotNil(t, logger)
			assert.Equal(t, tt.debug, logger.Enabled(t.Context(), slog.LevelDebug))
		})
	}
}
