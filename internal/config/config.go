package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds environment-driven settings for the forecast API
type Config struct {
	Port                string
	ModelPath           string
	EncoderPath         string
	DefaultForecastDays int
	MaxForecastDays     int
	CORSAllowOrigins    string
	Env                 string
}

// Load reads configuration from environment variables.
// Callers load .env beforehand if they want one.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		ModelPath:        getEnv("MODEL_PATH", "prophet_model.json"),
		EncoderPath:      getEnv("ENCODER_PATH", "onehot_encoder.json"),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		Env:              getEnv("GO_ENV", "development"),
	}

	var err error
	if cfg.DefaultForecastDays, err = getPositiveInt("DEFAULT_FORECAST_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.MaxForecastDays, err = getPositiveInt("MAX_FORECAST_DAYS", 365); err != nil {
		return nil, err
	}
	if cfg.DefaultForecastDays > cfg.MaxForecastDays {
		return nil, fmt.Errorf("DEFAULT_FORECAST_DAYS (%d) exceeds MAX_FORECAST_DAYS (%d)",
			cfg.DefaultForecastDays, cfg.MaxForecastDays)
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT: %s", cfg.Port)
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getPositiveInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s: %s", key, raw)
	}
	return value, nil
}
