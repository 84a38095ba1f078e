package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the persistence service configuration.
type Config struct {
	ServerPort  string
	DatabaseURL string
	RedisURL    string
	SeedFile    string
}

// DashboardConfig is the presence dashboard configuration.
type DashboardConfig struct {
	DashboardPort  string
	DeviceBaseURL  string
	StoreURL       string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	RedisURL       string
	MQTTBroker     string
	MQTTTopic      string
	OutboxSize     int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "3000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		SeedFile:    os.Getenv("SEED_FILE"),
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func LoadDashboardConfig() (*DashboardConfig, error) {
	interval, err := getDuration("POLL_INTERVAL", 2*time.Second)
	if err != nil {
		return nil, err
	}
	timeout, err := getDuration("REQUEST_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	outboxSize, err := strconv.Atoi(getEnv("OUTBOX_SIZE", "256"))
	if err != nil || outboxSize <= 0 {
		return nil, errors.New("invalid OUTBOX_SIZE: must be a positive integer")
	}

	cfg := &DashboardConfig{
		DashboardPort:  getEnv("DASHBOARD_PORT", "8081"),
		DeviceBaseURL:  getEnv("DEVICE_BASE_URL", "http://10.244.230.50"),
		StoreURL:       getEnv("STORE_URL", "http://localhost:3000/api"),
		PollInterval:   interval,
		RequestTimeout: timeout,
		RedisURL:       os.Getenv("REDIS_URL"),
		MQTTBroker:     os.Getenv("MQTT_BROKER"),
		MQTTTopic:      getEnv("MQTT_TOPIC", "staffpad/activity"),
		OutboxSize:     outboxSize,
	}

	return cfg, nil
}

// Helper: get env with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format", key)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
