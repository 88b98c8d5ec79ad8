package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ComandaApp/app/security"
)

// Config holds all application configuration. Values come from the
// environment (a .env file is loaded by main before this runs) with
// sensible defaults for local development.
type Config struct {
	// HTTP API
	HTTPPort string
	WSPort   string

	// Webhook backend
	BackendURL   string
	BackendToken string

	// Business information printed on tickets
	RestaurantName    string
	RestaurantAddress string
	RestaurantPhone   string

	// Base URL for the public order-tracking page, embedded as a QR on
	// printed tickets.
	TrackingBaseURL string

	// Admin API token required by the dashboard endpoints.
	AdminToken string

	// Local data directory (sqlite store, logs, encryption key).
	DataPath string

	// Optional postgres DSN; when empty the local sqlite store is used.
	DatabaseURL string

	// Backend poll cadence and menu/delivery cache TTL.
	PollInterval time.Duration
	CacheTTL     time.Duration

	// Ticket column width: 42 for 72mm paper, 32 for 42mm paper.
	PaperCols int
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8090"),
		WSPort:            getEnv("WS_PORT", "8091"),
		BackendURL:        os.Getenv("BACKEND_URL"),
		RestaurantName:    getEnv("RESTAURANT_NAME", "Restaurante"),
		RestaurantAddress: os.Getenv("RESTAURANT_ADDRESS"),
		RestaurantPhone:   os.Getenv("RESTAURANT_PHONE"),
		TrackingBaseURL:   os.Getenv("TRACKING_BASE_URL"),
		AdminToken:        os.Getenv("ADMIN_TOKEN"),
		DataPath:          getEnv("DATA_PATH", "./data"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		PollInterval:      getDuration("POLL_INTERVAL", 15*time.Second),
		CacheTTL:          getDuration("CACHE_TTL", 5*time.Minute),
		PaperCols:         getInt("PAPER_COLS", 42),
	}

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required")
	}
	if cfg.PaperCols != 42 && cfg.PaperCols != 32 {
		return nil, fmt.Errorf("PAPER_COLS must be 42 or 32, got %d", cfg.PaperCols)
	}

	if err := os.MkdirAll(cfg.DataPath, 0755); err != nil {
		return nil, fmt.Errorf("could not create data directory: %w", err)
	}

	token, err := loadBackendToken(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	cfg.BackendToken = token

	return cfg, nil
}

// loadBackendToken resolves the webhook auth token. When BACKEND_TOKEN is
// set it is re-encrypted to disk so later runs can start without the
// variable; otherwise the encrypted copy from a previous run is used.
func loadBackendToken(dataPath string) (string, error) {
	tokenPath := filepath.Join(dataPath, "backend_token.enc")

	if token := os.Getenv("BACKEND_TOKEN"); token != "" {
		encrypted, err := security.Encrypt(token)
		if err != nil {
			return "", fmt.Errorf("could not encrypt backend token: %w", err)
		}
		if err := os.WriteFile(tokenPath, []byte(encrypted), 0600); err != nil {
			return "", fmt.Errorf("could not store backend token: %w", err)
		}
		return token, nil
	}

	data, err := os.ReadFile(tokenPath)
	if os.IsNotExist(err) {
		// No token configured at all; the backend may be open.
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("could not read stored backend token: %w", err)
	}

	token, err := security.Decrypt(string(data))
	if err != nil {
		return "", fmt.Errorf("could not decrypt stored backend token: %w", err)
	}
	return token, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
