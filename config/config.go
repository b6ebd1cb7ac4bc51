// ABOUTME: Application configuration with layered resolution
// ABOUTME: Handles config storage at XDG paths, .env defaults, and environment variable overrides
package config

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/oklog/ulid/v2"
)

const (
	// AppName is the directory name used under XDG paths.
	AppName = "bizdesk"

	// ConfigFileName is where locally saved settings live.
	ConfigFileName = "config.json"
)

// RemoteConfig holds connection settings for the hosted row store.
type RemoteConfig struct {
	URL    string `json:"url"`
	APIKey string `json:"api_key"`
}

// IsConfigured reports whether the remote store can be used. A missing or
// non-http(s) endpoint means the remote mirror is disabled, which is a
// normal operating mode rather than an error.
func (r RemoteConfig) IsConfigured() bool {
	if r.URL == "" || r.APIKey == "" {
		return false
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// Config holds all settings resolved at startup. Construct once via Load and
// pass by reference; components never re-read ambient storage.
type Config struct {
	Remote       RemoteConfig `json:"remote"`
	GeminiAPIKey string       `json:"gemini_api_key,omitempty"`
	AdsToken     string       `json:"ads_token,omitempty"`
	AdsURL       string       `json:"ads_url,omitempty"`
	DeviceID     string       `json:"device_id"`
	AutoSync     bool         `json:"auto_sync"`
}

// Dir returns the XDG data directory for bizdesk.
func Dir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), ConfigFileName)
}

// DatabasePath returns the default local database path.
func DatabasePath() string {
	return filepath.Join(Dir(), "bizdesk.db")
}

// envVars are the environment variables recognized by Load.
var envVars = []string{
	"BIZDESK_REMOTE_URL",
	"BIZDESK_REMOTE_KEY",
	"GEMINI_API_KEY",
	"BIZDESK_ADS_TOKEN",
	"BIZDESK_ADS_URL",
	"BIZDESK_AUTO_SYNC",
}

// Load resolves configuration in layers, weakest first: .env build-time
// defaults, then the saved config file, then environment variables the user
// set before launch. A value the user saved via configure shadows a .env
// build default; only a genuinely pre-set environment variable shadows the
// file. godotenv injects .env values into the process environment, so the
// environment is snapshotted before the .env load to tell the two apart.
func Load() (*Config, error) {
	preset := recognizedEnv()
	_ = godotenv.Load()

	cfg := &Config{AutoSync: true}
	applyEnv(cfg, recognizedEnv())

	f, err := os.Open(Path())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
	} else {
		defer func() { _ = f.Close() }()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	applyEnv(cfg, preset)

	if cfg.DeviceID == "" {
		cfg.DeviceID = GenerateDeviceID()
	}

	return cfg, nil
}

// recognizedEnv snapshots the recognized variables currently present in the
// environment. Empty values count as absent.
func recognizedEnv() map[string]string {
	env := make(map[string]string)
	for _, key := range envVars {
		if v := os.Getenv(key); v != "" {
			env[key] = v
		}
	}
	return env
}

func applyEnv(cfg *Config, env map[string]string) {
	if v := env["BIZDESK_REMOTE_URL"]; v != "" {
		cfg.Remote.URL = v
	}
	if v := env["BIZDESK_REMOTE_KEY"]; v != "" {
		cfg.Remote.APIKey = v
	}
	if v := env["GEMINI_API_KEY"]; v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := env["BIZDESK_ADS_TOKEN"]; v != "" {
		cfg.AdsToken = v
	}
	if v := env["BIZDESK_ADS_URL"]; v != "" {
		cfg.AdsURL = v
	}
	if v := env["BIZDESK_AUTO_SYNC"]; v != "" {
		cfg.AutoSync = v == "true" || v == "1"
	}
}

// Save persists the config with restricted permissions.
func (c *Config) Save() error {
	dir := filepath.Dir(Path())
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// GenerateDeviceID generates a new ULID identifying this device.
func GenerateDeviceID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
