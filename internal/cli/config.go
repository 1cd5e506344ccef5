package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kmalloy/staylist/internal/schedule"
)

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	APIToken  string `yaml:"api_token,omitempty"`
	UserID    string `yaml:"user_id,omitempty"`
	CheckIn   string `yaml:"check_in,omitempty"`
	CheckOut  string `yaml:"check_out,omitempty"`
}

const dayFormat = "2006-01-02"

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sl", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// getServerURL returns the server URL from env var, config, or default.
func getServerURL() string {
	if v := os.Getenv("SL_SERVER_URL"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return "http://localhost:8080/api/1.1"
}

// getAPIToken returns the API token from env var or config.
func getAPIToken() string {
	if v := os.Getenv("SL_API_TOKEN"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil {
		return cfg.APIToken
	}
	return ""
}

// getUserID returns the user ID from env var or config.
func getUserID() string {
	if v := os.Getenv("SL_USER_ID"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil {
		return cfg.UserID
	}
	return ""
}

// loadSchedule builds the stay selection from the stored dates,
// falling back to the default (tonight, one night) when unset or
// invalid.
func loadSchedule() schedule.Selection {
	sel := schedule.Default(time.Now())

	cfg, err := loadConfig()
	if err != nil || cfg.CheckIn == "" || cfg.CheckOut == "" {
		return sel
	}

	checkIn, err := time.Parse(dayFormat, cfg.CheckIn)
	if err != nil {
		return sel
	}
	checkOut, err := time.Parse(dayFormat, cfg.CheckOut)
	if err != nil {
		return sel
	}

	sel.SetCheckIn(checkIn)
	if err := sel.SetCheckOut(checkOut); err != nil {
		return schedule.Default(time.Now())
	}
	return sel
}

// saveSchedule persists a stay selection, preserving other config
// fields.
func saveSchedule(sel schedule.Selection) error {
	cfg, err := loadConfig()
	if err != nil {
		cfg = CLIConfig{}
	}

	cfg.CheckIn = sel.CheckIn.Format(dayFormat)
	cfg.CheckOut = sel.CheckOut.Format(dayFormat)
	return saveConfig(cfg)
}

// clearSchedule removes the stored stay dates.
func clearSchedule() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.CheckIn = ""
	cfg.CheckOut = ""
	return saveConfig(cfg)
}
