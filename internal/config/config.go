package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Editor settings
	Editor struct {
		Dir         string `yaml:"dir" env:"AIVOICE_EDITOR_DIR"`
		ProgID      string `yaml:"prog_id" env:"AIVOICE_PROG_ID"`
		ServiceName string `yaml:"service_name" env:"AIVOICE_SERVICE_NAME"`
		AutoStart   bool   `yaml:"auto_start" env:"AIVOICE_AUTO_START"`
	} `yaml:"editor"`

	// Session settings
	Session struct {
		KeepAlive    time.Duration `yaml:"keepalive" env:"AIVOICE_KEEPALIVE"`
		PlayMargin   time.Duration `yaml:"play_margin" env:"AIVOICE_PLAY_MARGIN"`
		PollInterval time.Duration `yaml:"poll_interval" env:"AIVOICE_POLL_INTERVAL"`
	} `yaml:"session"`

	// Output settings
	Output struct {
		Format string `yaml:"format" env:"AIVOICE_OUTPUT_FORMAT"`
		File   string `yaml:"file" env:"AIVOICE_OUTPUT_FILE"`
	} `yaml:"output"`

	// Audio settings
	Audio struct {
		Device string `yaml:"device" env:"AIVOICE_AUDIO_DEVICE"`
	} `yaml:"audio"`

	Hotkey struct {
		Play string `yaml:"play" env:"AIVOICE_HOTKEY"`
	} `yaml:"hotkey"`

	// Server settings
	Server struct {
		Port int    `yaml:"port" env:"AIVOICE_SERVER_PORT"`
		Host string `yaml:"host" env:"AIVOICE_SERVER_HOST"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level" env:"AIVOICE_LOG_LEVEL"`
		Format string `yaml:"format" env:"AIVOICE_LOG_FORMAT"`
	} `yaml:"log"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Editor defaults; an empty dir resolves to the standard install path
	cfg.Editor.Dir = ""
	cfg.Editor.ProgID = "AI.Talk.Editor.Api.TtsControl"
	cfg.Editor.ServiceName = ""
	cfg.Editor.AutoStart = true

	// The host disconnects after ten idle minutes; keepalive is off unless asked for
	cfg.Session.KeepAlive = 0
	cfg.Session.PlayMargin = 500 * time.Millisecond
	cfg.Session.PollInterval = 100 * time.Millisecond

	cfg.Output.Format = "text"
	cfg.Output.File = ""

	cfg.Audio.Device = ""

	cfg.Hotkey.Play = "ctrl+shift+p"

	cfg.Server.Port = 50051
	cfg.Server.Host = "localhost"

	cfg.Log.Level = "info"
	cfg.Log.Format = "text"

	return cfg
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadWithFallback attempts to load configuration from multiple locations,
// then applies AIVOICE_* environment overrides.
// Priority: explicit path > ~/.aivoicerc > system config > defaults
func LoadWithFallback(explicitPath string) (*Config, error) {
	cfg, err := loadFile(explicitPath)
	if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(explicitPath string) (*Config, error) {
	// If explicit path is provided, use it
	if explicitPath != "" {
		return Load(explicitPath)
	}

	// Try user config (~/.aivoicerc)
	if userConfigPath := UserConfigPath(); userConfigPath != "" {
		if _, err := os.Stat(userConfigPath); err == nil {
			cfg, err := Load(userConfigPath)
			if err == nil {
				return cfg, nil
			}
		}
	}

	if systemConfigPath := SystemConfigPath(); systemConfigPath != "" {
		if _, err := os.Stat(systemConfigPath); err == nil {
			cfg, err := Load(systemConfigPath)
			if err == nil {
				return cfg, nil
			}
		}
	}

	// No config file found, return defaults
	return DefaultConfig(), nil
}

// SystemConfigPath returns the machine-wide config location.
func SystemConfigPath() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			return ""
		}
		return filepath.Join(programData, "aivoice", "config.yaml")
	}
	return "/etc/aivoice/config.yaml"
}

// UserConfigPath returns ~/.aivoicerc, or "" when there is no home directory.
func UserConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".aivoicerc")
}

// ApplyEnv overrides cfg with any AIVOICE_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "console":
	default:
		return fmt.Errorf("unsupported output format %q", c.Output.Format)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Session.KeepAlive < 0 || c.Session.PlayMargin < 0 {
		return fmt.Errorf("session durations must not be negative")
	}
	if c.Session.PollInterval <= 0 {
		return fmt.Errorf("session poll_interval must be positive")
	}
	return nil
}
