package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the command-line tool configuration
type Config struct {
	// Formatter settings
	Format struct {
		Style         string `toml:"style"` // default, compact, expanded
		CommandColumn int    `toml:"command_column"`
		CommentColumn int    `toml:"comment_column"`
		AlignComments bool   `toml:"align_comments"`
		UppercaseOnly bool   `toml:"uppercase_only"`
	} `toml:"format"`

	// Linter settings
	Lint struct {
		Strict          bool `toml:"strict"`
		CheckLineOrder  bool `toml:"check_line_order"`
		CheckDuplicates bool `toml:"check_duplicates"`
		CheckDeleted    bool `toml:"check_deleted"`
	} `toml:"lint"`

	// Display settings
	Display struct {
		ColorOutput bool   `toml:"color_output"`
		JSONIndent  string `toml:"json_indent"`
		ShowSpans   bool   `toml:"show_spans"`
	} `toml:"display"`

	// API server settings
	API struct {
		Port          int   `toml:"port"`
		MaxSourceSize int64 `toml:"max_source_size"` // bytes
	} `toml:"api"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Formatter defaults
	cfg.Format.Style = "default"
	cfg.Format.CommandColumn = 8
	cfg.Format.CommentColumn = 40
	cfg.Format.AlignComments = true
	cfg.Format.UppercaseOnly = true

	// Linter defaults
	cfg.Lint.Strict = false
	cfg.Lint.CheckLineOrder = true
	cfg.Lint.CheckDuplicates = true
	cfg.Lint.CheckDeleted = true

	// Display defaults
	cfg.Display.ColorOutput = true
	cfg.Display.JSONIndent = "  "
	cfg.Display.ShowSpans = false

	// API defaults
	cfg.API.Port = 8080
	cfg.API.MaxSourceSize = 4 << 20 // 4MB

	return cfg
}

// GetConfigPath returns the platform-specific config file path
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\gcode-parser\config.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "gcode-parser")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/gcode-parser/config.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "gcode-parser")

	default:
		// Unknown platform: use current directory
		return "config.toml"
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0750); err != nil {
		// If we can't create the directory, fall back to current directory
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read and parse config file
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file
	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	// Encode to TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
