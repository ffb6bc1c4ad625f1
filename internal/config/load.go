package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "prayground.yaml"

// Load loads configuration with priority: defaults < file < flags, then
// validates the result. f may be nil.
func Load(f *Flags) (*Config, error) {
	cfg := Default()
	if f == nil {
		f = &Flags{Threads: -1}
	}

	// explicit path takes priority
	configPath := f.Config
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	cfg.path = configPath
	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		FileName,
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Prayground")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Prayground")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "prayground")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "prayground")
	}
}

// loadFromFile merges a YAML file into cfg. Lists such as lights are
// replaced, not appended to.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
