package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Source describes the remote channel catalog and the headers sent with the request.
type Source struct {
	URL            string `toml:"url"`
	UserAgent      string `toml:"user_agent"`
	Referer        string `toml:"referer"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Playlist contains the output file location and channel line layout.
type Playlist struct {
	OutputFile   string `toml:"output_file"`
	BasePlayURL  string `toml:"base_play_url"`
	PlaySuffix   string `toml:"play_suffix"`
	DefaultName  string `toml:"default_name"`
	DefaultGroup string `toml:"default_group"`
	// NormalizeUnicode folds channel names and groups to NFC before they are written.
	NormalizeUnicode bool `toml:"normalize_unicode"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives a copy of every log line.
	File   string `toml:"file"`
}

// Metrics contains the optional Prometheus textfile export.
type Metrics struct {
	// Textfile is written after every run when set. Empty disables the export.
	Textfile string `toml:"textfile"`
}

// Config encapsulates all configuration values for trvip6.
type Config struct {
	Source   Source   `toml:"source"`
	Playlist Playlist `toml:"playlist"`
	Logging  Logging  `toml:"logging"`
	Metrics  Metrics  `toml:"metrics"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/trvip6/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: the built-in defaults are used and exists is false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("trvip6.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// RequestTimeout returns the catalog request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// Origin returns the referer domain without its trailing slash.
func (c *Config) Origin() string {
	return strings.TrimRight(c.Source.Referer, "/")
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() (string, error) {
	var b strings.Builder
	encoder := toml.NewEncoder(&b)
	if err := encoder.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
