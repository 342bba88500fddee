package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validatePlaylist(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSource() error {
	if err := validateHTTPURL("source.url", c.Source.URL); err != nil {
		return err
	}
	if c.Source.TimeoutSeconds <= 0 {
		return errors.New("source.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validatePlaylist() error {
	if c.Playlist.OutputFile == "" {
		return errors.New("playlist.output_file must be set")
	}
	if err := validateHTTPURL("playlist.base_play_url", c.Playlist.BasePlayURL); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func validateHTTPURL(key, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", key, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", key, value)
	}
	return nil
}
