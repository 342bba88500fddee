package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeSource()
	if err := c.normalizePlaylist(); err != nil {
		return err
	}
	if err := c.normalizeMetrics(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeSource() {
	if value, ok := os.LookupEnv("TRVIP6_SOURCE_URL"); ok && strings.TrimSpace(value) != "" {
		c.Source.URL = value
	}
	c.Source.URL = strings.TrimSpace(c.Source.URL)
	if c.Source.URL == "" {
		c.Source.URL = defaultSourceURL
	}
	c.Source.UserAgent = strings.TrimSpace(c.Source.UserAgent)
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = defaultUserAgent
	}
	c.Source.Referer = strings.TrimSpace(c.Source.Referer)
	if c.Source.Referer == "" {
		c.Source.Referer = defaultReferer
	}
	if c.Source.TimeoutSeconds == 0 {
		c.Source.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizePlaylist() error {
	if value, ok := os.LookupEnv("TRVIP6_OUTPUT_FILE"); ok && strings.TrimSpace(value) != "" {
		c.Playlist.OutputFile = value
	}
	c.Playlist.OutputFile = strings.TrimSpace(c.Playlist.OutputFile)
	if c.Playlist.OutputFile == "" {
		c.Playlist.OutputFile = defaultOutputFile
	}
	var err error
	if c.Playlist.OutputFile, err = expandPath(c.Playlist.OutputFile); err != nil {
		return fmt.Errorf("playlist.output_file: %w", err)
	}
	c.Playlist.BasePlayURL = strings.TrimSpace(c.Playlist.BasePlayURL)
	if c.Playlist.BasePlayURL == "" {
		c.Playlist.BasePlayURL = defaultBasePlayURL
	}
	c.Playlist.PlaySuffix = strings.TrimSpace(c.Playlist.PlaySuffix)
	c.Playlist.DefaultName = strings.TrimSpace(c.Playlist.DefaultName)
	if c.Playlist.DefaultName == "" {
		c.Playlist.DefaultName = defaultChannelName
	}
	c.Playlist.DefaultGroup = strings.TrimSpace(c.Playlist.DefaultGroup)
	if c.Playlist.DefaultGroup == "" {
		c.Playlist.DefaultGroup = defaultChannelGroup
	}
	return nil
}

func (c *Config) normalizeMetrics() error {
	c.Metrics.Textfile = strings.TrimSpace(c.Metrics.Textfile)
	if c.Metrics.Textfile == "" {
		return nil
	}
	var err error
	if c.Metrics.Textfile, err = expandPath(c.Metrics.Textfile); err != nil {
		return fmt.Errorf("metrics.textfile: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File == "" {
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
