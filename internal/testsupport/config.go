package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/Oktay2617/trvip6/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose output file lives in a unique temp
// directory per test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Source.TimeoutSeconds = 5
	cfgVal.Playlist.OutputFile = filepath.Join(base, "playlist.m3u8")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithSourceURL points the catalog fetcher at url.
func WithSourceURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Source.URL = url
	}
}

// WithOutputFile overrides the playlist path. Relative names are placed in
// the test's temp directory.
func WithOutputFile(name string) ConfigOption {
	return func(b *configBuilder) {
		if !filepath.IsAbs(name) {
			name = filepath.Join(b.baseDir, name)
		}
		b.cfg.Playlist.OutputFile = name
	}
}

// WithMetricsTextfile enables the Prometheus textfile export inside the temp directory.
func WithMetricsTextfile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Metrics.Textfile = filepath.Join(b.baseDir, name)
	}
}
