package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Oktay2617/trvip6/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// OutputPaths lists destinations: "stdout", "stderr", or a file opened
	// for appending. Empty means stderr.
	OutputPaths []string
	// Stderr stands in for os.Stderr on the "stderr" destination.
	Stderr io.Writer
	// Color forces ANSI level colours on or off. Nil colours only when the
	// sole destination is a terminal.
	Color *bool
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	paths := opts.OutputPaths
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}
	out, err := openWriters(paths, opts.Stderr)
	if err != nil {
		return nil, err
	}

	if format == "json" {
		return slog.New(newJSONHandler(out, level)), nil
	}
	colorize := shouldColorize(out)
	if opts.Color != nil {
		colorize = *opts.Color
	}
	return slog.New(newConsoleHandler(out, level, colorize)), nil
}

// NewFromConfig builds the run logger: stderr (or the supplied stand-in) plus
// the optional [logging] file.
func NewFromConfig(cfg *config.Config, stderr io.Writer) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Stderr: stderr})
	}
	paths := []string{"stderr"}
	if cfg.Logging.File != "" {
		paths = append(paths, cfg.Logging.File)
	}
	return New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: paths,
		Stderr:      stderr,
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return attr
			}
			switch attr.Key {
			case slog.TimeKey:
				return slog.String("ts", attr.Value.Time().UTC().Format(time.RFC3339))
			case slog.LevelKey:
				return slog.String("level", strings.ToLower(attr.Value.String()))
			}
			return attr
		},
	})
}

func openWriters(paths []string, stderr io.Writer) (io.Writer, error) {
	if stderr == nil {
		stderr = os.Stderr
	}
	seen := make(map[string]bool, len(paths))
	writers := make([]io.Writer, 0, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		switch path {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, stderr)
		default:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("create log directory for %s: %w", path, err)
			}
			file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, fmt.Errorf("open log file %s: %w", path, err)
			}
			writers = append(writers, file)
		}
	}
	switch len(writers) {
	case 0:
		return stderr, nil
	case 1:
		return writers[0], nil
	default:
		return io.MultiWriter(writers...), nil
	}
}
