package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const ansiReset = "\x1b[0m"

var levelStyles = []struct {
	min   slog.Level
	label string
	color string
}{
	{slog.LevelError, "ERROR", "\x1b[31m"},
	{slog.LevelWarn, "WARN", "\x1b[33m"},
	{slog.LevelInfo, "INFO", "\x1b[34m"},
}

// consoleHandler writes one line per record:
//
//	2026-01-02T15:04:05Z ERROR convert: catalog could not be fetched kind=http error="..." run_id=...
//
// The component becomes the message prefix, kind follows the message and
// run_id closes the line. Other attributes keep their order.
type consoleHandler struct {
	mu       *sync.Mutex
	w        io.Writer
	level    slog.Level
	colorize bool
	prefix   string
	fields   lineFields
}

type field struct {
	key   string
	value string
}

type lineFields struct {
	component string
	kind      string
	runID     string
	rest      []field
}

func newConsoleHandler(w io.Writer, level slog.Level, colorize bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level, colorize: colorize}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	fields := h.fields
	fields.rest = slices.Clip(fields.rest)
	record.Attrs(func(attr slog.Attr) bool {
		fields.add(h.prefix, attr)
		return true
	})

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(ts.UTC().Format(time.RFC3339))
	b.WriteByte(' ')
	b.WriteString(h.label(record.Level))
	b.WriteByte(' ')
	if fields.component != "" {
		b.WriteString(fields.component)
		b.WriteString(": ")
	}
	if msg := strings.TrimSpace(record.Message); msg != "" {
		b.WriteString(msg)
	} else {
		b.WriteString("-")
	}
	if fields.kind != "" {
		writeField(&b, FieldKind, fields.kind)
	}
	for _, f := range fields.rest {
		writeField(&b, f.key, f.value)
	}
	if fields.runID != "" {
		writeField(&b, FieldRunID, fields.runID)
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.fields.rest = slices.Clone(h.fields.rest)
	for _, attr := range attrs {
		clone.fields.add(h.prefix, attr)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.fields.rest = slices.Clone(h.fields.rest)
	clone.prefix = h.prefix + name + "."
	return &clone
}

func (h *consoleHandler) label(level slog.Level) string {
	label, color := "DEBUG", "\x1b[90m"
	for _, style := range levelStyles {
		if level >= style.min {
			label, color = style.label, style.color
			break
		}
	}
	if !h.colorize {
		return label
	}
	return color + label + ansiReset
}

func (f *lineFields) add(prefix string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			f.add(prefix, member)
		}
		return
	}

	key := prefix + attr.Key
	switch key {
	case FieldComponent:
		f.component = attr.Value.String()
	case FieldKind:
		f.kind = formatValue(attr.Value)
	case FieldRunID:
		f.runID = formatValue(attr.Value)
	default:
		f.rest = append(f.rest, field{key: key, value: formatValue(attr.Value)})
	}
}

func writeField(b *strings.Builder, key, value string) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
}

// formatValue renders a value in logfmt style, quoting anything with spaces,
// quotes, or '='.
func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) >= 0 {
		return strconv.Quote(s)
	}
	return s
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
