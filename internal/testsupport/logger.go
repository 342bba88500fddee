package testsupport

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/Oktay2617/trvip6/internal/logging"
)

// LogBuffer collects console log output for assertions.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything logged so far.
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Lines returns logged lines containing substr.
func (b *LogBuffer) Lines(substr string) []string {
	var out []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line != "" && strings.Contains(line, substr) {
			out = append(out, line)
		}
	}
	return out
}

// NewLogger returns a debug-level console logger writing into a LogBuffer.
func NewLogger(t testing.TB) (*slog.Logger, *LogBuffer) {
	t.Helper()

	buf := &LogBuffer{}
	noColor := false
	logger, err := logging.New(logging.Options{
		Level:  "debug",
		Format: "console",
		Stderr: buf,
		Color:  &noColor,
	})
	if err != nil {
		t.Fatalf("create test logger: %v", err)
	}
	return logger, buf
}
