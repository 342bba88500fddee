package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/Oktay2617/trvip6/internal/config"
)

type cliTestEnv struct {
	home       string
	workDir    string
	configPath string
	outputFile string
}

// setupCLITestEnv isolates HOME and the working directory so no stray
// configuration file is picked up.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	work := filepath.Join(base, "work")
	for _, dir := range []string{home, work} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	t.Setenv("HOME", home)
	t.Setenv("TRVIP6_SOURCE_URL", "")
	t.Setenv("TRVIP6_OUTPUT_FILE", "")
	t.Chdir(work)

	return &cliTestEnv{
		home:       home,
		workDir:    work,
		configPath: filepath.Join(base, "trvip6.toml"),
		outputFile: filepath.Join(base, "out.m3u8"),
	}
}

func (e *cliTestEnv) writeConfig(t *testing.T, sourceURL string) {
	t.Helper()

	cfg := config.Default()
	cfg.Source.URL = sourceURL
	cfg.Source.TimeoutSeconds = 5
	cfg.Playlist.OutputFile = e.outputFile
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(e.configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}
