package convert_test

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Oktay2617/trvip6/internal/catalog"
	"github.com/Oktay2617/trvip6/internal/convert"
	"github.com/Oktay2617/trvip6/internal/playlist"
	"github.com/Oktay2617/trvip6/internal/testsupport"
)

const sampleCatalog = `[
	{"id": 42, "name": " ABC ", "country": "US"},
	{"name": "NoID"},
	{"id": 7, "name": "Yedi", "country": "Turkey"}
]`

func TestRunWritesPlaylist(t *testing.T) {
	server := testsupport.ServeCatalog(t, http.StatusOK, sampleCatalog)
	cfg := testsupport.NewConfig(t, testsupport.WithSourceURL(server.URL))
	logger, logs := testsupport.NewLogger(t)

	result, err := convert.Run(context.Background(), cfg, convert.Options{Logger: logger})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if server.Requests() != 1 {
		t.Fatalf("expected exactly one catalog request, got %d", server.Requests())
	}
	if !result.Written || result.WriteErr != nil {
		t.Fatalf("expected playlist to be written, got %+v", result)
	}
	if result.Records != 3 || result.Stats.Accepted != 2 || result.Stats.Skipped != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	want := strings.Join([]string{
		"#EXTM3U",
		"#EXT-X-USER-AGENT:" + cfg.Source.UserAgent,
		"#EXT-X-REFERER:https://vavoo.to/",
		"#EXT-X-ORIGIN:https://vavoo.to",
		`#EXTINF:-1 tvg-name="ABC" group-title="US",ABC`,
		"https://vavoo.to/play/42/index.m3u8",
		`#EXTINF:-1 tvg-name="Yedi" group-title="Turkey",Yedi`,
		"https://vavoo.to/play/7/index.m3u8",
	}, "\n")
	if got := testsupport.ReadFile(t, cfg.Playlist.OutputFile); got != want {
		t.Fatalf("unexpected playlist:\n%s", got)
	}
	if len(logs.Lines("conversion complete")) != 1 {
		t.Fatalf("expected completion log line, got:\n%s", logs.String())
	}
}

func TestRunIsIdempotent(t *testing.T) {
	server := testsupport.ServeCatalog(t, http.StatusOK, sampleCatalog)
	cfg := testsupport.NewConfig(t, testsupport.WithSourceURL(server.URL))

	if _, err := convert.Run(context.Background(), cfg, convert.Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := testsupport.ReadFile(t, cfg.Playlist.OutputFile)
	if _, err := convert.Run(context.Background(), cfg, convert.Options{}); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second := testsupport.ReadFile(t, cfg.Playlist.OutputFile); second != first {
		t.Fatal("expected byte-identical output across runs")
	}
}

func TestRunEmptyCatalogLeavesExistingFile(t *testing.T) {
	server := testsupport.ServeCatalog(t, http.StatusOK, `[]`)
	cfg := testsupport.NewConfig(t, testsupport.WithSourceURL(server.URL))
	testsupport.WriteFile(t, cfg.Playlist.OutputFile, "previous run")

	_, err := convert.Run(context.Background(), cfg, convert.Options{})
	if !errors.Is(err, convert.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
	if got := testsupport.ReadFile(t, cfg.Playlist.OutputFile); got != "previous run" {
		t.Fatalf("expected existing playlist untouched, got %q", got)
	}
}

func TestRunWithoutAcceptedChannelsFails(t *testing.T) {
	server := testsupport.ServeCatalog(t, http.StatusOK, `[{"name": "NoID"}]`)
	cfg := testsupport.NewConfig(t, testsupport.WithSourceURL(server.URL))

	result, err := convert.Run(context.Background(), cfg, convert.Options{})
	if !errors.Is(err, convert.ErrNoChannels) {
		t.Fatalf("expected ErrNoChannels, got %v", err)
	}
	if result.Stats.Skipped != 1 || result.Written {
		t.Fatalf("unexpected result: %+v", result)
	}
	testsupport.AssertMissing(t, cfg.Playlist.OutputFile)
}

func TestRunFetchFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		marker error
	}{
		{"malformed json", http.StatusOK, `{not json`, catalog.ErrDecode},
		{"server error", http.StatusInternalServerError, `oops`, catalog.ErrHTTP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testsupport.ServeCatalog(t, tt.status, tt.body)
			cfg := testsupport.NewConfig(t, testsupport.WithSourceURL(server.URL))
			logger, logs := testsupport.NewLogger(t)

			_, err := convert.Run(context.Background(), cfg, convert.Options{Logger: logger})
			if !errors.Is(err, tt.marker) {
				t.Fatalf("expected %v, got %v", tt.marker, err)
			}
			testsupport.AssertMissing(t, cfg.Playlist.OutputFile)
			lines := logs.Lines("could not be fetched")
			if len(lines) != 1 || !strings.Contains(lines[0], "kind="+catalog.Kind(err)) {
				t.Fatalf("expected fetch failure log with kind, got:\n%s", logs.String())
			}
		})
	}
}

func TestRunWriteFailureIsNotFatal(t *testing.T) {
	server := testsupport.ServeCatalog(t, http.StatusOK, sampleCatalog)
	cfg := testsupport.NewConfig(t,
		testsupport.WithSourceURL(server.URL),
		testsupport.WithOutputFile(filepath.Join("no", "such", "dir", "out.m3u8")),
	)
	logger, logs := testsupport.NewLogger(t)

	result, err := convert.Run(context.Background(), cfg, convert.Options{Logger: logger})
	if err != nil {
		t.Fatalf("expected write failure to keep the run successful, got %v", err)
	}
	if result.Written || !errors.Is(result.WriteErr, playlist.ErrIO) {
		t.Fatalf("expected ErrIO in result, got %+v", result)
	}
	if len(logs.Lines("kind=io")) != 1 {
		t.Fatalf("expected io failure log line, got:\n%s", logs.String())
	}
	if len(logs.Lines("conversion complete")) != 1 {
		t.Fatalf("expected completion log even after write failure, got:\n%s", logs.String())
	}
}

type stubFetcher struct {
	channels []catalog.Channel
	err      error
	calls    int
}

func (s *stubFetcher) Fetch(context.Context) ([]catalog.Channel, error) {
	s.calls++
	return s.channels, s.err
}

func TestRunUsesInjectedFetcher(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fetcher := &stubFetcher{err: &catalog.Error{Marker: catalog.ErrTimeout, URL: cfg.Source.URL}}

	_, err := convert.Run(context.Background(), cfg, convert.Options{Fetcher: fetcher})
	if !errors.Is(err, catalog.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected a single fetch attempt, got %d", fetcher.calls)
	}
}

func TestRunExportsMetrics(t *testing.T) {
	server := testsupport.ServeCatalog(t, http.StatusOK, sampleCatalog)
	cfg := testsupport.NewConfig(t,
		testsupport.WithSourceURL(server.URL),
		testsupport.WithMetricsTextfile("trvip6.prom"),
	)
	stamp := time.Unix(1700000000, 0)

	if _, err := convert.Run(context.Background(), cfg, convert.Options{Now: func() time.Time { return stamp }}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	content := testsupport.ReadFile(t, cfg.Metrics.Textfile)
	for _, want := range []string{
		"trvip6_catalog_records 3",
		"trvip6_channels_accepted 2",
		"trvip6_channels_skipped 1",
		"trvip6_run_success 1",
		"trvip6_playlist_written 1",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in metrics:\n%s", want, content)
		}
	}
}

func TestRunExportsFailureMetrics(t *testing.T) {
	server := testsupport.ServeCatalog(t, http.StatusBadGateway, ``)
	cfg := testsupport.NewConfig(t,
		testsupport.WithSourceURL(server.URL),
		testsupport.WithMetricsTextfile("trvip6.prom"),
	)

	if _, err := convert.Run(context.Background(), cfg, convert.Options{}); err == nil {
		t.Fatal("expected fetch failure")
	}
	content := testsupport.ReadFile(t, cfg.Metrics.Textfile)
	if !strings.Contains(content, "trvip6_run_success 0") || !strings.Contains(content, `trvip6_fetch_failure{kind="http"} 1`) {
		t.Fatalf("unexpected failure metrics:\n%s", content)
	}
}

func TestRunWriteFailureMetrics(t *testing.T) {
	server := testsupport.ServeCatalog(t, http.StatusOK, sampleCatalog)
	cfg := testsupport.NewConfig(t,
		testsupport.WithSourceURL(server.URL),
		testsupport.WithOutputFile(filepath.Join("missing", "out.m3u8")),
		testsupport.WithMetricsTextfile("trvip6.prom"),
	)

	if _, err := convert.Run(context.Background(), cfg, convert.Options{}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	content := testsupport.ReadFile(t, cfg.Metrics.Textfile)
	if !strings.Contains(content, "trvip6_run_success 1") || !strings.Contains(content, "trvip6_playlist_written 0") {
		t.Fatalf("unexpected write failure metrics:\n%s", content)
	}
}
