package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Oktay2617/trvip6/internal/catalog"
	"github.com/Oktay2617/trvip6/internal/config"
	"github.com/Oktay2617/trvip6/internal/logging"
	"github.com/Oktay2617/trvip6/internal/metrics"
	"github.com/Oktay2617/trvip6/internal/playlist"
)

var (
	ErrEmptyCatalog = errors.New("channel catalog is empty")
	ErrNoChannels   = errors.New("no valid channels to write")
)

// Options carries the collaborators of a run. Zero values are replaced with
// the production implementations.
type Options struct {
	Fetcher catalog.Fetcher
	Logger  *slog.Logger
	// Now stamps the metrics export.
	Now func() time.Time
}

// Result describes a finished run.
type Result struct {
	Records       int
	Stats         playlist.Stats
	OutputFile    string
	Written       bool
	WriteErr      error
	FetchDuration time.Duration
}

// Run fetches the catalog, builds the playlist, and writes it to
// cfg.Playlist.OutputFile.
func Run(ctx context.Context, cfg *config.Config, opts Options) (Result, error) {
	if cfg == nil {
		return Result{}, errors.New("config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		client, err := catalog.NewFromConfig(cfg, catalog.WithLogger(logging.NewComponentLogger(logger, "catalog")))
		if err != nil {
			return Result{}, fmt.Errorf("create catalog client: %w", err)
		}
		fetcher = client
	}

	recorder := metrics.NewRecorder()
	result := Result{OutputFile: cfg.Playlist.OutputFile}
	runLogger := logging.NewComponentLogger(logger, "convert")

	r := &runner{cfg: cfg, fetcher: fetcher, logger: logger, runLogger: runLogger, recorder: recorder}
	err := r.run(ctx, &result)
	recorder.Finish(err == nil, result.Written, now())
	exportMetrics(cfg, recorder, runLogger)
	return result, err
}

type runner struct {
	cfg       *config.Config
	fetcher   catalog.Fetcher
	logger    *slog.Logger
	runLogger *slog.Logger
	recorder  *metrics.Recorder
}

func (r *runner) run(ctx context.Context, result *Result) error {
	cfg, runLogger, recorder := r.cfg, r.runLogger, r.recorder

	runLogger.Info("conversion started", "source", cfg.Source.URL, "output", cfg.Playlist.OutputFile)

	fetchStart := time.Now()
	channels, err := r.fetcher.Fetch(ctx)
	result.FetchDuration = time.Since(fetchStart)
	recorder.ObserveFetch(result.FetchDuration, len(channels), catalog.Kind(err))
	if err != nil {
		runLogger.Error("channel catalog could not be fetched; aborting",
			logging.FieldKind, catalog.Kind(err),
			logging.Error(err),
		)
		return err
	}
	result.Records = len(channels)
	if len(channels) == 0 {
		runLogger.Error("no channel data received; aborting")
		return ErrEmptyCatalog
	}

	pl, stats := playlist.Build(channels, playlist.OptionsFromConfig(cfg), logging.NewComponentLogger(r.logger, "playlist"))
	result.Stats = stats
	recorder.ObserveBuild(stats.Accepted, stats.Skipped, stats.Faulted, stats.Groups)
	if stats.Accepted == 0 {
		runLogger.Error("no valid channels to write; aborting",
			"records", stats.Total,
			"skipped", stats.Skipped,
			"faulted", stats.Faulted,
		)
		return ErrNoChannels
	}

	if err := playlist.WritePlaylist(cfg.Playlist.OutputFile, pl); err != nil {
		result.WriteErr = err
		runLogger.Error("playlist could not be written; check write permissions for the output path",
			logging.FieldKind, "io",
			"path", cfg.Playlist.OutputFile,
			logging.Error(err),
		)
	} else {
		result.Written = true
		runLogger.Info("playlist saved", "path", cfg.Playlist.OutputFile, "channels", pl.Entries())
	}

	runLogger.Info("conversion complete", "accepted", stats.Accepted, "records", stats.Total)
	return nil
}

func exportMetrics(cfg *config.Config, recorder *metrics.Recorder, logger *slog.Logger) {
	if cfg.Metrics.Textfile == "" {
		return
	}
	if err := recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warn("metrics export failed", "path", cfg.Metrics.Textfile, logging.Error(err))
		return
	}
	logger.Debug("metrics exported", "path", cfg.Metrics.Textfile)
}
