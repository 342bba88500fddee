package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trvip6"

// Recorder holds the per-run gauges on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	CatalogRecords   prometheus.Gauge
	ChannelsAccepted prometheus.Gauge
	ChannelsSkipped  prometheus.Gauge
	ChannelsFaulted  prometheus.Gauge
	GroupChannels    *prometheus.GaugeVec
	RunSuccess       prometheus.Gauge
	PlaylistWritten  prometheus.Gauge
	LastRunTimestamp prometheus.Gauge
	FetchDuration    prometheus.Gauge
	FetchFailures    *prometheus.GaugeVec
}

// NewRecorder registers a fresh gauge set.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		CatalogRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_records",
			Help:      "Number of entries returned by the channel catalog",
		}),
		ChannelsAccepted: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channels_accepted",
			Help:      "Channels written to the playlist",
		}),
		ChannelsSkipped: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channels_skipped",
			Help:      "Channels left out because id or name was missing",
		}),
		ChannelsFaulted: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channels_faulted",
			Help:      "Channels left out because the entry could not be decoded",
		}),
		GroupChannels: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "group_channels",
			Help:      "Accepted channels per group-title",
		}, []string{"group"}),
		RunSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_success",
			Help:      "1 when the last run exited successfully, 0 otherwise",
		}),
		PlaylistWritten: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "playlist_written",
			Help:      "1 when the last run wrote the playlist file, 0 otherwise",
		}),
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
		FetchDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Wall time spent fetching the catalog",
		}),
		FetchFailures: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fetch_failure",
			Help:      "1 for the failure kind of the last fetch, when it failed",
		}, []string{"kind"}),
	}
}

// Registry exposes the gatherer backing this recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveFetch records the fetch duration and, on failure, its kind.
func (r *Recorder) ObserveFetch(duration time.Duration, records int, failureKind string) {
	r.FetchDuration.Set(duration.Seconds())
	r.CatalogRecords.Set(float64(records))
	if failureKind != "" {
		r.FetchFailures.WithLabelValues(failureKind).Set(1)
	}
}

// ObserveBuild records the transform counters.
func (r *Recorder) ObserveBuild(accepted, skipped, faulted int, groups map[string]int) {
	r.ChannelsAccepted.Set(float64(accepted))
	r.ChannelsSkipped.Set(float64(skipped))
	r.ChannelsFaulted.Set(float64(faulted))
	for group, count := range groups {
		r.GroupChannels.WithLabelValues(group).Set(float64(count))
	}
}

// Finish stamps the run outcome. A successful run may still have failed to
// write the playlist.
func (r *Recorder) Finish(success, written bool, at time.Time) {
	r.RunSuccess.Set(boolGauge(success))
	r.PlaylistWritten.Set(boolGauge(written))
	r.LastRunTimestamp.Set(float64(at.Unix()))
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// WriteTextfile writes the gauges to path. The parent directory must exist.
func (r *Recorder) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("metrics textfile directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
