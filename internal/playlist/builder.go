package playlist

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Oktay2617/trvip6/internal/catalog"
	"github.com/Oktay2617/trvip6/internal/config"
	"github.com/Oktay2617/trvip6/internal/logging"
)

const (
	headerTag    = "#EXTM3U"
	userAgentTag = "#EXT-X-USER-AGENT:"
	refererTag   = "#EXT-X-REFERER:"
	originTag    = "#EXT-X-ORIGIN:"
	extinfFormat = `#EXTINF:-1 tvg-name="%s" group-title="%s",%s`
)

// Options controls the header block and channel line layout.
type Options struct {
	UserAgent        string
	Referer          string
	Origin           string
	BasePlayURL      string
	PlaySuffix       string
	DefaultName      string
	DefaultGroup     string
	NormalizeUnicode bool
}

// OptionsFromConfig derives build options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		UserAgent:        cfg.Source.UserAgent,
		Referer:          cfg.Source.Referer,
		Origin:           cfg.Origin(),
		BasePlayURL:      cfg.Playlist.BasePlayURL,
		PlaySuffix:       cfg.Playlist.PlaySuffix,
		DefaultName:      cfg.Playlist.DefaultName,
		DefaultGroup:     cfg.Playlist.DefaultGroup,
		NormalizeUnicode: cfg.Playlist.NormalizeUnicode,
	}
}

// Playlist is the ordered line sequence of an extended M3U file.
type Playlist struct {
	lines  []string
	header int
}

// Lines returns a copy of every line, header included.
func (p *Playlist) Lines() []string {
	out := make([]string, len(p.lines))
	copy(out, p.lines)
	return out
}

// Header returns the header block lines.
func (p *Playlist) Header() []string {
	return append([]string(nil), p.lines[:p.header]...)
}

// Entries returns the number of channels in the playlist.
func (p *Playlist) Entries() int {
	return (len(p.lines) - p.header) / 2
}

// String renders the playlist as it is written to disk.
func (p *Playlist) String() string {
	return strings.Join(p.lines, "\n")
}

func (p *Playlist) appendEntry(name, group, url string) {
	p.lines = append(p.lines, fmt.Sprintf(extinfFormat, name, group, name), url)
}

// Stats summarizes one Build call.
type Stats struct {
	Total    int
	Accepted int
	Skipped  int
	Faulted  int
	Groups   map[string]int
}

// GroupCount is the number of accepted channels in one group-title.
type GroupCount struct {
	Group    string
	Channels int
}

// GroupCounts returns per-group totals, largest first and then by name.
func (s Stats) GroupCounts() []GroupCount {
	out := make([]GroupCount, 0, len(s.Groups))
	for group, count := range s.Groups {
		out = append(out, GroupCount{Group: group, Channels: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Channels != out[j].Channels {
			return out[i].Channels > out[j].Channels
		}
		return out[i].Group < out[j].Group
	})
	return out
}

// NewHeader returns a playlist holding only the header block.
func NewHeader(opts Options) *Playlist {
	return &Playlist{
		lines: []string{
			headerTag,
			userAgentTag + opts.UserAgent,
			refererTag + opts.Referer,
			originTag + opts.Origin,
		},
		header: 4,
	}
}

// Build converts channels in order. It never fails: undecodable entries and
// entries missing an id or name are logged and left out of the result.
func Build(channels []catalog.Channel, opts Options, logger *slog.Logger) (*Playlist, Stats) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger.Info("building playlist", "channels", len(channels))

	pl := NewHeader(opts)
	stats := Stats{Total: len(channels), Groups: make(map[string]int)}

	for index, ch := range channels {
		rec, err := ch.Record()
		if err != nil {
			stats.Faulted++
			logger.Error("channel could not be processed",
				logging.FieldKind, "record",
				"index", index,
				"channel", ch.String(),
				logging.Error(err),
			)
			continue
		}

		name := rec.DisplayName(opts.DefaultName)
		group := rec.Group(opts.DefaultGroup)
		if !rec.HasID() || name == "" {
			stats.Skipped++
			logger.Warn("channel skipped: missing id or name",
				"index", index,
				"channel", ch.String(),
			)
			continue
		}
		if opts.NormalizeUnicode {
			name = norm.NFC.String(name)
			group = norm.NFC.String(group)
		}

		pl.appendEntry(name, group, opts.BasePlayURL+rec.ID+opts.PlaySuffix)
		stats.Accepted++
		stats.Groups[group]++
	}

	logger.Info("playlist built",
		"accepted", stats.Accepted,
		"skipped", stats.Skipped,
		"faulted", stats.Faulted,
		"groups", len(stats.Groups),
	)
	return pl, stats
}
