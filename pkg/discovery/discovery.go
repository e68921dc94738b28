// Package discovery finds the reflections recorded between two events.
//
// The engine walks the calendar days covered by the window between the
// previous event and the current one, reads each day's reflection file, keeps
// the blocks whose timestamps fall inside the window and returns them in
// chronological order. Problems with individual files are logged and treated
// as "no reflections for that day"; they never fail discovery.
package discovery

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ccollicutt/devjournal/pkg/parser"
	"github.com/ccollicutt/devjournal/pkg/store"
)

// DefaultLookback is the window length used when there is no previous event.
const DefaultLookback = 24 * time.Hour

const day = 24 * time.Hour

// Store is the subset of the journal file store the engine reads from.
type Store interface {
	Path(kind store.Kind, date time.Time) string
	Exists(path string) bool
	Read(path string) (string, error)
}

// Engine discovers reflections for events.
type Engine struct {
	store    Store
	logger   *zap.Logger
	location *time.Location
	lookback time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for per-file warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLocation sets the timezone calendar days are computed in. It must match
// the timezone reflection files are named in.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// WithLookback sets the window length used when there is no previous event.
func WithLookback(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.lookback = d
		}
	}
}

// New creates an Engine reading reflection files from s.
func New(s Store, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		logger:   zap.NewNop(),
		location: time.Local,
		lookback: DefaultLookback,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WindowFor returns the window ending at event. It starts at previous when
// one is given, otherwise lookback before event.
func WindowFor(event time.Time, previous *time.Time, lookback time.Duration) (parser.Window, error) {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	start := event.Add(-lookback)
	if previous != nil {
		start = *previous
	}
	return parser.NewWindow(start, event)
}

// CandidateDates returns the calendar days (midnight in loc) whose reflection
// files may hold reflections inside w. It deliberately enumerates
// ceil(len/24h)+1 days, which can include one day more than needed; the
// per-reflection window check discards anything outside w.
func CandidateDates(w parser.Window, loc *time.Location) []time.Time {
	days := int(math.Ceil(float64(w.Duration())/float64(day))) + 1

	seen := make(map[string]bool, days+3)
	dates := make([]time.Time, 0, days+3)
	add := func(y int, m time.Month, d int) {
		date := time.Date(y, m, d, 0, 0, 0, 0, loc)
		key := date.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			dates = append(dates, date)
		}
	}

	for i := 0; i < days; i++ {
		add(w.Start.Add(time.Duration(i) * day).In(loc).Date())
	}
	// 24h steps can land twice on a 25-hour DST day; the end day is always covered.
	add(w.End.In(loc).Date())
	// Reflections labelled in UTC are filed under their UTC date.
	add(w.Start.UTC().Date())
	add(w.End.UTC().Date())

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Discover returns the reflections recorded in the window ending at
// eventTime, sorted oldest first. previous is the time of the preceding event
// or nil when there is none. The only error returned is context cancellation.
func (e *Engine) Discover(ctx context.Context, eventTime time.Time, previous *time.Time) ([]parser.Reflection, error) {
	w, err := WindowFor(eventTime, previous, e.lookback)
	if err != nil {
		e.logger.Warn("skipping reflection discovery", zap.Error(err))
		return nil, nil
	}
	return e.DiscoverWindow(ctx, w)
}

// DiscoverWindow is Discover for an explicit window.
func (e *Engine) DiscoverWindow(ctx context.Context, w parser.Window) ([]parser.Reflection, error) {
	dates := CandidateDates(w, e.location)
	batches := make([][]parser.Reflection, 0, len(dates))

	for _, date := range dates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		batch := e.readDay(date, w)
		if len(batch) > 0 {
			batches = append(batches, batch)
		}
	}

	merged := parser.MergeChronological(batches...)
	e.logger.Debug("reflection discovery complete",
		zap.Time("window_start", w.Start),
		zap.Time("window_end", w.End),
		zap.Int("days_checked", len(dates)),
		zap.Int("reflections", len(merged)))
	return merged, nil
}

// readDay extracts the in-window reflections of one day's file. Any problem
// is logged and yields no reflections.
func (e *Engine) readDay(date time.Time, w parser.Window) []parser.Reflection {
	path := e.store.Path(store.KindReflections, date)
	if !e.store.Exists(path) {
		return nil
	}

	fields := []zap.Field{zap.String("path", path), zap.String("date", date.Format("2006-01-02"))}

	content, err := e.store.Read(path)
	if err != nil {
		var unavailable *store.FileUnavailableError
		if errors.As(err, &unavailable) {
			e.logger.Warn("reflection file unavailable", append(fields, zap.Error(err))...)
		} else {
			e.logger.Warn("reading reflection file", append(fields, zap.Error(err))...)
		}
		return nil
	}

	reflections, err := parser.Extract(content, date, w)
	if err != nil {
		e.logger.Warn("skipping reflection file with invalid timestamp", append(fields, zap.Error(err))...)
		return nil
	}

	for i := range reflections {
		reflections[i].Source = path
	}
	return reflections
}
