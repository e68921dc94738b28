// Package journal records events as journal entries enriched with the
// reflections written since the previous event.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ccollicutt/devjournal/pkg/discovery"
	"github.com/ccollicutt/devjournal/pkg/output"
	"github.com/ccollicutt/devjournal/pkg/parser"
	"github.com/ccollicutt/devjournal/pkg/store"
)

// ErrEmptyReflection is returned by AddReflection for a blank body.
var ErrEmptyReflection = errors.New("reflection text is empty")

// Store is the file store the service reads and appends to.
type Store interface {
	discovery.Store
	AppendBlock(path, text string) error
}

// Event is the occurrence an entry is recorded for.
type Event struct {
	// Time is when the event happened.
	Time time.Time

	// Previous is the time of the preceding event, nil when unknown.
	Previous *time.Time

	// ID identifies the event in the entry header.
	ID string

	// Label is the one-line description under the header.
	Label string
}

// Result describes a recorded entry.
type Result struct {
	// Path is the entries file the entry was (or would be) appended to.
	Path string

	// Text is the rendered entry.
	Text string

	Reflections []parser.Reflection
}

// Service records entries and reflections in a journal.
type Service struct {
	store     Store
	engine    *discovery.Engine
	formatter *output.EntryFormatter
	location  *time.Location
	logger    *zap.Logger
	dryRun    bool
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. It is also handed to discovery.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLocation sets the timezone entry files, reflection files and header
// times use.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithDryRun renders entries without appending them.
func WithDryRun(dryRun bool) Option {
	return func(s *Service) {
		s.dryRun = dryRun
	}
}

// New creates a Service over st. lookback is the discovery window for events
// without a previous event.
func New(st Store, lookback time.Duration, opts ...Option) *Service {
	s := &Service{
		store:    st,
		location: time.Local,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine = discovery.New(st,
		discovery.WithLogger(s.logger),
		discovery.WithLocation(s.location),
		discovery.WithLookback(lookback))
	s.formatter = output.NewEntryFormatter(s.location)
	return s
}

// Discover returns the reflections for an event without recording anything.
func (s *Service) Discover(ctx context.Context, ev Event) ([]parser.Reflection, error) {
	return s.engine.Discover(ctx, ev.Time, ev.Previous)
}

// Record formats an entry for ev and appends it to the entries file of the
// event's date. Reflection discovery problems never fail the save: the entry
// is written without a Reflections section instead.
func (s *Service) Record(ctx context.Context, ev Event, narrative output.Narrative) (*Result, error) {
	reflections, err := s.engine.Discover(ctx, ev.Time, ev.Previous)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("reflection discovery failed, recording entry without reflections", zap.Error(err))
		reflections = nil
	}

	text := s.formatter.Format(output.Entry{
		Time:        ev.Time,
		ID:          ev.ID,
		Label:       ev.Label,
		Narrative:   narrative,
		Reflections: reflections,
	})

	path := s.store.Path(store.KindEntries, ev.Time.In(s.location))
	result := &Result{Path: path, Text: text, Reflections: reflections}

	if s.dryRun {
		s.logger.Debug("dry run, entry not written", zap.String("path", path))
		return result, nil
	}

	if err := s.store.AppendBlock(path, text); err != nil {
		return nil, fmt.Errorf("saving entry: %w", err)
	}

	s.logger.Info("entry recorded",
		zap.String("path", path),
		zap.String("id", ev.ID),
		zap.Int("reflections", len(reflections)))
	return result, nil
}

// AddReflection appends a reflection block stamped with at to the reflection
// file of at's date and returns the file path.
func (s *Service) AddReflection(ctx context.Context, at time.Time, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(body) == "" {
		return "", ErrEmptyReflection
	}

	stamp := parser.LabelTime(at.In(s.location))
	path := s.store.Path(store.KindReflections, stamp)
	block := parser.RenderReflection(stamp, body)

	if s.dryRun {
		return path, nil
	}
	if err := s.store.AppendBlock(path, block); err != nil {
		return "", fmt.Errorf("saving reflection: %w", err)
	}

	s.logger.Debug("reflection recorded", zap.String("path", path), zap.String("label", parser.Label(stamp)))
	return path, nil
}
