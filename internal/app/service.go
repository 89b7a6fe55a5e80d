// Package service provides the core curve data service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sort"

	repository "github.com/curveboard/curveboard/internal/adapters/repository"
	"github.com/curveboard/curveboard/internal/domain/model"
	"github.com/curveboard/curveboard/internal/domain/types"
	"github.com/curveboard/curveboard/pkg/logger"
	"github.com/curveboard/curveboard/pkg/metrics"
)

// DefaultPlugin is the reserved namespace scoping tags to this service.
// A tag belongs to this service iff it was logged with this plugin name.
const DefaultPlugin = "pr_curves"

// Service answers curve data queries against a single event store. It holds
// no mutable state: every operation is an idempotent read, so concurrent
// requests need no locking beyond what the store itself provides.
type Service struct {
	store  repository.Store
	plugin string
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the event store queried by the service.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithPlugin overrides the plugin namespace used for tag discovery.
func WithPlugin(plugin string) Option {
	return func(s *Service) {
		if plugin != "" {
			s.plugin = plugin
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		plugin: DefaultPlugin,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TagsPerRun maps every run known to the store to its tags and their display
// metadata. Runs with no relevant tags appear with an empty map; an empty
// overall result means no run has produced relevant data yet.
func (s *Service) TagsPerRun(ctx context.Context) (map[string]map[string]types.TagInfo, error) {
	return s.store.RunTags(ctx, s.plugin)
}

// AvailableSteps maps each run with at least one relevant tag to the steps
// logged on one of its tags, in store order. Steps are normally shared
// across a run's tags, so a single sampled tag is enough; the sampled tag is
// the lexicographically smallest name, which keeps the result deterministic
// across store implementations. Per-tag step divergence is not surfaced here.
func (s *Service) AvailableSteps(ctx context.Context) (map[string][]int64, error) {
	runTags, err := s.store.RunTags(ctx, s.plugin)
	if err != nil {
		return nil, err
	}

	response := make(map[string][]int64)
	for run, tags := range runTags {
		if len(tags) == 0 {
			// This run lacks data for this plugin.
			continue
		}
		names := make([]string, 0, len(tags))
		for tag := range tags {
			names = append(names, tag)
		}
		sort.Strings(names)

		events, err := s.store.Events(ctx, run, names[0])
		if err != nil {
			return nil, err
		}
		steps := make([]int64, len(events))
		for i, e := range events {
			steps[i] = e.Step
		}
		response[run] = steps
	}
	return response, nil
}

// Curves fetches the curve entries for tag on each requested run. The call
// is all-or-nothing: an unknown run/tag pair fails the whole call with a
// LookupError naming the pair, and no partial map is returned. Entries keep
// the store's order.
func (s *Service) Curves(ctx context.Context, runs []string, tag string) (map[string][]types.CurveEntry, error) {
	metrics.RecordCurveQuery()

	response := make(map[string][]types.CurveEntry, len(runs))
	served := 0
	for _, run := range runs {
		events, err := s.store.Events(ctx, run, tag)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				metrics.RecordLookupFailure()
				if s.logger != nil {
					s.logger.Debug(ctx, "curve lookup failed",
						logger.String("run", run), logger.String("tag", tag))
				}
				return nil, &LookupError{Run: run, Tag: tag}
			}
			return nil, err
		}

		entries := make([]types.CurveEntry, len(events))
		for i, e := range events {
			entries[i] = curveEntry(e)
		}
		response[run] = entries
		served += len(entries)
	}

	metrics.RecordCurveEntries(served)
	return response, nil
}

// Active reports whether any run has at least one relevant tag. The host
// uses it to decide visibility, so it reuses the tag discovery query and
// decodes no tensors.
func (s *Service) Active(ctx context.Context) bool {
	if s.store == nil {
		return false
	}
	runTags, err := s.store.RunTags(ctx, s.plugin)
	if err != nil {
		return false
	}
	for _, tags := range runTags {
		if len(tags) > 0 {
			return true
		}
	}
	return false
}

// GetStats returns current service statistics.
func (s *Service) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"plugin": s.plugin,
	}
	if s.store == nil {
		stats["active"] = false
		return stats
	}

	ctx := context.Background()
	runTags, err := s.store.RunTags(ctx, s.plugin)
	if err != nil {
		stats["active"] = false
		return stats
	}

	taggedRuns, totalTags := 0, 0
	for _, tags := range runTags {
		if len(tags) > 0 {
			taggedRuns++
		}
		totalTags += len(tags)
	}
	stats["runs"] = len(runTags)
	stats["taggedRuns"] = taggedRuns
	stats["tags"] = totalTags
	stats["active"] = taggedRuns > 0
	return stats
}

// curveEntry copies one tensor event into the response shape. Precision and
// recall come verbatim from the payload's reserved rows.
func curveEntry(e model.TensorEvent) types.CurveEntry {
	precision := make([]float64, len(e.Values[model.PrecisionIndex]))
	copy(precision, e.Values[model.PrecisionIndex])
	recall := make([]float64, len(e.Values[model.RecallIndex]))
	copy(recall, e.Values[model.RecallIndex])
	return types.CurveEntry{
		WallTime:  e.WallTime,
		Step:      e.Step,
		Precision: precision,
		Recall:    recall,
	}
}
