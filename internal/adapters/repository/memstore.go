// Package repository defines the tensor event store interface and errors.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/curveboard/curveboard/internal/domain/model"
	"github.com/curveboard/curveboard/internal/domain/types"
	"github.com/curveboard/curveboard/pkg/metrics"
)

// In-memory Store implementation.
//
// Series are keyed run -> tag. Events within a series are kept in insertion
// order; the summary writer logs in nondecreasing step order, and this store
// preserves whatever order it was given. Reads are safe for any number of
// concurrent callers; writes take the exclusive lock.

// series holds one run/tag event stream with its logged metadata.
type series struct {
	plugin string
	info   types.TagInfo
	events []model.TensorEvent
}

// MemStore is an in-memory Store safe for concurrent use.
type MemStore struct {
	mu             sync.RWMutex
	runs           map[string]map[string]*series
	eventCount     int
	metricsEnabled bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		runs:           make(map[string]map[string]*series),
		metricsEnabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddRun registers a run with no series. Runs gain series implicitly through
// Append; AddRun exists so a run that produced no relevant data still shows
// up in RunTags with an empty tag set.
func (s *MemStore) AddRun(run string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[run]; !ok {
		s.runs[run] = make(map[string]*series)
	}
	s.updateGauges()
}

// Append adds events to the (run, tag) series, creating it with the given
// plugin scope and metadata on first use. Callers append in step order.
func (s *MemStore) Append(run, tag, plugin string, info types.TagInfo, events ...model.TensorEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags, ok := s.runs[run]
	if !ok {
		tags = make(map[string]*series)
		s.runs[run] = tags
	}
	sr, ok := tags[tag]
	if !ok {
		sr = &series{plugin: plugin, info: info}
		tags[tag] = sr
	}
	sr.events = append(sr.events, events...)
	s.eventCount += len(events)
	s.updateGauges()
}

// Events implements Store.
func (s *MemStore) Events(_ context.Context, run, tag string) ([]model.TensorEvent, error) {
	start := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	tags, ok := s.runs[run]
	if !ok {
		return nil, ErrNotFound
	}
	sr, ok := tags[tag]
	if !ok {
		return nil, ErrNotFound
	}

	// Copy the slice header so later appends cannot be observed by callers.
	out := make([]model.TensorEvent, len(sr.events))
	copy(out, sr.events)

	if s.metricsEnabled {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	}
	return out, nil
}

// RunTags implements Store.
func (s *MemStore) RunTags(_ context.Context, plugin string) (map[string]map[string]types.TagInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]map[string]types.TagInfo, len(s.runs))
	for run, tags := range s.runs {
		m := make(map[string]types.TagInfo)
		for tag, sr := range tags {
			if sr.plugin == plugin {
				m[tag] = sr.info
			}
		}
		out[run] = m
	}
	return out, nil
}

// Counts reports how many runs, series, and events the store holds.
func (s *MemStore) Counts() (runs, seriesCount, events int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tags := range s.runs {
		seriesCount += len(tags)
	}
	return len(s.runs), seriesCount, s.eventCount
}

// updateGauges refreshes the store gauges. Callers hold at least the read lock.
func (s *MemStore) updateGauges() {
	if !s.metricsEnabled {
		return
	}
	seriesCount := 0
	for _, tags := range s.runs {
		seriesCount += len(tags)
	}
	metrics.UpdateStoreRuns(len(s.runs))
	metrics.UpdateStoreSeries(seriesCount)
	metrics.UpdateStoreEvents(s.eventCount)
}
