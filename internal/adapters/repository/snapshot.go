package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/curveboard/curveboard/internal/domain/model"
	"github.com/curveboard/curveboard/internal/domain/types"
)

// Snapshot is the on-disk JSON form of a store's contents. It is what the
// seeder writes and what the server loads at startup via the data_file
// config key.
type Snapshot struct {
	// Runs lists runs that exist without any series, so a run that logged
	// nothing relevant still appears in tag discovery.
	Runs []string `json:"runs,omitempty"`

	Series []SeriesRecord `json:"series"`
}

// SeriesRecord is one run/tag stream with its metadata and events.
type SeriesRecord struct {
	Run         string        `json:"run"`
	Tag         string        `json:"tag"`
	Plugin      string        `json:"plugin"`
	DisplayName string        `json:"displayName"`
	Description string        `json:"description"`
	Events      []EventRecord `json:"events"`
}

// EventRecord is the serialized form of one tensor event.
type EventRecord struct {
	WallTime float64     `json:"wall_time"`
	Step     int64       `json:"step"`
	Values   [][]float64 `json:"values"`
}

// ReadSnapshot loads a snapshot document from path.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	return &snap, nil
}

// WriteFile writes the snapshot document to path as indented JSON.
func (s *Snapshot) WriteFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load replays a snapshot into the store.
func (s *MemStore) Load(snap *Snapshot) {
	for _, run := range snap.Runs {
		s.AddRun(run)
	}
	for _, rec := range snap.Series {
		events := make([]model.TensorEvent, len(rec.Events))
		for i, e := range rec.Events {
			events[i] = model.TensorEvent{WallTime: e.WallTime, Step: e.Step, Values: e.Values}
		}
		info := types.TagInfo{DisplayName: rec.DisplayName, Description: rec.Description}
		s.Append(rec.Run, rec.Tag, rec.Plugin, info, events...)
	}
}

// Snapshot captures the store's current contents.
func (s *MemStore) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{}
	for run, tags := range s.runs {
		if len(tags) == 0 {
			snap.Runs = append(snap.Runs, run)
			continue
		}
		for tag, sr := range tags {
			rec := SeriesRecord{
				Run:         run,
				Tag:         tag,
				Plugin:      sr.plugin,
				DisplayName: sr.info.DisplayName,
				Description: sr.info.Description,
			}
			for _, e := range sr.events {
				rec.Events = append(rec.Events, EventRecord{WallTime: e.WallTime, Step: e.Step, Values: e.Values})
			}
			snap.Series = append(snap.Series, rec)
		}
	}
	return snap
}
