// Package repository defines the tensor event store interface and errors.
package repository

import (
	"context"

	"github.com/curveboard/curveboard/internal/domain/model"
	"github.com/curveboard/curveboard/internal/domain/types"
)

// Store provides read access to logged tensor event streams.
type Store interface {
	// Events returns the tensor events logged for run and tag, in the order
	// they were written (nondecreasing step).
	// Returns ErrNotFound if the run/tag pair is unknown.
	Events(ctx context.Context, run, tag string) ([]model.TensorEvent, error)

	// RunTags maps every run known to the store to the tags that carry
	// summary metadata for plugin. Runs with no matching tags map to an
	// empty set; they are never omitted.
	RunTags(ctx context.Context, plugin string) (map[string]map[string]types.TagInfo, error)
}
