// Package demodata generates a synthetic precision/recall dataset so a
// fresh server has something to serve and the service tests have realistic
// input. The dataset mirrors what a small classification job would log: two
// runs, one PR-curve tag per classified color, a handful of steps, and a
// fixed number of thresholds per curve.
package demodata

import (
	"fmt"

	"github.com/google/uuid"

	repository "github.com/curveboard/curveboard/internal/adapters/repository"
)

// Config sizes the generated dataset.
type Config struct {
	Steps      int
	Thresholds int
	Plugin     string

	// ExtraRuns adds randomly named runs with the same tag layout, for
	// load-testing discovery endpoints against many runs.
	ExtraRuns int
}

// NewConfig returns a Config with defaults applied.
func NewConfig() Config {
	return Config{
		Steps:      DefaultSteps,
		Thresholds: DefaultThresholds,
		Plugin:     DefaultPlugin,
	}
}

// Generate builds the demo dataset as a store snapshot.
func Generate(cfg Config) *repository.Snapshot {
	if cfg.Steps <= 0 {
		cfg.Steps = DefaultSteps
	}
	if cfg.Thresholds <= 0 {
		cfg.Thresholds = DefaultThresholds
	}
	if cfg.Plugin == "" {
		cfg.Plugin = DefaultPlugin
	}

	snap := &repository.Snapshot{}
	appendRun(snap, cfg, RunColors, 1.0)
	appendRun(snap, cfg, RunMasked, maskedDamping)
	for i := 0; i < cfg.ExtraRuns; i++ {
		appendRun(snap, cfg, "exp-"+uuid.NewString()[:8], 1.0)
	}
	return snap
}

// appendRun adds one run's series to the snapshot. damping scales the
// curves down to model a run with weaker predictions.
func appendRun(snap *repository.Snapshot, cfg Config, run string, damping float64) {
	for _, c := range demoColors {
		rec := repository.SeriesRecord{
			Run:         run,
			Tag:         c.name + "/pr_curves",
			Plugin:      cfg.Plugin,
			DisplayName: "classifying " + c.name,
			Description: description(c.stddev),
		}
		for step := 0; step < cfg.Steps; step++ {
			rec.Events = append(rec.Events, repository.EventRecord{
				WallTime: demoWallTimeBase + float64(step),
				Step:     int64(step),
				Values:   curve(cfg.Thresholds, step, cfg.Steps, c.skill*damping),
			})
		}
		snap.Series = append(snap.Series, rec)
	}
}

// curve builds one fixed-layout payload: row 0 precision, row 1 recall,
// each with one value per threshold. Precision starts at 1 at the loosest
// threshold and decays; recall decays from 1 toward 0 as the threshold
// tightens. Both sharpen as the step grows, modelling a classifier that
// improves over training.
func curve(thresholds, step, steps int, skill float64) [][]float64 {
	precision := make([]float64, thresholds)
	recall := make([]float64, thresholds)

	// progress in (0,1]: later steps yield better curves.
	progress := float64(step+1) / float64(steps)
	strength := skill * (0.5 + 0.5*progress)

	for t := 0; t < thresholds; t++ {
		frac := 0.0
		if thresholds > 1 {
			frac = float64(t) / float64(thresholds-1)
		}
		precision[t] = clamp01(1.0 - frac*(1.0-strength))
		recall[t] = clamp01((1.0 - frac) * (0.4 + 0.6*strength))
	}
	return [][]float64{precision, recall}
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

func description(stddev int) string {
	return fmt.Sprintf("<p>The probabilities used to create this PR curve are "+
		"generated from a normal distribution. Its standard deviation is "+
		"initially %d and decreases over time.</p>", stddev)
}
