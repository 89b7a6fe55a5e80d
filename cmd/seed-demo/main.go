// Command seed-demo writes a generated demo dataset to a snapshot file that
// the server loads via the data_file config key.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/curveboard/curveboard/internal/demodata"
	"github.com/curveboard/curveboard/pkg/logger"
)

func main() {
	out := flag.String("out", "demo-data.json", "output snapshot path")
	steps := flag.Int("steps", demodata.DefaultSteps, "steps per series")
	thresholds := flag.Int("thresholds", demodata.DefaultThresholds, "thresholds per curve")
	extraRuns := flag.Int("extra-runs", 0, "additional randomly named runs")
	plugin := flag.String("plugin", demodata.DefaultPlugin, "plugin namespace for generated tags")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()
	ctx := context.Background()

	snap := demodata.Generate(demodata.Config{
		Steps:      *steps,
		Thresholds: *thresholds,
		Plugin:     *plugin,
		ExtraRuns:  *extraRuns,
	})

	if err := snap.WriteFile(*out); err != nil {
		log.Error(ctx, "failed to write snapshot", logger.String("path", *out), logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "demo dataset written",
		logger.String("path", *out),
		logger.Int("series", len(snap.Series)),
		logger.Int("steps", *steps),
		logger.Int("thresholds", *thresholds))
}
