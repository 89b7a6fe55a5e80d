// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":6006".
	Addr string `koanf:"addr"`

	// Plugin is the reserved namespace scoping tags to the curve service.
	Plugin string `koanf:"plugin"`

	// DataFile points at a JSON snapshot to load into the event store at
	// startup. Empty means no file is loaded.
	DataFile string `koanf:"data_file"`

	// DemoData loads a generated demo dataset when no data file is given,
	// so a fresh binary serves something out of the box.
	DemoData bool `koanf:"demo_data"`

	// DemoSteps and DemoThresholds size the generated demo dataset.
	DemoSteps      int `koanf:"demo_steps"`
	DemoThresholds int `koanf:"demo_thresholds"`

	// DemoExtraRuns adds randomly named runs to the demo dataset.
	DemoExtraRuns int `koanf:"demo_extra_runs"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":6006",
		Plugin:         "pr_curves",
		DataFile:       "",
		DemoData:       true,
		DemoSteps:      3,
		DemoThresholds: 5,
		DemoExtraRuns:  0,
	}
}
