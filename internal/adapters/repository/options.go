// Package repository defines the tensor event store interface and errors.
package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithMetricsEnabled toggles store gauge and latency reporting. Tests that
// construct many stores disable it to keep the global registry quiet.
func WithMetricsEnabled(enabled bool) Option {
	return func(s *MemStore) {
		s.metricsEnabled = enabled
	}
}
