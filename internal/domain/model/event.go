// Package model contains domain models passed between layers.
package model

// Reserved row indices of the tensor payload first axis. The summary writer
// packs one precision vector and one recall vector per event, each holding
// one value per classification threshold.
const (
	PrecisionIndex = 0
	RecallIndex    = 1
)

// TensorEvent represents one logged tensor record within a run/tag stream.
type TensorEvent struct {
	WallTime float64     // seconds since the Unix epoch, as logged
	Step     int64       // training step; nondecreasing within a stream
	Values   [][]float64 // fixed-layout payload: row 0 precision, row 1 recall
}

// Thresholds returns the number of classification thresholds in the payload,
// i.e. the length of the precision row.
func (e TensorEvent) Thresholds() int {
	if len(e.Values) <= PrecisionIndex {
		return 0
	}
	return len(e.Values[PrecisionIndex])
}
