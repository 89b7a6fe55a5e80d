// Package types contains common types used across the application
package types

// CurveEntry is the response shape for one logged precision/recall curve.
// Precision and recall are positionally paired: index i holds the metrics
// at classification threshold i.
type CurveEntry struct {
	WallTime  float64   `json:"wall_time"`
	Step      int64     `json:"step"`
	Precision []float64 `json:"precision"`
	Recall    []float64 `json:"recall"`
}

// TagInfo carries the display metadata logged alongside a tag. Description
// is free-form and may contain presentation markup; it is passed through
// unmodified.
type TagInfo struct {
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}
