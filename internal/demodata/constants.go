package demodata

// Default demo dataset sizing.
const (
	DefaultSteps      = 3
	DefaultThresholds = 5
	DefaultPlugin     = "pr_curves"
)

// Demo runs. The second run mirrors the first with half of its probability
// mass masked out, which yields flatter curves.
const (
	RunColors = "colors"
	RunMasked = "mask_every_other_prediction"
)

// demoWallTimeBase anchors wall times so generated datasets are reproducible.
const demoWallTimeBase = 1500000000.0

// maskedDamping flattens the masked run's curves relative to colors.
const maskedDamping = 0.8

// color describes one classified label and the shape of its curves.
type color struct {
	name   string
	stddev int     // quoted in the tag description
	skill  float64 // in (0,1]; higher skill keeps precision up across thresholds
}

// demoColors are the classes both demo runs log, one tag each.
var demoColors = []color{
	{name: "red", stddev: 168, skill: 0.9},
	{name: "green", stddev: 210, skill: 0.7},
	{name: "blue", stddev: 252, skill: 0.5},
}
