package params

// Trace analysis constants.
// These are empirically fixed calibrations, not derived values.
// Tests assert against them directly; do not inline them.
const (
	// SmoothingWindow is the half-width, in samples, of the centered window
	// used to synthesize the reference speed trace. The window truncates at
	// sequence boundaries rather than padding or wrapping.
	SmoothingWindow = 5

	// RPMReferenceDiscount derives the reference RPM as a flat discount of
	// the current sample's RPM. Not a windowed average.
	RPMReferenceDiscount = 0.98

	// DeltaScale and DeltaDivisor turn a speed difference (km/h) into a
	// time delta (seconds). The negative scale inverts the naive sign so
	// that positive delta reads as "time lost".
	DeltaScale   = -0.5
	DeltaDivisor = 100.0

	// DeltaPrecision is the decimal precision of the delta signal.
	DeltaPrecision = 3

	// MaxChartSamples caps a chart series. Longer traces are decimated by
	// uniform stride; shorter ones pass through untouched.
	MaxChartSamples = 500

	// SectorCount partitions a lap's sample sequence for aggregate
	// time-loss reporting.
	SectorCount = 3
)
