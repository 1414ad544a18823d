package params

// Track canvas geometry. The projector maps GPS fixes onto a fixed
// 400x300 viewbox with a 50-unit margin; the plot region is 300x200.
// Y is inverted: geographic north goes up, canvas y goes down.
const (
	CanvasWidth  = 400.0
	CanvasHeight = 300.0

	PlotOriginX = 50.0
	PlotOriginY = 50.0
	PlotWidth   = 300.0
	PlotHeight  = 200.0

	// MinValidFixes is the fewest non-zero GPS fixes a trace needs before
	// the projector trusts it. Below this, the decorative fallback curve
	// is drawn instead. Sparse recordings are common; this is product
	// behavior, not an error path.
	MinValidFixes = 11
)

// Fallback curve parameters. A closed Lissajous-like figure centered in
// the canvas, parameterized only by lap progress.
const (
	FallbackCenterX = 200.0
	FallbackCenterY = 150.0
	FallbackMajorX  = 100.0
	FallbackMajorY  = 80.0
	FallbackMinorX  = 30.0
	FallbackMinorY  = 40.0
)
