package telemetry

// ChartSample is one render-ready record derived from a TelemetryPoint.
// Speeds and RPM are rounded to non-negative integers; pedal values are
// rescaled from [0,1] to 0-100. Delta carries 3-decimal precision and is
// signed so that positive reads as "time lost" against the reference.
type ChartSample struct {
	Distance     int     `json:"distance"`
	DistancePct  float64 `json:"distancePct"`
	Time         float64 `json:"time"`
	CurrentSpeed int     `json:"currentSpeed"`
	CurrentRPM   int     `json:"currentRPM"`
	Throttle     int     `json:"throttle"`
	Brake        int     `json:"brake"`
	RefSpeed     int     `json:"refSpeed"`
	RefRPM       int     `json:"refRPM"`
	Delta        float64 `json:"delta"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
}

// HasFix mirrors TelemetryPoint.HasFix for the derived record.
func (s ChartSample) HasFix() bool {
	return s.Lat != 0 && s.Lon != 0
}

// ChartSeries is an ordered, decimated sequence of chart samples,
// monotonically non-decreasing in Distance and capped in length.
type ChartSeries []ChartSample
