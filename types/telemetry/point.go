package telemetry

import "github.com/paulmach/orb"

// TelemetryPoint is one recorded sample within a lap.
// The sequence is ordered by non-decreasing time/lap_dist and can run to
// tens of thousands of samples per lap.
//
// Lat/Lon use a 0 sentinel for "no GPS fix". Loggers drop fix regularly
// (pit garages, tree cover, cold starts), so absent coordinates are a
// normal condition, not corruption.
type TelemetryPoint struct {
	Time       float64 `json:"time"`
	Speed      float64 `json:"speed"`
	RPM        float64 `json:"rpm"`
	Throttle   float64 `json:"throttle"`
	Brake      float64 `json:"brake"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	LapDist    float64 `json:"lap_dist"`
	LapDistPct float64 `json:"lap_dist_pct"`
}

// HasFix reports whether the sample carries a usable GPS coordinate.
func (p TelemetryPoint) HasFix() bool {
	return p.Lat != 0 && p.Lon != 0
}

// Point returns the sample's position in orb's lon-lat order.
func (p TelemetryPoint) Point() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// LapDetail is the full per-sample trace for one lap.
type LapDetail struct {
	LapNumber int              `json:"lap_number"`
	LapTime   float64          `json:"lap_time"`
	Points    []TelemetryPoint `json:"points"`
}
