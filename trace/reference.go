// Package trace is the telemetry trace normalization and comparative
// analysis engine. It takes the raw, irregularly-sized per-sample point
// sequence for one lap and produces a decimated chart-ready series, a
// synthetic reference trace with per-sample delta, and cursor-driven
// sector aggregates.
//
// Everything here is a pure computation over in-memory slices. Degenerate
// inputs (empty traces, missing GPS, flat coordinate spans) get defined
// fallback outputs rather than errors; sparse recordings are common and
// the charts must render something reasonable regardless.
package trace

import (
	"errors"

	"github.com/montanaflynn/stats"

	"github.com/navixracing/telemd/params"
	"github.com/navixracing/telemd/types/telemetry"
)

// ErrEmptyTrace is returned when a reference is requested over an empty
// point sequence. A single-sample trace is valid (window of one).
var ErrEmptyTrace = errors.New("empty telemetry trace")

// ReferenceSpeed synthesizes the reference speed at index i as the mean
// speed over the centered window [i-W, i+W), truncated at the sequence
// boundaries. The reference is a smoothed self-comparison, not a second
// recorded lap.
func ReferenceSpeed(points []telemetry.TelemetryPoint, i int) (float64, error) {
	if len(points) == 0 {
		return 0, ErrEmptyTrace
	}
	lo := i - params.SmoothingWindow
	if lo < 0 {
		lo = 0
	}
	hi := i + params.SmoothingWindow
	if hi > len(points) {
		hi = len(points)
	}

	window := make([]float64, 0, hi-lo)
	for _, p := range points[lo:hi] {
		window = append(window, p.Speed)
	}
	return stats.Mean(stats.Float64Data(window))
}

// ReferenceRPM derives the reference RPM as a flat discount of the
// current sample's RPM. Intentionally not a second averaging pass.
func ReferenceRPM(p telemetry.TelemetryPoint) float64 {
	return p.RPM * params.RPMReferenceDiscount
}
