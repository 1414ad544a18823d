// Package project maps GPS fixes onto the fixed track canvas.
// It is a min/max linear normalization, not a CRS-correct projection;
// at track scale that is all the map needs.
package project

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"github.com/navixracing/telemd/common"
	"github.com/navixracing/telemd/params"
	"github.com/navixracing/telemd/types/telemetry"
)

// Position is a point in canvas coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Fallback traces a closed Lissajous-like curve parameterized by lap
// progress p in [0,1]. It stands in for the track map whenever a trace
// has too few GPS fixes to draw one; purely decorative, and deliberately
// so. Don't "fix" degraded GPS into an error.
func Fallback(p float64) Position {
	angle := p * 2 * math.Pi
	return Position{
		X: params.FallbackCenterX + math.Sin(angle)*params.FallbackMajorX + math.Sin(angle*2)*params.FallbackMinorX,
		Y: params.FallbackCenterY + math.Cos(angle)*params.FallbackMajorY - math.Cos(angle*2)*params.FallbackMinorY,
	}
}

// validFixes collects the positions of samples with a usable fix,
// in series order.
func validFixes(series telemetry.ChartSeries) orb.MultiPoint {
	fixes := make(orb.MultiPoint, 0, len(series))
	for _, s := range series {
		if s.HasFix() {
			fixes = append(fixes, orb.Point{s.Lon, s.Lat})
		}
	}
	return fixes
}

// span guards a degenerate (zero-width) coordinate range. Straight-line
// or single-point data collapses to a constant coordinate instead of
// dividing by zero.
func span(min, max float64) float64 {
	if s := max - min; s != 0 {
		return s
	}
	return 1
}

func place(pt orb.Point, bound orb.Bound) Position {
	return Position{
		X: params.PlotOriginX + (pt.Lon()-bound.Min.Lon())/span(bound.Min.Lon(), bound.Max.Lon())*params.PlotWidth,
		// Inverted: north increases upward, canvas y increases downward.
		Y: params.PlotOriginY + (bound.Max.Lat()-pt.Lat())/span(bound.Min.Lat(), bound.Max.Lat())*params.PlotHeight,
	}
}

// At returns the canvas position for lap progress p in [0,1].
// With fewer than params.MinValidFixes usable fixes the fallback curve
// is used instead of the trace geometry.
//
// Progress indexes the valid-fix list, not the raw series, matching
// Path. Indexing the series would project the (0,0) no-fix sentinel
// of a mid-lap GPS dropout against the real bound and fling the
// position far off the canvas.
func At(series telemetry.ChartSeries, p float64) Position {
	p = common.ClampFloat(p, 0, 1)
	fixes := validFixes(series)
	if len(fixes) < params.MinValidFixes {
		return Fallback(p)
	}
	bound := fixes.Bound()

	idx := int(p * float64(len(fixes)-1))
	idx = common.ClampInt(idx, 0, len(fixes)-1)
	return place(fixes[idx], bound)
}

// Path projects every valid fix in order, for drawing the full
// trajectory rather than just the cursor point. Falls back to a sampled
// rendering of the decorative curve when fixes are scarce.
func Path(series telemetry.ChartSeries) []Position {
	fixes := validFixes(series)
	if len(fixes) < params.MinValidFixes {
		out := make([]Position, 0, 100)
		for i := 0; i < 100; i++ {
			out = append(out, Fallback(float64(i)/99))
		}
		return out
	}
	bound := fixes.Bound()
	out := make([]Position, 0, len(fixes))
	for _, pt := range fixes {
		out = append(out, place(pt, bound))
	}
	return out
}

// TrackLine exports the valid-fix trajectory as a GeoJSON LineString
// feature with its geodesic length in meters, for map overlays.
// Returns nil when there are too few fixes to draw a line.
func TrackLine(series telemetry.ChartSeries) *geojson.Feature {
	fixes := validFixes(series)
	if len(fixes) < params.MinValidFixes {
		return nil
	}
	ls := orb.LineString(fixes)
	f := geojson.NewFeature(ls)
	length := 0.0
	for i := 1; i < len(ls); i++ {
		length += geo.Distance(ls[i-1], ls[i])
	}
	f.Properties["length_m"] = math.Round(length)
	f.Properties["points"] = len(ls)
	return f
}
