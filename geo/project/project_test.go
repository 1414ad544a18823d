package project

import (
	"math"
	"testing"

	"github.com/navixracing/telemd/params"
	"github.com/navixracing/telemd/types/telemetry"
)

func seriesWithFixes(coords ...[2]float64) telemetry.ChartSeries {
	out := make(telemetry.ChartSeries, len(coords))
	for i, c := range coords {
		out[i] = telemetry.ChartSample{Lat: c[0], Lon: c[1]}
	}
	return out
}

// boxSeries spans a 0.01 degree box with enough fixes to clear the
// fallback threshold.
func boxSeries() telemetry.ChartSeries {
	coords := make([][2]float64, 0, 20)
	for i := 0; i < 20; i++ {
		frac := float64(i) / 19
		coords = append(coords, [2]float64{-34.69 + frac*0.01, -58.45 + frac*0.01})
	}
	return seriesWithFixes(coords...)
}

func TestFallbackOnNoFixes(t *testing.T) {
	series := seriesWithFixes([2]float64{0, 0}, [2]float64{0, 0}, [2]float64{0, 0})
	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		got := At(series, p)
		want := Fallback(p)
		if got != want {
			t.Errorf("p=%v: got %+v, want fallback %+v", p, got, want)
		}
		if math.IsNaN(got.X) || math.IsNaN(got.Y) {
			t.Errorf("p=%v: NaN coordinate", p)
		}
	}
}

func TestFallbackOnSparseFixes(t *testing.T) {
	// Ten valid fixes is one short of the threshold.
	coords := make([][2]float64, 0, params.MinValidFixes-1)
	for i := 0; i < params.MinValidFixes-1; i++ {
		coords = append(coords, [2]float64{-34.69, -58.45 + float64(i)*0.001})
	}
	series := seriesWithFixes(coords...)
	if got, want := At(series, 0.5), Fallback(0.5); got != want {
		t.Errorf("got %+v, want fallback %+v", got, want)
	}
}

func TestFallbackCurveFormula(t *testing.T) {
	// The curve is deterministic in progress alone.
	p := 0.37
	angle := p * 2 * math.Pi
	want := Position{
		X: 200 + math.Sin(angle)*100 + math.Sin(angle*2)*30,
		Y: 150 + math.Cos(angle)*80 - math.Cos(angle*2)*40,
	}
	if got := Fallback(p); got != want {
		t.Errorf("Fallback(%v) = %+v, want %+v", p, got, want)
	}
}

func TestProjectionCorners(t *testing.T) {
	series := boxSeries()

	// First fix is at min lat (canvas bottom) and min lon (canvas left).
	first := At(series, 0)
	if math.Abs(first.X-params.PlotOriginX) > 1e-6 {
		t.Errorf("first.X = %v, want %v", first.X, params.PlotOriginX)
	}
	if math.Abs(first.Y-(params.PlotOriginY+params.PlotHeight)) > 1e-6 {
		t.Errorf("first.Y = %v, want %v", first.Y, params.PlotOriginY+params.PlotHeight)
	}

	// Last fix lands at the opposite corner.
	last := At(series, 1)
	if math.Abs(last.X-(params.PlotOriginX+params.PlotWidth)) > 1e-6 {
		t.Errorf("last.X = %v, want %v", last.X, params.PlotOriginX+params.PlotWidth)
	}
	if math.Abs(last.Y-params.PlotOriginY) > 1e-6 {
		t.Errorf("last.Y = %v, want %v", last.Y, params.PlotOriginY)
	}
}

func TestProjectionWithinCanvas(t *testing.T) {
	series := boxSeries()
	for _, p := range []float64{0, 0.1, 0.33, 0.5, 0.9, 1} {
		pos := At(series, p)
		if pos.X < 0 || pos.X > params.CanvasWidth || pos.Y < 0 || pos.Y > params.CanvasHeight {
			t.Errorf("p=%v: %+v escapes the canvas", p, pos)
		}
	}
}

func TestProjectionSkipsDropouts(t *testing.T) {
	// 21 fixes over the degree box with a mid-lap GPS dropout. The
	// dropout sample must never be projected: its (0,0) sentinel against
	// the real bound would land six orders of magnitude off canvas.
	coords := make([][2]float64, 0, 21)
	for i := 0; i < 21; i++ {
		frac := float64(i) / 20
		coords = append(coords, [2]float64{-34.69 + frac*0.01, -58.45 + frac*0.01})
	}
	coords[10] = [2]float64{0, 0}
	series := seriesWithFixes(coords...)

	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		pos := At(series, p)
		if pos.X < 0 || pos.X > params.CanvasWidth || pos.Y < 0 || pos.Y > params.CanvasHeight {
			t.Errorf("p=%v: %+v escapes the canvas", p, pos)
		}
		if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
			t.Errorf("p=%v: NaN coordinate", p)
		}
	}

	// Progress walks the valid fixes, consistent with Path: both ends
	// still pin to the box corners even with the hole in the middle.
	if got, want := At(series, 0), (Path(series))[0]; got != want {
		t.Errorf("p=0: got %+v, want first path point %+v", got, want)
	}
	if got, want := At(series, 1), (Path(series))[19]; got != want {
		t.Errorf("p=1: got %+v, want last path point %+v", got, want)
	}
}

func TestZeroSpanLatCollapses(t *testing.T) {
	// Constant latitude across all fixes. Guarded division: y collapses
	// to one constant value, never NaN or Inf.
	coords := make([][2]float64, 0, 15)
	for i := 0; i < 15; i++ {
		coords = append(coords, [2]float64{-34.69, -58.45 + float64(i)*0.001})
	}
	series := seriesWithFixes(coords...)

	path := Path(series)
	if len(path) != 15 {
		t.Fatalf("path len = %d, want 15", len(path))
	}
	y := path[0].Y
	for i, pos := range path {
		if math.IsNaN(pos.Y) || math.IsInf(pos.Y, 0) {
			t.Fatalf("pos %d: bad y %v", i, pos.Y)
		}
		if pos.Y != y {
			t.Errorf("pos %d: y = %v, want constant %v", i, pos.Y, y)
		}
	}
}

func TestPathFallbackSampling(t *testing.T) {
	path := Path(telemetry.ChartSeries{})
	if len(path) == 0 {
		t.Fatal("expected sampled fallback path")
	}
	for _, pos := range path {
		if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
			t.Fatal("NaN on fallback path")
		}
	}
}

func TestTrackLine(t *testing.T) {
	if f := TrackLine(telemetry.ChartSeries{}); f != nil {
		t.Error("expected nil feature for empty series")
	}
	f := TrackLine(boxSeries())
	if f == nil {
		t.Fatal("expected a feature")
	}
	if f.Properties["points"] != 20 {
		t.Errorf("points = %v, want 20", f.Properties["points"])
	}
	if f.Properties.MustFloat64("length_m") <= 0 {
		t.Error("expected positive length")
	}
}
