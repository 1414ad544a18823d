package trace

import (
	"github.com/navixracing/telemd/common"
	"github.com/navixracing/telemd/geo/project"
	"github.com/navixracing/telemd/params"
	"github.com/navixracing/telemd/types/telemetry"
)

// Result is everything the presentation layer reads for one lap at one
// cursor position: the decimated chart series, the projected track path
// and car position, and the cursor-driven scalar readouts.
type Result struct {
	Series      telemetry.ChartSeries `json:"series"`
	Path        []project.Position    `json:"path"`
	Position    project.Position      `json:"position"`
	Readout     *CursorReadout        `json:"readout,omitempty"`
	TimeLost    float64               `json:"timeLost"`
	MaxDistance int                   `json:"maxDistance"`
}

// Normalize fuses one raw point with its synthesized reference values
// into a chart sample. The reference window is computed over the raw
// sequence, so call this before decimation.
func Normalize(points []telemetry.TelemetryPoint, i int) (telemetry.ChartSample, error) {
	refSpeed, err := ReferenceSpeed(points, i)
	if err != nil {
		return telemetry.ChartSample{}, err
	}
	p := points[i]
	return telemetry.ChartSample{
		Distance:     common.Round(p.LapDist),
		DistancePct:  p.LapDistPct,
		Time:         p.Time,
		CurrentSpeed: max(0, common.Round(p.Speed)),
		CurrentRPM:   max(0, common.Round(p.RPM)),
		Throttle:     common.ClampInt(common.Round(p.Throttle*100), 0, 100),
		Brake:        common.ClampInt(common.Round(p.Brake*100), 0, 100),
		RefSpeed:     common.Round(refSpeed),
		RefRPM:       common.Round(ReferenceRPM(p)),
		Delta:        Delta(p.Speed, refSpeed),
		Lat:          p.Lat,
		Lon:          p.Lon,
	}, nil
}

// Transform runs the whole pipeline: per-point reference synthesis and
// delta, decimation to the chart cap, geo projection, and the cursor
// readout. Pure and idempotent; identical inputs yield identical
// outputs, so callers may re-invoke it on every slider tick. An empty
// point sequence yields an empty Result, not an error.
func Transform(points []telemetry.TelemetryPoint, cursor float64) Result {
	res := Result{
		Series: telemetry.ChartSeries{},
		Path:   []project.Position{},
	}
	if len(points) == 0 {
		return res
	}

	samples := make(telemetry.ChartSeries, 0, len(points))
	for i := range points {
		s, err := Normalize(points, i)
		if err != nil {
			// Unreachable with a non-empty sequence; drop and continue.
			continue
		}
		samples = append(samples, s)
	}

	res.Series = Decimate(samples, params.MaxChartSamples)
	// Lap length comes from the raw tail, not the decimated one, so the
	// scrubber label doesn't shrink with the stride.
	res.MaxDistance = common.Round(points[len(points)-1].LapDist)

	progress := common.ClampFloat(cursor/100, 0, 1)
	res.Path = project.Path(res.Series)
	res.Position = project.At(res.Series, progress)

	if readout, ok := Cursor(res.Series, cursor); ok {
		res.Readout = &readout
		res.TimeLost = readout.TimeLost
	}
	return res
}
