package trace

import (
	"github.com/navixracing/telemd/common"
	"github.com/navixracing/telemd/params"
	"github.com/navixracing/telemd/types/telemetry"
)

// CursorReadout is the live data derived from a scrubber position:
// the sample under the cursor and the aggregate time lost within the
// cursor's sector so far.
type CursorReadout struct {
	Index       int                   `json:"index"`
	Sample      telemetry.ChartSample `json:"sample"`
	Sector      int                   `json:"sector"`
	SectorStart int                   `json:"sectorStart"`
	SectorEnd   int                   `json:"sectorEnd"`
	TimeLost    float64               `json:"timeLost"`
}

// Cursor maps a scrubber position in [0,100] onto a series index and
// aggregates delta over the active sector window [sectorStart, index).
// An empty series is a normal state (no lap loaded yet): ok is false and
// no readout is produced.
//
// Sector arithmetic is integer division throughout. A cursor that lands
// exactly on a sector boundary spans an empty window and reports zero
// time lost; that is defined behavior.
func Cursor(series telemetry.ChartSeries, cursor float64) (CursorReadout, bool) {
	if len(series) == 0 {
		return CursorReadout{}, false
	}

	cursor = common.ClampFloat(cursor, 0, 100)
	idx := int(cursor / 100 * float64(len(series)-1))
	idx = common.ClampInt(idx, 0, len(series)-1)

	out := CursorReadout{
		Index:  idx,
		Sample: series[idx],
	}

	sectorSize := len(series) / params.SectorCount
	if sectorSize == 0 {
		// Fewer samples than sectors; the whole series is sector 0.
		return out, true
	}

	start := (idx / sectorSize) * sectorSize
	end := start + sectorSize
	if end > idx {
		end = idx
	}

	lost := 0.0
	for _, s := range series[start:end] {
		lost += s.Delta
	}

	out.Sector = idx / sectorSize
	out.SectorStart = start
	out.SectorEnd = end
	out.TimeLost = lost
	return out, true
}
