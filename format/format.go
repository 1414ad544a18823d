// Package format renders telemetry scalars for tables and log lines.
package format

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/navixracing/telemd/common"
)

// LapTime renders seconds as M:SS.mmm, e.g. 92.45 -> "1:32.450".
// Decimal arithmetic keeps the milliseconds exact; naive float printing
// turns 32.450 into 32.449 often enough to annoy race engineers.
func LapTime(seconds float64) string {
	d := decimal.NewFromFloat(seconds).Round(3)
	mins := d.Div(decimal.NewFromInt(60)).IntPart()
	rem := d.Sub(decimal.NewFromInt(mins * 60))
	secs := rem.StringFixed(3)
	if strings.IndexByte(secs, '.') < 2 {
		secs = "0" + secs
	}
	return fmt.Sprintf("%d:%s", mins, secs)
}

// Duration renders seconds as a coarse human duration, e.g. "1h 12m 3s".
func Duration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, mins, secs)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	return fmt.Sprintf("%ds", secs)
}

// Distance renders meters as kilometers with one decimal.
func Distance(meters float64) string {
	return fmt.Sprintf("%.1f km", meters/1000)
}

// Speed renders km/h as a bare rounded integer.
func Speed(speed float64) string {
	return fmt.Sprintf("%d", common.Round(speed))
}

// RPM renders revs with thousands separators.
func RPM(rpm float64) string {
	return humanize.Comma(int64(common.Round(rpm)))
}

// DeltaSeconds renders a signed time delta with its sign always shown,
// e.g. "+0.240s" / "-0.113s".
func DeltaSeconds(delta float64) string {
	return fmt.Sprintf("%+.3fs", delta)
}
