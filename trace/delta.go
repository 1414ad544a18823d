package trace

import (
	"github.com/navixracing/telemd/common"
	"github.com/navixracing/telemd/params"
)

// Delta converts a speed difference against the reference into a time
// delta in seconds, at 3-decimal precision. The scale constant inverts
// the naive sign: current faster than reference yields a negative delta,
// so positive delta reads as "time lost".
func Delta(current, reference float64) float64 {
	raw := (current - reference) / params.DeltaDivisor * params.DeltaScale
	return common.DecimalToFixed(raw, params.DeltaPrecision)
}
