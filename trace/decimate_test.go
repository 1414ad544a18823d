package trace

import (
	"slices"
	"testing"

	"github.com/navixracing/telemd/params"
)

func TestDecimateIdentity(t *testing.T) {
	for _, n := range []int{0, 1, 7, 499, 500} {
		in := make([]int, n)
		for i := range in {
			in[i] = i
		}
		out := Decimate(in, params.MaxChartSamples)
		if !slices.Equal(in, out) {
			t.Errorf("n=%d: expected identity, got len %d", n, len(out))
		}
	}
}

func TestDecimateCap(t *testing.T) {
	for _, n := range []int{501, 999, 1000, 10_000, 54_321} {
		in := make([]int, n)
		for i := range in {
			in[i] = i
		}
		out := Decimate(in, params.MaxChartSamples)
		if len(out) > params.MaxChartSamples {
			t.Errorf("n=%d: len %d over cap", n, len(out))
		}
		if len(out) == 0 || out[0] != 0 {
			t.Errorf("n=%d: first sample not retained: %v", n, out[:1])
		}
		if !slices.IsSorted(out) {
			t.Errorf("n=%d: output order not preserved", n)
		}
	}
}

func TestDecimateStride(t *testing.T) {
	// 1000 over cap 500: stride 2, exactly 500 retained.
	in := make([]int, 1000)
	for i := range in {
		in[i] = i
	}
	out := Decimate(in, params.MaxChartSamples)
	if len(out) != 500 {
		t.Errorf("len = %d, want 500", len(out))
	}
	if out[1] != 2 || out[499] != 998 {
		t.Errorf("unexpected stride retention: out[1]=%d out[499]=%d", out[1], out[499])
	}

	// 1001 over cap 500: stride 3, fewer than cap. That's allowed.
	in = append(in, 1000)
	out = Decimate(in, params.MaxChartSamples)
	if len(out) != 334 {
		t.Errorf("len = %d, want 334", len(out))
	}
}
