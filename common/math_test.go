package common

import "testing"

func TestRound(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{1.49, 1},
		{-0.5, -1},
		{-0.4, 0},
		{199.9, 200},
	}
	for _, c := range cases {
		if got := Round(c.in); got != c.want {
			t.Errorf("Round(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestDecimalToFixed(t *testing.T) {
	if got := DecimalToFixed(0.123456, 3); got != 0.123 {
		t.Errorf("DecimalToFixed = %v, want 0.123", got)
	}
	if got := DecimalToFixed(-0.0005, 3); got != -0.001 {
		t.Errorf("DecimalToFixed = %v, want -0.001", got)
	}
	if got := DecimalToFixed(2.5, 0); got != 3 {
		t.Errorf("DecimalToFixed = %v, want 3", got)
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(-1, 0, 10); got != 0 {
		t.Errorf("ClampInt(-1) = %d", got)
	}
	if got := ClampInt(11, 0, 10); got != 10 {
		t.Errorf("ClampInt(11) = %d", got)
	}
	if got := ClampInt(5, 0, 10); got != 5 {
		t.Errorf("ClampInt(5) = %d", got)
	}
}
