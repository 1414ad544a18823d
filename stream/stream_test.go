package stream

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/navixracing/telemd/types/telemetry"
)

func TestSliceFilterTransformCollect(t *testing.T) {
	ctx := context.Background()
	data := []int{0, 2, 4, 6, 8}
	result := Collect(ctx,
		Transform(ctx, func(n int) int { return n / 2 },
			Filter(ctx, func(n int) bool { return n != 0 },
				Slice(ctx, data))))

	if !slices.Equal([]int{1, 2, 3, 4}, result) {
		t.Errorf("Expected [1, 2, 3, 4], got %v", result)
	}
}

func TestNDJSONPoints(t *testing.T) {
	ctx := context.Background()
	in := strings.NewReader(`{"time":0,"speed":120}
{"time":0.1,"speed":121}
{"time":0.2,"speed":122}
`)
	points := Collect(ctx, NDJSON[telemetry.TelemetryPoint](ctx, in))
	if len(points) != 3 {
		t.Fatalf("points len = %d, want 3", len(points))
	}
	if points[2].Speed != 122 {
		t.Errorf("speed = %v, want 122", points[2].Speed)
	}
}

func TestNDJSONStopsOnBadRecord(t *testing.T) {
	ctx := context.Background()
	in := strings.NewReader(`{"time":0,"speed":120}
garbage
{"time":0.2,"speed":122}
`)
	points := Collect(ctx, NDJSON[telemetry.TelemetryPoint](ctx, in))
	if len(points) != 1 {
		t.Fatalf("points len = %d, want 1", len(points))
	}
}

func TestWriteNDJSON(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	err := WriteNDJSON(ctx, buf, Slice(ctx, []telemetry.ChartSample{
		{Distance: 10, CurrentSpeed: 120},
		{Distance: 20, CurrentSpeed: 121},
	}))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], `"distance":10`) {
		t.Errorf("unexpected first line: %s", lines[0])
	}
}
