package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/navixracing/telemd/client"
	"github.com/navixracing/telemd/state"
	"github.com/navixracing/telemd/types/telemetry"
)

func testService(t *testing.T, handler http.Handler) (*Service, *state.Store) {
	t.Helper()
	store, err := state.Open(t.TempDir(), false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewService(store, client.NewClient(ts.URL)), store
}

func TestSessionReadThrough(t *testing.T) {
	var fetches atomic.Int64
	svc, store := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		fmt.Fprint(w, `{"session_id":"s1","driver":"A","laps":[{"lap_number":1,"lap_time":90}]}`)
	}))

	sess, err := svc.Session(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	if sess.Driver != "A" {
		t.Errorf("unexpected session: %+v", sess)
	}
	// Second read comes from the store.
	if _, err := svc.Session(context.Background(), "s1"); err != nil {
		t.Fatal(err)
	}
	if n := fetches.Load(); n != 1 {
		t.Errorf("want 1 upstream fetch, got %d", n)
	}
	if _, err := store.ReadSession("s1"); err != nil {
		t.Errorf("fetched session not persisted: %v", err)
	}
}

func TestLapDetailReadThrough(t *testing.T) {
	var fetches atomic.Int64
	svc, store := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		fmt.Fprint(w, `{"lap_number":3,"lap_time":91.2,"points":[{"time":0,"speed":120,"lap_dist":0}]}`)
	}))

	ld, err := svc.LapDetail(context.Background(), "s1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(ld.Points) != 1 {
		t.Fatalf("unexpected lap detail: %+v", ld)
	}
	if _, err := svc.LapDetail(context.Background(), "s1", 3); err != nil {
		t.Fatal(err)
	}
	if n := fetches.Load(); n != 1 {
		t.Errorf("want 1 upstream fetch, got %d", n)
	}
	if _, err := store.ReadLapDetail("s1", 3); err != nil {
		t.Errorf("fetched lap detail not persisted: %v", err)
	}
}

func TestUploadStoresSession(t *testing.T) {
	svc, store := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile("file"); err != nil {
			t.Fatal(err)
		}
		fmt.Fprint(w, `{"session_id":"up1","lap_count":2,"laps":[{"lap_number":1,"lap_time":95}]}`)
	}))

	sess, err := svc.Upload(context.Background(), "run.xrk", strings.NewReader("payload"))
	if err != nil {
		t.Fatal(err)
	}
	if sess.SessionID != "up1" {
		t.Errorf("unexpected session: %+v", sess)
	}
	if _, err := store.ReadSession("up1"); err != nil {
		t.Errorf("uploaded session not persisted: %v", err)
	}
}

func TestUploadRejectsUnknownExtension(t *testing.T) {
	svc, _ := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("rejected upload reached the ingest service")
	}))
	if _, err := svc.Upload(context.Background(), "run.csv", strings.NewReader("x")); err == nil {
		t.Error("want error for .csv upload")
	}
}

func TestChartMemoized(t *testing.T) {
	var fetches atomic.Int64
	svc, _ := testService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		fmt.Fprint(w, `{"lap_number":1,"points":[
			{"time":0,"speed":100,"lap_dist":0},
			{"time":0.1,"speed":110,"lap_dist":5},
			{"time":0.2,"speed":120,"lap_dist":10}]}`)
	}))

	res, err := svc.Chart(context.Background(), "s1", 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Series) != 3 || res.MaxDistance != 10 {
		t.Errorf("unexpected result: %d samples, maxDistance %d",
			len(res.Series), res.MaxDistance)
	}
	again, err := svc.Chart(context.Background(), "s1", 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Series) != 3 {
		t.Errorf("memoized result mismatch")
	}
	// Lap detail cache plus chart memo: one upstream hit total.
	if n := fetches.Load(); n != 1 {
		t.Errorf("want 1 upstream fetch, got %d", n)
	}
}

func TestSummarize(t *testing.T) {
	sess := &telemetry.Session{
		SessionID: "s1",
		Laps: []telemetry.LapSummary{
			{LapNumber: 1, LapTime: 95.2, MaxSpeed: 210, AvgRPM: 5400, Distance: 4000, FuelUsed: 1.2},
			{LapNumber: 2, LapTime: 92.45, MaxSpeed: 214, AvgRPM: 5600, Distance: 4000, FuelUsed: 1.1},
		},
	}
	sum := Summarize(sess)
	if sum.BestLap != 2 || sum.BestLapTime != 92.45 {
		t.Errorf("best lap: %+v", sum)
	}
	if sum.TopSpeed != 214 || sum.AvgRPM != 5500 {
		t.Errorf("aggregates: %+v", sum)
	}
	if sum.TotalMeters != 8000 || sum.TotalKM != "8.0 km" {
		t.Errorf("distance: %+v", sum)
	}
	if sum.BestLapLabel != "1:32.450" {
		t.Errorf("best lap label: %q", sum.BestLapLabel)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(&telemetry.Session{SessionID: "s0"})
	if sum.LapCount != 0 || sum.BestLap != 0 {
		t.Errorf("empty session summary: %+v", sum)
	}
}
