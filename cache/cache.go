// Package cache holds the process-wide caches: a TTL cache for fetched
// lap details, an LRU guard against re-storing duplicate uploads, and a
// bounded memo for pipeline results (the pipeline is pure, so identical
// requests are free to share output).
package cache

import (
	"fmt"

	"github.com/golang/groupcache/lru"
	lruv2 "github.com/hashicorp/golang-lru/v2"
	"github.com/jellydator/ttlcache/v3"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/navixracing/telemd/params"
	"github.com/navixracing/telemd/trace"
	"github.com/navixracing/telemd/types/telemetry"
)

var LapDetailTTLCache = ttlcache.New[string, *telemetry.LapDetail](
	ttlcache.WithTTL[string, *telemetry.LapDetail](params.CacheLapDetailTTL))

func lapDetailKey(id telemetry.SessionID, lap int) string {
	return fmt.Sprintf("%s/%d", id, lap)
}

func SetLapDetail(id telemetry.SessionID, ld *telemetry.LapDetail) {
	LapDetailTTLCache.Set(lapDetailKey(id, ld.LapNumber), ld, ttlcache.DefaultTTL)
}

func GetLapDetail(id telemetry.SessionID, lap int) *telemetry.LapDetail {
	item := LapDetailTTLCache.Get(lapDetailKey(id, lap))
	if item == nil {
		return nil
	}
	return item.Value()
}

var uploadDedupe = lru.New(params.UploadDedupeSize)

// UploadPassLRU returns true if this session has not been stored
// recently. Clients re-post the same file after flaky responses; the
// hash of the parsed session is a cheap identity.
func UploadPassLRU(s *telemetry.Session) bool {
	hash, err := hashstructure.Hash(s, hashstructure.FormatV2, nil)
	if err != nil {
		return false
	}
	key := fmt.Sprintf("%d", hash)
	if _, ok := uploadDedupe.Get(key); ok {
		return false
	}
	uploadDedupe.Add(key, true)
	return true
}

// chartKey identifies one pipeline invocation.
type chartKey struct {
	Session telemetry.SessionID
	Lap     int
	Cursor  float64
}

var chartMemo, _ = lruv2.New[uint64, trace.Result](params.ChartMemoSize)

func chartMemoKey(id telemetry.SessionID, lap int, cursor float64) (uint64, error) {
	return hashstructure.Hash(chartKey{Session: id, Lap: lap, Cursor: cursor},
		hashstructure.FormatV2, nil)
}

func GetChart(id telemetry.SessionID, lap int, cursor float64) (trace.Result, bool) {
	key, err := chartMemoKey(id, lap, cursor)
	if err != nil {
		return trace.Result{}, false
	}
	return chartMemo.Get(key)
}

func SetChart(id telemetry.SessionID, lap int, cursor float64, res trace.Result) {
	key, err := chartMemoKey(id, lap, cursor)
	if err != nil {
		return
	}
	chartMemo.Add(key, res)
}

// InvalidateChart drops memoized results for a session, e.g. after a
// re-upload replaces its lap data.
func InvalidateChart() {
	chartMemo.Purge()
}
