package client

import (
	"context"
	"sync"

	"github.com/navixracing/telemd/types/telemetry"
)

// LapDetailFetcher serializes intent, not requests: any number of lap
// detail fetches may be in flight, but only the most recently started
// one is allowed to deliver. Earlier in-flight fetches are canceled and
// their results, if they arrive anyway, come back as ErrStale. This is
// what keeps a fast scrub across laps from painting the chart with a
// slow response for a lap the user already left.
type LapDetailFetcher struct {
	client *Client

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewLapDetailFetcher(c *Client) *LapDetailFetcher {
	return &LapDetailFetcher{client: c}
}

// Fetch fetches one lap's detail. Starting a new Fetch cancels any
// fetch still in flight; a canceled or outrun fetch returns ErrStale.
func (f *LapDetailFetcher) Fetch(ctx context.Context, id telemetry.SessionID, lap int) (*telemetry.LapDetail, error) {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.seq++
	mySeq := f.seq
	f.mu.Unlock()

	ld, err := f.client.FetchLapDetail(ctx, id, lap)

	f.mu.Lock()
	defer f.mu.Unlock()
	if mySeq != f.seq {
		return nil, ErrStale
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrStale
		}
		return nil, err
	}
	return ld, nil
}
