// Package api is the service layer between the HTTP daemon and the
// rest of the system. It decides where data comes from (cache, local
// store, ingest service) and keeps the three in agreement; handlers
// only shape requests and responses.
package api

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/navixracing/telemd/cache"
	"github.com/navixracing/telemd/client"
	"github.com/navixracing/telemd/state"
	"github.com/navixracing/telemd/trace"
	"github.com/navixracing/telemd/types/telemetry"
)

type Service struct {
	store  *state.Store
	client *client.Client
	logger *slog.Logger
}

func NewService(store *state.Store, c *client.Client) *Service {
	return &Service{
		store:  store,
		client: c,
		logger: slog.With("d", "api"),
	}
}

// Sessions lists locally stored sessions. The store is the source of
// truth for the list; Session pulls missing ones in on demand.
func (s *Service) Sessions() ([]*telemetry.Session, error) {
	return s.store.ListSessions()
}

// Session reads through: local store first, then the ingest service,
// writing a fetched session back so the next read is local.
func (s *Service) Session(ctx context.Context, id telemetry.SessionID) (*telemetry.Session, error) {
	sess, err := s.store.ReadSession(id)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, state.ErrNotFound) {
		return nil, err
	}
	sess, err = s.client.FetchSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.WriteSession(sess); err != nil {
		s.logger.Warn("Failed to store fetched session", "session", id, "error", err)
	}
	return sess, nil
}

// LapDetail reads through the TTL cache and local store before hitting
// the ingest service, and fills both on the way back.
func (s *Service) LapDetail(ctx context.Context, id telemetry.SessionID, lap int) (*telemetry.LapDetail, error) {
	if ld := cache.GetLapDetail(id, lap); ld != nil {
		return ld, nil
	}
	ld, err := s.store.ReadLapDetail(id, lap)
	if err == nil {
		cache.SetLapDetail(id, ld)
		return ld, nil
	}
	if !errors.Is(err, state.ErrNotFound) {
		return nil, err
	}
	ld, err = s.client.FetchLapDetail(ctx, id, lap)
	if err != nil {
		return nil, err
	}
	if ld.LapNumber == 0 {
		ld.LapNumber = lap
	}
	if err := s.store.WriteLapDetail(id, ld); err != nil {
		s.logger.Warn("Failed to store fetched lap detail",
			"session", id, "lap", lap, "error", err)
	}
	cache.SetLapDetail(id, ld)
	return ld, nil
}

// Upload archives the raw file, forwards it to the ingest service for
// parsing, and stores the resulting session. Duplicate re-posts of the
// same parsed session skip the store write.
func (s *Service) Upload(ctx context.Context, name string, r io.Reader) (*telemetry.Session, error) {
	if err := client.ValidateUploadName(name); err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	tee := io.TeeReader(r, pw)
	archived := make(chan error, 1)
	go func() {
		_, err := s.store.ArchiveUpload(name, pr)
		// Drain whatever the upload didn't consume so the tee never blocks.
		io.Copy(io.Discard, pr)
		archived <- err
	}()

	sess, err := s.client.Upload(ctx, name, tee)
	pw.Close()
	if aerr := <-archived; aerr != nil {
		s.logger.Warn("Failed to archive upload", "name", name, "error", aerr)
	}
	if err != nil {
		return nil, err
	}

	if !cache.UploadPassLRU(sess) {
		s.logger.Info("Duplicate upload, session already stored", "session", sess.SessionID)
		return sess, nil
	}
	if err := s.store.WriteSession(sess); err != nil {
		return nil, err
	}
	cache.InvalidateChart()
	return sess, nil
}

// Chart runs the transformation pipeline for one lap at one cursor
// position, memoized. The pipeline is pure, so the memo needs no
// staleness logic beyond upload-time invalidation.
func (s *Service) Chart(ctx context.Context, id telemetry.SessionID, lap int, cursor float64) (trace.Result, error) {
	if res, ok := cache.GetChart(id, lap, cursor); ok {
		return res, nil
	}
	ld, err := s.LapDetail(ctx, id, lap)
	if err != nil {
		return trace.Result{}, err
	}
	res := trace.Transform(ld.Points, cursor)
	cache.SetChart(id, lap, cursor, res)
	return res, nil
}
