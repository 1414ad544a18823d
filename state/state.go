// Package state persists sessions and lap details in a single bbolt
// database under the datadir, plus a gzipped archive of raw uploads.
// Derived data (chart series, projections, aggregates) is never stored;
// it is recomputed from these records on demand.
package state

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/navixracing/telemd/params"
	"github.com/navixracing/telemd/types/telemetry"
)

var ErrNotFound = errors.New("not found in session store")

type Store struct {
	DB      *bbolt.DB
	datadir string
	logger  *slog.Logger
}

// Open opens (or creates) the session store. A writable open takes a
// file lock; concurrent daemons want readOnly.
func Open(datadir string, readOnly bool) (*Store, error) {
	if err := os.MkdirAll(datadir, 0700); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(filepath.Join(datadir, params.StateDBName),
		0600, &bbolt.Options{ReadOnly: readOnly})
	if err != nil {
		return nil, err
	}
	s := &Store{
		DB:      db,
		datadir: datadir,
		logger:  slog.With("d", "state"),
	}
	if !readOnly {
		err = db.Update(func(tx *bbolt.Tx) error {
			if _, err := tx.CreateBucketIfNotExists(params.SessionsBucket); err != nil {
				return err
			}
			_, err := tx.CreateBucketIfNotExists(params.LapDetailsBucket)
			return err
		})
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) WriteSession(sess *telemetry.Session) error {
	if sess.IsEmpty() {
		return errors.New("refusing to store empty session")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(params.SessionsBucket).Put([]byte(sess.SessionID), data)
	})
}

func (s *Store) ReadSession(id telemetry.SessionID) (*telemetry.Session, error) {
	sess := &telemetry.Session{}
	err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(params.SessionsBucket)
		if b == nil {
			return ErrNotFound
		}
		data := b.Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, sess)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// ListSessions returns every stored session, in key order.
func (s *Store) ListSessions() ([]*telemetry.Session, error) {
	out := []*telemetry.Session{}
	err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(params.SessionsBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			sess := &telemetry.Session{}
			if err := json.Unmarshal(v, sess); err != nil {
				s.logger.Warn("Skipping undecodable session", "key", string(k), "error", err)
				return nil
			}
			out = append(out, sess)
			return nil
		})
	})
	return out, err
}

func lapDetailKey(id telemetry.SessionID, lap int) []byte {
	return []byte(fmt.Sprintf("%s/%d", id, lap))
}

func (s *Store) WriteLapDetail(id telemetry.SessionID, ld *telemetry.LapDetail) error {
	data, err := json.Marshal(ld)
	if err != nil {
		return err
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(params.LapDetailsBucket).Put(lapDetailKey(id, ld.LapNumber), data)
	})
}

func (s *Store) ReadLapDetail(id telemetry.SessionID, lap int) (*telemetry.LapDetail, error) {
	ld := &telemetry.LapDetail{}
	err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(params.LapDetailsBucket)
		if b == nil {
			return ErrNotFound
		}
		data := b.Get(lapDetailKey(id, lap))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, ld)
	})
	if err != nil {
		return nil, err
	}
	return ld, nil
}

// ArchiveUpload keeps the raw uploaded file, gzipped, under
// datadir/uploads. The ingest service owns parsing; this copy exists so
// a source file can be re-processed after ingest-side fixes.
func (s *Store) ArchiveUpload(name string, r io.Reader) (written int64, err error) {
	dir := filepath.Join(s.datadir, params.UploadArchiveDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return 0, err
	}
	f, err := os.Create(filepath.Join(dir, filepath.Base(name)+".gz"))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	written, err = io.Copy(gz, r)
	if err != nil {
		gz.Close()
		return written, err
	}
	return written, gz.Close()
}
