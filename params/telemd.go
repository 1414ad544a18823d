package params

import (
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
)

const (
	StateDBName      = "telemd.db"
	UploadArchiveDir = "uploads"
)

var (
	SessionsBucket   = []byte("sessions")
	LapDetailsBucket = []byte("lapdetails")
)

// DatadirRoot is where telemd keeps its session store and upload archive.
var DatadirRoot = func() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(os.TempDir(), "telemd")
	}
	return filepath.Join(home, ".telemd")
}()

// DefaultIngestURL is the telemetry ingestion service this daemon fronts.
// The ingest service owns file parsing (XRK/MSL decoding) and lap splitting;
// telemd owns storage, analysis, and presentation-ready data.
var DefaultIngestURL = "http://localhost:8000"

// AcceptedUploadExtensions are the two recognized source file formats.
// Both are proprietary logger containers; anything else is rejected
// before any upload is attempted.
var AcceptedUploadExtensions = []string{".xrk", ".msl"}

var (
	CacheLapDetailTTL    = 15 * time.Minute
	UploadDedupeSize     = 1_000
	ChartMemoSize        = 4_096
	DefaultClientTimeout = 90 * time.Second
)

// InfluxDB export is optional and configured by environment only.
var (
	INFLUXDB_URL    = os.Getenv("INFLUXDB_URL")
	INFLUXDB_TOKEN  = os.Getenv("INFLUXDB_TOKEN")
	INFLUXDB_ORG    = os.Getenv("INFLUXDB_ORG")
	INFLUXDB_BUCKET = os.Getenv("INFLUXDB_BUCKET")
)

// TELEMETRY_BUCKETNAME is the object storage bucket for the
// upload-via-storage path. Empty disables that path.
var TELEMETRY_BUCKETNAME = os.Getenv("TELEMETRY_BUCKETNAME")
