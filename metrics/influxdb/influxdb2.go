package influxdb

import (
	"strconv"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/navixracing/telemd/params"
	"github.com/navixracing/telemd/types/telemetry"
)

// ExportChartSeries posts one lap's chart samples to an InfluxDB Write
// API. Because it accepts a slice, use whole laps. The Write API will
// buffer and flush. The last error encountered is returned.
func ExportChartSeries(session telemetry.SessionID, lap int, series telemetry.ChartSeries) error {
	opts := influxdb2.DefaultOptions()
	opts.SetPrecision(time.Millisecond)
	client := influxdb2.NewClientWithOptions(params.INFLUXDB_URL, params.INFLUXDB_TOKEN, opts)
	writeAPI := client.WriteAPI(params.INFLUXDB_ORG, params.INFLUXDB_BUCKET)

	// Errors returns a channel for reading errors which occur during async
	// writes. Must be called before performing any writes for errors to be
	// collected. The chan is unbuffered and must be drained or the writer
	// will block.
	errorsCh := writeAPI.Errors()
	var err error
	wait := sync.WaitGroup{}
	wait.Add(1)
	go func() {
		defer wait.Done()
		for e := range errorsCh {
			if e != nil {
				err = e
			}
		}
	}()

	base := time.Now()
	for _, s := range series {
		p := influxdb2.NewPointWithMeasurement("lapsample").
			SetTime(base.Add(time.Duration(s.Time * float64(time.Second)))).
			AddTag("session", session.String()).
			AddTag("lap", strconv.Itoa(lap)).
			AddField("distance", s.Distance).
			AddField("speed", s.CurrentSpeed).
			AddField("rpm", s.CurrentRPM).
			AddField("throttle", s.Throttle).
			AddField("brake", s.Brake).
			AddField("ref_speed", s.RefSpeed).
			AddField("ref_rpm", s.RefRPM).
			AddField("delta", s.Delta)

		if s.HasFix() {
			p.AddField("latitude", s.Lat)
			p.AddField("longitude", s.Lon)
		}
		writeAPI.WritePoint(p)
	}
	writeAPI.Flush()
	client.Close()
	wait.Wait()
	return err
}
