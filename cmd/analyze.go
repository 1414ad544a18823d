/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/navixracing/telemd/format"
	"github.com/navixracing/telemd/metrics/influxdb"
	"github.com/navixracing/telemd/stream"
	"github.com/navixracing/telemd/trace"
	"github.com/navixracing/telemd/types/telemetry"
)

var optCursor float64
var optInfluxExport bool
var optInfluxSession string
var optInfluxLap int

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run the lap analysis pipeline offline",
	Long: `Reads one lap of telemetry and writes the analyzed chart samples
as NDJSON to stdout, with a human summary on stderr.

Input is a lap detail JSON object ({"points": [...]}), a bare JSON
array of points, or NDJSON points, read from the named file or stdin.

Examples:

  telemd analyze lap4.json --cursor 62.5 > lap4-chart.ndjson
  cat points.ndjson | telemd analyze --influx --influx-session s1 --influx-lap 4
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		in := io.Reader(os.Stdin)
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				log.Fatalln(err)
			}
			defer f.Close()
			in = f
		}

		points, err := readPoints(in)
		if err != nil {
			log.Fatalln(err)
		}

		res := trace.Transform(points, optCursor)

		ctx := context.Background()
		meter := stream.NewMeter("analyze", 0)
		out := stream.Transform(ctx, func(s telemetry.ChartSample) telemetry.ChartSample {
			meter.Mark(1)
			return s
		}, stream.Slice(ctx, res.Series))
		if err := stream.WriteNDJSON(ctx, os.Stdout, out); err != nil {
			log.Fatalln(err)
		}
		meter.Stop()

		fmt.Fprintf(os.Stderr, "samples=%d (from %d points)\n", len(res.Series), len(points))
		fmt.Fprintf(os.Stderr, "lap length: %s\n", format.Distance(float64(res.MaxDistance)))
		if res.Readout != nil {
			fmt.Fprintf(os.Stderr, "cursor %.1f%%: sample %d, sector %d, time lost %s\n",
				optCursor, res.Readout.Index, res.Readout.Sector,
				format.DeltaSeconds(res.Readout.TimeLost))
		}

		if optInfluxExport {
			err := influxdb.ExportChartSeries(
				telemetry.SessionID(optInfluxSession), optInfluxLap, res.Series)
			if err != nil {
				log.Fatalln(err)
			}
		}
	},
}

// readPoints takes either whole-document JSON (lap detail object or
// bare array) or NDJSON points.
func readPoints(in io.Reader) ([]telemetry.TelemetryPoint, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	if ld, err := telemetry.DecodeLapDetail(data); err == nil {
		return ld.Points, nil
	}
	ctx := context.Background()
	points := stream.Collect(ctx,
		stream.NDJSON[telemetry.TelemetryPoint](ctx, bytes.NewReader(data)))
	if len(points) == 0 {
		return nil, fmt.Errorf("no telemetry points in input")
	}
	return points, nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	flags := analyzeCmd.Flags()
	flags.Float64Var(&optCursor, "cursor", 0, "Cursor position, 0-100 percent of lap distance")
	flags.BoolVar(&optInfluxExport, "influx", false, "Export analyzed samples to InfluxDB (INFLUXDB_* env)")
	flags.StringVar(&optInfluxSession, "influx-session", "adhoc", "Session tag for the InfluxDB export")
	flags.IntVar(&optInfluxLap, "influx-lap", 0, "Lap tag for the InfluxDB export")
}
