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
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/navixracing/telemd/format"
	"github.com/navixracing/telemd/params"
	"github.com/navixracing/telemd/state"
	"github.com/navixracing/telemd/stream"
	"github.com/navixracing/telemd/types/telemetry"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import sessions from NDJSON on stdin",
	Long: `Reads sessions as JSON lines from stdin and writes them to the
local session store. Lap details are not imported; they are fetched
from the ingest service on first use.

Example:

  cat sessions.ndjson | telemd import
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		store, err := state.Open(datadir(params.DatadirRoot), false)
		if err != nil {
			log.Fatalln(err)
		}
		defer store.Close()

		ctx := context.Background()
		meter := stream.NewMeter("import", 10*time.Second)
		defer meter.Stop()

		n := 0
		sessions := stream.NDJSON[telemetry.Session](ctx, os.Stdin)
		for sess := range sessions {
			sess := sess
			if sess.IsEmpty() {
				continue
			}
			if err := store.WriteSession(&sess); err != nil {
				log.Fatalln(err)
			}
			meter.Mark(1)
			n++

			line := fmt.Sprintf("%-24s %-16s laps=%d", sess.SessionID, sess.Track, len(sess.Laps))
			if best := sess.BestLap(); best != nil {
				line += fmt.Sprintf(" best=%s (lap %d)", format.LapTime(best.LapTime), best.LapNumber)
			}
			fmt.Fprintln(os.Stderr, line)
		}
		fmt.Fprintf(os.Stderr, "imported %d sessions\n", n)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
