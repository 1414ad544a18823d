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
	"log"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/navixracing/telemd/daemon/webd"
	"github.com/navixracing/telemd/params"
)

var optHTTPAddr string
var optIngestURL string

// webdCmd represents the serve command
var webdCmd = &cobra.Command{
	Use:   "webd",
	Short: "Start the webserver",
	Long:  `Serves sessions, lap details, and chart data to the UI`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		slog.Info("webd.Run")
		server, err := webd.NewWebDaemon(&params.WebDaemonConfig{
			DataDir: datadir(params.DatadirRoot),
			ListenerConfig: params.ListenerConfig{
				Address: optHTTPAddr,
				Network: "tcp",
			},
			IngestURL: optIngestURL,
		})
		if err != nil {
			log.Fatalln(err)
		}

		if err := server.Run(); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(webdCmd)

	defaults := params.DefaultWebDaemonConfig()

	pFlags := webdCmd.PersistentFlags()
	pFlags.AddFlagSet(&pflag.FlagSet{})
	pFlags.StringVar(&optHTTPAddr, "address", defaults.Address, "HTTP address to listen on")
	pFlags.StringVar(&optIngestURL, "ingest-url", defaults.IngestURL, "Base URL of the telemetry ingestion service")
}
