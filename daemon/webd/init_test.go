package webd

import (
	"os"

	"github.com/navixracing/telemd/params"
)

// newTestWebDaemon creates a new WebDaemon for testing purposes.
// If datadir is empty, one will be provided for you.
func newTestWebDaemon(datadir string) (daemon *WebDaemon, teardown func() error) {
	config := params.DefaultTestWebDaemonConfig()
	if datadir != "" {
		config.DataDir = datadir
	} else {
		tmpd, err := os.MkdirTemp(os.TempDir(), "telemd-webd-test")
		if err != nil {
			panic(err)
		}
		config.DataDir = tmpd
	}
	daemon, err := NewWebDaemon(config)
	if err != nil {
		panic(err)
	}
	teardown = func() error {
		daemon.store.Close()
		return os.RemoveAll(config.DataDir)
	}
	return daemon, teardown
}
