// Package webd serves the telemetry UI's HTTP and websocket API.
// It fronts the ingest service: sessions and lap details are read
// through the local store, and chart data is computed here so the
// browser never does its own math.
package webd

import (
	"log"
	"log/slog"
	"net"
	"net/http"

	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/mux"
	"github.com/olahol/melody"

	"github.com/navixracing/telemd/api"
	"github.com/navixracing/telemd/client"
	"github.com/navixracing/telemd/common"
	"github.com/navixracing/telemd/params"
	"github.com/navixracing/telemd/state"
	"github.com/navixracing/telemd/types/telemetry"
)

type WebDaemon struct {
	Config         *params.WebDaemonConfig
	logger         *slog.Logger
	melodyInstance *melody.Melody
	feedUploaded   event.FeedOf[*telemetry.Session]

	store *state.Store
	svc   *api.Service

	// recentUploads backs the /status report.
	recentUploads *common.RingBuffer[string]
}

func NewWebDaemon(config *params.WebDaemonConfig) (*WebDaemon, error) {
	if config == nil {
		config = params.DefaultWebDaemonConfig()
	}
	store, err := state.Open(config.DataDir, false)
	if err != nil {
		return nil, err
	}
	return &WebDaemon{
		Config:        config,
		logger:        slog.With("d", "web"),
		feedUploaded:  event.FeedOf[*telemetry.Session]{},
		store:         store,
		svc:           api.NewService(store, client.NewClient(config.IngestURL)),
		recentUploads: common.NewRingBuffer[string](10),
	}, nil
}

// Run starts the HTTP server (Serve) and waits for it,
// returning any server error.
func (s *WebDaemon) Run() error {
	defer s.store.Close()
	router := s.NewRouter()
	listener, err := net.Listen(s.Config.Network, s.Config.Address)
	if err != nil {
		return err
	}
	log.Printf("Starting web daemon on %s", s.Config.Address)
	return http.Serve(listener, router)
}

func (s *WebDaemon) NewRouter() *mux.Router {
	s.initMelody()

	router := mux.NewRouter().StrictSlash(false)
	router.Use(loggingMiddleware)

	apiRoutes := router.NewRoute().Subrouter()

	// All API routes use permissive CORS settings.
	apiRoutes.Use(permissiveCorsMiddleware)

	// /ping is a simple server healthcheck endpoint
	apiRoutes.Path("/ping").HandlerFunc(pingPong)

	apiRoutes.Path("/socket").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = s.melodyInstance.HandleRequest(w, r)
	})

	apiJSONRoutes := apiRoutes.NewRoute().Subrouter()
	jsonMiddleware := contentTypeMiddlewareFunc("application/json")
	apiJSONRoutes.Use(jsonMiddleware)

	apiJSONRoutes.Path("/status").HandlerFunc(s.handleStatus).Methods(http.MethodGet)

	apiJSONRoutes.Path("/sessions").HandlerFunc(s.handleListSessions).Methods(http.MethodGet)
	apiJSONRoutes.Path("/sessions/{session}").HandlerFunc(s.handleGetSession).Methods(http.MethodGet)
	apiJSONRoutes.Path("/sessions/{session}/summary").HandlerFunc(s.handleGetSummary).Methods(http.MethodGet)
	apiJSONRoutes.Path("/sessions/{session}/laps/{lap}/details").HandlerFunc(s.handleGetLapDetail).Methods(http.MethodGet)
	apiJSONRoutes.Path("/sessions/{session}/laps/{lap}/chart").HandlerFunc(s.handleGetChart).Methods(http.MethodGet)
	apiJSONRoutes.Path("/sessions/{session}/laps/{lap}/track").HandlerFunc(s.handleGetTrack).Methods(http.MethodGet)

	apiJSONRoutes.Path("/upload").HandlerFunc(s.handleUpload).Methods(http.MethodPost)

	return router
}
