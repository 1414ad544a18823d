package webd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/navixracing/telemd/api"
	"github.com/navixracing/telemd/client"
	"github.com/navixracing/telemd/geo/project"
	"github.com/navixracing/telemd/types/telemetry"
)

func pingPong(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

type statusReport struct {
	Uptime        string   `json:"uptime"`
	IngestURL     string   `json:"ingest_url"`
	SessionCount  int      `json:"session_count"`
	RecentUploads []string `json:"recent_uploads"`
}

var started = time.Now()

func (s *WebDaemon) handleStatus(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.svc.Sessions()
	if err != nil {
		s.logger.Warn("Failed to list sessions for status", "error", err)
	}
	report := statusReport{
		Uptime:        time.Since(started).Round(time.Second).String(),
		IngestURL:     s.Config.IngestURL,
		SessionCount:  len(sessions),
		RecentUploads: s.recentUploads.Get(),
	}
	if report.RecentUploads == nil {
		report.RecentUploads = []string{}
	}
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *WebDaemon) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.svc.Sessions()
	if err != nil {
		s.logger.Warn("Failed to list sessions", "error", err)
		http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(map[string]any{"sessions": sessions}); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

// sessionVar pulls the session id out of the route.
func sessionVar(r *http.Request) telemetry.SessionID {
	return telemetry.SessionID(mux.Vars(r)["session"])
}

// lapVar pulls and parses the lap number out of the route.
func lapVar(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["lap"])
}

func (s *WebDaemon) writeSessionError(w http.ResponseWriter, id telemetry.SessionID, err error) {
	apiErr := &client.APIError{}
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	s.logger.Warn("Failed to get session data", "session", id, "error", err)
	http.Error(w, "Failed to get session data", http.StatusInternalServerError)
}

func (s *WebDaemon) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := sessionVar(r)
	sess, err := s.svc.Session(r.Context(), id)
	if err != nil {
		s.writeSessionError(w, id, err)
		return
	}
	if err := json.NewEncoder(w).Encode(sess); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *WebDaemon) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	id := sessionVar(r)
	sess, err := s.svc.Session(r.Context(), id)
	if err != nil {
		s.writeSessionError(w, id, err)
		return
	}
	if err := json.NewEncoder(w).Encode(api.Summarize(sess)); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *WebDaemon) handleGetLapDetail(w http.ResponseWriter, r *http.Request) {
	id := sessionVar(r)
	lap, err := lapVar(r)
	if err != nil {
		http.Error(w, "Bad lap number", http.StatusBadRequest)
		return
	}
	ld, err := s.svc.LapDetail(r.Context(), id, lap)
	if err != nil {
		s.writeSessionError(w, id, err)
		return
	}
	if err := json.NewEncoder(w).Encode(ld); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

// handleGetChart runs the transformation pipeline for one lap at the
// requested cursor position (query param `cursor`, 0-100, default 0).
func (s *WebDaemon) handleGetChart(w http.ResponseWriter, r *http.Request) {
	id := sessionVar(r)
	lap, err := lapVar(r)
	if err != nil {
		http.Error(w, "Bad lap number", http.StatusBadRequest)
		return
	}
	cursor := 0.0
	if v := r.URL.Query().Get("cursor"); v != "" {
		cursor, err = strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "Bad cursor value", http.StatusBadRequest)
			return
		}
	}
	res, err := s.svc.Chart(r.Context(), id, lap, cursor)
	if err != nil {
		s.writeSessionError(w, id, err)
		return
	}
	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

// handleGetTrack returns the lap's track line as GeoJSON, or 204 when
// the lap has too few GPS fixes for a real outline.
func (s *WebDaemon) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	id := sessionVar(r)
	lap, err := lapVar(r)
	if err != nil {
		http.Error(w, "Bad lap number", http.StatusBadRequest)
		return
	}
	res, err := s.svc.Chart(r.Context(), id, lap, 0)
	if err != nil {
		s.writeSessionError(w, id, err)
		return
	}
	feature := project.TrackLine(res.Series)
	if feature == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := json.NewEncoder(w).Encode(feature); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}
