package webd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/navixracing/telemd/client"
)

// handleUpload takes a multipart source file, forwards it to the
// ingest service, and stores the parsed session. The new session is
// broadcast to websocket clients so open UIs refresh their lists.
func (s *WebDaemon) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		s.logger.Error("No file in upload request", "error", err)
		http.Error(w, "Please send a file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := client.ValidateUploadName(header.Filename); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := s.svc.Upload(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, client.ErrUnsupportedFormat) || errors.Is(err, client.ErrNoFile) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		apiErr := &client.APIError{}
		if errors.As(err, &apiErr) {
			http.Error(w, apiErr.Error(), http.StatusBadGateway)
			return
		}
		s.logger.Error("Failed to process upload", "name", header.Filename, "error", err)
		http.Error(w, "Failed to process upload", http.StatusInternalServerError)
		return
	}

	s.recentUploads.Add(header.Filename)
	s.feedUploaded.Send(sess)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(sess); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}
