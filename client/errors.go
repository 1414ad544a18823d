package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

var (
	// ErrUnsupportedFormat means the file name did not carry an accepted
	// extension. Checked before any bytes move.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	ErrNoFile = errors.New("no file provided")

	// ErrStale marks a fetch response that lost the latest-wins race.
	ErrStale = errors.New("stale lap detail response discarded")
)

// APIError is a non-2xx response from the ingest service.
// Detail carries the service's own error message when it sent one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ingest service: %d %s: %s",
			e.Status, http.StatusText(e.Status), e.Detail)
	}
	return fmt.Sprintf("ingest service: %d %s", e.Status, http.StatusText(e.Status))
}

func apiError(status int, body []byte) *APIError {
	// FastAPI-style services put the message under "detail".
	return &APIError{Status: status, Detail: gjson.GetBytes(body, "detail").String()}
}
