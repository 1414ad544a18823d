// Package client talks to the telemetry ingestion service.
// It is the only package that knows the ingest service's HTTP surface;
// everything above it works with telemetry types.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/navixracing/telemd/params"
	"github.com/navixracing/telemd/types/telemetry"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: params.DefaultClientTimeout},
	}
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}
	return body, nil
}

// FetchSessions lists the sessions the ingest service knows about.
func (c *Client) FetchSessions(ctx context.Context) ([]telemetry.SessionListItem, error) {
	body, err := c.get(ctx, "/api/v1/telemetry/sessions")
	if err != nil {
		return nil, err
	}
	// The service wraps the list: {"sessions": [...]}.
	var wrap struct {
		Sessions []telemetry.SessionListItem `json:"sessions"`
	}
	if err := json.Unmarshal(body, &wrap); err != nil {
		return nil, err
	}
	return wrap.Sessions, nil
}

// FetchSession fetches one session with its lap summaries.
func (c *Client) FetchSession(ctx context.Context, id telemetry.SessionID) (*telemetry.Session, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/v1/telemetry/sessions/%s/laps", id))
	if err != nil {
		return nil, err
	}
	sess := &telemetry.Session{}
	if err := json.Unmarshal(body, sess); err != nil {
		return nil, err
	}
	if sess.SessionID == "" {
		sess.SessionID = id.String()
	}
	return sess, nil
}

// FetchLapDetail fetches the per-sample points of one lap.
func (c *Client) FetchLapDetail(ctx context.Context, id telemetry.SessionID, lap int) (*telemetry.LapDetail, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/v1/telemetry/sessions/%s/laps/%d/details", id, lap))
	if err != nil {
		return nil, err
	}
	ld, err := telemetry.DecodeLapDetail(body)
	if err != nil {
		return nil, err
	}
	if ld.LapNumber == 0 {
		ld.LapNumber = lap
	}
	return ld, nil
}

// ValidateUploadName rejects anything that is not an accepted
// source-file format. Runs before any I/O so a typo'd drag-and-drop
// never hits the network.
func ValidateUploadName(name string) error {
	if name == "" {
		return ErrNoFile
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, ok := range params.AcceptedUploadExtensions {
		if ext == ok {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (accepted: %s)", ErrUnsupportedFormat, ext,
		strings.Join(params.AcceptedUploadExtensions, ", "))
}

// Upload sends a source file to the ingest service for parsing and
// returns the resulting session.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (*telemetry.Session, error) {
	if err := ValidateUploadName(name); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	part, err := mw.CreateFormFile("file", filepath.Base(name))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/api/v1/telemetry/upload", buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp.StatusCode, body)
	}
	sess := &telemetry.Session{}
	if err := json.Unmarshal(body, sess); err != nil {
		return nil, err
	}
	return sess, nil
}
