package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/navixracing/telemd/params"
	"github.com/navixracing/telemd/types/telemetry"
)

// UploadViaStorage stages a source file in object storage and asks the
// ingest service to process it from there. Large logger files go this
// way so the ingest service never has to hold a multipart body.
// Requires TELEMETRY_BUCKETNAME; bucket region and credentials come
// from the ambient AWS environment.
func (c *Client) UploadViaStorage(ctx context.Context, name string, r io.Reader) (*telemetry.Session, error) {
	if err := ValidateUploadName(name); err != nil {
		return nil, err
	}
	if params.TELEMETRY_BUCKETNAME == "" {
		return nil, fmt.Errorf("storage upload disabled: TELEMETRY_BUCKETNAME unset")
	}

	sess, err := session.NewSession()
	if err != nil {
		return nil, err
	}
	uploader := s3manager.NewUploader(sess)

	base := filepath.Base(name)
	key := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), base)
	_, err = uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(params.TELEMETRY_BUCKETNAME),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return nil, fmt.Errorf("storage upload: %w", err)
	}

	payload, err := json.Marshal(map[string]string{
		"file_path": key,
		"file_name": base,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/api/v1/telemetry/process-from-storage", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

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
	out := &telemetry.Session{}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, err
	}
	return out, nil
}
