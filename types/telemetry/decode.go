package telemetry

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

var ErrDecodeLapDetail = errors.New("could not decode as lap detail object or bare point array")

// DecodeLapDetail turns loose ingest output into a LapDetail.
// The ingest service normally responds with a LapDetail object, but
// exported files and older service versions ship a bare JSON array of
// points. Take either.
func DecodeLapDetail(data []byte) (*LapDetail, error) {
	if res := gjson.GetBytes(data, "points"); res.Exists() {
		ld := &LapDetail{}
		if err := json.Unmarshal(data, ld); err != nil {
			return nil, err
		}
		return ld, nil
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, ErrDecodeLapDetail
	}

	points := []TelemetryPoint{}
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, err
	}
	return &LapDetail{Points: points}, nil
}
