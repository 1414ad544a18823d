// Package telemetry defines the wire and domain types shared between the
// ingestion service, the session store, and the analysis engine.
// The JSON field names are the ingest service's contract; don't rename them.
package telemetry

// SessionID identifies one recorded session.
type SessionID string

func (id SessionID) String() string { return string(id) }

func (id SessionID) IsEmpty() bool { return id == "" }

// LapSummary is one row of the session's lap table.
type LapSummary struct {
	LapNumber         int     `json:"lap_number"`
	LapTime           float64 `json:"lap_time"`
	MaxSpeed          float64 `json:"max_speed"`
	AvgRPM            float64 `json:"avg_rpm"`
	Distance          float64 `json:"distance"`
	FuelUsed          float64 `json:"fuel_used"`
	FuelUsePerHourAvg float64 `json:"fuel_use_per_hour_avg"`
}

// Session is a recorded session with its lap summaries.
// Per-sample data lives in LapDetail and is fetched lazily per lap.
type Session struct {
	SessionID       string       `json:"session_id"`
	Driver          string       `json:"driver"`
	Vehicle         string       `json:"vehicle"`
	Track           string       `json:"track"`
	Date            string       `json:"date"`
	DurationSeconds float64      `json:"duration_seconds"`
	LapCount        int          `json:"lap_count"`
	SampleRateHz    float64      `json:"sample_rate_hz"`
	Laps            []LapSummary `json:"laps"`
}

func (s *Session) ID() SessionID { return SessionID(s.SessionID) }

func (s *Session) IsEmpty() bool {
	return s == nil || s.SessionID == ""
}

// BestLap returns the lap summary with the lowest lap time,
// or nil when the session has no laps.
func (s *Session) BestLap() *LapSummary {
	var best *LapSummary
	for i := range s.Laps {
		if best == nil || s.Laps[i].LapTime < best.LapTime {
			best = &s.Laps[i]
		}
	}
	return best
}

// SessionListItem is one element of the ingest service's session index.
type SessionListItem struct {
	SessionID string `json:"session_id"`
	Driver    string `json:"driver"`
	Track     string `json:"track"`
	Date      string `json:"date"`
	LapCount  int    `json:"lap_count"`
}
