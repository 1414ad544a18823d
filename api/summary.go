package api

import (
	"github.com/montanaflynn/stats"

	"github.com/navixracing/telemd/format"
	"github.com/navixracing/telemd/types/telemetry"
)

// Summary is the headline numbers for a session, preformatted for
// display alongside the raw values.
type Summary struct {
	SessionID    string  `json:"session_id"`
	LapCount     int     `json:"lap_count"`
	BestLap      int     `json:"best_lap"`
	BestLapTime  float64 `json:"best_lap_time"`
	TopSpeed     float64 `json:"top_speed"`
	AvgRPM       float64 `json:"avg_rpm"`
	TotalMeters  float64 `json:"total_meters"`
	TotalFuel    float64 `json:"total_fuel"`
	BestLapLabel string  `json:"best_lap_label"`
	TopSpeedKPH  string  `json:"top_speed_label"`
	AvgRPMLabel  string  `json:"avg_rpm_label"`
	TotalKM      string  `json:"total_distance_label"`
}

// Summarize aggregates a session's lap table.
func Summarize(sess *telemetry.Session) Summary {
	sum := Summary{SessionID: sess.SessionID, LapCount: len(sess.Laps)}
	if len(sess.Laps) == 0 {
		return sum
	}

	times := make(stats.Float64Data, len(sess.Laps))
	speeds := make(stats.Float64Data, len(sess.Laps))
	rpms := make(stats.Float64Data, len(sess.Laps))
	dists := make(stats.Float64Data, len(sess.Laps))
	fuels := make(stats.Float64Data, len(sess.Laps))
	for i, lap := range sess.Laps {
		times[i] = lap.LapTime
		speeds[i] = lap.MaxSpeed
		rpms[i] = lap.AvgRPM
		dists[i] = lap.Distance
		fuels[i] = lap.FuelUsed
	}

	sum.BestLapTime, _ = stats.Min(times)
	sum.TopSpeed, _ = stats.Max(speeds)
	sum.AvgRPM, _ = stats.Mean(rpms)
	sum.TotalMeters, _ = stats.Sum(dists)
	sum.TotalFuel, _ = stats.Sum(fuels)
	if best := sess.BestLap(); best != nil {
		sum.BestLap = best.LapNumber
	}

	sum.BestLapLabel = format.LapTime(sum.BestLapTime)
	sum.TopSpeedKPH = format.Speed(sum.TopSpeed)
	sum.AvgRPMLabel = format.RPM(sum.AvgRPM)
	sum.TotalKM = format.Distance(sum.TotalMeters)
	return sum
}
