package trustscore

import (
	"math"
	"time"

	"clearhire/internal/verification/models"
)

// Result is one complete trust score calculation. A recalculation always
// produces a new Result; nothing mutates one in place. Whether it replaces
// a previously stored result is the caller's decision.
type Result struct {
	Score           float64            `json:"score"`
	Status          Status             `json:"status"`
	Flags           []string           `json:"flags"`
	Breakdown       map[string]float64 `json:"breakdown"`
	CompletionRate  float64            `json:"completion_rate"`
	Recommendations []string           `json:"recommendations"`
	CalculatedAt    time.Time          `json:"calculated_at"`
}

// HRView returns the display-safe summary shown to recruiters: values
// rounded for presentation, completion as a percentage.
func (r Result) HRView() map[string]any {
	breakdown := make(map[string]float64, len(r.Breakdown))
	for k, v := range r.Breakdown {
		breakdown[k] = round1(v)
	}
	return map[string]any{
		"score":           round1(r.Score),
		"status":          string(r.Status),
		"flags":           r.Flags,
		"breakdown":       breakdown,
		"completion_rate": round1(r.CompletionRate * 100),
		"recommendations": r.Recommendations,
		"calculated_at":   r.CalculatedAt.Format(time.RFC3339),
	}
}

// Audit returns the unrounded record persisted alongside the session score.
func (r Result) Audit() map[string]any {
	return map[string]any{
		"score":           r.Score,
		"status":          string(r.Status),
		"flags":           r.Flags,
		"breakdown":       r.Breakdown,
		"completion_rate": r.CompletionRate,
		"recommendations": r.Recommendations,
		"calculated_at":   r.CalculatedAt.Format(time.RFC3339),
	}
}

// Record converts the result into the form the session stores when it
// transitions to SCORED.
func (r Result) Record() models.ScoreRecord {
	return models.ScoreRecord{
		Score:        r.Score,
		Status:       string(r.Status),
		CalculatedAt: r.CalculatedAt,
		Details:      r.Audit(),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
