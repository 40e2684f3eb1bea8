package trustscore

import (
	"log/slog"
	"time"

	"clearhire/internal/trustscore/metrics"
)

// Service wraps the calculator with logging and metrics. Build one at the
// composition root and share it; the calculation itself stays pure, so the
// wrapper adds observability without adding state.
type Service struct {
	calc    *Calculator
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService wires the trust score service. Metrics and logger may be nil.
func NewService(calc *Calculator, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{calc: calc, metrics: m, logger: logger}
}

// Calculate scores one verification snapshot and records the outcome.
func (s *Service) Calculate(data Data, now time.Time) Result {
	start := time.Now()
	result := s.calc.Calculate(data, now)
	s.metrics.ObserveCalculateLatency(time.Since(start))
	s.metrics.RecordCalculation(string(result.Status), result.Score, len(result.Flags))

	if s.logger != nil {
		s.logger.Info("trust score calculated",
			"score", result.Score,
			"status", result.Status,
			"completion_rate", result.CompletionRate,
			"flag_count", len(result.Flags))
	}

	return result
}
