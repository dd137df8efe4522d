package forecast

import (
	"math"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
)

const sequenceWindow = 14

// SequenceModel consumes a fixed-length sliding window of normalized
// recent demand, predicts one day ahead with recency-weighted smoothing
// plus a local slope term, then rolls the window forward on its own
// predictions. Assumed most accurate on long, information-rich
// histories.
type SequenceModel struct{}

func (SequenceModel) Name() string { return ModelSequence }

func (SequenceModel) Forecast(obs []Observation, stats Stats, horizon int, start time.Time) []domain.ForecastPoint {
	if len(obs) == 0 || horizon <= 0 {
		return nil
	}

	window := make([]float64, 0, sequenceWindow)
	from := len(obs) - sequenceWindow
	if from < 0 {
		from = 0
	}
	for _, o := range obs[from:] {
		window = append(window, o.Normalized)
	}
	// Short histories: left-pad with the first normalized value.
	for len(window) < sequenceWindow {
		window = append([]float64{window[0]}, window...)
	}

	span := stats.Max - stats.Min
	spread := stddevOf(window, meanOf(window)) * span

	points := make([]domain.ForecastPoint, 0, horizon)
	for step := 1; step <= horizon; step++ {
		predicted := predictNext(window)

		value := stats.Min + predicted*span

		// Highest floor of the library: 0.7.
		confidence := math.Max(0.7, 0.92-0.15*float64(step-1)/float64(horizon))

		margin := 1.28 * spread
		date := start.AddDate(0, 0, step)
		points = append(points, point(date, value, value-margin, value+margin, confidence))

		window = append(window[1:], predicted)
	}
	return points
}

// predictNext scores the window with exponential recency weights and a
// local slope correction, clamped back into normalized space.
func predictNext(window []float64) float64 {
	weightSum := 0.0
	weighted := 0.0
	for i, v := range window {
		w := math.Exp(float64(i-len(window)+1) / 4.0)
		weighted += w * v
		weightSum += w
	}
	level := weighted / weightSum

	half := len(window) / 2
	slope := (meanOf(window[half:]) - meanOf(window[:half])) / float64(half)

	return clamp01(level + slope)
}
