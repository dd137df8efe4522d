package forecast

import (
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
)

// minHistoryPoints is the smallest usable history after preprocessing.
const minHistoryPoints = 7

// Forecaster runs the full pipeline: preprocess, select a model,
// generate predictions, derive insights. All numeric work is pure and
// synchronous.
type Forecaster struct {
	now func() time.Time
}

func NewForecaster() *Forecaster {
	return &Forecaster{now: time.Now}
}

// NewForecasterAt pins the clock, for deterministic date assignment.
func NewForecasterAt(now func() time.Time) *Forecaster {
	return &Forecaster{now: now}
}

// Forecast produces a fresh, immutable ForecastResult for the product.
// Prediction dates start the day after the forecast is generated.
func (f *Forecaster) Forecast(productID string, history []domain.SalesRecord, horizonDays int) (*domain.ForecastResult, error) {
	obs, stats := Preprocess(history)
	if stats.Length < minHistoryPoints {
		return nil, domain.ErrForecastUnavailable
	}

	model := Select(stats)
	start := f.now().Truncate(24 * time.Hour)
	points := model.Forecast(obs, stats, horizonDays, start)
	if len(points) == 0 {
		return nil, domain.ErrForecastUnavailable
	}

	confSum := 0.0
	for _, p := range points {
		confSum += p.Confidence
	}

	return &domain.ForecastResult{
		ProductID:  productID,
		Points:     points,
		Accuracy:   Evaluate(model, obs, stats),
		Model:      model.Name(),
		Confidence: confSum / float64(len(points)),
		Insights:   BuildInsights(points, stats),
		CreatedAt:  f.now(),
	}, nil
}
