package forecast

import (
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
)

// Ensemble blend weights for the decomposition and autoregressive
// outputs.
const (
	ensembleDecompWeight = 0.6
	ensembleARWeight     = 0.4
)

// EnsembleModel blends the decomposition and autoregressive models on
// the predicted value and both bounds. Per-day confidence is the max of
// the two blended model confidences.
type EnsembleModel struct{}

func (EnsembleModel) Name() string { return ModelEnsemble }

func (EnsembleModel) Forecast(obs []Observation, stats Stats, horizon int, start time.Time) []domain.ForecastPoint {
	decomp := DecompositionModel{}.Forecast(obs, stats, horizon, start)
	ar := AutoregressiveModel{}.Forecast(obs, stats, horizon, start)
	if len(decomp) == 0 || len(ar) == 0 {
		return nil
	}

	n := len(decomp)
	if len(ar) < n {
		n = len(ar)
	}

	points := make([]domain.ForecastPoint, 0, n)
	for i := 0; i < n; i++ {
		d, a := decomp[i], ar[i]

		value := ensembleDecompWeight*float64(d.Demand) + ensembleARWeight*float64(a.Demand)
		lower := ensembleDecompWeight*float64(d.Lower) + ensembleARWeight*float64(a.Lower)
		upper := ensembleDecompWeight*float64(d.Upper) + ensembleARWeight*float64(a.Upper)

		confidence := d.Confidence
		if a.Confidence > confidence {
			confidence = a.Confidence
		}

		points = append(points, point(d.Date, value, lower, upper, confidence))
	}
	return points
}
