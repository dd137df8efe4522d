package forecast

import (
	"math"

	"github.com/andresuchdata/restock-go/internal/domain"
)

const holdoutDays = 7

// Evaluate backtests the model on a holdout of the most recent history
// and reports MAPE, MAE and RMSE. Series too short to hold out are
// scored against the series mean.
func Evaluate(model Model, obs []Observation, stats Stats) domain.ForecastAccuracy {
	if len(obs) < 3*holdoutDays {
		return naiveAccuracy(obs, stats)
	}

	train := obs[:len(obs)-holdoutDays]
	actual := obs[len(obs)-holdoutDays:]

	// The holdout forecast starts where the training data ends.
	trainStats := restats(train, stats)
	predicted := model.Forecast(train, trainStats, holdoutDays, train[len(train)-1].Date)
	if len(predicted) < len(actual) {
		return naiveAccuracy(obs, stats)
	}

	var absSum, pctSum, sqSum float64
	pctCount := 0
	for i, a := range actual {
		diff := float64(predicted[i].Demand) - a.Quantity
		absSum += math.Abs(diff)
		sqSum += diff * diff
		if a.Quantity != 0 {
			pctSum += math.Abs(diff) / a.Quantity
			pctCount++
		}
	}

	n := float64(len(actual))
	acc := domain.ForecastAccuracy{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
	}
	if pctCount > 0 {
		acc.MAPE = pctSum / float64(pctCount) * 100
	}
	return acc
}

// restats recomputes only the normalization bounds for a truncated
// series; the shape stats carry over from the full history.
func restats(obs []Observation, stats Stats) Stats {
	out := stats
	out.Length = len(obs)
	if len(obs) == 0 {
		return out
	}
	out.Min = obs[0].Quantity
	out.Max = obs[0].Quantity
	sum := 0.0
	for _, o := range obs {
		out.Min = math.Min(out.Min, o.Quantity)
		out.Max = math.Max(out.Max, o.Quantity)
		sum += o.Quantity
	}
	out.Mean = sum / float64(len(obs))
	return out
}

func naiveAccuracy(obs []Observation, stats Stats) domain.ForecastAccuracy {
	if len(obs) == 0 {
		return domain.ForecastAccuracy{}
	}

	var absSum, pctSum, sqSum float64
	pctCount := 0
	for _, o := range obs {
		diff := stats.Mean - o.Quantity
		absSum += math.Abs(diff)
		sqSum += diff * diff
		if o.Quantity != 0 {
			pctSum += math.Abs(diff) / o.Quantity
			pctCount++
		}
	}

	n := float64(len(obs))
	acc := domain.ForecastAccuracy{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
	}
	if pctCount > 0 {
		acc.MAPE = pctSum / float64(pctCount) * 100
	}
	return acc
}
