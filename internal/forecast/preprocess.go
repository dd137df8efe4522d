package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
)

// Observation is one preprocessed history point.
type Observation struct {
	Date          time.Time
	Quantity      float64
	Normalized    float64
	MA7           float64
	MA30          float64
	Trend         float64
	SeasonalIndex float64
	MonthIndex    float64
}

// Stats summarizes a preprocessed history series.
type Stats struct {
	Length      int
	Mean        float64
	Min         float64
	Max         float64
	Seasonality float64
	Trend       float64
	Volatility  float64
}

// Preprocess cleans and enriches raw sales history:
// sort by date, drop IQR outliers, attach moving averages, a per-point
// trend signal and day-of-week plus month seasonal indices, then
// min-max normalize.
func Preprocess(records []domain.SalesRecord) ([]Observation, Stats) {
	sorted := make([]domain.SalesRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	kept := removeOutliers(sorted)
	obs := make([]Observation, len(kept))
	for i, r := range kept {
		obs[i] = Observation{Date: r.Date, Quantity: r.Quantity}
	}

	attachMovingAverages(obs)
	attachTrendSignal(obs)
	attachSeasonalIndices(obs)
	stats := normalize(obs)
	stats.Seasonality = seasonalityStrength(obs)
	stats.Trend = trendStrength(obs)
	stats.Volatility = volatility(obs)

	return obs, stats
}

// removeOutliers drops points outside 1.5x the interquartile range of
// the quantity series.
func removeOutliers(records []domain.SalesRecord) []domain.SalesRecord {
	if len(records) < 4 {
		return records
	}

	quantities := make([]float64, len(records))
	for i, r := range records {
		quantities[i] = r.Quantity
	}
	sort.Float64s(quantities)

	q1 := quantile(quantities, 0.25)
	q3 := quantile(quantities, 0.75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	kept := make([]domain.SalesRecord, 0, len(records))
	for _, r := range records {
		if r.Quantity >= lower && r.Quantity <= upper {
			kept = append(kept, r)
		}
	}
	return kept
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func attachMovingAverages(obs []Observation) {
	for i := range obs {
		obs[i].MA7 = trailingMean(obs, i, 7)
		obs[i].MA30 = trailingMean(obs, i, 30)
	}
}

func trailingMean(obs []Observation, end, window int) float64 {
	start := end - window + 1
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for i := start; i <= end; i++ {
		sum += obs[i].Quantity
	}
	return sum / float64(end-start+1)
}

// attachTrendSignal records, per point, the relative gap between the
// short and long moving averages. Positive means demand is rising.
func attachTrendSignal(obs []Observation) {
	for i := range obs {
		if obs[i].MA30 > 0 {
			obs[i].Trend = (obs[i].MA7 - obs[i].MA30) / obs[i].MA30
		}
	}
}

// attachSeasonalIndices assigns each point the ratio of its weekday's
// mean demand to the overall mean, and the same ratio for its calendar
// month.
func attachSeasonalIndices(obs []Observation) {
	if len(obs) == 0 {
		return
	}

	var total float64
	weekdaySums := [7]float64{}
	weekdayCounts := [7]int{}
	monthSums := [13]float64{}
	monthCounts := [13]int{}
	for _, o := range obs {
		day := int(o.Date.Weekday())
		weekdaySums[day] += o.Quantity
		weekdayCounts[day]++
		month := int(o.Date.Month())
		monthSums[month] += o.Quantity
		monthCounts[month]++
		total += o.Quantity
	}

	overall := total / float64(len(obs))
	for i := range obs {
		day := int(obs[i].Date.Weekday())
		if weekdayCounts[day] == 0 || overall == 0 {
			obs[i].SeasonalIndex = 1
		} else {
			obs[i].SeasonalIndex = (weekdaySums[day] / float64(weekdayCounts[day])) / overall
		}

		month := int(obs[i].Date.Month())
		if monthCounts[month] == 0 || overall == 0 {
			obs[i].MonthIndex = 1
		} else {
			obs[i].MonthIndex = (monthSums[month] / float64(monthCounts[month])) / overall
		}
	}
}

// normalize min-max scales quantities into [0,1] and fills the basic stats.
func normalize(obs []Observation) Stats {
	stats := Stats{Length: len(obs)}
	if len(obs) == 0 {
		return stats
	}

	stats.Min = obs[0].Quantity
	stats.Max = obs[0].Quantity
	sum := 0.0
	for _, o := range obs {
		stats.Min = math.Min(stats.Min, o.Quantity)
		stats.Max = math.Max(stats.Max, o.Quantity)
		sum += o.Quantity
	}
	stats.Mean = sum / float64(len(obs))

	span := stats.Max - stats.Min
	for i := range obs {
		if span > 0 {
			obs[i].Normalized = (obs[i].Quantity - stats.Min) / span
		} else {
			obs[i].Normalized = 0.5
		}
	}
	return stats
}

// seasonalityStrength is the coefficient of variation of the per-point
// seasonal indices.
func seasonalityStrength(obs []Observation) float64 {
	if len(obs) == 0 {
		return 0
	}
	values := make([]float64, len(obs))
	for i, o := range obs {
		values[i] = o.SeasonalIndex
	}
	mean := meanOf(values)
	if mean == 0 {
		return 0
	}
	return stddevOf(values, mean) / mean
}

// trendStrength is the mean absolute per-point trend signal.
func trendStrength(obs []Observation) float64 {
	if len(obs) == 0 {
		return 0
	}
	sum := 0.0
	for _, o := range obs {
		sum += math.Abs(o.Trend)
	}
	return sum / float64(len(obs))
}

// volatility is the standard deviation of the normalized quantities.
func volatility(obs []Observation) float64 {
	if len(obs) == 0 {
		return 0
	}
	values := make([]float64, len(obs))
	for i, o := range obs {
		values[i] = o.Normalized
	}
	return stddevOf(values, meanOf(values))
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddevOf(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
