package forecast

import (
	"testing"
	"time"

	"github.com/andresuchdata/restock-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func flatHistory(n int, qty float64) []domain.SalesRecord {
	records := make([]domain.SalesRecord, n)
	for i := range records {
		records[i] = domain.SalesRecord{Date: day(i), Quantity: qty}
	}
	return records
}

func TestPreprocessSortsByDate(t *testing.T) {
	records := []domain.SalesRecord{
		{Date: day(2), Quantity: 30},
		{Date: day(0), Quantity: 10},
		{Date: day(1), Quantity: 20},
	}

	obs, stats := Preprocess(records)
	require.Len(t, obs, 3)
	assert.Equal(t, 3, stats.Length)
	assert.Equal(t, 10.0, obs[0].Quantity)
	assert.Equal(t, 20.0, obs[1].Quantity)
	assert.Equal(t, 30.0, obs[2].Quantity)
}

func TestPreprocessRemovesOutliers(t *testing.T) {
	records := flatHistory(20, 10)
	records = append(records, domain.SalesRecord{Date: day(20), Quantity: 500})

	obs, stats := Preprocess(records)
	assert.Equal(t, 20, stats.Length)
	for _, o := range obs {
		assert.Equal(t, 10.0, o.Quantity)
	}
}

func TestPreprocessKeepsShortSeriesIntact(t *testing.T) {
	// Fewer than 4 points: IQR filtering is skipped entirely.
	records := []domain.SalesRecord{
		{Date: day(0), Quantity: 1},
		{Date: day(1), Quantity: 1000},
		{Date: day(2), Quantity: 2},
	}

	obs, _ := Preprocess(records)
	assert.Len(t, obs, 3)
}

func TestPreprocessMovingAverages(t *testing.T) {
	records := make([]domain.SalesRecord, 10)
	for i := range records {
		records[i] = domain.SalesRecord{Date: day(i), Quantity: float64(i + 1)}
	}

	obs, _ := Preprocess(records)
	require.Len(t, obs, 10)

	// First point has a one-element trailing window.
	assert.InDelta(t, 1.0, obs[0].MA7, 1e-9)
	// Last point: mean of 4..10.
	assert.InDelta(t, 7.0, obs[9].MA7, 1e-9)
	// MA30 covers the whole series here.
	assert.InDelta(t, 5.5, obs[9].MA30, 1e-9)
	assert.Positive(t, obs[9].Trend)
}

func TestPreprocessFlatSeriesStats(t *testing.T) {
	obs, stats := Preprocess(flatHistory(30, 25))

	assert.InDelta(t, 25.0, stats.Mean, 1e-9)
	assert.InDelta(t, 0.0, stats.Volatility, 1e-9)
	assert.InDelta(t, 0.0, stats.Seasonality, 1e-9)
	assert.InDelta(t, 0.0, stats.Trend, 1e-9)
	for _, o := range obs {
		// Degenerate span normalizes to the midpoint.
		assert.InDelta(t, 0.5, o.Normalized, 1e-9)
		assert.InDelta(t, 1.0, o.SeasonalIndex, 1e-9)
		assert.InDelta(t, 1.0, o.MonthIndex, 1e-9)
	}
}

func TestPreprocessSeasonalIndices(t *testing.T) {
	// Weekly ramp: each weekday sells a consistent, distinct amount.
	records := make([]domain.SalesRecord, 28)
	for i := range records {
		records[i] = domain.SalesRecord{Date: day(i), Quantity: 10 + 2*float64(i%7)}
	}

	obs, stats := Preprocess(records)
	require.Len(t, obs, 28)
	assert.Greater(t, obs[6].SeasonalIndex, obs[0].SeasonalIndex)
	assert.Positive(t, stats.Seasonality)
}

func TestPreprocessMonthIndices(t *testing.T) {
	// January sells 10/day, February 30/day.
	records := make([]domain.SalesRecord, 0, 59)
	for i := 0; i < 31; i++ {
		records = append(records, domain.SalesRecord{Date: day(i), Quantity: 10})
	}
	for i := 31; i < 59; i++ {
		records = append(records, domain.SalesRecord{Date: day(i), Quantity: 30})
	}

	obs, _ := Preprocess(records)
	require.Len(t, obs, 59)
	assert.Less(t, obs[0].MonthIndex, 1.0)
	assert.Greater(t, obs[58].MonthIndex, 1.0)
	// Weekday mix is even across both months, so the month indices
	// separate more sharply than the weekday ones.
	assert.Greater(t, obs[58].MonthIndex, obs[58].SeasonalIndex)
}

func TestPreprocessEmptyHistory(t *testing.T) {
	obs, stats := Preprocess(nil)
	assert.Empty(t, obs)
	assert.Equal(t, 0, stats.Length)
}
