package volatility

import (
	"errors"
	"math"
	"testing"
	"time"

	"newsvol/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

func barsFromCloses(closes []float64) []domain.PriceBar {
	bars := make([]domain.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = domain.PriceBar{
			Symbol: "^GSPC",
			Date:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
		}
	}
	return bars
}

func wavyCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 4000 + 50*math.Sin(float64(i)/2) + float64(i)
	}
	return out
}

func TestEstimateConstantReturnsHaveZeroStdDev(t *testing.T) {
	closes := make([]float64, 25)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		closes[i] = closes[i-1] * 1.01
	}

	series, err := Estimate(barsFromCloses(closes), domain.VolatilityModel{Kind: domain.ModelStdDev, Window: 10})
	require.NoError(t, err)
	require.Len(t, series.Points, 25)

	for i, p := range series.Points {
		if i < 10 {
			assert.False(t, p.Defined(), "index %d should be undefined", i)
			continue
		}
		require.True(t, p.Defined(), "index %d should be defined", i)
		assert.InDelta(t, 0, p.Value, 1e-9)
	}
}

func TestEstimateLeadingPointsUndefinedForEveryModel(t *testing.T) {
	bars := barsFromCloses(wavyCloses(40))
	const window = 7

	for _, kind := range domain.SupportedModels {
		t.Run(string(kind), func(t *testing.T) {
			model := domain.VolatilityModel{Kind: kind, Window: window, Multiplier: 2}
			series, err := Estimate(bars, model)
			require.NoError(t, err)
			require.Len(t, series.Points, len(bars))

			lead := LeadingUndefined(model)
			assert.GreaterOrEqual(t, lead, window-1)
			for i, p := range series.Points {
				if i < lead {
					assert.False(t, p.Defined(), "index %d", i)
				} else {
					assert.True(t, p.Defined(), "index %d", i)
					assert.False(t, math.IsInf(p.Value, 0))
				}
			}
		})
	}
}

func TestEstimateHistoricalAnnualizesStdDev(t *testing.T) {
	bars := barsFromCloses(wavyCloses(30))
	std, err := Estimate(bars, domain.VolatilityModel{Kind: domain.ModelStdDev, Window: 5})
	require.NoError(t, err)
	hist, err := Estimate(bars, domain.VolatilityModel{Kind: domain.ModelHistorical, Window: 5})
	require.NoError(t, err)
	sma, err := Estimate(bars, domain.VolatilityModel{Kind: domain.ModelSMA, Window: 5})
	require.NoError(t, err)

	for i := 5; i < len(bars); i++ {
		assert.InDelta(t, std.Points[i].Value*math.Sqrt(252), hist.Points[i].Value, 1e-9)
		assert.Equal(t, hist.Points[i].Value, sma.Points[i].Value)
	}
	assert.Equal(t, domain.ModelSMA, sma.Model.Kind)
}

func TestEstimateATR(t *testing.T) {
	bars := []domain.PriceBar{
		{Date: base, High: 10, Low: 8, Close: 9},
		{Date: base.AddDate(0, 0, 1), High: 12, Low: 11, Close: 11.5},
		{Date: base.AddDate(0, 0, 2), High: 11, Low: 7, Close: 8},
	}
	series, err := Estimate(bars, domain.VolatilityModel{Kind: domain.ModelATR, Window: 2})
	require.NoError(t, err)

	assert.False(t, series.Points[0].Defined())
	// true ranges are 2, 3, 4.5
	assert.InDelta(t, 2.5, series.Points[1].Value, 1e-9)
	assert.InDelta(t, 3.75, series.Points[2].Value, 1e-9)
}

func TestEstimateBollingerWidth(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2, 3, 4, 5})
	model := domain.VolatilityModel{Kind: domain.ModelBollinger, Window: 3, Multiplier: 2}

	series, err := Estimate(bars, model)
	require.NoError(t, err)
	std := math.Sqrt(2.0 / 3.0)
	assert.InDelta(t, 4*std, series.Points[2].Value, 1e-9)

	model.Percent = true
	pct, err := Estimate(bars, model)
	require.NoError(t, err)
	// middle band at index 4 is 4
	assert.InDelta(t, 100*4*std/4, pct.Points[4].Value, 1e-9)
}

func TestEstimateSortsBarsWithoutMutatingInput(t *testing.T) {
	bars := barsFromCloses(wavyCloses(12))
	reversed := make([]domain.PriceBar, len(bars))
	for i := range bars {
		reversed[len(bars)-1-i] = bars[i]
	}

	got, err := Estimate(reversed, domain.VolatilityModel{Kind: domain.ModelStdDev, Window: 3})
	require.NoError(t, err)
	want, err := Estimate(bars, domain.VolatilityModel{Kind: domain.ModelStdDev, Window: 3})
	require.NoError(t, err)

	for i := range want.Points {
		assert.Equal(t, want.Points[i].Date, got.Points[i].Date)
		if want.Points[i].Defined() {
			assert.InDelta(t, want.Points[i].Value, got.Points[i].Value, 1e-12)
		}
	}
	assert.True(t, reversed[0].Date.After(reversed[1].Date), "input must not be reordered")
}

func TestEstimateErrors(t *testing.T) {
	_, err := Estimate(nil, domain.VolatilityModel{Kind: "garch", Window: 5})
	var unsupported *domain.UnsupportedModelError
	assert.True(t, errors.As(err, &unsupported), "expected UnsupportedModelError, got %v", err)

	_, err = Estimate(nil, domain.VolatilityModel{Kind: domain.ModelATR, Window: 5})
	var noData *domain.NoDataError
	assert.True(t, errors.As(err, &noData), "expected NoDataError, got %v", err)

	_, err = Estimate(barsFromCloses(wavyCloses(10)), domain.VolatilityModel{Kind: domain.ModelStdDev, Window: 0})
	var param *domain.InvalidParameterError
	assert.True(t, errors.As(err, &param), "expected InvalidParameterError, got %v", err)
}

func TestEstimateWindowLongerThanHistory(t *testing.T) {
	series, err := Estimate(barsFromCloses(wavyCloses(4)), domain.VolatilityModel{Kind: domain.ModelBollinger, Window: 20, Multiplier: 2})
	require.NoError(t, err)
	for _, p := range series.Points {
		assert.False(t, p.Defined())
	}
	_, ok := series.Latest()
	assert.False(t, ok)
}
