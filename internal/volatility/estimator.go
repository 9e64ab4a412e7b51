// Package volatility turns daily price bars into a volatility series under
// one of several interchangeable models.
package volatility

import (
	"sort"

	"newsvol/internal/domain"
	"newsvol/internal/ta"
)

type estimatorFunc func(bars []domain.PriceBar, model domain.VolatilityModel) []float64

var estimators = map[domain.ModelKind]estimatorFunc{
	domain.ModelStdDev:     stdDevOfReturns,
	domain.ModelATR:        averageTrueRange,
	domain.ModelHistorical: historicalVolatility,
	domain.ModelBollinger:  bollingerBandWidth,
	// SMA volatility shares the historical volatility algorithm.
	domain.ModelSMA: historicalVolatility,
}

// Estimate computes model over bars. The model is validated before the bars
// are looked at; undefined leading points carry NaN.
func Estimate(bars []domain.PriceBar, model domain.VolatilityModel) (domain.VolatilitySeries, error) {
	if err := model.Validate(); err != nil {
		return domain.VolatilitySeries{}, err
	}
	estimate, ok := estimators[model.Kind]
	if !ok {
		return domain.VolatilitySeries{}, &domain.UnsupportedModelError{Model: string(model.Kind)}
	}
	if len(bars) == 0 {
		return domain.VolatilitySeries{}, &domain.NoDataError{Source: "price"}
	}

	sorted := normalizeBars(bars)
	values := estimate(sorted, model)

	series := domain.VolatilitySeries{
		Symbol: sorted[0].Symbol,
		Model:  model,
		Points: make([]domain.VolatilityPoint, len(sorted)),
	}
	for i, b := range sorted {
		series.Points[i] = domain.VolatilityPoint{Date: domain.Day(b.Date), Value: values[i]}
	}
	return series, nil
}

// LeadingUndefined is how many points at the start of a series the model
// cannot compute.
func LeadingUndefined(model domain.VolatilityModel) int {
	if model.ReturnBased() {
		return model.Window
	}
	return model.Window - 1
}

func normalizeBars(in []domain.PriceBar) []domain.PriceBar {
	out := make([]domain.PriceBar, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func closes(bars []domain.PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

func stdDevOfReturns(bars []domain.PriceBar, model domain.VolatilityModel) []float64 {
	return ta.RollingStdDev(ta.Returns(closes(bars)), model.Window)
}

func historicalVolatility(bars []domain.PriceBar, model domain.VolatilityModel) []float64 {
	return ta.Annualize(stdDevOfReturns(bars, model), domain.TradingDaysPerYear)
}

func averageTrueRange(bars []domain.PriceBar, model domain.VolatilityModel) []float64 {
	high := make([]float64, len(bars))
	low := make([]float64, len(bars))
	for i, b := range bars {
		high[i] = b.High
		low[i] = b.Low
	}
	return ta.SMASeries(ta.TrueRangeSeries(high, low, closes(bars)), model.Window)
}

func bollingerBandWidth(bars []domain.PriceBar, model domain.VolatilityModel) []float64 {
	middle, upper, lower := ta.BollingerSeries(closes(bars), model.Window, model.Multiplier)
	out := make([]float64, len(bars))
	for i := range out {
		width := upper[i] - lower[i]
		if model.Percent {
			width = 100 * width / middle[i]
		}
		out[i] = width
	}
	return out
}
