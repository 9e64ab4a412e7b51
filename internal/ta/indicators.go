package ta

import (
	"math"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"
)

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Returns computes simple daily returns. The first entry, and any entry whose
// previous close is zero, is NaN.
func Returns(closes []float64) []float64 {
	out := nanSeries(len(closes))
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			continue
		}
		out[i] = (closes[i] - prev) / prev
	}
	return out
}

// RollingStdDev is the sample standard deviation of the trailing period
// values ending at each index. Windows containing NaN yield NaN.
func RollingStdDev(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period < 2 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		if hasNaN(window) {
			continue
		}
		out[i] = stat.StdDev(window, nil)
	}
	return out
}

// SMASeries is the simple moving average over period values.
func SMASeries(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	sma := talib.Sma(values, period)
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		if hasNaN(window) {
			continue
		}
		out[i] = sma[i]
	}
	return out
}

// TrueRangeSeries returns max(high-low, |high-prevClose|, |low-prevClose|).
// The first bar has no previous close and uses high-low alone.
func TrueRangeSeries(high, low, closes []float64) []float64 {
	n := min(len(high), len(low), len(closes))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		tr := high[i] - low[i]
		if i > 0 {
			prev := closes[i-1]
			tr = math.Max(tr, math.Abs(high[i]-prev))
			tr = math.Max(tr, math.Abs(low[i]-prev))
		}
		out[i] = tr
	}
	return out
}

// BollingerSeries returns the middle, upper and lower bands using a simple
// moving average and population standard deviation over period values.
func BollingerSeries(values []float64, period int, stdDevs float64) ([]float64, []float64, []float64) {
	middle := nanSeries(len(values))
	upper := nanSeries(len(values))
	lower := nanSeries(len(values))
	if period <= 1 || len(values) < period {
		return middle, upper, lower
	}
	up, mid, low := talib.BBands(values, period, stdDevs, stdDevs, talib.SMA)
	for i := period - 1; i < len(values); i++ {
		middle[i] = mid[i]
		upper[i] = up[i]
		lower[i] = low[i]
	}
	return middle, upper, lower
}

// Annualize scales a daily volatility series by sqrt(periodsPerYear).
func Annualize(values []float64, periodsPerYear int) []float64 {
	factor := math.Sqrt(float64(periodsPerYear))
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * factor
	}
	return out
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
