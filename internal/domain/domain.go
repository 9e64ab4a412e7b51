package domain

import (
	"encoding/json"
	"math"
	"time"
)

// HeadlineRecord is one published article as returned by a news provider.
type HeadlineRecord struct {
	Title     string    `json:"title"`
	Publisher string    `json:"publisher"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
}

// SimilarityMatch is a pair of same-day headlines whose score met the threshold.
type SimilarityMatch struct {
	Date   time.Time      `json:"date"`
	First  HeadlineRecord `json:"first"`
	Second HeadlineRecord `json:"second"`
	Score  float64        `json:"score"`
}

// DailyCount is the number of similarity matches found on one calendar day.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// DuplicateReport holds the duplicate count series and the matches behind it.
// Counts has exactly one entry per calendar day of the requested range.
type DuplicateReport struct {
	Start     time.Time         `json:"start"`
	End       time.Time         `json:"end"`
	Threshold int               `json:"threshold"`
	Counts    []DailyCount      `json:"counts"`
	Matches   []SimilarityMatch `json:"matches"`
}

// Total returns the sum of all daily counts.
func (r DuplicateReport) Total() int {
	total := 0
	for _, c := range r.Counts {
		total += c.Count
	}
	return total
}

// VolatilityPoint is one trading day of a volatility series. Value is NaN
// while the rolling window is not yet filled.
type VolatilityPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Defined reports whether the point carries a usable value.
func (p VolatilityPoint) Defined() bool {
	return !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0)
}

// MarshalJSON encodes undefined values as null.
func (p VolatilityPoint) MarshalJSON() ([]byte, error) {
	var value *float64
	if p.Defined() {
		v := p.Value
		value = &v
	}
	return json.Marshal(struct {
		Date  time.Time `json:"date"`
		Value *float64  `json:"value"`
	}{Date: p.Date, Value: value})
}

// VolatilitySeries is the output of a volatility model over trading days.
type VolatilitySeries struct {
	Symbol string            `json:"symbol,omitempty"`
	Model  VolatilityModel   `json:"model"`
	Points []VolatilityPoint `json:"points"`
}

// Latest returns the last defined point, if any.
func (s VolatilitySeries) Latest() (VolatilityPoint, bool) {
	for i := len(s.Points) - 1; i >= 0; i-- {
		if s.Points[i].Defined() {
			return s.Points[i], true
		}
	}
	return VolatilityPoint{}, false
}

// Analysis bundles both pipeline outputs for one user action.
type Analysis struct {
	Params     AnalysisParams   `json:"params"`
	Duplicates DuplicateReport  `json:"duplicates"`
	Volatility VolatilitySeries `json:"volatility"`
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns every calendar day in [start, end], inclusive.
// It returns nil when start is after end.
func DaysBetween(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	if start.After(end) {
		return nil
	}
	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
