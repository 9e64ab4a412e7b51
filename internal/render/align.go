// Package render turns analysis results into aligned rows and text output
// for the HTTP, chat and terminal surfaces.
package render

import (
	"sort"
	"time"

	"newsvol/internal/domain"
)

// ChartRow is one date on the shared axis. A nil field means that series has
// no value for the date; gaps are never interpolated.
type ChartRow struct {
	Date       time.Time `json:"date"`
	Duplicates *int      `json:"duplicates"`
	Volatility *float64  `json:"volatility"`
}

// Align merges the calendar-day duplicate counts with the trading-day
// volatility series on the union of their dates.
func Align(counts []domain.DailyCount, vol []domain.VolatilityPoint) []ChartRow {
	byDate := make(map[time.Time]*ChartRow, len(counts)+len(vol))
	row := func(d time.Time) *ChartRow {
		d = domain.Day(d)
		r, ok := byDate[d]
		if !ok {
			r = &ChartRow{Date: d}
			byDate[d] = r
		}
		return r
	}

	for _, c := range counts {
		n := c.Count
		row(c.Date).Duplicates = &n
	}
	for _, p := range vol {
		r := row(p.Date)
		if !p.Defined() {
			continue
		}
		v := p.Value
		r.Volatility = &v
	}

	rows := make([]ChartRow, 0, len(byDate))
	for _, r := range byDate {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}
