package render

import (
	"fmt"
	"strings"

	"newsvol/internal/domain"
)

// FormatMatches lists each matched pair with its date, score, titles and
// links, numbered from 1.
func FormatMatches(matches []domain.SimilarityMatch) string {
	if len(matches) == 0 {
		return "No duplicate headlines found."
	}
	var b strings.Builder
	for i, m := range matches {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s (score %.1f)\n", i+1, m.Date.Format(domain.DateLayout), m.Score)
		writeHeadline(&b, "A", m.First)
		writeHeadline(&b, "B", m.Second)
	}
	return b.String()
}

func writeHeadline(b *strings.Builder, tag string, h domain.HeadlineRecord) {
	fmt.Fprintf(b, "   %s: %s", tag, h.Title)
	if h.Publisher != "" {
		fmt.Fprintf(b, " [%s]", h.Publisher)
	}
	b.WriteByte('\n')
	if h.URL != "" {
		fmt.Fprintf(b, "      %s\n", h.URL)
	}
}

// AxisNote explains what the two chart panels measure.
func AxisNote(model domain.VolatilityModel) string {
	unit := "daily return std dev"
	switch model.Kind {
	case domain.ModelATR:
		unit = "price points"
	case domain.ModelHistorical, domain.ModelSMA:
		unit = "annualized return std dev"
	case domain.ModelBollinger:
		unit = "band width in price points"
		if model.Percent {
			unit = "band width as % of middle band"
		}
	}
	return fmt.Sprintf("Top: near-duplicate headline pairs per calendar day. Bottom: %s over a %d-day window (%s), trading days only.",
		model.Kind.Label(), model.Window, unit)
}

// Summary is a short digest of one analysis.
func Summary(a domain.Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s to %s, threshold %d\n",
		a.Duplicates.Start.Format(domain.DateLayout), a.Duplicates.End.Format(domain.DateLayout), a.Duplicates.Threshold)
	fmt.Fprintf(&b, "Days: %d, duplicate pairs: %d\n", len(a.Duplicates.Counts), a.Duplicates.Total())

	var busiest domain.DailyCount
	for _, c := range a.Duplicates.Counts {
		if c.Count > busiest.Count {
			busiest = c
		}
	}
	if busiest.Count > 0 {
		fmt.Fprintf(&b, "Busiest day: %s (%d)\n", busiest.Date.Format(domain.DateLayout), busiest.Count)
	}

	label := a.Volatility.Model.Kind.Label()
	if a.Volatility.Symbol != "" {
		label = a.Volatility.Symbol + " " + label
	}
	if p, ok := a.Volatility.Latest(); ok {
		fmt.Fprintf(&b, "%s: %.4g on %s\n", label, p.Value, p.Date.Format(domain.DateLayout))
	} else {
		fmt.Fprintf(&b, "%s: not enough history for window %d\n", label, a.Volatility.Model.Window)
	}
	return b.String()
}
