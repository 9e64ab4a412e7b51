package render

import (
	"fmt"
	"math"
	"strings"

	"newsvol/internal/domain"
)

type ChartStyle string

const (
	StyleLine    ChartStyle = "line"
	StyleBar     ChartStyle = "bar"
	StyleScatter ChartStyle = "scatter"
)

// ChartStyles lists the accepted styles in menu order.
var ChartStyles = []ChartStyle{StyleLine, StyleBar, StyleScatter}

const (
	DefaultChartHeight = 8
	minChartHeight     = 2
)

func ParseChartStyle(s string) (ChartStyle, error) {
	switch style := ChartStyle(strings.ToLower(strings.TrimSpace(s))); style {
	case "":
		return StyleLine, nil
	case StyleLine, StyleBar, StyleScatter:
		return style, nil
	}
	return "", &domain.InvalidParameterError{Name: "style", Reason: "must be one of line, bar, scatter"}
}

// Chart draws two stacked panels sharing one date axis: daily duplicate
// counts on top, the volatility value below. One column per row.
func Chart(rows []ChartRow, style ChartStyle, height int) string {
	if len(rows) == 0 {
		return "No data to chart.\n"
	}
	if height < minChartHeight {
		height = minChartHeight
	}

	dups := make([]*float64, len(rows))
	vols := make([]*float64, len(rows))
	for i, r := range rows {
		if r.Duplicates != nil {
			v := float64(*r.Duplicates)
			dups[i] = &v
		}
		vols[i] = r.Volatility
	}

	var b strings.Builder
	b.WriteString("Duplicate headlines per day\n")
	writePanel(&b, dups, style, height, "%.0f")
	b.WriteString("\nVolatility\n")
	writePanel(&b, vols, style, height, "%.4g")
	writeAxis(&b, rows)
	return b.String()
}

func writePanel(b *strings.Builder, values []*float64, style ChartStyle, height int, format string) {
	lo, hi, ok := bounds(values)
	if !ok {
		b.WriteString("  (no values)\n")
		return
	}
	if hi == lo {
		hi = lo + 1
	}

	levels := make([]int, len(values))
	for i, v := range values {
		levels[i] = -1
		if v != nil {
			levels[i] = int(math.Round((*v - lo) / (hi - lo) * float64(height-1)))
		}
	}

	hiLabel, loLabel := fmt.Sprintf(format, hi), fmt.Sprintf(format, lo)
	width := max(len(hiLabel), len(loLabel))

	for y := height - 1; y >= 0; y-- {
		label := ""
		switch y {
		case height - 1:
			label = hiLabel
		case 0:
			label = loLabel
		}
		fmt.Fprintf(b, "%*s ┤", width, label)
		for x, lvl := range levels {
			b.WriteRune(cell(style, levels, x, lvl, y))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(b, "%*s └%s\n", width, "", strings.Repeat("─", len(values)))
}

func cell(style ChartStyle, levels []int, x, lvl, y int) rune {
	if lvl < 0 {
		return ' '
	}
	switch style {
	case StyleBar:
		if y <= lvl {
			return '█'
		}
	case StyleScatter:
		if y == lvl {
			return '•'
		}
	default:
		if y == lvl {
			return '•'
		}
		// connect to the previous defined point
		if x > 0 && levels[x-1] >= 0 {
			prev := levels[x-1]
			if (y > prev && y < lvl) || (y < prev && y > lvl) {
				return '│'
			}
		}
	}
	return ' '
}

func bounds(values []*float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v == nil {
			continue
		}
		lo = math.Min(lo, *v)
		hi = math.Max(hi, *v)
		ok = true
	}
	return lo, hi, ok
}

func writeAxis(b *strings.Builder, rows []ChartRow) {
	first := rows[0].Date.Format(domain.DateLayout)
	last := rows[len(rows)-1].Date.Format(domain.DateLayout)
	if len(rows) == 1 {
		fmt.Fprintf(b, "dates: %s\n", first)
		return
	}
	fmt.Fprintf(b, "dates: %s .. %s (%d points)\n", first, last, len(rows))
}
