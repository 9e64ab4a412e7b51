package tui

import (
	"fmt"
	"strings"

	"newsvol/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("245"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

var fieldLabels = map[field]string{
	fieldStart:      "Start date",
	fieldEnd:        "End date",
	fieldThreshold:  "Threshold",
	fieldModel:      "Model",
	fieldWindow:     "Window",
	fieldMultiplier: "Multiplier",
	fieldPercent:    "Percent width",
	fieldStyle:      "Chart style",
}

func (m Model) View() string {
	if m.page == pageResult {
		help := helpStyle.Render("↑/↓ scroll • esc back to form • q quit")
		return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), help)
	}
	return m.viewForm()
}

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("News redundancy vs. market volatility"))
	b.WriteString("\n\n")

	for f := field(0); f < fieldCount; f++ {
		label := labelStyle.Render(fieldLabels[f])
		if f == m.focus {
			label = focusStyle.Width(14).Render("> " + fieldLabels[f])
		}
		b.WriteString(label)
		b.WriteString(m.fieldValue(f))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	switch {
	case m.loading:
		fmt.Fprintf(&b, "%s Fetching headlines and prices...\n", m.spinner.View())
	case m.warning != "":
		b.WriteString(warnStyle.Render("! " + m.warning))
		b.WriteByte('\n')
	}

	help := "tab/shift+tab move • ←/→ change option • enter generate • ctrl+c quit"
	if m.result != nil {
		help += " • esc last result"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m Model) fieldValue(f field) string {
	switch f {
	case fieldModel:
		kind := domain.SupportedModels[m.modelIdx]
		return fmt.Sprintf("‹ %s ›", kind.Label())
	case fieldStyle:
		return fmt.Sprintf("‹ %s ›", m.style())
	case fieldPercent:
		if m.percent {
			return "[x] (bollinger only)"
		}
		return "[ ] (bollinger only)"
	}
	return m.inputs[f].View()
}
