package tui

import (
	"errors"
	"strings"

	"newsvol/internal/domain"
	"newsvol/internal/render"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case analysisMsg:
		m.loading = false
		if msg.err != nil {
			m.lastErr = msg.err
			m.warning = msg.err.Error()
			return m, nil
		}
		m.lastErr = nil
		m.warning = ""
		m.result = &msg.analysis
		m.viewport.SetContent(m.resultContent())
		m.viewport.GotoTop()
		m.page = pageResult
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		if m.page == pageResult {
			return m.updateResult(msg)
		}
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.page = pageForm
		return m, nil
	case msg.String() == "q":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Submit):
		p, err := m.params()
		if err != nil {
			m.warning = warningFor(err)
			return m, nil
		}
		m.warning = ""
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, runAnalysis(m.analyzer, p, m.timeout))

	case key.Matches(msg, keys.Back) && m.result != nil:
		m.page = pageResult
		return m, nil

	case key.Matches(msg, keys.Next):
		return m.setFocus((m.focus + 1) % fieldCount), nil

	case key.Matches(msg, keys.Prev):
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil
	}

	switch m.focus {
	case fieldModel:
		m.modelIdx = cycle(m.modelIdx, len(domain.SupportedModels), msg)
		return m, nil
	case fieldStyle:
		m.styleIdx = cycle(m.styleIdx, len(render.ChartStyles), msg)
		return m, nil
	case fieldPercent:
		if key.Matches(msg, keys.Toggle, keys.Left, keys.Right) {
			m.percent = !m.percent
		}
		return m, nil
	}

	if in, ok := m.inputs[m.focus]; ok {
		updated, cmd := in.Update(msg)
		*in = updated
		return m, cmd
	}
	return m, nil
}

func (m Model) setFocus(f field) Model {
	m.focus = f
	for _, id := range inputFields {
		if id == f {
			m.inputs[id].Focus()
		} else {
			m.inputs[id].Blur()
		}
	}
	return m
}

func cycle(idx, n int, msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, keys.Left):
		return (idx + n - 1) % n
	case key.Matches(msg, keys.Right), key.Matches(msg, keys.Toggle):
		return (idx + 1) % n
	}
	return idx
}

func warningFor(err error) string {
	var invalidRange *domain.InvalidRangeError
	if errors.As(err, &invalidRange) {
		return "Start date must not be after end date."
	}
	return err.Error()
}

func (m Model) resultContent() string {
	a := m.result
	rows := render.Align(a.Duplicates.Counts, a.Volatility.Points)
	chartHeight := render.DefaultChartHeight
	if m.height > 0 {
		chartHeight = max((m.height-16)/2, 3)
	}

	sections := []string{
		titleStyle.Render("Results"),
		render.Summary(*a),
		render.Chart(rows, m.style(), chartHeight),
		noteStyle.Render(render.AxisNote(a.Volatility.Model)),
		"",
		titleStyle.Render("Matched headline pairs"),
		render.FormatMatches(a.Duplicates.Matches),
	}
	return strings.Join(sections, "\n")
}
