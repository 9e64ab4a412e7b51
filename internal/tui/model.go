// Package tui is the interactive terminal form for running an analysis:
// date range, threshold, volatility model and chart style in, chart and
// matched headline pairs out.
package tui

import (
	"context"
	"strconv"
	"time"

	"newsvol/internal/domain"
	"newsvol/internal/render"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Analyzer runs one combined analysis.
type Analyzer interface {
	Analyze(ctx context.Context, p domain.AnalysisParams) (domain.Analysis, error)
}

type field int

const (
	fieldStart field = iota
	fieldEnd
	fieldThreshold
	fieldModel
	fieldWindow
	fieldMultiplier
	fieldPercent
	fieldStyle
	fieldCount
)

// text inputs, indexed by field
var inputFields = []field{fieldStart, fieldEnd, fieldThreshold, fieldWindow, fieldMultiplier}

type page int

const (
	pageForm page = iota
	pageResult
)

type Model struct {
	analyzer Analyzer
	defaults domain.AnalysisParams
	timeout  time.Duration

	inputs   map[field]*textinput.Model
	modelIdx int
	styleIdx int
	percent  bool
	focus    field

	page     page
	loading  bool
	warning  string
	result   *domain.Analysis
	lastErr  error
	spinner  spinner.Model
	viewport viewport.Model

	width  int
	height int
}

type analysisMsg struct {
	analysis domain.Analysis
	err      error
}

func NewModel(analyzer Analyzer, defaults domain.AnalysisParams, timeout time.Duration) Model {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	newInput := func(value, placeholder string, limit int) *textinput.Model {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Width = 12
		ti.SetValue(value)
		return &ti
	}

	m := Model{
		analyzer: analyzer,
		defaults: defaults,
		timeout:  timeout,
		inputs: map[field]*textinput.Model{
			fieldStart:      newInput(defaults.Start.Format(domain.DateLayout), "YYYY-MM-DD", 10),
			fieldEnd:        newInput(defaults.End.Format(domain.DateLayout), "YYYY-MM-DD", 10),
			fieldThreshold:  newInput(strconv.Itoa(defaults.Threshold), "0-100", 3),
			fieldWindow:     newInput(strconv.Itoa(defaults.Model.Window), "days", 4),
			fieldMultiplier: newInput(strconv.FormatFloat(defaults.Model.Multiplier, 'g', -1, 64), "k", 6),
		},
		percent:  defaults.Model.Percent,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		viewport: viewport.New(80, 20),
	}
	for i, kind := range domain.SupportedModels {
		if kind == defaults.Model.Kind {
			m.modelIdx = i
		}
	}
	m.inputs[fieldStart].Focus()
	return m
}

// SetSize sizes the result viewport for the session's terminal.
func (m *Model) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	m.viewport.Width = width
	m.viewport.Height = max(height-4, 5)
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// params reads the form. Parse failures and an inverted range come back as
// errors so the form can warn without running anything.
func (m Model) params() (domain.AnalysisParams, error) {
	p := m.defaults

	start, err := time.Parse(domain.DateLayout, m.inputs[fieldStart].Value())
	if err != nil {
		return p, &domain.InvalidParameterError{Name: "start date", Reason: "expected YYYY-MM-DD"}
	}
	end, err := time.Parse(domain.DateLayout, m.inputs[fieldEnd].Value())
	if err != nil {
		return p, &domain.InvalidParameterError{Name: "end date", Reason: "expected YYYY-MM-DD"}
	}
	p.Start, p.End = start, end
	if err := p.ValidateRange(); err != nil {
		return p, err
	}

	if p.Threshold, err = strconv.Atoi(m.inputs[fieldThreshold].Value()); err != nil {
		return p, &domain.InvalidParameterError{Name: "threshold", Reason: "must be an integer"}
	}
	if err := p.ValidateThreshold(); err != nil {
		return p, err
	}

	p.Model = domain.VolatilityModel{Kind: domain.SupportedModels[m.modelIdx], Percent: m.percent}
	if p.Model.Window, err = strconv.Atoi(m.inputs[fieldWindow].Value()); err != nil {
		return p, &domain.InvalidParameterError{Name: "window", Reason: "must be an integer"}
	}
	if p.Model.Multiplier, err = strconv.ParseFloat(m.inputs[fieldMultiplier].Value(), 64); err != nil {
		return p, &domain.InvalidParameterError{Name: "multiplier", Reason: "must be a number"}
	}
	return p, p.Model.Validate()
}

func (m Model) style() render.ChartStyle {
	return render.ChartStyles[m.styleIdx]
}

func runAnalysis(a Analyzer, p domain.AnalysisParams, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		analysis, err := a.Analyze(ctx, p)
		return analysisMsg{analysis: analysis, err: err}
	}
}
