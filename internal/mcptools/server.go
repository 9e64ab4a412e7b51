// Package mcptools exposes the analysis pipelines as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"newsvol/internal/domain"
	"newsvol/internal/render"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

const serverVersion = "1.0.0"

type Analyzer interface {
	DetectDuplicates(ctx context.Context, p domain.AnalysisParams) (domain.DuplicateReport, error)
	EstimateVolatility(ctx context.Context, p domain.AnalysisParams) (domain.VolatilitySeries, error)
	Analyze(ctx context.Context, p domain.AnalysisParams) (domain.Analysis, error)
}

// ParamsInput is the argument object shared by every analysis tool. Omitted
// fields take the server defaults.
type ParamsInput struct {
	Start      string   `json:"start,omitempty" jsonschema:"start date YYYY-MM-DD, defaults to 30 days before end"`
	End        string   `json:"end,omitempty" jsonschema:"end date YYYY-MM-DD inclusive, defaults to today"`
	Threshold  *int     `json:"threshold,omitempty" jsonschema:"similarity threshold 0-100 for counting a headline pair as duplicate"`
	Model      string   `json:"model,omitempty" jsonschema:"volatility model: stddev, atr, historical, bollinger or sma"`
	Window     *int     `json:"window,omitempty" jsonschema:"rolling window in trading days, at least 2"`
	Multiplier *float64 `json:"multiplier,omitempty" jsonschema:"bollinger band multiplier, positive"`
	Percent    *bool    `json:"percent,omitempty" jsonschema:"report bollinger width as percent of the middle band"`
	Symbol     string   `json:"symbol,omitempty" jsonschema:"price symbol, defaults to the configured index"`
	Query      string   `json:"query,omitempty" jsonschema:"news search query"`
	Style      string   `json:"style,omitempty" jsonschema:"chart style for analyze: line, bar or scatter"`
}

type ListModelsInput struct{}

// Tools holds the dependencies of the MCP tool handlers.
type Tools struct {
	analyzer Analyzer
	defaults func() domain.AnalysisParams
	timeout  time.Duration
	log      zerolog.Logger
}

func NewTools(analyzer Analyzer, defaults func() domain.AnalysisParams, timeout time.Duration, log zerolog.Logger) *Tools {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Tools{
		analyzer: analyzer,
		defaults: defaults,
		timeout:  timeout,
		log:      log.With().Str("component", "mcp").Logger(),
	}
}

// NewServer builds an MCP server with every tool registered.
func NewServer(t *Tools) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{Name: "newsvol", Version: serverVersion}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "detect_duplicates",
		Description: "Count near-duplicate news headlines per calendar day. Two same-day headlines match when their token-sort similarity is at least the threshold.",
	}, t.DetectDuplicates)
	mcp.AddTool(s, &mcp.Tool{
		Name:        "estimate_volatility",
		Description: "Compute a daily volatility series for the price symbol under the selected model. Leading points without a full window are null.",
	}, t.EstimateVolatility)
	mcp.AddTool(s, &mcp.Tool{
		Name:        "analyze",
		Description: "Run duplicate detection and volatility estimation for one date range and return a summary, a text chart and the matched headline pairs.",
	}, t.Analyze)
	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_models",
		Description: "List the supported volatility models and their parameters.",
	}, t.ListModels)

	return s
}

func (t *Tools) DetectDuplicates(ctx context.Context, req *mcp.CallToolRequest, in ParamsInput) (*mcp.CallToolResult, any, error) {
	p, err := t.params(in)
	if err != nil {
		return errorResult(err), nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	report, err := t.analyzer.DetectDuplicates(ctx, p)
	if err != nil {
		t.log.Warn().Err(err).Str("tool", "detect_duplicates").Msg("tool call failed")
		return errorResult(err), nil, nil
	}
	return jsonResult(report)
}

func (t *Tools) EstimateVolatility(ctx context.Context, req *mcp.CallToolRequest, in ParamsInput) (*mcp.CallToolResult, any, error) {
	p, err := t.params(in)
	if err != nil {
		return errorResult(err), nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	series, err := t.analyzer.EstimateVolatility(ctx, p)
	if err != nil {
		t.log.Warn().Err(err).Str("tool", "estimate_volatility").Msg("tool call failed")
		return errorResult(err), nil, nil
	}
	return jsonResult(series)
}

func (t *Tools) Analyze(ctx context.Context, req *mcp.CallToolRequest, in ParamsInput) (*mcp.CallToolResult, any, error) {
	p, err := t.params(in)
	if err != nil {
		return errorResult(err), nil, nil
	}
	style, err := render.ParseChartStyle(in.Style)
	if err != nil {
		return errorResult(err), nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	analysis, err := t.analyzer.Analyze(ctx, p)
	if err != nil {
		t.log.Warn().Err(err).Str("tool", "analyze").Msg("tool call failed")
		return errorResult(err), nil, nil
	}

	rows := render.Align(analysis.Duplicates.Counts, analysis.Volatility.Points)
	text := strings.Join([]string{
		render.Summary(analysis),
		render.Chart(rows, style, render.DefaultChartHeight),
		render.AxisNote(analysis.Volatility.Model),
		"",
		render.FormatMatches(analysis.Duplicates.Matches),
	}, "\n")
	return textResult(text), nil, nil
}

func (t *Tools) ListModels(ctx context.Context, req *mcp.CallToolRequest, in ListModelsInput) (*mcp.CallToolResult, any, error) {
	var b strings.Builder
	for _, kind := range domain.SupportedModels {
		params := "window"
		if kind == domain.ModelBollinger {
			params += ", multiplier, percent"
		}
		fmt.Fprintf(&b, "%s: %s (%s)\n", kind, kind.Label(), params)
	}
	return textResult(b.String()), nil, nil
}

func (t *Tools) params(in ParamsInput) (domain.AnalysisParams, error) {
	p := t.defaults()
	if in.Start != "" {
		start, err := time.Parse(domain.DateLayout, in.Start)
		if err != nil {
			return p, &domain.InvalidParameterError{Name: "start", Reason: "expected YYYY-MM-DD"}
		}
		p.Start = start
	}
	if in.End != "" {
		end, err := time.Parse(domain.DateLayout, in.End)
		if err != nil {
			return p, &domain.InvalidParameterError{Name: "end", Reason: "expected YYYY-MM-DD"}
		}
		p.End = end
	}
	if in.Threshold != nil {
		p.Threshold = *in.Threshold
	}
	if in.Model != "" {
		p.Model.Kind = domain.ParseModelKind(in.Model)
	}
	if in.Window != nil {
		p.Model.Window = *in.Window
	}
	if in.Multiplier != nil {
		p.Model.Multiplier = *in.Multiplier
	}
	if in.Percent != nil {
		p.Model.Percent = *in.Percent
	}
	if in.Symbol != "" {
		p.Symbol = strings.ToUpper(in.Symbol)
	}
	if in.Query != "" {
		p.Query = in.Query
	}
	return p, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return textResult(string(data)), nil, nil
}
