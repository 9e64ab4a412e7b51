package handler

import (
	"net/http"

	"newsvol/internal/domain"
	"newsvol/internal/render"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type modelInfo struct {
	Tag        domain.ModelKind `json:"tag"`
	Label      string           `json:"label"`
	Parameters []string         `json:"parameters"`
}

// AnalysisResponse is the combined payload of /api/analysis.
type AnalysisResponse struct {
	Analysis    domain.Analysis   `json:"analysis"`
	Rows        []render.ChartRow `json:"rows"`
	Chart       string            `json:"chart"`
	AxisNote    string            `json:"axis_note"`
	MatchesText string            `json:"matches_text"`
}

// ListModels godoc
// @Summary      List volatility models
// @Description  Returns every supported volatility model tag with its label and parameters
// @Tags         models
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/models [get]
func (h *Handler) ListModels(c *gin.Context) {
	models := make([]modelInfo, 0, len(domain.SupportedModels))
	for _, kind := range domain.SupportedModels {
		params := []string{"window"}
		if kind == domain.ModelBollinger {
			params = append(params, "multiplier", "percent")
		}
		models = append(models, modelInfo{Tag: kind, Label: kind.Label(), Parameters: params})
	}
	c.JSON(http.StatusOK, gin.H{
		"models":  models,
		"default": h.cfg.DefaultModel,
		"styles":  render.ChartStyles,
	})
}

// GetDuplicates godoc
// @Summary      Count near-duplicate headlines per day
// @Description  Fetches headlines for the range and counts same-day title pairs whose token-sort similarity meets the threshold
// @Tags         analysis
// @Produce      json
// @Param        start      query  string  false  "Start date (YYYY-MM-DD), default 30 days ago"
// @Param        end        query  string  false  "End date (YYYY-MM-DD), default today"
// @Param        threshold  query  int     false  "Similarity threshold 0-100"  default(35)
// @Success      200  {object}  domain.DuplicateReport
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/duplicates [get]
func (h *Handler) GetDuplicates(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-duplicates")
	defer span.End()

	p, err := h.parseParams(c)
	if err != nil {
		writeError(c, err)
		return
	}
	setParamAttributes(span, p)

	report, err := h.analyzer.DetectDuplicates(ctx, p)
	if err != nil {
		span.RecordError(err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetVolatility godoc
// @Summary      Estimate volatility
// @Description  Fetches daily bars for the range and runs the selected volatility model; undefined leading points are null
// @Tags         analysis
// @Produce      json
// @Param        start       query  string  false  "Start date (YYYY-MM-DD)"
// @Param        end         query  string  false  "End date (YYYY-MM-DD)"
// @Param        model       query  string  false  "stddev, atr, historical, bollinger or sma"  default(stddev)
// @Param        window      query  int     false  "Rolling window in trading days (>= 2)"  default(5)
// @Param        multiplier  query  number  false  "Bollinger band multiplier"  default(2)
// @Param        percent     query  bool    false  "Bollinger width as percent of middle band"
// @Param        symbol      query  string  false  "Price symbol"  default(^GSPC)
// @Success      200  {object}  domain.VolatilitySeries
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/volatility [get]
func (h *Handler) GetVolatility(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-volatility")
	defer span.End()

	p, err := h.parseParams(c)
	if err != nil {
		writeError(c, err)
		return
	}
	setParamAttributes(span, p)

	series, err := h.analyzer.EstimateVolatility(ctx, p)
	if err != nil {
		span.RecordError(err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// GetAnalysis godoc
// @Summary      Run both pipelines and render them together
// @Description  Returns the duplicate report, the volatility series, rows aligned on a shared date axis, a text chart and the formatted match list
// @Tags         analysis
// @Produce      json
// @Param        start       query  string  false  "Start date (YYYY-MM-DD)"
// @Param        end         query  string  false  "End date (YYYY-MM-DD)"
// @Param        threshold   query  int     false  "Similarity threshold 0-100"  default(35)
// @Param        model       query  string  false  "Volatility model tag"  default(stddev)
// @Param        window      query  int     false  "Rolling window"  default(5)
// @Param        multiplier  query  number  false  "Bollinger band multiplier"  default(2)
// @Param        percent     query  bool    false  "Bollinger width as percent"
// @Param        style       query  string  false  "Chart style: line, bar or scatter"  default(line)
// @Success      200  {object}  AnalysisResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/analysis [get]
func (h *Handler) GetAnalysis(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-analysis")
	defer span.End()

	p, err := h.parseParams(c)
	if err != nil {
		writeError(c, err)
		return
	}
	style, err := render.ParseChartStyle(c.Query("style"))
	if err != nil {
		writeError(c, err)
		return
	}
	setParamAttributes(span, p)

	analysis, err := h.analyzer.Analyze(ctx, p)
	if err != nil {
		span.RecordError(err)
		writeError(c, err)
		return
	}

	rows := render.Align(analysis.Duplicates.Counts, analysis.Volatility.Points)
	c.JSON(http.StatusOK, AnalysisResponse{
		Analysis:    analysis,
		Rows:        rows,
		Chart:       render.Chart(rows, style, render.DefaultChartHeight),
		AxisNote:    render.AxisNote(analysis.Volatility.Model),
		MatchesText: render.FormatMatches(analysis.Duplicates.Matches),
	})
}

func setParamAttributes(span trace.Span, p domain.AnalysisParams) {
	span.SetAttributes(
		attribute.String("start", p.Start.Format(domain.DateLayout)),
		attribute.String("end", p.End.Format(domain.DateLayout)),
		attribute.Int("threshold", p.Threshold),
		attribute.String("model", string(p.Model.Kind)),
		attribute.Int("window", p.Model.Window),
	)
}
