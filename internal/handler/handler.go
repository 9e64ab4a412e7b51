package handler

import (
	"context"
	"time"

	"newsvol/internal/config"
	"newsvol/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Analyzer is the slice of service.AnalysisService the HTTP surface uses.
type Analyzer interface {
	DetectDuplicates(ctx context.Context, p domain.AnalysisParams) (domain.DuplicateReport, error)
	EstimateVolatility(ctx context.Context, p domain.AnalysisParams) (domain.VolatilitySeries, error)
	Analyze(ctx context.Context, p domain.AnalysisParams) (domain.Analysis, error)
}

type Handler struct {
	tracer   trace.Tracer
	analyzer Analyzer
	cfg      *config.Config
	now      func() time.Time
}

func New(tracer trace.Tracer, analyzer Analyzer, cfg *config.Config) *Handler {
	return &Handler{
		tracer:   tracer,
		analyzer: analyzer,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.Use(RateLimit(h.cfg.APIRateLimitPerMin))
	api.GET("/models", h.ListModels)
	api.GET("/duplicates", h.GetDuplicates)
	api.GET("/volatility", h.GetVolatility)
	api.GET("/analysis", h.GetAnalysis)
}
