package service

import (
	"context"
	"time"

	"newsvol/internal/domain"
	"newsvol/internal/duplicates"
	"newsvol/internal/provider"
	"newsvol/internal/volatility"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type NewsProvider interface {
	FetchHeadlines(ctx context.Context, q provider.NewsQuery) ([]domain.HeadlineRecord, error)
}

type PriceProvider interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.PriceBar, error)
}

// AnalysisService runs the duplicate and volatility pipelines for one user
// action. Every call fetches fresh data.
type AnalysisService struct {
	tracer trace.Tracer
	news   NewsProvider
	prices PriceProvider
	score  duplicates.Scorer
	log    zerolog.Logger
}

func NewAnalysisService(tracer trace.Tracer, news NewsProvider, prices PriceProvider, log zerolog.Logger) *AnalysisService {
	return &AnalysisService{
		tracer: tracer,
		news:   news,
		prices: prices,
		score:  duplicates.TokenSortRatio,
		log:    log.With().Str("component", "analysis").Logger(),
	}
}

// WithScorer swaps the headline similarity scorer. A nil scorer is ignored.
func (s *AnalysisService) WithScorer(score duplicates.Scorer) *AnalysisService {
	if score != nil {
		s.score = score
	}
	return s
}

// DetectDuplicates fetches headlines for the range and counts same-day
// near-duplicate pairs.
func (s *AnalysisService) DetectDuplicates(ctx context.Context, p domain.AnalysisParams) (domain.DuplicateReport, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.detect-duplicates")
	defer span.End()

	if err := validateDuplicates(p); err != nil {
		return domain.DuplicateReport{}, err
	}
	report, err := s.detect(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return report, err
}

// EstimateVolatility fetches daily bars for the range and runs the selected
// model over them.
func (s *AnalysisService) EstimateVolatility(ctx context.Context, p domain.AnalysisParams) (domain.VolatilitySeries, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.estimate-volatility")
	defer span.End()

	if err := validateVolatility(p); err != nil {
		return domain.VolatilitySeries{}, err
	}
	series, err := s.estimate(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return series, err
}

// Analyze validates every parameter before any fetch, then runs both
// pipelines in order. The first failure aborts the whole analysis.
func (s *AnalysisService) Analyze(ctx context.Context, p domain.AnalysisParams) (domain.Analysis, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.analyze")
	defer span.End()

	if err := validateDuplicates(p); err != nil {
		return domain.Analysis{}, err
	}
	if err := p.Model.Validate(); err != nil {
		return domain.Analysis{}, err
	}

	fail := func(err error) (domain.Analysis, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Analysis{}, err
	}

	report, err := s.detect(ctx, p)
	if err != nil {
		return fail(err)
	}
	series, err := s.estimate(ctx, p)
	if err != nil {
		return fail(err)
	}

	s.log.Info().
		Str("start", p.Start.Format(domain.DateLayout)).
		Str("end", p.End.Format(domain.DateLayout)).
		Int("duplicates", report.Total()).
		Str("model", string(p.Model.Kind)).
		Int("points", len(series.Points)).
		Msg("analysis complete")

	return domain.Analysis{Params: p, Duplicates: report, Volatility: series}, nil
}

func (s *AnalysisService) detect(ctx context.Context, p domain.AnalysisParams) (domain.DuplicateReport, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.fetch-headlines")
	q := provider.NewsQuery{Query: p.Query, Start: p.Start, End: p.End, MaxResults: p.MaxResults}
	if q.Query == "" {
		q.Query = provider.DefaultNewsQuery
	}
	if q.MaxResults <= 0 {
		q.MaxResults = provider.DefaultMaxResults
	}
	records, err := s.news.FetchHeadlines(ctx, q)
	span.SetAttributes(attribute.Int("headlines", len(records)))
	span.End()
	if err != nil {
		s.log.Error().Err(err).Str("query", q.Query).Msg("headline fetch failed")
		return domain.DuplicateReport{}, err
	}

	report, err := duplicates.DetectWith(s.score, records, p.Start, p.End, p.Threshold)
	if err != nil {
		return domain.DuplicateReport{}, err
	}
	s.log.Debug().
		Int("headlines", len(records)).
		Int("threshold", p.Threshold).
		Int("matches", len(report.Matches)).
		Msg("duplicate detection done")
	return report, nil
}

func (s *AnalysisService) estimate(ctx context.Context, p domain.AnalysisParams) (domain.VolatilitySeries, error) {
	symbol := p.Symbol
	if symbol == "" {
		symbol = domain.DefaultPriceSymbol
	}

	ctx, span := s.tracer.Start(ctx, "analysis-service.fetch-bars")
	span.SetAttributes(attribute.String("symbol", symbol))
	bars, err := s.prices.FetchDailyBars(ctx, symbol, domain.Day(p.Start), domain.Day(p.End))
	span.SetAttributes(attribute.Int("bars", len(bars)))
	span.End()
	if err != nil {
		s.log.Error().Err(err).Str("symbol", symbol).Msg("price fetch failed")
		return domain.VolatilitySeries{}, err
	}
	if len(bars) == 0 {
		return domain.VolatilitySeries{}, &domain.NoDataError{Source: "price", Start: domain.Day(p.Start), End: domain.Day(p.End)}
	}

	series, err := volatility.Estimate(bars, p.Model)
	if err != nil {
		return domain.VolatilitySeries{}, err
	}
	series.Symbol = symbol
	return series, nil
}

func validateDuplicates(p domain.AnalysisParams) error {
	if err := p.ValidateRange(); err != nil {
		return err
	}
	return p.ValidateThreshold()
}

func validateVolatility(p domain.AnalysisParams) error {
	if err := p.ValidateRange(); err != nil {
		return err
	}
	return p.Model.Validate()
}
