package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"newsvol/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	alphaVantageBaseURL = "https://www.alphavantage.co"
	alphaVantageTopics  = "financial_markets"
	alphaVantageMaxRows = 1000
	avTimeLayout        = "20060102T150405"
	avQueryTimeLayout   = "20060102T1504"
)

// AlphaVantageNewsProvider reads the NEWS_SENTIMENT feed. The feed has no
// free-text search, so the query is mapped to the financial_markets topic.
type AlphaVantageNewsProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	limiter *rate.Limiter
}

func NewAlphaVantageNewsProvider(tracer trace.Tracer, apiKey string, timeout time.Duration) *AlphaVantageNewsProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AlphaVantageNewsProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: alphaVantageBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
		// free tier: 5 requests per minute
		limiter: rate.NewLimiter(rate.Every(12*time.Second), 5),
	}
}

func (p *AlphaVantageNewsProvider) Name() string {
	return "alphavantage"
}

func (p *AlphaVantageNewsProvider) FetchHeadlines(ctx context.Context, q NewsQuery) ([]domain.HeadlineRecord, error) {
	ctx, span := p.tracer.Start(ctx, "alphavantage.fetch-headlines")
	defer span.End()

	if p.apiKey == "" {
		return nil, errors.New("alphavantage api key is not configured")
	}
	limit := q.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	limit = min(limit, alphaVantageMaxRows)
	span.SetAttributes(attribute.Int("limit", limit))

	params := url.Values{}
	params.Set("function", "NEWS_SENTIMENT")
	params.Set("topics", alphaVantageTopics)
	params.Set("sort", "LATEST")
	params.Set("limit", strconv.Itoa(limit))
	if !q.Start.IsZero() {
		params.Set("time_from", domain.Day(q.Start).Format(avQueryTimeLayout))
	}
	if !q.End.IsZero() {
		params.Set("time_to", domain.Day(q.End).Add(24*time.Hour-time.Minute).Format(avQueryTimeLayout))
	}
	params.Set("apikey", p.apiKey)

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("alphavantage API error %d: %s", resp.StatusCode, string(body))
	}

	var raw avResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if msg := raw.message(); msg != "" {
		return nil, fmt.Errorf("alphavantage: %s", msg)
	}

	records := make([]domain.HeadlineRecord, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		title := sanitizeText(item.Title, 300)
		if title == "" {
			continue
		}
		published, err := time.Parse(avTimeLayout, item.TimePublished)
		if err != nil {
			published = time.Time{}
		}
		records = append(records, domain.HeadlineRecord{
			Title:     title,
			Publisher: sanitizeText(item.Source, 120),
			URL:       sanitizeText(item.URL, 500),
			Published: published,
		})
	}
	span.SetAttributes(attribute.Int("items", len(records)))
	return records, nil
}

type avResponse struct {
	Feed        []avFeedItem `json:"feed"`
	Note        string       `json:"Note"`
	Information string       `json:"Information"`
	ErrorMsg    string       `json:"Error Message"`
}

// Alpha Vantage reports throttling and key problems with a 200 status.
func (r avResponse) message() string {
	switch {
	case r.ErrorMsg != "":
		return r.ErrorMsg
	case r.Information != "" && len(r.Feed) == 0:
		return r.Information
	case r.Note != "" && len(r.Feed) == 0:
		return r.Note
	}
	return ""
}

type avFeedItem struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	TimePublished string `json:"time_published"`
}
