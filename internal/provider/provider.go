// Package provider holds the external news and price collaborators.
package provider

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"newsvol/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// NewsQuery describes one headline search.
type NewsQuery struct {
	Query      string
	Start      time.Time
	End        time.Time
	MaxResults int
}

const (
	// DefaultNewsQuery is the search used when none is configured.
	DefaultNewsQuery = "stock market"

	// DefaultMaxResults mirrors the per-query cap of the news providers.
	DefaultMaxResults = 100

	userAgent = "Mozilla/5.0 (compatible; newsvol/1.0)"
)

// NewsSource is a headline provider selectable by name.
type NewsSource interface {
	Name() string
	FetchHeadlines(ctx context.Context, q NewsQuery) ([]domain.HeadlineRecord, error)
}

// NewsOptions selects and configures a NewsSource.
type NewsOptions struct {
	Provider           string
	AlphaVantageAPIKey string
	Language           string
	Country            string
	Timeout            time.Duration
}

// NewNewsSource returns the Alpha Vantage feed when it is selected and a key
// is present, and Google News otherwise.
func NewNewsSource(tracer trace.Tracer, opts NewsOptions) NewsSource {
	if strings.EqualFold(opts.Provider, "alphavantage") && opts.AlphaVantageAPIKey != "" {
		return NewAlphaVantageNewsProvider(tracer, opts.AlphaVantageAPIKey, opts.Timeout)
	}
	return NewGoogleNewsProvider(tracer, opts.Language, opts.Country, opts.Timeout)
}

func sanitizeText(in string, maxLen int) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	in = strings.ReplaceAll(in, "\n", " ")
	in = strings.ReplaceAll(in, "\r", " ")
	in = strings.Join(strings.Fields(in), " ")
	if maxLen > 0 && len(in) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(in[cut]) {
			cut--
		}
		in = in[:cut]
	}
	return in
}
