package provider

import (
	"context"
	"encoding/json"
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

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider fetches split/dividend-adjusted daily bars from the Yahoo
// Finance chart API.
type YahooProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *rate.Limiter
}

func NewYahooProvider(tracer trace.Tracer, timeout time.Duration) *YahooProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YahooProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: yahooBaseURL,
		tracer:  tracer,
		limiter: rate.NewLimiter(rate.Limit(2), 2),
	}
}

// FetchDailyBars returns bars for trading days in [start, end], ascending.
// An unknown or delisted symbol yields an empty slice.
func (p *YahooProvider) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.PriceBar, error) {
	ctx, span := p.tracer.Start(ctx, "yahoo.fetch-daily-bars")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	start, end = domain.Day(start), domain.Day(end)
	params := url.Values{}
	params.Set("period1", strconv.FormatInt(start.Unix(), 10))
	params.Set("period2", strconv.FormatInt(end.AddDate(0, 0, 1).Unix(), 10))
	params.Set("interval", "1d")
	params.Set("events", "div|split")
	params.Set("includeAdjustedClose", "true")

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", p.baseURL, url.PathEscape(symbol), params.Encode())
	body, err := p.doRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}

	var raw yahooChartResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse daily bars for %s: %w", symbol, err)
	}
	if raw.Chart.Error != nil {
		if raw.Chart.Error.Code == "Not Found" {
			return []domain.PriceBar{}, nil
		}
		return nil, fmt.Errorf("yahoo chart error for %s: %s", symbol, raw.Chart.Error.Description)
	}

	bars := buildBarsFromChart(symbol, raw)
	filtered := bars[:0]
	for _, b := range bars {
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		filtered = append(filtered, b)
	}
	span.SetAttributes(attribute.Int("bars", len(filtered)))
	return filtered, nil
}

func (p *YahooProvider) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// 404 carries a JSON chart error for unknown symbols
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("yahoo API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				GMTOffset int64  `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// buildBarsFromChart scales OHLC by adjclose/close so bars are adjusted for
// splits and dividends. Rows with any missing OHLC value are skipped.
func buildBarsFromChart(symbol string, raw yahooChartResponse) []domain.PriceBar {
	if len(raw.Chart.Result) == 0 {
		return nil
	}
	res := raw.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return nil
	}
	quote := res.Indicators.Quote[0]
	var adj []*float64
	if len(res.Indicators.AdjClose) > 0 {
		adj = res.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]domain.PriceBar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		open, high, low, cl := valueAt(quote.Open, i), valueAt(quote.High, i), valueAt(quote.Low, i), valueAt(quote.Close, i)
		if open == nil || high == nil || low == nil || cl == nil || *cl == 0 {
			continue
		}
		factor := 1.0
		if a := valueAt(adj, i); a != nil {
			factor = *a / *cl
		}
		var volume float64
		if v := valueAt(quote.Volume, i); v != nil {
			volume = *v
		}
		bars = append(bars, domain.PriceBar{
			Symbol: symbol,
			Date:   domain.Day(time.Unix(ts+res.Meta.GMTOffset, 0)),
			Open:   *open * factor,
			High:   *high * factor,
			Low:    *low * factor,
			Close:  *cl * factor,
			Volume: volume,
		})
	}
	return bars
}

func valueAt(values []*float64, i int) *float64 {
	if i < 0 || i >= len(values) {
		return nil
	}
	return values[i]
}
