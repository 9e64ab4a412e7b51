package provider

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

func newTestAlphaVantage(t *testing.T, fn roundTripFunc) *AlphaVantageNewsProvider {
	t.Helper()
	p := NewAlphaVantageNewsProvider(trace.NewNoopTracerProvider().Tracer("test"), "test-key", time.Second)
	p.baseURL = "http://example"
	p.client = &http.Client{Transport: fn}
	p.limiter = rate.NewLimiter(rate.Inf, 1)
	return p
}

func TestAlphaVantageFetchHeadlines(t *testing.T) {
	payload := `{"items":"2","feed":[
		{"title":"Fed Holds Rates Steady","url":"https://example.com/fed","source":"Reuters","time_published":"20250303T120000"},
		{"title":"  ","url":"https://example.com/blank","source":"Reuters","time_published":"20250303T130000"},
		{"title":"Oil climbs","url":"https://example.com/oil","source":"Benzinga","time_published":"garbage"}
	]}`

	var params map[string]string
	p := newTestAlphaVantage(t, func(req *http.Request) (*http.Response, error) {
		params = map[string]string{}
		for k, v := range req.URL.Query() {
			params[k] = v[0]
		}
		return stringResponse(http.StatusOK, payload), nil
	})

	records, err := p.FetchHeadlines(context.Background(), NewsQuery{
		Start:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		MaxResults: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params["function"] != "NEWS_SENTIMENT" || params["limit"] != "50" || params["apikey"] != "test-key" {
		t.Fatalf("unexpected params: %+v", params)
	}
	if params["time_from"] != "20250301T0000" || params["time_to"] != "20250304T2359" {
		t.Fatalf("unexpected time bounds: %+v", params)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Publisher != "Reuters" || !records[0].Published.Equal(time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if !records[1].Published.IsZero() {
		t.Fatalf("expected zero time for bad timestamp, got %v", records[1].Published)
	}
}

func TestAlphaVantageThrottleMessageIsError(t *testing.T) {
	p := newTestAlphaVantage(t, func(req *http.Request) (*http.Response, error) {
		return stringResponse(http.StatusOK, `{"Information":"rate limit reached"}`), nil
	})
	_, err := p.FetchHeadlines(context.Background(), NewsQuery{})
	if err == nil || !strings.Contains(err.Error(), "rate limit reached") {
		t.Fatalf("expected throttle error, got %v", err)
	}
}

func TestAlphaVantageRequiresKey(t *testing.T) {
	p := NewAlphaVantageNewsProvider(trace.NewNoopTracerProvider().Tracer("test"), "", time.Second)
	if _, err := p.FetchHeadlines(context.Background(), NewsQuery{}); err == nil {
		t.Fatal("expected missing key error")
	}
}
