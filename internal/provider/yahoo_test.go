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

// 2025-03-03 and 2025-03-04 14:30 UTC (09:30 New York), with a null row and
// a row after the requested end.
const yahooChart = `{"chart":{"result":[{"meta":{"symbol":"^GSPC","gmtoffset":-18000},
"timestamp":[1741012200,1741098600,1741185000,1741271400],
"indicators":{"quote":[{"open":[100,102,null,110],"high":[105,106,null,111],"low":[99,101,null,109],"close":[104,103,null,110],"volume":[1000,2000,null,3000]}],
"adjclose":[{"adjclose":[52,51.5,null,55]}]}}],"error":null}}`

func newTestYahoo(fn roundTripFunc) *YahooProvider {
	p := NewYahooProvider(trace.NewNoopTracerProvider().Tracer("test"), time.Second)
	p.baseURL = "http://example"
	p.client = &http.Client{Transport: fn}
	p.limiter = rate.NewLimiter(rate.Inf, 1)
	return p
}

func TestYahooFetchDailyBars(t *testing.T) {
	p := newTestYahoo(func(req *http.Request) (*http.Response, error) {
		if !strings.HasPrefix(req.URL.EscapedPath(), "/v8/finance/chart/%5EGSPC") {
			t.Fatalf("unexpected path: %s", req.URL.EscapedPath())
		}
		if req.URL.Query().Get("interval") != "1d" {
			t.Fatalf("unexpected interval: %s", req.URL.RawQuery)
		}
		return stringResponse(http.StatusOK, yahooChart), nil
	})

	bars, err := p.FetchDailyBars(context.Background(), "^GSPC",
		time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d: %+v", len(bars), bars)
	}

	first := bars[0]
	if !first.Date.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first date: %v", first.Date)
	}
	// adjclose/close = 0.5
	if first.Close != 52 || first.Open != 50 || first.High != 52.5 || first.Low != 49.5 {
		t.Fatalf("expected adjusted OHLC, got %+v", first)
	}
	if first.Volume != 1000 || first.Symbol != "^GSPC" {
		t.Fatalf("unexpected bar: %+v", first)
	}
	if !bars[1].Date.Equal(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected second date: %v", bars[1].Date)
	}
}

func TestYahooUnknownSymbolReturnsEmpty(t *testing.T) {
	p := newTestYahoo(func(req *http.Request) (*http.Response, error) {
		return stringResponse(http.StatusNotFound, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`), nil
	})
	bars, err := p.FetchDailyBars(context.Background(), "NOPE", time.Now().AddDate(0, 0, -5), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 0 {
		t.Fatalf("expected no bars, got %d", len(bars))
	}
}

func TestYahooServerError(t *testing.T) {
	p := newTestYahoo(func(req *http.Request) (*http.Response, error) {
		return stringResponse(http.StatusTooManyRequests, "slow down"), nil
	})
	_, err := p.FetchDailyBars(context.Background(), "^GSPC", time.Now().AddDate(0, 0, -5), time.Now())
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected 429 error, got %v", err)
	}
}
