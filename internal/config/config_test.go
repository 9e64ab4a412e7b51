package config

import (
	"testing"
	"time"

	"newsvol/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "NEWS_PROVIDER", "ALPHAVANTAGE_API_KEY", "NEWS_QUERY", "NEWS_MAX_RESULTS",
		"NEWS_LANGUAGE", "NEWS_COUNTRY", "PRICE_SYMBOL", "DEFAULT_THRESHOLD", "DEFAULT_MODEL",
		"DEFAULT_WINDOW", "DEFAULT_MULTIPLIER", "PROVIDER_TIMEOUT_SECS", "API_RATE_LIMIT_PER_MIN",
		"TELEGRAM_BOT_TOKEN", "SSH_PORT", "SSH_HOST_KEY_PATH", "MCP_TRANSPORT", "MCP_HTTP_BIND",
		"MCP_HTTP_PORT", "MCP_REQUEST_TIMEOUT_SECS", "LOG_LEVEL", "LOG_PRETTY", "SIMILARITY_METRIC",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.HTTPPort != 8080 || cfg.SSHPort != 2222 || cfg.MCPHTTPPort != 8090 {
		t.Fatalf("unexpected ports: %+v", cfg)
	}
	if cfg.NewsProvider != "google" || cfg.NewsQuery != "stock market" || cfg.NewsMaxResults != 100 {
		t.Fatalf("unexpected news defaults: %+v", cfg)
	}
	if cfg.NewsLanguage != "en" || cfg.NewsCountry != "US" || cfg.PriceSymbol != "^GSPC" {
		t.Fatalf("unexpected locale defaults: %+v", cfg)
	}
	if cfg.SimilarityMetric != "indel" {
		t.Fatalf("unexpected similarity metric: %q", cfg.SimilarityMetric)
	}
	if cfg.DefaultThreshold != 35 || cfg.DefaultModel != "stddev" || cfg.DefaultWindow != 5 || cfg.DefaultMultiplier != 2.0 {
		t.Fatalf("unexpected analysis defaults: %+v", cfg)
	}
	if cfg.MCPTransport != "stdio" || cfg.MCPHTTPBind != "127.0.0.1" || cfg.MCPRequestTimeoutSecs != 30 {
		t.Fatalf("unexpected mcp defaults: %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogPretty {
		t.Fatalf("unexpected log defaults: %+v", cfg)
	}
	if cfg.ProviderTimeout() != 30*time.Second {
		t.Fatalf("unexpected provider timeout: %v", cfg.ProviderTimeout())
	}
}

func TestLoadWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("NEWS_PROVIDER", "AlphaVantage")
	t.Setenv("ALPHAVANTAGE_API_KEY", "key")
	t.Setenv("NEWS_COUNTRY", "gb")
	t.Setenv("DEFAULT_THRESHOLD", "60")
	t.Setenv("DEFAULT_MODEL", " Bollinger ")
	t.Setenv("DEFAULT_WINDOW", "20")
	t.Setenv("DEFAULT_MULTIPLIER", "2.5")
	t.Setenv("MCP_TRANSPORT", "HTTP")
	t.Setenv("LOG_PRETTY", "true")

	cfg := Load()
	if cfg.HTTPPort != 9000 || cfg.NewsProvider != "alphavantage" || cfg.NewsCountry != "GB" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.DefaultThreshold != 60 || cfg.DefaultModel != "bollinger" || cfg.DefaultWindow != 20 || cfg.DefaultMultiplier != 2.5 {
		t.Fatalf("unexpected analysis config: %+v", cfg)
	}
	if cfg.MCPTransport != "http" || !cfg.LogPretty {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "bad")
	t.Setenv("NEWS_PROVIDER", "bing")
	t.Setenv("DEFAULT_THRESHOLD", "101")
	t.Setenv("DEFAULT_MODEL", "garch")
	t.Setenv("DEFAULT_WINDOW", "1")
	t.Setenv("DEFAULT_MULTIPLIER", "-1")
	t.Setenv("MCP_TRANSPORT", "grpc")

	cfg := Load()
	if cfg.HTTPPort != 8080 || cfg.NewsProvider != "google" || cfg.MCPTransport != "stdio" {
		t.Fatalf("invalid values should fall back: %+v", cfg)
	}
	if cfg.DefaultThreshold != 35 || cfg.DefaultModel != "stddev" || cfg.DefaultWindow != 5 || cfg.DefaultMultiplier != 2.0 {
		t.Fatalf("invalid analysis values should fall back: %+v", cfg)
	}
}

func TestLoadAlphaVantageWithoutKeyFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEWS_PROVIDER", "alphavantage")

	if cfg := Load(); cfg.NewsProvider != "google" {
		t.Fatalf("expected google fallback, got %s", cfg.NewsProvider)
	}
}

func TestLoadSimilarityMetric(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"Levenshtein", "levenshtein"},
		{"indel", "indel"},
		{"jaro", "indel"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SIMILARITY_METRIC", tt.value)
			if got := Load().SimilarityMetric; got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAnalysisDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	now := time.Date(2025, 3, 31, 15, 4, 0, 0, time.UTC)
	p := cfg.AnalysisDefaults(now)

	if !p.End.Equal(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)) || !p.Start.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected range %v..%v", p.Start, p.End)
	}
	if p.Model.Kind != domain.ModelStdDev || p.Model.Window != 5 || p.Model.Multiplier != 2.0 {
		t.Fatalf("unexpected model: %+v", p.Model)
	}
	if err := p.Model.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if p.Threshold != 35 || p.Symbol != "^GSPC" || p.Query != "stock market" || p.MaxResults != 100 {
		t.Fatalf("unexpected params: %+v", p)
	}
}
