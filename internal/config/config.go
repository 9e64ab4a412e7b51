package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"newsvol/internal/domain"
	"newsvol/internal/duplicates"
	"newsvol/internal/provider"

	"github.com/rs/zerolog/log"
)

// DefaultLookbackDays is the range used when a caller gives no dates.
const DefaultLookbackDays = 30

type Config struct {
	HTTPPort int

	NewsProvider       string
	AlphaVantageAPIKey string
	NewsQuery          string
	NewsMaxResults     int
	NewsLanguage       string
	NewsCountry        string
	PriceSymbol        string

	SimilarityMetric  string
	DefaultThreshold  int
	DefaultModel      string
	DefaultWindow     int
	DefaultMultiplier float64

	ProviderTimeoutSecs int
	APIRateLimitPerMin  int

	TelegramBotToken string

	SSHPort        int
	SSHHostKeyPath string

	MCPTransport          string
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPRequestTimeoutSecs int

	LogLevel  string
	LogPretty bool
}

func Load() *Config {
	cfg := &Config{
		AlphaVantageAPIKey: strings.TrimSpace(os.Getenv("ALPHAVANTAGE_API_KEY")),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	cfg.HTTPPort = positiveInt("PORT", 8080)

	cfg.NewsProvider = strings.ToLower(strings.TrimSpace(os.Getenv("NEWS_PROVIDER")))
	if cfg.NewsProvider == "" {
		cfg.NewsProvider = "google"
	}
	if cfg.NewsProvider != "google" && cfg.NewsProvider != "alphavantage" {
		log.Warn().Str("value", cfg.NewsProvider).Msg("unsupported NEWS_PROVIDER, defaulting to google")
		cfg.NewsProvider = "google"
	}
	if cfg.NewsProvider == "alphavantage" && cfg.AlphaVantageAPIKey == "" {
		log.Warn().Msg("ALPHAVANTAGE_API_KEY not set, falling back to google news")
		cfg.NewsProvider = "google"
	}

	cfg.NewsQuery = stringOr("NEWS_QUERY", provider.DefaultNewsQuery)
	cfg.NewsMaxResults = positiveInt("NEWS_MAX_RESULTS", provider.DefaultMaxResults)
	cfg.NewsLanguage = stringOr("NEWS_LANGUAGE", "en")
	cfg.NewsCountry = strings.ToUpper(stringOr("NEWS_COUNTRY", "US"))
	cfg.PriceSymbol = stringOr("PRICE_SYMBOL", domain.DefaultPriceSymbol)

	cfg.SimilarityMetric = strings.ToLower(stringOr("SIMILARITY_METRIC", duplicates.MetricIndel))
	if _, err := duplicates.ScorerFor(cfg.SimilarityMetric); err != nil {
		log.Warn().Str("value", cfg.SimilarityMetric).Msg("unsupported SIMILARITY_METRIC, using indel")
		cfg.SimilarityMetric = duplicates.MetricIndel
	}

	cfg.DefaultThreshold = domain.DefaultThreshold
	if v := strings.TrimSpace(os.Getenv("DEFAULT_THRESHOLD")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && domain.ValidateThreshold(n) == nil {
			cfg.DefaultThreshold = n
		} else {
			log.Warn().Str("value", v).Msg("invalid DEFAULT_THRESHOLD, using default")
		}
	}

	cfg.DefaultModel = string(domain.ModelStdDev)
	if v := os.Getenv("DEFAULT_MODEL"); strings.TrimSpace(v) != "" {
		if kind := domain.ParseModelKind(v); kind.IsSupported() {
			cfg.DefaultModel = string(kind)
		} else {
			log.Warn().Str("value", v).Msg("unsupported DEFAULT_MODEL, using stddev")
		}
	}

	cfg.DefaultWindow = 5
	if v := strings.TrimSpace(os.Getenv("DEFAULT_WINDOW")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= domain.MinWindow {
			cfg.DefaultWindow = n
		} else {
			log.Warn().Str("value", v).Msg("invalid DEFAULT_WINDOW, using default")
		}
	}

	cfg.DefaultMultiplier = 2.0
	if v := strings.TrimSpace(os.Getenv("DEFAULT_MULTIPLIER")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.DefaultMultiplier = f
		} else {
			log.Warn().Str("value", v).Msg("invalid DEFAULT_MULTIPLIER, using default")
		}
	}

	cfg.ProviderTimeoutSecs = positiveInt("PROVIDER_TIMEOUT_SECS", 30)
	cfg.APIRateLimitPerMin = positiveInt("API_RATE_LIMIT_PER_MIN", 60)

	if cfg.TelegramBotToken == "" {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN not set")
	}

	cfg.SSHPort = positiveInt("SSH_PORT", 2222)
	cfg.SSHHostKeyPath = stringOr("SSH_HOST_KEY_PATH", ".ssh/newsvol_ed25519")

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Warn().Str("value", cfg.MCPTransport).Msg("unsupported MCP_TRANSPORT, defaulting to stdio")
		cfg.MCPTransport = "stdio"
	}
	cfg.MCPHTTPBind = stringOr("MCP_HTTP_BIND", "127.0.0.1")
	cfg.MCPHTTPPort = positiveInt("MCP_HTTP_PORT", 8090)
	cfg.MCPRequestTimeoutSecs = positiveInt("MCP_REQUEST_TIMEOUT_SECS", 30)

	cfg.LogLevel = strings.ToLower(stringOr("LOG_LEVEL", "info"))
	cfg.LogPretty = strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_PRETTY")), "true")

	return cfg
}

// ProviderTimeout is the per-request HTTP timeout for news and price calls.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeoutSecs) * time.Second
}

// AnalysisDefaults returns the parameter template for one request: the
// configured query, symbol, threshold and model over the last
// DefaultLookbackDays days ending at now.
func (c *Config) AnalysisDefaults(now time.Time) domain.AnalysisParams {
	end := domain.Day(now)
	return domain.AnalysisParams{
		Start:      end.AddDate(0, 0, -DefaultLookbackDays),
		End:        end,
		Query:      c.NewsQuery,
		MaxResults: c.NewsMaxResults,
		Symbol:     c.PriceSymbol,
		Threshold:  c.DefaultThreshold,
		Model: domain.VolatilityModel{
			Kind:       domain.ModelKind(c.DefaultModel),
			Window:     c.DefaultWindow,
			Multiplier: c.DefaultMultiplier,
		},
	}
}

func stringOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func positiveInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer, using default")
		return fallback
	}
	return n
}
