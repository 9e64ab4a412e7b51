package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsvol/internal/config"
	"newsvol/internal/domain"
	"newsvol/internal/duplicates"
	"newsvol/internal/mcptools"
	"newsvol/internal/provider"
	"newsvol/internal/service"
	"newsvol/pkg/logger"
	"newsvol/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "newsvol-mcp"

var (
	loadEnvFunc     = godotenv.Load
	loadConfigFunc  = config.Load
	initTracerFunc  = tracing.InitTracer
	newNewsProvider = func(tracer trace.Tracer, cfg *config.Config) service.NewsProvider {
		return provider.NewNewsSource(tracer, provider.NewsOptions{
			Provider:           cfg.NewsProvider,
			AlphaVantageAPIKey: cfg.AlphaVantageAPIKey,
			Language:           cfg.NewsLanguage,
			Country:            cfg.NewsCountry,
			Timeout:            cfg.ProviderTimeout(),
		})
	}
	newPriceProvider = func(tracer trace.Tracer, cfg *config.Config) service.PriceProvider {
		return provider.NewYahooProvider(tracer, cfg.ProviderTimeout())
	}
	runStdioFunc = func(ctx context.Context, s *mcp.Server) error {
		return s.Run(ctx, &mcp.StdioTransport{})
	}
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()

	// stdout belongs to the stdio transport
	l := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Output: os.Stderr})
	logger.SetGlobalLogger(l)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, serviceName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	score, err := duplicates.ScorerFor(cfg.SimilarityMetric)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid similarity metric")
	}
	analysis := service.NewAnalysisService(tracer, newNewsProvider(tracer, cfg), newPriceProvider(tracer, cfg), l).
		WithScorer(score)
	tools := mcptools.NewTools(analysis,
		func() domain.AnalysisParams { return cfg.AnalysisDefaults(time.Now()) },
		time.Duration(cfg.MCPRequestTimeoutSecs)*time.Second, l)
	server := mcptools.NewServer(tools)

	if cfg.MCPTransport == "http" {
		serveHTTP(ctx, cancel, server, cfg)
		return
	}

	log.Info().Msg("MCP server running on stdio")
	if err := runStdioFunc(ctx, server); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("MCP stdio server stopped")
	}
}

func serveHTTP(ctx context.Context, cancel context.CancelFunc, server *mcp.Server, cfg *config.Config) {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.MCPHTTPBind, cfg.MCPHTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("MCP HTTP server listening")
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("MCP HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info().Msg("Shutting down MCP server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Error().Err(err).Msg("MCP HTTP shutdown error")
	}
}
