package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsvol/internal/bot"
	"newsvol/internal/config"
	"newsvol/internal/domain"
	"newsvol/internal/duplicates"
	"newsvol/internal/handler"
	"newsvol/internal/provider"
	"newsvol/internal/service"
	"newsvol/pkg/logger"
	"newsvol/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "newsvol/docs"
)

const serviceName = "newsvol-server"

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
	startTelegramBotFunc = func(b *bot.Bot, token string) error {
		_, err := b.Start(token)
		return err
	}
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           newsvol API
// @version         1.0
// @description     Near-duplicate news headline counts alongside market volatility.

// @host      localhost:8080
// @BasePath  /
func main() {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()

	l := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
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

	telegram := bot.New(analysis, func() domain.AnalysisParams { return cfg.AnalysisDefaults(time.Now()) }, l)
	if err := startTelegramBotFunc(telegram, cfg.TelegramBotToken); err != nil {
		log.Error().Err(err).Msg("telegram bot disabled")
	}

	h := handler.New(tracer, analysis, cfg)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(serviceName))
	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info().Msg("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
