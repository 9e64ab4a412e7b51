package main

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"newsvol/internal/config"
	"newsvol/internal/duplicates"
	"newsvol/internal/provider"
	"newsvol/internal/service"
	"newsvol/internal/tui"
	"newsvol/pkg/logger"
	"newsvol/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "newsvol-ssh"

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
	newWishServerFunc = wish.NewServer
	setupSignalNotify = ossignal.Notify
	waitForSignalFunc = func(quit <-chan os.Signal) { <-quit }
)

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

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)
	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(sessionHandler(analysis, cfg)),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create SSH server")
	}

	if srv != nil {
		go func() {
			log.Info().Str("addr", addr).Msg("SSH server listening")
			if err := srv.ListenAndServe(); err != nil {
				log.Info().Err(err).Msg("SSH server stopped")
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info().Msg("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("SSH server shutdown error")
		}
	}

	log.Info().Msg("SSH server exited")
}

// sessionHandler gives every SSH session its own form seeded with the
// configured defaults as of connection time.
func sessionHandler(analyzer tui.Analyzer, cfg *config.Config) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		model := tui.NewModel(analyzer, cfg.AnalysisDefaults(time.Now()), 2*cfg.ProviderTimeout())
		pty, _, _ := s.Pty()
		model.SetSize(pty.Window.Width, pty.Window.Height)
		return model, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
