package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"newsvol/internal/config"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func runMain(t *testing.T) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func TestMainStdio(t *testing.T) {
	restore := stubMCPDeps("stdio")
	defer restore()

	var ran bool
	runStdioFunc = func(ctx context.Context, s *mcp.Server) error {
		ran = s != nil
		return nil
	}

	runMain(t)
	if !ran {
		t.Fatal("expected stdio transport to run")
	}
}

func TestMainHTTP(t *testing.T) {
	restore := stubMCPDeps("http")
	defer restore()

	var stopped bool
	var addr string
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error {
		stopped = true
		addr = srv.Addr
		return nil
	}

	runMain(t)
	if !stopped || addr != "127.0.0.1:8090" {
		t.Fatalf("expected http shutdown on 127.0.0.1:8090, got stopped=%v addr=%s", stopped, addr)
	}
}

func stubMCPDeps(transport string) func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitTracer := initTracerFunc
	origRunStdio := runStdioFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			MCPTransport:          transport,
			MCPHTTPBind:           "127.0.0.1",
			MCPHTTPPort:           8090,
			MCPRequestTimeoutSecs: 1,
			DefaultThreshold:      35,
			DefaultModel:          "stddev",
			DefaultWindow:         5,
			DefaultMultiplier:     2,
			ProviderTimeoutSecs:   1,
			LogLevel:              "error",
		}
	}
	initTracerFunc = func(ctx context.Context, name string) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	runStdioFunc = func(context.Context, *mcp.Server) error { return nil }
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initTracerFunc = origInitTracer
		runStdioFunc = origRunStdio
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
	}
}
