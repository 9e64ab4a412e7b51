package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsvol/internal/config"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	cfg := &config.Config{NewsProvider: "google", PriceSymbol: "^GSPC"}
	h := &Handler{tracer: trace.NewNoopTracerProvider().Tracer("test"), cfg: cfg}
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected healthy status, got %q", body["status"])
	}
	if body["news_provider"] != "google" || body["price_symbol"] != "^GSPC" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestHealthWithoutConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &Handler{tracer: trace.NewNoopTracerProvider().Tracer("test")}
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if body := strings.TrimSpace(w.Body.String()); body != "{\"status\":\"healthy\"}" {
		t.Errorf("unexpected body: %s", body)
	}
}
