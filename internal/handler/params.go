package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"newsvol/internal/domain"

	"github.com/gin-gonic/gin"
)

// parseParams overlays query parameters on the configured defaults.
func (h *Handler) parseParams(c *gin.Context) (domain.AnalysisParams, error) {
	p := h.cfg.AnalysisDefaults(h.now())

	if v := strings.TrimSpace(c.Query("start")); v != "" {
		t, err := time.Parse(domain.DateLayout, v)
		if err != nil {
			return p, &domain.InvalidParameterError{Name: "start", Reason: "expected YYYY-MM-DD"}
		}
		p.Start = t
	}
	if v := strings.TrimSpace(c.Query("end")); v != "" {
		t, err := time.Parse(domain.DateLayout, v)
		if err != nil {
			return p, &domain.InvalidParameterError{Name: "end", Reason: "expected YYYY-MM-DD"}
		}
		p.End = t
	}
	if v := strings.TrimSpace(c.Query("threshold")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, &domain.InvalidParameterError{Name: "threshold", Reason: "must be an integer"}
		}
		p.Threshold = n
	}
	if v := c.Query("model"); strings.TrimSpace(v) != "" {
		p.Model.Kind = domain.ParseModelKind(v)
	}
	if v := strings.TrimSpace(c.Query("window")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, &domain.InvalidParameterError{Name: "window", Reason: "must be an integer"}
		}
		p.Model.Window = n
	}
	if v := strings.TrimSpace(c.Query("multiplier")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, &domain.InvalidParameterError{Name: "multiplier", Reason: "must be a number"}
		}
		p.Model.Multiplier = f
	}
	if v := strings.TrimSpace(c.Query("percent")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, &domain.InvalidParameterError{Name: "percent", Reason: "must be true or false"}
		}
		p.Model.Percent = b
	}
	if v := strings.TrimSpace(c.Query("symbol")); v != "" {
		p.Symbol = strings.ToUpper(v)
	}
	if v := strings.TrimSpace(c.Query("query")); v != "" {
		p.Query = v
	}
	return p, nil
}

func statusFor(err error) int {
	var (
		invalidRange *domain.InvalidRangeError
		invalidParam *domain.InvalidParameterError
		unsupported  *domain.UnsupportedModelError
		noData       *domain.NoDataError
	)
	switch {
	case errors.As(err, &invalidRange), errors.As(err, &invalidParam), errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &noData):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}
	var unsupported *domain.UnsupportedModelError
	if errors.As(err, &unsupported) {
		body["supported_models"] = domain.SupportedModels
	}
	c.JSON(status, body)
}
