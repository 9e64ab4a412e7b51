package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Reports liveness plus the configured news source and price symbol
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	body := gin.H{"status": "healthy"}
	if h.cfg != nil {
		body["news_provider"] = h.cfg.NewsProvider
		body["price_symbol"] = h.cfg.PriceSymbol
	}
	c.JSON(http.StatusOK, body)
}
