package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck handles GET /health requests.
func (h *Handler) HealthCheck(c *gin.Context) {
	_, ready := h.reports.Latest()
	c.JSON(http.StatusOK, gin.H{
		"status":     "OK",
		"service":    ServiceName,
		"version":    ServiceVersion,
		"has_report": ready,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// GetSignals handles GET /api/v1/signals and returns the latest report.
func (h *Handler) GetSignals(c *gin.Context) {
	r, ok := h.reports.Latest()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no scan has completed yet"})
		return
	}
	c.JSON(http.StatusOK, r)
}

// GetSignal handles GET /api/v1/signals/:symbol. The path value matches
// either the symbol or the full ticker, case-insensitively.
func (h *Handler) GetSignal(c *gin.Context) {
	want := strings.TrimSpace(c.Param("symbol"))
	r, ok := h.reports.Latest()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no scan has completed yet"})
		return
	}
	for _, s := range r.Signals {
		if strings.EqualFold(s.Symbol, want) || strings.EqualFold(s.Ticker, want) {
			c.JSON(http.StatusOK, s)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "no active signal for " + want})
}

// GetHistory handles GET /api/v1/history?limit=N.
func (h *Handler) GetHistory(c *gin.Context) {
	limit := DefaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxHistoryLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(MaxHistoryLimit)})
			return
		}
		limit = n
	}

	entries, err := h.history.RecentSignals(limit)
	if err != nil {
		h.logger.Error().Err(err).
			Str("request_id", c.GetString(RequestIDContextKey)).
			Msg("load signal history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		items = append(items, gin.H{
			"run_id":    e.RunID,
			"timestamp": e.Timestamp.Format(time.RFC3339),
			"signal":    e.Signal,
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "signals": items})
}
