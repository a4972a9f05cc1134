package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Fodapt/marrelsrl-sub002/internal/dto"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
	"github.com/Fodapt/marrelsrl-sub002/pkg/response"
)

type dashboardService interface {
	Overview(ctx context.Context, date time.Time) (*dto.ExpiryDashboardResponse, bool, error)
}

// DashboardHandler wires the expiry dashboard to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Overview godoc
// @Summary Expiry dashboard for a reference date
// @Tags Dashboard
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /dashboard/expiry [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	date, err := queryDate(c, "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.Overview(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"cache_hit":          cacheHit,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
	response.JSON(c, http.StatusOK, summary, nil, meta)
}
