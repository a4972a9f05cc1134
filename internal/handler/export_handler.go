package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Fodapt/marrelsrl-sub002/internal/service"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
	"github.com/Fodapt/marrelsrl-sub002/pkg/response"
)

// ExportHandler exposes attendance sheet and pay ledger downloads.
type ExportHandler struct {
	exports *service.ExportService
	enabled bool
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService, enabled bool) *ExportHandler {
	return &ExportHandler{exports: exports, enabled: enabled}
}

// AttendanceSheet godoc
// @Summary Download the monthly attendance sheet
// @Tags Exports
// @Produce text/csv
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param format query string false "csv or pdf, defaults to csv"
// @Success 200 {file} file
// @Router /exports/attendance [get]
func (h *ExportHandler) AttendanceSheet(c *gin.Context) {
	if !h.enabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports disabled"))
		return
	}
	year := queryInt(c, "year", time.Now().Year())
	month := queryInt(c, "month", int(time.Now().Month()))
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	file, err := h.exports.AttendanceSheet(c.Request.Context(), year, time.Month(month), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

// PayLedger godoc
// @Summary Download the yearly pay ledger
// @Tags Exports
// @Produce text/csv
// @Param year query int true "Year"
// @Param format query string false "csv or pdf, defaults to csv"
// @Success 200 {file} file
// @Router /exports/pay-ledger [get]
func (h *ExportHandler) PayLedger(c *gin.Context) {
	if !h.enabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports disabled"))
		return
	}
	year := queryInt(c, "year", time.Now().Year())
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	file, err := h.exports.PayLedger(c.Request.Context(), year, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

func serveFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}
