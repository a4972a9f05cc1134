package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Fodapt/marrelsrl-sub002/internal/service"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
	"github.com/Fodapt/marrelsrl-sub002/pkg/response"
)

// AttendanceHandler exposes attendance sheet endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// ListMonth godoc
// @Summary List a worker's attendance entries for a month
// @Tags Attendance
// @Produce json
// @Param id path string true "Worker ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} response.Envelope
// @Router /workers/{id}/attendance [get]
func (h *AttendanceHandler) ListMonth(c *gin.Context) {
	year := queryInt(c, "year", time.Now().Year())
	month := queryInt(c, "month", int(time.Now().Month()))
	records, err := h.attendance.ListMonth(c.Request.Context(), c.Param("id"), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Summary godoc
// @Summary Monthly attendance summary for a worker
// @Tags Attendance
// @Produce json
// @Param id path string true "Worker ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} response.Envelope
// @Router /workers/{id}/attendance/summary [get]
func (h *AttendanceHandler) Summary(c *gin.Context) {
	year := queryInt(c, "year", time.Now().Year())
	month := queryInt(c, "month", int(time.Now().Month()))
	summary, err := h.attendance.Summary(c.Request.Context(), c.Param("id"), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Upsert godoc
// @Summary Record or replace a worker-day entry
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param payload body service.UpsertAttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Router /workers/{id}/attendance [put]
func (h *AttendanceHandler) Upsert(c *gin.Context) {
	var req service.UpsertAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.attendance.Upsert(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Delete an attendance entry
// @Tags Attendance
// @Produce json
// @Param id path string true "Worker ID"
// @Param recordId path string true "Attendance record ID"
// @Success 204
// @Router /workers/{id}/attendance/{recordId} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	if err := h.attendance.Delete(c.Request.Context(), c.Param("id"), c.Param("recordId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
