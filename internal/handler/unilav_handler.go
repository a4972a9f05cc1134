package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fodapt/marrelsrl-sub002/internal/service"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
	"github.com/Fodapt/marrelsrl-sub002/pkg/response"
)

// UnilavHandler exposes unilav event and derived status endpoints.
type UnilavHandler struct {
	assignments *service.AssignmentService
}

// NewUnilavHandler constructs UnilavHandler.
func NewUnilavHandler(assignments *service.AssignmentService) *UnilavHandler {
	return &UnilavHandler{assignments: assignments}
}

// List godoc
// @Summary List a worker's unilav events
// @Tags Unilav
// @Produce json
// @Param id path string true "Worker ID"
// @Success 200 {object} response.Envelope
// @Router /workers/{id}/unilav [get]
func (h *UnilavHandler) List(c *gin.Context) {
	events, err := h.assignments.ListByWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Create godoc
// @Summary Record unilav event
// @Tags Unilav
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param payload body service.CreateUnilavRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /workers/{id}/unilav [post]
func (h *UnilavHandler) Create(c *gin.Context) {
	var req service.CreateUnilavRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.assignments.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Correct unilav event
// @Tags Unilav
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param eventId path string true "Event ID"
// @Param payload body service.UpdateUnilavRequest true "Event payload"
// @Success 200 {object} response.Envelope
// @Router /workers/{id}/unilav/{eventId} [put]
func (h *UnilavHandler) Update(c *gin.Context) {
	var req service.UpdateUnilavRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.assignments.Update(c.Request.Context(), c.Param("id"), c.Param("eventId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Delete godoc
// @Summary Delete unilav event
// @Tags Unilav
// @Produce json
// @Param id path string true "Worker ID"
// @Param eventId path string true "Event ID"
// @Success 204
// @Router /workers/{id}/unilav/{eventId} [delete]
func (h *UnilavHandler) Delete(c *gin.Context) {
	if err := h.assignments.Delete(c.Request.Context(), c.Param("id"), c.Param("eventId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Status godoc
// @Summary Derived employment status on a date
// @Tags Unilav
// @Produce json
// @Param id path string true "Worker ID"
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /workers/{id}/status [get]
func (h *UnilavHandler) Status(c *gin.Context) {
	date, err := queryDate(c, "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	status, err := h.assignments.Status(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Active godoc
// @Summary Assignment in effect on a date
// @Tags Unilav
// @Produce json
// @Param id path string true "Worker ID"
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /workers/{id}/unilav/active [get]
func (h *UnilavHandler) Active(c *gin.Context) {
	date, err := queryDate(c, "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	event, err := h.assignments.Active(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}
