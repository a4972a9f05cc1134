package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Fodapt/marrelsrl-sub002/internal/models"
	"github.com/Fodapt/marrelsrl-sub002/internal/service"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
	"github.com/Fodapt/marrelsrl-sub002/pkg/response"
)

// WorkerHandler exposes worker registry endpoints.
type WorkerHandler struct {
	workers *service.WorkerService
}

// NewWorkerHandler constructs WorkerHandler.
func NewWorkerHandler(workers *service.WorkerService) *WorkerHandler {
	return &WorkerHandler{workers: workers}
}

// List godoc
// @Summary List workers
// @Tags Workers
// @Produce json
// @Param search query string false "Search by name or fiscal code"
// @Param role query string false "Filter by role"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /workers [get]
func (h *WorkerHandler) List(c *gin.Context) {
	var filter models.WorkerFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if role := c.Query("role"); role != "" {
		r := models.WorkerRole(role)
		filter.Role = &r
	}
	filter.Page = queryInt(c, "page", 1)
	filter.PageSize = queryInt(c, "limit", 20)
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	workers, pagination, err := h.workers.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, workers, pagination)
}

// Get godoc
// @Summary Get worker detail
// @Tags Workers
// @Produce json
// @Param id path string true "Worker ID"
// @Success 200 {object} response.Envelope
// @Router /workers/{id} [get]
func (h *WorkerHandler) Get(c *gin.Context) {
	worker, err := h.workers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, worker, nil)
}

// Create godoc
// @Summary Register worker
// @Tags Workers
// @Accept json
// @Produce json
// @Param payload body service.CreateWorkerRequest true "Worker payload"
// @Success 201 {object} response.Envelope
// @Router /workers [post]
func (h *WorkerHandler) Create(c *gin.Context) {
	var req service.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	worker, err := h.workers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, worker)
}

// Update godoc
// @Summary Update worker
// @Tags Workers
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param payload body service.UpdateWorkerRequest true "Worker payload"
// @Success 200 {object} response.Envelope
// @Router /workers/{id} [put]
func (h *WorkerHandler) Update(c *gin.Context) {
	var req service.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	worker, err := h.workers.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, worker, nil)
}

// Delete godoc
// @Summary Delete worker
// @Tags Workers
// @Produce json
// @Param id path string true "Worker ID"
// @Success 204
// @Router /workers/{id} [delete]
func (h *WorkerHandler) Delete(c *gin.Context) {
	if err := h.workers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
