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

// SiteHandler exposes work-site endpoints.
type SiteHandler struct {
	sites *service.SiteService
}

// NewSiteHandler constructs SiteHandler.
func NewSiteHandler(sites *service.SiteService) *SiteHandler {
	return &SiteHandler{sites: sites}
}

// List godoc
// @Summary List work sites
// @Tags Sites
// @Produce json
// @Param search query string false "Search by name or client"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /sites [get]
func (h *SiteHandler) List(c *gin.Context) {
	var filter models.SiteFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if status := c.Query("status"); status != "" {
		s := models.SiteStatus(status)
		filter.Status = &s
	}
	filter.Page = queryInt(c, "page", 1)
	filter.PageSize = queryInt(c, "limit", 20)
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	sites, pagination, err := h.sites.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sites, pagination)
}

// Get godoc
// @Summary Get work site detail
// @Tags Sites
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} response.Envelope
// @Router /sites/{id} [get]
func (h *SiteHandler) Get(c *gin.Context) {
	site, err := h.sites.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, site, nil)
}

// Create godoc
// @Summary Open a work site
// @Tags Sites
// @Accept json
// @Produce json
// @Param payload body service.CreateSiteRequest true "Site payload"
// @Success 201 {object} response.Envelope
// @Router /sites [post]
func (h *SiteHandler) Create(c *gin.Context) {
	var req service.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	site, err := h.sites.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, site)
}

// Update godoc
// @Summary Update a work site
// @Tags Sites
// @Accept json
// @Produce json
// @Param id path string true "Site ID"
// @Param payload body service.UpdateSiteRequest true "Site payload"
// @Success 200 {object} response.Envelope
// @Router /sites/{id} [put]
func (h *SiteHandler) Update(c *gin.Context) {
	var req service.UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	site, err := h.sites.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, site, nil)
}

// Delete godoc
// @Summary Delete a work site
// @Tags Sites
// @Produce json
// @Param id path string true "Site ID"
// @Success 204
// @Router /sites/{id} [delete]
func (h *SiteHandler) Delete(c *gin.Context) {
	if err := h.sites.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
