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

// DocumentHandler exposes invoice bundle endpoints.
type DocumentHandler struct {
	documents *service.DocumentService
}

// NewDocumentHandler constructs DocumentHandler.
func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// List godoc
// @Summary List invoice bundles with completeness status
// @Tags Documents
// @Produce json
// @Param search query string false "Search by number or supplier"
// @Param siteId query string false "Filter by site"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /bundles [get]
func (h *DocumentHandler) List(c *gin.Context) {
	var filter models.BundleFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.SiteID = c.Query("siteId")
	filter.Page = queryInt(c, "page", 1)
	filter.PageSize = queryInt(c, "limit", 20)
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	bundles, pagination, err := h.documents.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bundles, pagination)
}

// Get godoc
// @Summary Get a bundle with its completeness status
// @Tags Documents
// @Produce json
// @Param id path string true "Bundle ID"
// @Success 200 {object} response.Envelope
// @Router /bundles/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	bundle, err := h.documents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bundle, nil)
}

// Create godoc
// @Summary Register an invoice bundle
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body service.CreateBundleRequest true "Bundle payload"
// @Success 201 {object} response.Envelope
// @Router /bundles [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req service.CreateBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	bundle, err := h.documents.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, bundle)
}

// Delete godoc
// @Summary Delete a bundle and its documents
// @Tags Documents
// @Produce json
// @Param id path string true "Bundle ID"
// @Success 204
// @Router /bundles/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddItem godoc
// @Summary Append an expected document to a bundle
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Bundle ID"
// @Param payload body service.AddDocumentItemRequest true "Document payload"
// @Success 201 {object} response.Envelope
// @Router /bundles/{id}/documents [post]
func (h *DocumentHandler) AddItem(c *gin.Context) {
	var req service.AddDocumentItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	bundle, err := h.documents.AddItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, bundle)
}

// MarkItem godoc
// @Summary Flip the received flag on a document
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Bundle ID"
// @Param itemId path string true "Document ID"
// @Param payload body service.MarkDocumentRequest true "Received payload"
// @Success 200 {object} response.Envelope
// @Router /bundles/{id}/documents/{itemId} [patch]
func (h *DocumentHandler) MarkItem(c *gin.Context) {
	var req service.MarkDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	bundle, err := h.documents.MarkItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bundle, nil)
}

// DeleteItem godoc
// @Summary Remove an expected document from a bundle
// @Tags Documents
// @Produce json
// @Param id path string true "Bundle ID"
// @Param itemId path string true "Document ID"
// @Success 204
// @Router /bundles/{id}/documents/{itemId} [delete]
func (h *DocumentHandler) DeleteItem(c *gin.Context) {
	if err := h.documents.DeleteItem(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
