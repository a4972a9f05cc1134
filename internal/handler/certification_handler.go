package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fodapt/marrelsrl-sub002/internal/service"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
	"github.com/Fodapt/marrelsrl-sub002/pkg/response"
)

// CertificationHandler exposes certification and renewal ledger endpoints.
type CertificationHandler struct {
	certifications *service.CertificationService
}

// NewCertificationHandler constructs CertificationHandler.
func NewCertificationHandler(certifications *service.CertificationService) *CertificationHandler {
	return &CertificationHandler{certifications: certifications}
}

// List godoc
// @Summary List a worker's certifications classified by expiry
// @Tags Certifications
// @Produce json
// @Param id path string true "Worker ID"
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /workers/{id}/certifications [get]
func (h *CertificationHandler) List(c *gin.Context) {
	date, err := queryDate(c, "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	details, err := h.certifications.ListByWorker(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil)
}

// Expiring godoc
// @Summary List expired and upcoming certifications across all workers
// @Tags Certifications
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /certifications/expiring [get]
func (h *CertificationHandler) Expiring(c *gin.Context) {
	date, err := queryDate(c, "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	alerts, err := h.certifications.Expiring(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, alerts, nil)
}

// Create godoc
// @Summary Register a certification for a worker
// @Tags Certifications
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param payload body service.CreateCertificationRequest true "Certification payload"
// @Success 201 {object} response.Envelope
// @Router /workers/{id}/certifications [post]
func (h *CertificationHandler) Create(c *gin.Context) {
	var req service.CreateCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.certifications.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// AddRenewal godoc
// @Summary Append a renewal to the certification ledger
// @Tags Certifications
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param certId path string true "Certification ID"
// @Param payload body service.AddRenewalRequest true "Renewal payload"
// @Success 201 {object} response.Envelope
// @Router /workers/{id}/certifications/{certId}/renewals [post]
func (h *CertificationHandler) AddRenewal(c *gin.Context) {
	var req service.AddRenewalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.certifications.AddRenewal(c.Request.Context(), c.Param("id"), c.Param("certId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Delete godoc
// @Summary Delete a certification and its ledger
// @Tags Certifications
// @Produce json
// @Param id path string true "Worker ID"
// @Param certId path string true "Certification ID"
// @Success 204
// @Router /workers/{id}/certifications/{certId} [delete]
func (h *CertificationHandler) Delete(c *gin.Context) {
	if err := h.certifications.Delete(c.Request.Context(), c.Param("id"), c.Param("certId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
