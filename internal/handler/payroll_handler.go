package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fodapt/marrelsrl-sub002/internal/service"
	appErrors "github.com/Fodapt/marrelsrl-sub002/pkg/errors"
	"github.com/Fodapt/marrelsrl-sub002/pkg/response"
)

// PayrollHandler exposes pay record and disbursement endpoints.
type PayrollHandler struct {
	payroll *service.PayrollService
}

// NewPayrollHandler constructs PayrollHandler.
func NewPayrollHandler(payroll *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payroll: payroll}
}

// List godoc
// @Summary List a worker's pay records with balances
// @Tags Payroll
// @Produce json
// @Param id path string true "Worker ID"
// @Success 200 {object} response.Envelope
// @Router /workers/{id}/pay [get]
func (h *PayrollHandler) List(c *gin.Context) {
	records, err := h.payroll.ListByWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Get godoc
// @Summary Get a pay record with its balance
// @Tags Payroll
// @Produce json
// @Param id path string true "Worker ID"
// @Param recordId path string true "Pay record ID"
// @Success 200 {object} response.Envelope
// @Router /workers/{id}/pay/{recordId} [get]
func (h *PayrollHandler) Get(c *gin.Context) {
	record, err := h.payroll.Get(c.Request.Context(), c.Param("id"), c.Param("recordId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Create godoc
// @Summary Register a payroll entry
// @Tags Payroll
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param payload body service.CreatePayRecordRequest true "Pay record payload"
// @Success 201 {object} response.Envelope
// @Router /workers/{id}/pay [post]
func (h *PayrollHandler) Create(c *gin.Context) {
	var req service.CreatePayRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.payroll.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Delete godoc
// @Summary Delete a pay record and its disbursements
// @Tags Payroll
// @Produce json
// @Param id path string true "Worker ID"
// @Param recordId path string true "Pay record ID"
// @Success 204
// @Router /workers/{id}/pay/{recordId} [delete]
func (h *PayrollHandler) Delete(c *gin.Context) {
	if err := h.payroll.Delete(c.Request.Context(), c.Param("id"), c.Param("recordId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddDisbursement godoc
// @Summary Record a partial payment against a pay record
// @Tags Payroll
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param recordId path string true "Pay record ID"
// @Param payload body service.AddDisbursementRequest true "Disbursement payload"
// @Success 201 {object} response.Envelope
// @Router /workers/{id}/pay/{recordId}/disbursements [post]
func (h *PayrollHandler) AddDisbursement(c *gin.Context) {
	var req service.AddDisbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.payroll.AddDisbursement(c.Request.Context(), c.Param("id"), c.Param("recordId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// DeleteDisbursement godoc
// @Summary Delete a partial payment
// @Tags Payroll
// @Produce json
// @Param id path string true "Worker ID"
// @Param recordId path string true "Pay record ID"
// @Param disbursementId path string true "Disbursement ID"
// @Success 204
// @Router /workers/{id}/pay/{recordId}/disbursements/{disbursementId} [delete]
func (h *PayrollHandler) DeleteDisbursement(c *gin.Context) {
	if err := h.payroll.DeleteDisbursement(c.Request.Context(), c.Param("id"), c.Param("recordId"), c.Param("disbursementId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
