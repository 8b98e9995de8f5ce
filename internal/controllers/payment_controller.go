package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iNiketan/Tenent-Management-App/internal/dtos"
	"github.com/iNiketan/Tenent-Management-App/internal/repositories"
	"github.com/iNiketan/Tenent-Management-App/internal/services"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

type PaymentController struct {
	invoiceService *services.InvoiceService
	paymentRepo    repositories.RentPaymentRepository
	validate       *validator.Validate
}

func NewPaymentController(invoiceSvc *services.InvoiceService, paymentRepo repositories.RentPaymentRepository) *PaymentController {
	return &PaymentController{
		invoiceService: invoiceSvc,
		paymentRepo:    paymentRepo,
		validate:       validator.New(),
	}
}

// POST /api/v1/payments
func (c *PaymentController) RecordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	paidOn, err := time.Parse("2006-01-02", req.PaidOn)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid paid_on", nil, err)
		return
	}

	payment, err := c.invoiceService.RecordPayment(r.Context(), req.LeaseID, paidOn, req.Amount, req.Method, req.Notes)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, payment)
}

// GET /api/v1/leases/{leaseID}/payments
func (c *PaymentController) ListLeasePaymentsHandler(w http.ResponseWriter, r *http.Request) {
	leaseID, err := pathUUID(r, "leaseID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	payments, err := c.paymentRepo.ListByLeaseID(r.Context(), leaseID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payments)
}

// PUT /api/v1/payments/{paymentID}
func (c *PaymentController) UpdatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "paymentID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	var req dtos.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}
	if !req.Amount.IsPositive() {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Payment amount must be positive", nil, nil)
		return
	}

	paidOn, err := time.Parse("2006-01-02", req.PaidOn)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid paid_on", nil, err)
		return
	}

	payment, err := c.paymentRepo.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if payment == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found", nil, nil)
		return
	}

	payment.Amount = req.Amount
	payment.PaidOn = paidOn
	payment.Method = req.Method
	payment.Notes = req.Notes
	if err := c.paymentRepo.Update(r.Context(), payment); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payment)
}

// DELETE /api/v1/payments/{paymentID}
func (c *PaymentController) DeletePaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "paymentID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	payment, err := c.paymentRepo.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if payment == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found", nil, nil)
		return
	}
	if err := c.paymentRepo.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
