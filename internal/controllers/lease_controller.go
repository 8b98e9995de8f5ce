package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iNiketan/Tenent-Management-App/internal/dtos"
	"github.com/iNiketan/Tenent-Management-App/internal/services"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

type LeaseController struct {
	occupancyService *services.OccupancyService
	invoiceService   *services.InvoiceService
	validate         *validator.Validate
}

func NewLeaseController(occupancySvc *services.OccupancyService, invoiceSvc *services.InvoiceService) *LeaseController {
	return &LeaseController{
		occupancyService: occupancySvc,
		invoiceService:   invoiceSvc,
		validate:         validator.New(),
	}
}

// POST /api/v1/leases
func (c *LeaseController) CreateLeaseHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "CreateLeaseHandler")

	var req dtos.CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid start_date", nil, err)
		return
	}

	billingDay := req.BillingDay
	if billingDay == 0 {
		billingDay = int16(startDate.Day())
		if billingDay > 28 {
			billingDay = 28
		}
	}

	lease, err := c.occupancyService.CreateLease(r.Context(), services.CreateLeaseParams{
		TenantID:    req.TenantID,
		RoomID:      req.RoomID,
		StartDate:   startDate,
		MonthlyRent: req.MonthlyRent,
		Deposit:     req.Deposit,
		BillingDay:  billingDay,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	logger.WithField("leaseID", lease.ID).Info("Lease created")
	utils.RespondWithJSON(w, http.StatusCreated, lease)
}

// GET /api/v1/leases
func (c *LeaseController) ListLeasesHandler(w http.ResponseWriter, r *http.Request) {
	var filter services.LeaseFilter

	if raw := r.URL.Query().Get("room_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid room_id", nil, err)
			return
		}
		filter.RoomID = &id
	}
	if raw := r.URL.Query().Get("tenant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid tenant_id", nil, err)
			return
		}
		filter.TenantID = &id
	}
	filter.ActiveOnly = r.URL.Query().Get("active") == "true"

	leases, err := c.occupancyService.ListLeases(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, leases)
}

// GET /api/v1/leases/{leaseID}
func (c *LeaseController) GetLeaseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "leaseID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	lease, err := c.occupancyService.GetLease(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// POST /api/v1/leases/{leaseID}/end
func (c *LeaseController) EndLeaseHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "EndLeaseHandler")

	id, err := pathUUID(r, "leaseID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	var req dtos.EndLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid end_date", nil, err)
		return
	}

	lease, err := c.occupancyService.EndLease(r.Context(), id, endDate, req.Reason)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	logger.WithField("leaseID", lease.ID).Info("Lease ended")
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// PATCH /api/v1/leases/{leaseID}
func (c *LeaseController) UpdateLeaseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "leaseID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	var req dtos.UpdateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	lease, err := c.occupancyService.GetLease(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if req.TenantID != nil {
		lease.TenantID = *req.TenantID
	}
	if req.MonthlyRent != nil {
		lease.MonthlyRent = *req.MonthlyRent
	}
	if req.BillingDay != nil {
		lease.BillingDay = *req.BillingDay
	}

	updated, err := c.occupancyService.UpdateLease(r.Context(), lease)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/v1/leases/{leaseID}
func (c *LeaseController) DeleteLeaseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "leaseID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	if err := c.occupancyService.DeleteLease(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/leases/{leaseID}/balance?as_of=YYYY-MM-DD
func (c *LeaseController) GetLeaseBalanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "leaseID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}

	asOf := time.Now()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		asOf, err = time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid as_of date, expected YYYY-MM-DD", nil, err)
			return
		}
	}

	balance, err := c.invoiceService.GetLeaseBalance(r.Context(), id, asOf)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"lease_id": id,
		"as_of":    asOf.Format("2006-01-02"),
		"balance":  balance,
	})
}
