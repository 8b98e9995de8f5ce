package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iNiketan/Tenent-Management-App/internal/dtos"
	"github.com/iNiketan/Tenent-Management-App/internal/models"
	"github.com/iNiketan/Tenent-Management-App/internal/repositories"
	"github.com/iNiketan/Tenent-Management-App/internal/services"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

type InvoiceController struct {
	invoiceService *services.InvoiceService
	invoiceRepo    repositories.InvoiceRepository
	validate       *validator.Validate
}

func NewInvoiceController(invoiceSvc *services.InvoiceService, invoiceRepo repositories.InvoiceRepository) *InvoiceController {
	return &InvoiceController{
		invoiceService: invoiceSvc,
		invoiceRepo:    invoiceRepo,
		validate:       validator.New(),
	}
}

func (c *InvoiceController) respondInvoice(w http.ResponseWriter, r *http.Request, inv *models.Invoice, created bool) {
	items, err := c.invoiceRepo.ListItems(r.Context(), inv.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := dtos.InvoiceResponse{Invoice: inv, Items: items}
	status := http.StatusCreated
	if !created {
		resp.Message = "Invoice already exists for this room, month and type"
		status = http.StatusOK
	}
	utils.RespondWithJSON(w, status, resp)
}

// POST /api/v1/invoices/electricity
func (c *InvoiceController) CreateElectricityInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateElectricityInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}
	year, month, err := parseMonth(req.Month)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}

	inv, created, err := c.invoiceService.CreateElectricityInvoice(r.Context(), req.RoomID, year, month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	c.respondInvoice(w, r, inv, created)
}

// POST /api/v1/invoices/rent
func (c *InvoiceController) CreateRentInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateRentInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}
	year, month, err := parseMonth(req.Month)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}

	inv, created, err := c.invoiceService.CreateRentInvoice(r.Context(), req.LeaseID, year, month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	c.respondInvoice(w, r, inv, created)
}

// POST /api/v1/invoices/combined
func (c *InvoiceController) CreateCombinedInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateCombinedInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}
	year, month, err := parseMonth(req.Month)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}

	inv, created, err := c.invoiceService.CreateCombinedInvoice(r.Context(), req, year, month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	c.respondInvoice(w, r, inv, created)
}

// GET /api/v1/invoices?room_id=&month=YYYY-MM&type=
func (c *InvoiceController) ListInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	var filter repositories.InvoiceFilter

	if raw := r.URL.Query().Get("room_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid room_id", nil, err)
			return
		}
		filter.RoomID = &id
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		t, err := time.Parse("2006-01", raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid month, expected YYYY-MM", nil, err)
			return
		}
		filter.Month = &t
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		typ := models.InvoiceType(raw)
		filter.Type = &typ
	}

	invoices, err := c.invoiceRepo.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, invoices)
}

// GET /api/v1/invoices/{invoiceID}
func (c *InvoiceController) GetInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "invoiceID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	inv, err := c.invoiceRepo.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if inv == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Invoice not found", nil, nil)
		return
	}
	items, err := c.invoiceRepo.ListItems(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.InvoiceResponse{Invoice: inv, Items: items})
}

// POST /api/v1/invoices/{invoiceID}/status
func (c *InvoiceController) SetInvoiceStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "invoiceID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=paid partial unpaid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	inv, err := c.invoiceService.SetInvoiceStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, inv)
}

// PUT /api/v1/invoices/{invoiceID}/pdf
// The PDF itself is rendered outside this service; we only persist the
// resulting URL on the invoice.
func (c *InvoiceController) SetInvoicePDFHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "invoiceID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}

	var req struct {
		PDFUrl string `json:"pdf_url" validate:"required,url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	inv, err := c.invoiceRepo.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if inv == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Invoice not found", nil, nil)
		return
	}
	if err := c.invoiceRepo.SetPDFUrl(r.Context(), id, req.PDFUrl); err != nil {
		respondServiceError(w, err)
		return
	}
	inv.PDFUrl = req.PDFUrl
	utils.RespondWithJSON(w, http.StatusOK, inv)
}
