package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iNiketan/Tenent-Management-App/internal/dtos"
	"github.com/iNiketan/Tenent-Management-App/internal/repositories"
	"github.com/iNiketan/Tenent-Management-App/internal/services"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

type ReadingController struct {
	billingService *services.BillingService
	readingRepo    repositories.MeterReadingRepository
	validate       *validator.Validate
}

func NewReadingController(billingSvc *services.BillingService, readingRepo repositories.MeterReadingRepository) *ReadingController {
	return &ReadingController{
		billingService: billingSvc,
		readingRepo:    readingRepo,
		validate:       validator.New(),
	}
}

// POST /api/v1/readings
func (c *ReadingController) CreateReadingHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateMeterReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	readingDate, err := time.Parse("2006-01-02", req.ReadingDate)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid reading_date", nil, err)
		return
	}

	reading, err := c.billingService.RecordReading(r.Context(), req.RoomID, readingDate, req.ReadingValue)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, reading)
}

// POST /api/v1/readings/bulk
func (c *ReadingController) CreateReadingsBulkHandler(w http.ResponseWriter, r *http.Request) {
	var reqs []dtos.CreateMeterReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if len(reqs) == 0 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Empty readings batch", nil, nil)
		return
	}

	resp, err := c.billingService.RecordReadingsBulk(r.Context(), reqs)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if len(resp.Errors) > 0 {
		// Partial success still persists the good rows.
		status = http.StatusMultiStatus
	}
	utils.RespondWithJSON(w, status, resp)
}

// GET /api/v1/readings?room_id=&from=&to=
func (c *ReadingController) ListReadingsHandler(w http.ResponseWriter, r *http.Request) {
	var filter repositories.ReadingFilter

	if raw := r.URL.Query().Get("room_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid room_id", nil, err)
			return
		}
		filter.RoomID = &id
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid from date", nil, err)
			return
		}
		filter.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid to date", nil, err)
			return
		}
		filter.To = &to
	}

	readings, err := c.readingRepo.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, readings)
}

// DELETE /api/v1/readings/{readingID}
func (c *ReadingController) DeleteReadingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "readingID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	reading, err := c.readingRepo.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if reading == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Reading not found", nil, nil)
		return
	}
	if err := c.readingRepo.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
