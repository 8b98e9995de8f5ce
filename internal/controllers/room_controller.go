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

type RoomController struct {
	propertyService *services.PropertyService
	invoiceService  *services.InvoiceService
	validate        *validator.Validate
}

func NewRoomController(propertySvc *services.PropertyService, invoiceSvc *services.InvoiceService) *RoomController {
	return &RoomController{
		propertyService: propertySvc,
		invoiceService:  invoiceSvc,
		validate:        validator.New(),
	}
}

// roomFilterFromQuery reads optional ?building_id= and ?status=.
func roomFilterFromQuery(r *http.Request) (repositories.RoomFilter, error) {
	var filter repositories.RoomFilter
	if raw := r.URL.Query().Get("building_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.BuildingID = &id
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.RoomStatus(raw)
		filter.Status = &status
	}
	return filter, nil
}

// POST /api/v1/rooms
func (c *RoomController) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	room, err := c.propertyService.CreateRoom(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, room)
}

// GET /api/v1/rooms
func (c *RoomController) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := roomFilterFromQuery(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid building_id", nil, err)
		return
	}
	rooms, err := c.propertyService.ListRooms(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rooms)
}

// GET /api/v1/rooms/{roomID}
func (c *RoomController) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "roomID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	room, err := c.propertyService.GetRoom(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, room)
}

// PUT /api/v1/rooms/{roomID}
func (c *RoomController) UpdateRoomHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "roomID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	var req dtos.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	room, err := c.propertyService.UpdateRoom(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, room)
}

// DELETE /api/v1/rooms/{roomID}
func (c *RoomController) DeleteRoomHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "roomID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	if err := c.propertyService.DeleteRoom(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/rooms/snapshots
// The dashboard grid: every room with its lease and payment badge.
// Optional ?as_of=YYYY-MM-DD pins the badge to a date.
func (c *RoomController) ListRoomSnapshotsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := roomFilterFromQuery(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid building_id", nil, err)
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

	snapshots, err := c.invoiceService.ListRoomSnapshots(r.Context(), filter, asOf)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, snapshots)
}

// GET /api/v1/rooms/{roomID}/snapshot
func (c *RoomController) GetRoomSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "roomID")
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

	snapshot, err := c.invoiceService.ComputeRoomBadge(r.Context(), id, asOf)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, snapshot)
}
