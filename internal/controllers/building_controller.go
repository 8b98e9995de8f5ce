package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/iNiketan/Tenent-Management-App/internal/dtos"
	"github.com/iNiketan/Tenent-Management-App/internal/services"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

type BuildingController struct {
	propertyService *services.PropertyService
	validate        *validator.Validate
}

func NewBuildingController(s *services.PropertyService) *BuildingController {
	return &BuildingController{
		propertyService: s,
		validate:        validator.New(),
	}
}

// POST /api/v1/buildings
func (c *BuildingController) CreateBuildingHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateBuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	building, err := c.propertyService.CreateBuilding(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, building)
}

// GET /api/v1/buildings
func (c *BuildingController) ListBuildingsHandler(w http.ResponseWriter, r *http.Request) {
	buildings, err := c.propertyService.ListBuildings(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, buildings)
}

// GET /api/v1/buildings/{buildingID}
func (c *BuildingController) GetBuildingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "buildingID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	building, err := c.propertyService.GetBuilding(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, building)
}

// PUT /api/v1/buildings/{buildingID}
func (c *BuildingController) UpdateBuildingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "buildingID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	var req dtos.UpdateBuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	building, err := c.propertyService.UpdateBuilding(r.Context(), id, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, building)
}

// DELETE /api/v1/buildings/{buildingID}
func (c *BuildingController) DeleteBuildingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "buildingID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	if err := c.propertyService.DeleteBuilding(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/floors
func (c *BuildingController) CreateFloorHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateFloorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	floor, err := c.propertyService.CreateFloor(r.Context(), req.BuildingID, req.FloorNumber)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, floor)
}

// GET /api/v1/buildings/{buildingID}/floors
func (c *BuildingController) ListFloorsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "buildingID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	floors, err := c.propertyService.ListFloors(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, floors)
}
