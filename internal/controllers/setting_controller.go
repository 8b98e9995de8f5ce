package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/iNiketan/Tenent-Management-App/internal/dtos"
	"github.com/iNiketan/Tenent-Management-App/internal/repositories"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

type SettingController struct {
	settingRepo repositories.SettingRepository
	validate    *validator.Validate
}

func NewSettingController(settingRepo repositories.SettingRepository) *SettingController {
	return &SettingController{
		settingRepo: settingRepo,
		validate:    validator.New(),
	}
}

// GET /api/v1/settings
func (c *SettingController) ListSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := c.settingRepo.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, settings)
}

// PUT /api/v1/settings
func (c *SettingController) UpsertSettingHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpsertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := c.settingRepo.Upsert(r.Context(), req.Key, req.Value); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"key": req.Key, "value": req.Value})
}
