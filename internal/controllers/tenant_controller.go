package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/iNiketan/Tenent-Management-App/internal/dtos"
	"github.com/iNiketan/Tenent-Management-App/internal/services"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

type TenantController struct {
	propertyService *services.PropertyService
	validate        *validator.Validate
}

func NewTenantController(s *services.PropertyService) *TenantController {
	return &TenantController{
		propertyService: s,
		validate:        validator.New(),
	}
}

// POST /api/v1/tenants
func (c *TenantController) CreateTenantHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	tenant, err := c.propertyService.CreateTenant(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, tenant)
}

// GET /api/v1/tenants
func (c *TenantController) ListTenantsHandler(w http.ResponseWriter, r *http.Request) {
	tenants, err := c.propertyService.ListTenants(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenants)
}

// GET /api/v1/tenants/{tenantID}
func (c *TenantController) GetTenantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tenantID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	tenant, err := c.propertyService.GetTenant(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// PUT /api/v1/tenants/{tenantID}
func (c *TenantController) UpdateTenantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tenantID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	var req dtos.UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.StructCtx(r.Context(), req); err != nil {
		respondValidationError(w, err)
		return
	}

	tenant, err := c.propertyService.UpdateTenant(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// DELETE /api/v1/tenants/{tenantID}
func (c *TenantController) DeleteTenantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tenantID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	if err := c.propertyService.DeleteTenant(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
