package controllers

import (
	"net/http"

	"github.com/iNiketan/Tenent-Management-App/internal/services"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

type BillingController struct {
	billingService *services.BillingService
}

func NewBillingController(s *services.BillingService) *BillingController {
	return &BillingController{billingService: s}
}

// GET /api/v1/billing/rooms/{roomID}/bill?month=YYYY-MM
// Read-only pricing preview; nothing is persisted.
func (c *BillingController) CalcMonthBillHandler(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathUUID(r, "roomID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	year, month, err := parseMonth(r.URL.Query().Get("month"))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}

	bill, err := c.billingService.CalcMonthBill(r.Context(), roomID, year, month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bill)
}

// GET /api/v1/billing/rooms/{roomID}/summary?month=YYYY-MM
func (c *BillingController) GetRoomBillingSummaryHandler(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathUUID(r, "roomID")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	year, month, err := parseMonth(r.URL.Query().Get("month"))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}

	summary, err := c.billingService.GetRoomBillingSummary(r.Context(), roomID, year, month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary)
}
