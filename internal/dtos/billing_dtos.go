package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iNiketan/Tenent-Management-App/internal/models"
)

// BillBreakdown is the pure arithmetic result of pricing one pair of
// readings at a rate.
type BillBreakdown struct {
	Units decimal.Decimal `json:"units"`
	Rate  decimal.Decimal `json:"rate"`
	Total decimal.Decimal `json:"total"`
}

// BillResult is the month bill for a room. When the meter ran
// backwards the result carries zero units/total and a non-empty Error
// instead of failing hard; callers must check Error before using
// Total (invoice creation branches on it).
type BillResult struct {
	RoomID          uuid.UUID        `json:"room_id"`
	Room            string           `json:"room"`
	Month           string           `json:"month"` // YYYY-MM
	PreviousReading *decimal.Decimal `json:"previous_reading"`
	CurrentReading  *decimal.Decimal `json:"current_reading"`
	Units           decimal.Decimal  `json:"units"`
	Rate            decimal.Decimal  `json:"rate"`
	Total           decimal.Decimal  `json:"total"`
	Error           string           `json:"error,omitempty"`
}

// RoomBillingSummary combines rent due and the electricity bill for a
// room and month.
type RoomBillingSummary struct {
	RoomID      uuid.UUID       `json:"room_id"`
	Room        string          `json:"room"`
	Month       string          `json:"month"` // YYYY-MM
	ActiveLease *models.Lease   `json:"active_lease,omitempty"`
	RentDue     decimal.Decimal `json:"rent_due"`
	Electricity *BillResult     `json:"electricity"`
	TotalDue    decimal.Decimal `json:"total_due"`
}

type CalcBillRequest struct {
	RoomID uuid.UUID `json:"room_id" validate:"required"`
	Month  string    `json:"month" validate:"required,datetime=2006-01"`
}

type CreateElectricityInvoiceRequest struct {
	RoomID uuid.UUID `json:"room_id" validate:"required"`
	Month  string    `json:"month" validate:"required,datetime=2006-01"`
}

type CreateRentInvoiceRequest struct {
	LeaseID uuid.UUID `json:"lease_id" validate:"required"`
	Month   string    `json:"month" validate:"required,datetime=2006-01"`
}

type CreateCombinedInvoiceRequest struct {
	LeaseID          uuid.UUID        `json:"lease_id" validate:"required"`
	Month            string           `json:"month" validate:"required,datetime=2006-01"`
	Rent             decimal.Decimal  `json:"rent"`
	ElectricityUnits *decimal.Decimal `json:"electricity_units,omitempty"`
	ElectricityRate  *decimal.Decimal `json:"electricity_rate,omitempty"`
}

type InvoiceResponse struct {
	Invoice *models.Invoice       `json:"invoice"`
	Items   []*models.InvoiceItem `json:"items,omitempty"`
	Message string                `json:"message,omitempty"`
}
