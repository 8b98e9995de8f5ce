package dtos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iNiketan/Tenent-Management-App/internal/models"
)

type CreateRoomRequest struct {
	BuildingID uuid.UUID `json:"building_id" validate:"required"`
	FloorID    uuid.UUID `json:"floor_id" validate:"required"`
	RoomNumber string    `json:"room_number" validate:"required,min=1,max=20"`
	Status     string    `json:"status,omitempty" validate:"omitempty,oneof=vacant occupied maintenance"`
	Notes      string    `json:"notes,omitempty"`
}

type UpdateRoomRequest struct {
	RoomNumber string `json:"room_number" validate:"required,min=1,max=20"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=vacant occupied maintenance"`
	Notes      string `json:"notes,omitempty"`
}

// RoomSnapshot is the dashboard view of a room: active lease details
// plus the payment badge derived from the latest invoice.
type RoomSnapshot struct {
	RoomID     uuid.UUID         `json:"room_id"`
	RoomLabel  string            `json:"room_label"`
	RoomStatus models.RoomStatus `json:"room_status"`
	Badge      string            `json:"badge"`

	TenantName *string          `json:"tenant_name,omitempty"`
	Rent       *decimal.Decimal `json:"rent,omitempty"`
	LeaseStart *time.Time       `json:"lease_start,omitempty"`
	LeaseEnd   *time.Time       `json:"lease_end,omitempty"`

	LastInvoiceID      *uuid.UUID `json:"last_invoice_id,omitempty"`
	LastInvoicePeriod  *string    `json:"last_invoice_period,omitempty"` // YYYY-MM
	LastInvoiceStatus  *string    `json:"last_invoice_status,omitempty"` // paid | unpaid
	LastInvoiceDueDate *time.Time `json:"last_invoice_due_date,omitempty"`
}
