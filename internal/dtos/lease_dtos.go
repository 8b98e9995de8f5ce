package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateLeaseRequest struct {
	TenantID    uuid.UUID       `json:"tenant_id" validate:"required"`
	RoomID      uuid.UUID       `json:"room_id" validate:"required"`
	StartDate   string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Deposit     decimal.Decimal `json:"deposit"`
	BillingDay  int16           `json:"billing_day,omitempty" validate:"omitempty,gte=1,lte=28"`
}

type UpdateLeaseRequest struct {
	TenantID    *uuid.UUID       `json:"tenant_id,omitempty"`
	MonthlyRent *decimal.Decimal `json:"monthly_rent,omitempty"`
	BillingDay  *int16           `json:"billing_day,omitempty" validate:"omitempty,gte=1,lte=28"`
}

type EndLeaseRequest struct {
	EndDate string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason  string `json:"reason,omitempty"`
}
