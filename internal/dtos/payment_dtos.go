package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	LeaseID uuid.UUID       `json:"lease_id" validate:"required"`
	Amount  decimal.Decimal `json:"amount"`
	PaidOn  string          `json:"paid_on" validate:"required,datetime=2006-01-02"`
	Method  string          `json:"method,omitempty" validate:"omitempty,max=40"`
	Notes   string          `json:"notes,omitempty"`
}

type UpdatePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	PaidOn string          `json:"paid_on" validate:"required,datetime=2006-01-02"`
	Method string          `json:"method,omitempty" validate:"omitempty,max=40"`
	Notes  string          `json:"notes,omitempty"`
}
