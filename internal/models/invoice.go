package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceType string

const (
	InvoiceTypeRent        InvoiceType = "rent"
	InvoiceTypeElectricity InvoiceType = "electricity"
	InvoiceTypeCombined    InvoiceType = "combined"
)

// Invoice is priced once per (room, month, type) and never re-priced
// afterwards, even if the underlying rate setting changes. Meta keeps
// the billing inputs (readings, units, rate) for audit.
type Invoice struct {
	ID        uuid.UUID       `json:"id"`
	RoomID    uuid.UUID       `json:"room_id"`
	Month     time.Time       `json:"month"` // truncated to the first day
	Type      InvoiceType     `json:"type"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	PDFUrl    string          `json:"pdf_url,omitempty"`
	Meta      map[string]any  `json:"meta,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InvoiceItem quantity carries 3 decimal places; amount is
// round(qty × rate, 2, half-up).
type InvoiceItem struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Label     string          `json:"label"`
	Qty       decimal.Decimal `json:"qty"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
	Meta      map[string]any  `json:"meta,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
