package dtos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateMeterReadingRequest struct {
	RoomID       uuid.UUID       `json:"room_id" validate:"required"`
	ReadingDate  string          `json:"reading_date" validate:"required,datetime=2006-01-02"`
	ReadingValue decimal.Decimal `json:"reading_value"`
}

type BulkReadingError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type BulkReadingsResponse struct {
	Created int                `json:"created"`
	Errors  []BulkReadingError `json:"errors,omitempty"`
}
