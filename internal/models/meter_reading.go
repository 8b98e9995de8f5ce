package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MeterReading is a cumulative electricity meter value for a room.
// Values are non-decreasing over time per room and (room, reading_date)
// is unique.
type MeterReading struct {
	ID           uuid.UUID       `json:"id"`
	RoomID       uuid.UUID       `json:"room_id"`
	ReadingDate  time.Time       `json:"reading_date"`
	ReadingValue decimal.Decimal `json:"reading_value"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
