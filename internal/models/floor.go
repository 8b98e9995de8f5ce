package models

import (
	"time"

	"github.com/google/uuid"
)

// Floor represents a level within a specific building.
// (building_id, floor_number) is unique.
type Floor struct {
	ID          uuid.UUID `json:"id"`
	BuildingID  uuid.UUID `json:"building_id"`
	FloorNumber int16     `json:"floor_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
