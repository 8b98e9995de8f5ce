package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RoomStatus string

const (
	RoomStatusVacant      RoomStatus = "vacant"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// Room is a rentable space. Status is owned by the occupancy engine:
// once a lease exists it is only ever flipped by lease transitions.
type Room struct {
	ID         uuid.UUID  `json:"id"`
	BuildingID uuid.UUID  `json:"building_id"`
	FloorID    uuid.UUID  `json:"floor_id"`
	RoomNumber string     `json:"room_number"`
	Status     RoomStatus `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// RoomWithLocation joins the building name and floor number onto a
// room for display labels.
type RoomWithLocation struct {
	Room
	BuildingName string `json:"building_name"`
	FloorNumber  int16  `json:"floor_number"`
}

func (r *RoomWithLocation) Label() string {
	return fmt.Sprintf("%s - Floor %d - Room %s", r.BuildingName, r.FloorNumber, r.RoomNumber)
}
