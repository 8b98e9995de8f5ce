package dtos

import "github.com/google/uuid"

type CreateBuildingRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateBuildingRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateFloorRequest struct {
	BuildingID  uuid.UUID `json:"building_id" validate:"required"`
	FloorNumber int16     `json:"floor_number" validate:"gte=0"`
}
