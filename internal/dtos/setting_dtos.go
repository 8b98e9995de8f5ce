package dtos

type UpsertSettingRequest struct {
	Key   string `json:"key" validate:"required,min=1,max=50"`
	Value string `json:"value" validate:"required"`
}
