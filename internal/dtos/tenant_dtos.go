package dtos

type CreateTenantRequest struct {
	FullName   string  `json:"full_name" validate:"required,min=1,max=100"`
	Phone      string  `json:"phone" validate:"required,max=15"`
	Email      string  `json:"email,omitempty" validate:"omitempty,email"`
	IDProofURL *string `json:"id_proof_url,omitempty" validate:"omitempty,url"`
}

type UpdateTenantRequest struct {
	FullName   string  `json:"full_name" validate:"required,min=1,max=100"`
	Phone      string  `json:"phone" validate:"required,max=15"`
	Email      string  `json:"email,omitempty" validate:"omitempty,email"`
	IDProofURL *string `json:"id_proof_url,omitempty" validate:"omitempty,url"`
}
