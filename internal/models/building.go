package models

import (
	"time"

	"github.com/google/uuid"
)

// Building is the top of the location hierarchy. Names are unique.
type Building struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
