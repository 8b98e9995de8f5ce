package models

import "time"

// Setting is a flat key→string pair (electricity rate, currency
// symbol, org display fields).
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
