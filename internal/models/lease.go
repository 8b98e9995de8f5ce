package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LeaseStatus string

const (
	LeaseStatusActive LeaseStatus = "active"
	LeaseStatusEnded  LeaseStatus = "ended"
)

// Lease ties a tenant to a room. At most one active lease may exist
// per room; active→ended is the only legal transition and ended is
// terminal (a returning tenant gets a new lease row).
type Lease struct {
	ID          uuid.UUID       `json:"id"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	RoomID      uuid.UUID       `json:"room_id"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Deposit     decimal.Decimal `json:"deposit"`
	BillingDay  int16           `json:"billing_day"`
	Status      LeaseStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
