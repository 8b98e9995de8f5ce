package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iNiketan/Tenent-Management-App/internal/constants"
	"github.com/iNiketan/Tenent-Management-App/internal/models"
	"github.com/iNiketan/Tenent-Management-App/internal/repositories"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

// OccupancyService owns the room↔lease state machine. Room status is
// never written anywhere else once a lease exists.
type OccupancyService struct {
	leaseRepo  repositories.LeaseRepository
	roomRepo   repositories.RoomRepository
	tenantRepo repositories.TenantRepository
	invoiceSvc *InvoiceService
}

func NewOccupancyService(
	leaseRepo repositories.LeaseRepository,
	roomRepo repositories.RoomRepository,
	tenantRepo repositories.TenantRepository,
	invoiceSvc *InvoiceService,
) *OccupancyService {
	return &OccupancyService{
		leaseRepo:  leaseRepo,
		roomRepo:   roomRepo,
		tenantRepo: tenantRepo,
		invoiceSvc: invoiceSvc,
	}
}

type CreateLeaseParams struct {
	TenantID    uuid.UUID
	RoomID      uuid.UUID
	StartDate   time.Time
	MonthlyRent decimal.Decimal
	Deposit     decimal.Decimal
	BillingDay  int16
}

// CreateLease validates, inserts the lease, and flips the room to
// occupied; the write happens in one transaction inside the lease
// repository. The first month's rent invoice is created afterwards;
// it is idempotent, so a failure there is logged, not fatal to the
// lease.
func (s *OccupancyService) CreateLease(ctx context.Context, p CreateLeaseParams) (*models.Lease, error) {
	if !p.MonthlyRent.IsPositive() {
		return nil, utils.NewValidationError("Monthly rent must be positive")
	}
	if p.Deposit.IsNegative() {
		return nil, utils.NewValidationError("Deposit must not be negative")
	}
	if p.BillingDay < constants.MinBillingDay || p.BillingDay > constants.MaxBillingDay {
		return nil, utils.NewValidationError(
			"Billing day must be between %d and %d", constants.MinBillingDay, constants.MaxBillingDay)
	}

	tenant, err := s.tenantRepo.GetByID(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, utils.NewNotFoundError("tenant with id %s does not exist", p.TenantID)
	}

	room, err := s.roomRepo.GetByID(ctx, p.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, utils.NewNotFoundError("room with id %s does not exist", p.RoomID)
	}

	// Fast-path conflict check; the repository re-checks inside the
	// transaction and the store's partial unique index backstops both.
	if conflictErr := s.checkNoActiveLease(ctx, room, uuid.Nil); conflictErr != nil {
		return nil, conflictErr
	}

	now := time.Now()
	lease := &models.Lease{
		ID:          uuid.New(),
		TenantID:    p.TenantID,
		RoomID:      p.RoomID,
		StartDate:   p.StartDate,
		MonthlyRent: p.MonthlyRent,
		Deposit:     p.Deposit,
		BillingDay:  p.BillingDay,
		Status:      models.LeaseStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.leaseRepo.CreateActiveAtomic(ctx, lease); err != nil {
		if repositories.IsUniqueViolation(err) {
			// Lost the race; resolve to the same error the pre-check
			// would have produced.
			if conflictErr := s.checkNoActiveLease(ctx, room, uuid.Nil); conflictErr != nil {
				return nil, conflictErr
			}
			return nil, utils.NewConflictError("Room %s already has an active lease", room.RoomNumber)
		}
		return nil, err
	}

	if _, _, invErr := s.invoiceSvc.CreateRentInvoice(ctx, lease.ID, p.StartDate.Year(), int(p.StartDate.Month())); invErr != nil {
		utils.Logger.WithError(invErr).Warnf("First rent invoice for lease %s not created", lease.ID)
	}

	return lease, nil
}

// EndLease transitions active→ended and frees the room. Ended is
// terminal; a returning tenant gets a fresh lease.
func (s *OccupancyService) EndLease(ctx context.Context, leaseID uuid.UUID, endDate time.Time, reason string) (*models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.NewNotFoundError("lease with id %s does not exist", leaseID)
	}
	if lease.Status != models.LeaseStatusActive {
		return nil, utils.NewInvalidStateError("Lease is not active")
	}
	if endDate.Before(lease.StartDate) {
		return nil, utils.NewValidationError("End date cannot be before start date")
	}

	ended, err := s.leaseRepo.EndAtomic(ctx, leaseID, endDate)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		utils.Logger.Infof("Lease %s ended: %s", leaseID, reason)
	}
	return ended, nil
}

// ValidateLease re-checks the invariants before any persist of a
// lease row: end date strictly after start date, and no other active
// lease on the same room (the lease's own row is excluded so saving
// an unchanged active lease does not self-conflict).
func (s *OccupancyService) ValidateLease(ctx context.Context, lease *models.Lease) error {
	if lease.EndDate != nil && !lease.EndDate.After(lease.StartDate) {
		return utils.NewValidationError("End date must be after start date")
	}
	if lease.Status != models.LeaseStatusActive {
		return nil
	}
	room, err := s.roomRepo.GetByID(ctx, lease.RoomID)
	if err != nil {
		return err
	}
	if room == nil {
		return utils.NewNotFoundError("room with id %s does not exist", lease.RoomID)
	}
	return s.checkNoActiveLease(ctx, room, lease.ID)
}

// UpdateLease applies data-entry corrections (tenant, rent, billing
// day) to a lease after re-validating it.
func (s *OccupancyService) UpdateLease(ctx context.Context, lease *models.Lease) (*models.Lease, error) {
	if !lease.MonthlyRent.IsPositive() {
		return nil, utils.NewValidationError("Monthly rent must be positive")
	}
	if lease.BillingDay < constants.MinBillingDay || lease.BillingDay > constants.MaxBillingDay {
		return nil, utils.NewValidationError(
			"Billing day must be between %d and %d", constants.MinBillingDay, constants.MaxBillingDay)
	}
	if err := s.ValidateLease(ctx, lease); err != nil {
		return nil, err
	}
	if err := s.leaseRepo.Update(ctx, lease); err != nil {
		return nil, err
	}
	return s.leaseRepo.GetByID(ctx, lease.ID)
}

func (s *OccupancyService) GetLease(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.NewNotFoundError("lease with id %s does not exist", id)
	}
	return lease, nil
}

type LeaseFilter struct {
	RoomID     *uuid.UUID
	TenantID   *uuid.UUID
	ActiveOnly bool
}

func (s *OccupancyService) ListLeases(ctx context.Context, filter LeaseFilter) ([]*models.Lease, error) {
	switch {
	case filter.RoomID != nil:
		leases, err := s.leaseRepo.ListByRoomID(ctx, *filter.RoomID)
		if err != nil {
			return nil, err
		}
		return filterActive(leases, filter.ActiveOnly), nil
	case filter.TenantID != nil:
		leases, err := s.leaseRepo.ListByTenantID(ctx, *filter.TenantID)
		if err != nil {
			return nil, err
		}
		return filterActive(leases, filter.ActiveOnly), nil
	case filter.ActiveOnly:
		return s.leaseRepo.ListActive(ctx)
	default:
		return s.leaseRepo.List(ctx)
	}
}

func filterActive(leases []*models.Lease, activeOnly bool) []*models.Lease {
	if !activeOnly {
		return leases
	}
	out := leases[:0]
	for _, l := range leases {
		if l.Status == models.LeaseStatusActive {
			out = append(out, l)
		}
	}
	return out
}

// DeleteLease is a hard data-entry correction. Active leases must be
// ended first so the room state stays consistent.
func (s *OccupancyService) DeleteLease(ctx context.Context, id uuid.UUID) error {
	lease, err := s.GetLease(ctx, id)
	if err != nil {
		return err
	}
	if lease.Status == models.LeaseStatusActive {
		return utils.NewInvalidStateError("Lease is active; end it before deleting")
	}
	return s.leaseRepo.Delete(ctx, id)
}

func (s *OccupancyService) checkNoActiveLease(ctx context.Context, room *models.Room, excludeLeaseID uuid.UUID) error {
	existing, err := s.leaseRepo.GetActiveByRoomID(ctx, room.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.ID == excludeLeaseID {
		return nil
	}
	sitting, err := s.tenantRepo.GetByID(ctx, existing.TenantID)
	if err != nil {
		return err
	}
	if sitting != nil {
		return utils.NewConflictError(
			"Room %s already has an active lease with %s", room.RoomNumber, sitting.FullName)
	}
	return utils.NewConflictError("Room %s already has an active lease", room.RoomNumber)
}
