package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iNiketan/Tenent-Management-App/internal/constants"
	"github.com/iNiketan/Tenent-Management-App/internal/dtos"
	"github.com/iNiketan/Tenent-Management-App/internal/models"
	"github.com/iNiketan/Tenent-Management-App/internal/repositories"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

// InvoiceService prices invoices, reconciles payments against them,
// and derives the per-room payment badge. Invoices are immutable once
// created: the (room, month, type) key makes every create idempotent.
type InvoiceService struct {
	invoiceRepo repositories.InvoiceRepository
	paymentRepo repositories.RentPaymentRepository
	leaseRepo   repositories.LeaseRepository
	roomRepo    repositories.RoomRepository
	tenantRepo  repositories.TenantRepository
	settingRepo repositories.SettingRepository
	billingSvc  *BillingService
}

func NewInvoiceService(
	invoiceRepo repositories.InvoiceRepository,
	paymentRepo repositories.RentPaymentRepository,
	leaseRepo repositories.LeaseRepository,
	roomRepo repositories.RoomRepository,
	tenantRepo repositories.TenantRepository,
	settingRepo repositories.SettingRepository,
	billingSvc *BillingService,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		leaseRepo:   leaseRepo,
		roomRepo:    roomRepo,
		tenantRepo:  tenantRepo,
		settingRepo: settingRepo,
		billingSvc:  billingSvc,
	}
}

/* ------------------------------------------------------------------
   Invoice creation
------------------------------------------------------------------ */

// CreateElectricityInvoice prices the room's consumption for the month
// and persists it. A second call for the same (room, month) returns
// the existing invoice unchanged with created=false, even if the rate
// setting moved in between.
func (s *InvoiceService) CreateElectricityInvoice(ctx context.Context, roomID uuid.UUID, year, month int) (*models.Invoice, bool, error) {
	monthStart, _ := monthBounds(year, month)

	existing, err := s.invoiceRepo.GetByRoomMonthType(ctx, roomID, monthStart, models.InvoiceTypeElectricity)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	bill, err := s.billingSvc.CalcMonthBill(ctx, roomID, year, month)
	if err != nil {
		return nil, false, err
	}
	if bill.Error != "" {
		return nil, false, utils.NewValidationError("Cannot invoice %s for %s: %s", bill.Room, bill.Month, bill.Error)
	}

	currency, err := s.currencySymbol(ctx)
	if err != nil {
		return nil, false, err
	}

	meta := map[string]any{
		"units": bill.Units.InexactFloat64(),
		"rate":  bill.Rate.InexactFloat64(),
	}
	if bill.PreviousReading != nil {
		meta["previous_reading"] = bill.PreviousReading.InexactFloat64()
	} else {
		meta["previous_reading"] = nil
	}
	if bill.CurrentReading != nil {
		meta["current_reading"] = bill.CurrentReading.InexactFloat64()
	} else {
		meta["current_reading"] = nil
	}

	label := fmt.Sprintf("Electricity (%s): prev %s, curr %s, units %s @ %s%s",
		bill.Month, decimalOrDash(bill.PreviousReading), decimalOrDash(bill.CurrentReading),
		bill.Units.StringFixed(3), currency, bill.Rate.StringFixed(2))

	now := time.Now()
	inv := &models.Invoice{
		ID:        uuid.New(),
		RoomID:    roomID,
		Month:     monthStart,
		Type:      models.InvoiceTypeElectricity,
		Subtotal:  bill.Total,
		Tax:       decimal.Zero,
		Total:     bill.Total,
		Meta:      meta,
		CreatedAt: now,
		UpdatedAt: now,
	}
	items := []models.InvoiceItem{{
		ID:        uuid.New(),
		InvoiceID: inv.ID,
		Label:     label,
		Qty:       bill.Units.Round(3),
		Rate:      bill.Rate,
		Amount:    bill.Total,
		CreatedAt: now,
	}}

	return s.persistIdempotent(ctx, inv, items)
}

// CreateRentInvoice bills one month of rent at the lease's current
// MonthlyRent. Idempotent per (room, month, rent).
func (s *InvoiceService) CreateRentInvoice(ctx context.Context, leaseID uuid.UUID, year, month int) (*models.Invoice, bool, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, false, err
	}
	if lease == nil {
		return nil, false, utils.NewNotFoundError("lease with id %s does not exist", leaseID)
	}

	monthStart, _ := monthBounds(year, month)

	existing, err := s.invoiceRepo.GetByRoomMonthType(ctx, lease.RoomID, monthStart, models.InvoiceTypeRent)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	rent := lease.MonthlyRent.Round(2)
	now := time.Now()
	inv := &models.Invoice{
		ID:       uuid.New(),
		RoomID:   lease.RoomID,
		Month:    monthStart,
		Type:     models.InvoiceTypeRent,
		Subtotal: rent,
		Tax:      decimal.Zero,
		Total:    rent,
		Meta: map[string]any{
			"lease_id":  lease.ID.String(),
			"tenant_id": lease.TenantID.String(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	items := []models.InvoiceItem{{
		ID:        uuid.New(),
		InvoiceID: inv.ID,
		Label:     fmt.Sprintf("Rent for %s", monthKey(monthStart)),
		Qty:       decimal.NewFromInt(1),
		Rate:      rent,
		Amount:    rent,
		CreatedAt: now,
	}}

	return s.persistIdempotent(ctx, inv, items)
}

// CreateCombinedInvoice puts rent and electricity on one document. The
// caller supplies the amounts; type stays rent when the electricity
// charge works out to zero.
func (s *InvoiceService) CreateCombinedInvoice(ctx context.Context, req dtos.CreateCombinedInvoiceRequest, year, month int) (*models.Invoice, bool, error) {
	lease, err := s.leaseRepo.GetByID(ctx, req.LeaseID)
	if err != nil {
		return nil, false, err
	}
	if lease == nil {
		return nil, false, utils.NewNotFoundError("lease with id %s does not exist", req.LeaseID)
	}

	rent := req.Rent
	if rent.IsZero() {
		rent = lease.MonthlyRent
	}
	if rent.IsNegative() {
		return nil, false, utils.NewValidationError("Rent must not be negative")
	}
	rent = rent.Round(2)

	elec := decimal.Zero
	if req.ElectricityUnits != nil && req.ElectricityRate != nil {
		if req.ElectricityUnits.IsNegative() || req.ElectricityRate.IsNegative() {
			return nil, false, utils.NewValidationError("Electricity units and rate must not be negative")
		}
		elec = req.ElectricityUnits.Mul(*req.ElectricityRate).Round(2)
	}

	typ := models.InvoiceTypeRent
	if elec.IsPositive() {
		typ = models.InvoiceTypeCombined
	}

	monthStart, _ := monthBounds(year, month)

	existing, err := s.invoiceRepo.GetByRoomMonthType(ctx, lease.RoomID, monthStart, typ)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	total := rent.Add(elec)
	now := time.Now()
	inv := &models.Invoice{
		ID:       uuid.New(),
		RoomID:   lease.RoomID,
		Month:    monthStart,
		Type:     typ,
		Subtotal: total,
		Tax:      decimal.Zero,
		Total:    total,
		Meta: map[string]any{
			"lease_id":  lease.ID.String(),
			"tenant_id": lease.TenantID.String(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	items := []models.InvoiceItem{{
		ID:        uuid.New(),
		InvoiceID: inv.ID,
		Label:     fmt.Sprintf("Rent for %s", monthKey(monthStart)),
		Qty:       decimal.NewFromInt(1),
		Rate:      rent,
		Amount:    rent,
		CreatedAt: now,
	}}
	if elec.IsPositive() {
		items = append(items, models.InvoiceItem{
			ID:        uuid.New(),
			InvoiceID: inv.ID,
			Label:     fmt.Sprintf("Electricity for %s", monthKey(monthStart)),
			Qty:       req.ElectricityUnits.Round(3),
			Rate:      *req.ElectricityRate,
			Amount:    elec,
			CreatedAt: now,
		})
	}

	return s.persistIdempotent(ctx, inv, items)
}

// persistIdempotent writes the invoice and, on a (room, month, type)
// race, yields to whoever won.
func (s *InvoiceService) persistIdempotent(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) (*models.Invoice, bool, error) {
	err := s.invoiceRepo.CreateWithItemsAtomic(ctx, inv, items)
	if err == nil {
		return inv, true, nil
	}
	if repositories.IsUniqueViolation(err) {
		existing, getErr := s.invoiceRepo.GetByRoomMonthType(ctx, inv.RoomID, inv.Month, inv.Type)
		if getErr != nil {
			return nil, false, getErr
		}
		if existing != nil {
			return existing, false, nil
		}
	}
	return nil, false, err
}

/* ------------------------------------------------------------------
   Payments and balances
------------------------------------------------------------------ */

// RecordPayment logs money received against a lease. Ended leases are
// closed books.
func (s *InvoiceService) RecordPayment(ctx context.Context, leaseID uuid.UUID, paidOn time.Time, amount decimal.Decimal, method, notes string) (*models.RentPayment, error) {
	if !amount.IsPositive() {
		return nil, utils.NewValidationError("Payment amount must be positive")
	}
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.NewNotFoundError("lease with id %s does not exist", leaseID)
	}
	if lease.Status != models.LeaseStatusActive {
		return nil, utils.NewInvalidStateError("Cannot record a payment against an ended lease")
	}

	now := time.Now()
	payment := &models.RentPayment{
		ID:        uuid.New(),
		LeaseID:   leaseID,
		PaidOn:    paidOn,
		Amount:    amount,
		Method:    method,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetLeaseBalance is invoiced-minus-paid for the lease's room as of a
// date: invoices for months up to asOf's month, payments dated on or
// before asOf. Positive means the tenant owes.
func (s *InvoiceService) GetLeaseBalance(ctx context.Context, leaseID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return decimal.Zero, err
	}
	if lease == nil {
		return decimal.Zero, utils.NewNotFoundError("lease with id %s does not exist", leaseID)
	}

	invoices, err := s.invoiceRepo.ListByRoomUpToMonth(ctx, lease.RoomID, truncateToMonth(asOf))
	if err != nil {
		return decimal.Zero, err
	}
	invoiced := decimal.Zero
	for _, inv := range invoices {
		invoiced = invoiced.Add(inv.Total)
	}

	payments, err := s.paymentRepo.ListByLeaseIDPaidOnOrBefore(ctx, leaseID, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	return invoiced.Sub(paid), nil
}

// SetInvoiceStatus reconciles an invoice by writing the matching
// payment record for its month instead of flagging the invoice row:
// "paid" records the full total, "partial" records half, "unpaid"
// deletes the month's payments. Paid and partial writes are no-ops
// when the month already has a payment, so the operation is safe to
// repeat.
func (s *InvoiceService) SetInvoiceStatus(ctx context.Context, invoiceID uuid.UUID, status string) (*models.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, utils.NewNotFoundError("invoice with id %s does not exist", invoiceID)
	}

	lease, err := s.leaseRepo.GetActiveByRoomID(ctx, inv.RoomID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.NewValidationError("Room has no active lease to record the payment against")
	}

	monthStart, nextMonth := monthBounds(inv.Month.Year(), int(inv.Month.Month()))

	switch status {
	case "paid":
		_, _, err = s.paymentRepo.GetOrCreateForMonthAtomic(ctx, lease.ID, monthStart,
			inv.Total, "Cash", fmt.Sprintf("Payment for %s", monthKey(monthStart)))
	case "partial":
		half := inv.Total.Div(decimal.NewFromInt(constants.PartialPaymentDivisor)).Round(2)
		_, _, err = s.paymentRepo.GetOrCreateForMonthAtomic(ctx, lease.ID, monthStart,
			half, "Partial", fmt.Sprintf("Partial payment for %s", monthKey(monthStart)))
	case "unpaid":
		_, err = s.paymentRepo.DeleteInMonth(ctx, lease.ID, monthStart, nextMonth)
	default:
		return nil, utils.NewValidationError("Status must be one of paid, partial, unpaid")
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

/* ------------------------------------------------------------------
   Room badge
------------------------------------------------------------------ */

// ComputeRoomBadge builds the dashboard snapshot for one room at a
// reference date. Status wins over billing: maintenance and vacant
// rooms never show payment badges. For occupied rooms the badge keys
// off the latest invoice and whether any payment landed in its month.
func (s *InvoiceService) ComputeRoomBadge(ctx context.Context, roomID uuid.UUID, referenceDate time.Time) (*dtos.RoomSnapshot, error) {
	room, err := s.roomRepo.GetWithLocation(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, utils.NewNotFoundError("room with id %s does not exist", roomID)
	}

	snap := &dtos.RoomSnapshot{
		RoomID:     room.ID,
		RoomLabel:  room.Label(),
		RoomStatus: room.Status,
	}

	lease, err := s.leaseRepo.GetActiveByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		if room.Status == models.RoomStatusMaintenance {
			snap.Badge = constants.BadgeMaintenance
		} else {
			snap.Badge = constants.BadgeVacant
		}
		return snap, nil
	}

	tenant, err := s.tenantRepo.GetByID(ctx, lease.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant != nil {
		snap.TenantName = &tenant.FullName
	}
	rent := lease.MonthlyRent
	snap.Rent = &rent
	start := lease.StartDate
	snap.LeaseStart = &start
	snap.LeaseEnd = lease.EndDate

	inv, err := s.invoiceRepo.GetLatestByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		snap.Badge = constants.BadgeOK
		return snap, nil
	}

	period := monthKey(inv.Month)
	dueDate := inv.Month.AddDate(0, 0, constants.InvoiceDueDays)
	snap.LastInvoiceID = &inv.ID
	snap.LastInvoicePeriod = &period
	snap.LastInvoiceDueDate = &dueDate

	monthStart, nextMonth := monthBounds(inv.Month.Year(), int(inv.Month.Month()))
	payment, err := s.paymentRepo.GetFirstInMonth(ctx, lease.ID, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}

	invStatus := "unpaid"
	if payment != nil {
		invStatus = "paid"
	}
	snap.LastInvoiceStatus = &invStatus

	switch {
	case payment != nil:
		snap.Badge = constants.BadgeOK
	case referenceDate.After(dueDate):
		snap.Badge = constants.BadgeOverdue
	case referenceDate.After(dueDate.AddDate(0, 0, -constants.DueSoonWindowDays)):
		snap.Badge = constants.BadgeDueSoon
	default:
		snap.Badge = constants.BadgeOK
	}
	return snap, nil
}

// ListRoomSnapshots computes the badge for every room matching the
// filter. One slow room should not sink the dashboard, so per-room
// failures are logged and skipped.
func (s *InvoiceService) ListRoomSnapshots(ctx context.Context, filter repositories.RoomFilter, referenceDate time.Time) ([]*dtos.RoomSnapshot, error) {
	rooms, err := s.roomRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	snaps := make([]*dtos.RoomSnapshot, 0, len(rooms))
	for _, room := range rooms {
		snap, err := s.ComputeRoomBadge(ctx, room.ID, referenceDate)
		if err != nil {
			utils.Logger.WithError(err).Warnf("Snapshot for room %s skipped", room.ID)
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func (s *InvoiceService) currencySymbol(ctx context.Context) (string, error) {
	value, found, err := s.settingRepo.GetValue(ctx, constants.SettingCurrencySymbol)
	if err != nil {
		return "", err
	}
	if !found || value == "" {
		return constants.DefaultCurrencySymbol, nil
	}
	return value, nil
}

func decimalOrDash(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.StringFixed(3)
}
