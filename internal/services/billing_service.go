package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iNiketan/Tenent-Management-App/internal/constants"
	"github.com/iNiketan/Tenent-Management-App/internal/dtos"
	"github.com/iNiketan/Tenent-Management-App/internal/models"
	"github.com/iNiketan/Tenent-Management-App/internal/repositories"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

/* ------------------------------------------------------------------
   Pure calculation
------------------------------------------------------------------ */

// ComputeUnits returns the consumption between two cumulative
// readings. A missing previous reading means there is no baseline yet
// (first billing period), and a missing current reading means no
// reading was taken this period; both price to zero rather than
// failing. A meter must never run backwards.
func ComputeUnits(previous, current *decimal.Decimal) (decimal.Decimal, error) {
	if previous == nil {
		return decimal.Zero, nil
	}
	if current == nil {
		return decimal.Zero, nil
	}

	delta := current.Sub(*previous)
	if delta.IsNegative() {
		return decimal.Zero, &utils.NegativeDeltaError{Previous: *previous, Current: *current}
	}
	return delta, nil
}

// ComputeBill prices a pair of readings at a rate. Totals round
// half-up to 2 decimals.
func ComputeBill(previous, current *decimal.Decimal, rate decimal.Decimal) (*dtos.BillBreakdown, error) {
	units, err := ComputeUnits(previous, current)
	if err != nil {
		return nil, err
	}
	return &dtos.BillBreakdown{
		Units: units,
		Rate:  rate,
		Total: units.Mul(rate).Round(2),
	}, nil
}

/* ------------------------------------------------------------------
   Store-backed calculator
------------------------------------------------------------------ */

type BillingService struct {
	roomRepo    repositories.RoomRepository
	readingRepo repositories.MeterReadingRepository
	leaseRepo   repositories.LeaseRepository
	settingRepo repositories.SettingRepository
}

func NewBillingService(
	roomRepo repositories.RoomRepository,
	readingRepo repositories.MeterReadingRepository,
	leaseRepo repositories.LeaseRepository,
	settingRepo repositories.SettingRepository,
) *BillingService {
	return &BillingService{
		roomRepo:    roomRepo,
		readingRepo: readingRepo,
		leaseRepo:   leaseRepo,
		settingRepo: settingRepo,
	}
}

// GetRate reads the electricity rate per unit from settings. A
// missing or unparsable value prices to zero, matching the behavior
// of a freshly provisioned install.
func (s *BillingService) GetRate(ctx context.Context) (decimal.Decimal, error) {
	raw, found, err := s.settingRepo.GetValue(ctx, constants.SettingElectricityRatePerUnit)
	if err != nil {
		return decimal.Zero, err
	}
	if !found {
		return decimal.Zero, nil
	}
	rate, parseErr := decimal.NewFromString(raw)
	if parseErr != nil {
		utils.Logger.Warnf("Unparsable %s setting %q; defaulting to 0", constants.SettingElectricityRatePerUnit, raw)
		return decimal.Zero, nil
	}
	return rate, nil
}

// GetMonthReadings finds the billing pair for a month: the latest
// reading strictly before the first of the month (any age), and the
// latest reading inside the month itself. Either may be absent.
func (s *BillingService) GetMonthReadings(ctx context.Context, roomID uuid.UUID, year, month int) (previous, current *decimal.Decimal, err error) {
	firstOfMonth, firstOfNext := monthBounds(year, month)

	prev, err := s.readingRepo.GetLatestBefore(ctx, roomID, firstOfMonth)
	if err != nil {
		return nil, nil, err
	}
	curr, err := s.readingRepo.GetLatestInRange(ctx, roomID, firstOfMonth, firstOfNext)
	if err != nil {
		return nil, nil, err
	}

	if prev != nil {
		previous = &prev.ReadingValue
	}
	if curr != nil {
		current = &curr.ReadingValue
	}
	return previous, current, nil
}

// CalcMonthBill prices a room's consumption for a month. A negative
// meter delta does not fail hard: the result carries the readings,
// zero units/total and the error description, so invoice creation can
// refuse to commit while display flows still render the readings.
func (s *BillingService) CalcMonthBill(ctx context.Context, roomID uuid.UUID, year, month int) (*dtos.BillResult, error) {
	room, err := s.roomRepo.GetWithLocation(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, utils.NewNotFoundError("room with id %s does not exist", roomID)
	}

	previous, current, err := s.GetMonthReadings(ctx, roomID, year, month)
	if err != nil {
		return nil, err
	}
	rate, err := s.GetRate(ctx)
	if err != nil {
		return nil, err
	}

	firstOfMonth, _ := monthBounds(year, month)
	result := &dtos.BillResult{
		RoomID:          roomID,
		Room:            room.Label(),
		Month:           monthKey(firstOfMonth),
		PreviousReading: previous,
		CurrentReading:  current,
		Rate:            rate,
	}

	breakdown, billErr := ComputeBill(previous, current, rate)
	if billErr != nil {
		result.Units = decimal.Zero
		result.Total = decimal.Zero
		result.Error = billErr.Error()
		return result, nil
	}

	result.Units = breakdown.Units
	result.Total = breakdown.Total
	return result, nil
}

// ValidateMonotonicReading reports whether a new reading keeps the
// room's meter non-decreasing relative to the latest earlier reading.
func (s *BillingService) ValidateMonotonicReading(ctx context.Context, roomID uuid.UUID, readingDate time.Time, readingValue decimal.Decimal) (bool, error) {
	prev, err := s.readingRepo.GetLatestBefore(ctx, roomID, readingDate)
	if err != nil {
		return false, err
	}
	if prev != nil && readingValue.LessThan(prev.ReadingValue) {
		return false, nil
	}
	return true, nil
}

// RecordReading validates and stores one meter reading.
func (s *BillingService) RecordReading(ctx context.Context, roomID uuid.UUID, readingDate time.Time, readingValue decimal.Decimal) (*models.MeterReading, error) {
	if readingValue.IsNegative() {
		return nil, utils.NewValidationError("Reading value must be non-negative")
	}
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, utils.NewNotFoundError("room with id %s does not exist", roomID)
	}

	ok, err := s.ValidateMonotonicReading(ctx, roomID, readingDate, readingValue)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.NewValidationError(
			"Reading %s on %s is lower than an earlier reading for this room",
			readingValue.String(), readingDate.Format("2006-01-02"))
	}

	now := time.Now()
	reading := &models.MeterReading{
		ID:           uuid.New(),
		RoomID:       roomID,
		ReadingDate:  readingDate,
		ReadingValue: readingValue,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.readingRepo.Create(ctx, reading); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.NewConflictError(
				"A reading for this room on %s already exists", readingDate.Format("2006-01-02"))
		}
		return nil, err
	}
	return reading, nil
}

// RecordReadingsBulk validates a batch of readings, reporting failures
// by index, and stores the accepted rows in a single transaction. Each
// row validates against stored state plus the earlier accepted rows of
// its batch, so a failed insert persists nothing.
func (s *BillingService) RecordReadingsBulk(ctx context.Context, reqs []dtos.CreateMeterReadingRequest) (*dtos.BulkReadingsResponse, error) {
	resp := &dtos.BulkReadingsResponse{}
	var accepted []*models.MeterReading

	now := time.Now()
	for i, req := range reqs {
		reading, err := s.validateBulkRow(ctx, req, accepted)
		if err != nil {
			resp.Errors = append(resp.Errors, dtos.BulkReadingError{Index: i, Error: err.Error()})
			continue
		}
		reading.CreatedAt = now
		reading.UpdatedAt = now
		accepted = append(accepted, reading)
	}

	if len(accepted) > 0 {
		if err := s.readingRepo.CreateBatchAtomic(ctx, accepted); err != nil {
			if repositories.IsUniqueViolation(err) {
				return nil, utils.NewConflictError("A reading in the batch duplicates an existing room and date")
			}
			return nil, err
		}
	}
	resp.Created = len(accepted)
	return resp, nil
}

// validateBulkRow runs the single-reading checks for one batch row,
// treating earlier accepted rows as if they were already stored.
func (s *BillingService) validateBulkRow(ctx context.Context, req dtos.CreateMeterReadingRequest, accepted []*models.MeterReading) (*models.MeterReading, error) {
	readingDate, err := time.Parse("2006-01-02", req.ReadingDate)
	if err != nil {
		return nil, utils.NewValidationError("invalid reading_date")
	}
	if req.ReadingValue.IsNegative() {
		return nil, utils.NewValidationError("Reading value must be non-negative")
	}
	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, utils.NewNotFoundError("room with id %s does not exist", req.RoomID)
	}

	existing, err := s.readingRepo.GetLatestInRange(ctx, req.RoomID, readingDate, readingDate.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewConflictError("A reading for this room on %s already exists", req.ReadingDate)
	}

	// Latest earlier reading across stored rows and the batch so far.
	prev, err := s.readingRepo.GetLatestBefore(ctx, req.RoomID, readingDate)
	if err != nil {
		return nil, err
	}
	for _, a := range accepted {
		if a.RoomID != req.RoomID {
			continue
		}
		if a.ReadingDate.Equal(readingDate) {
			return nil, utils.NewConflictError("A reading for this room on %s already exists", req.ReadingDate)
		}
		if a.ReadingDate.Before(readingDate) && (prev == nil || a.ReadingDate.After(prev.ReadingDate)) {
			prev = a
		}
	}
	if prev != nil && req.ReadingValue.LessThan(prev.ReadingValue) {
		return nil, utils.NewValidationError(
			"Reading %s on %s is lower than an earlier reading for this room",
			req.ReadingValue.String(), req.ReadingDate)
	}

	return &models.MeterReading{
		ID:           uuid.New(),
		RoomID:       req.RoomID,
		ReadingDate:  readingDate,
		ReadingValue: req.ReadingValue,
	}, nil
}

// GetRoomBillingSummary combines rent due (from the active lease, if
// any) with the month's electricity bill.
func (s *BillingService) GetRoomBillingSummary(ctx context.Context, roomID uuid.UUID, year, month int) (*dtos.RoomBillingSummary, error) {
	room, err := s.roomRepo.GetWithLocation(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, utils.NewNotFoundError("room with id %s does not exist", roomID)
	}

	activeLease, err := s.leaseRepo.GetActiveByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	electricity, err := s.CalcMonthBill(ctx, roomID, year, month)
	if err != nil {
		return nil, err
	}

	rentDue := decimal.Zero
	if activeLease != nil {
		rentDue = activeLease.MonthlyRent
	}

	firstOfMonth, _ := monthBounds(year, month)
	return &dtos.RoomBillingSummary{
		RoomID:      roomID,
		Room:        room.Label(),
		Month:       monthKey(firstOfMonth),
		ActiveLease: activeLease,
		RentDue:     rentDue,
		Electricity: electricity,
		TotalDue:    rentDue.Add(electricity.Total),
	}, nil
}
