package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iNiketan/Tenent-Management-App/internal/constants"
	"github.com/iNiketan/Tenent-Management-App/internal/dtos"
	"github.com/iNiketan/Tenent-Management-App/internal/models"
	"github.com/iNiketan/Tenent-Management-App/internal/repositories"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

func TestComputeUnits(t *testing.T) {
	prev := dec("100")
	curr := dec("150")

	units, err := ComputeUnits(&prev, &curr)
	require.NoError(t, err)
	assert.True(t, units.Equal(dec("50")))

	units, err = ComputeUnits(nil, &curr)
	require.NoError(t, err)
	assert.True(t, units.IsZero())

	units, err = ComputeUnits(&prev, nil)
	require.NoError(t, err)
	assert.True(t, units.IsZero())

	units, err = ComputeUnits(nil, nil)
	require.NoError(t, err)
	assert.True(t, units.IsZero())
}

func TestComputeUnitsNegativeDelta(t *testing.T) {
	prev := dec("150")
	curr := dec("100")

	_, err := ComputeUnits(&prev, &curr)
	require.Error(t, err)

	var negErr *utils.NegativeDeltaError
	require.ErrorAs(t, err, &negErr)
	assert.True(t, negErr.Previous.Equal(prev))
	assert.True(t, negErr.Current.Equal(curr))
}

func TestComputeBillRoundsHalfUp(t *testing.T) {
	prev := dec("0")

	curr := dec("2.675")
	bill, err := ComputeBill(&prev, &curr, dec("1"))
	require.NoError(t, err)
	assert.Equal(t, "2.68", bill.Total.StringFixed(2))

	curr = dec("1.005")
	bill, err = ComputeBill(&prev, &curr, dec("1"))
	require.NoError(t, err)
	assert.Equal(t, "1.01", bill.Total.StringFixed(2))
}

func TestGetRate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	rate, err := env.billing.GetRate(ctx)
	require.NoError(t, err)
	assert.True(t, rate.IsZero(), "missing setting prices to zero")

	require.NoError(t, env.settings.Upsert(ctx, constants.SettingElectricityRatePerUnit, "not-a-number"))
	rate, err = env.billing.GetRate(ctx)
	require.NoError(t, err)
	assert.True(t, rate.IsZero(), "unparsable setting prices to zero")

	require.NoError(t, env.settings.Upsert(ctx, constants.SettingElectricityRatePerUnit, "10.50"))
	rate, err = env.billing.GetRate(ctx)
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("10.50")))
}

func TestCalcMonthBill(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room := env.rooms.add("Sunrise", 1, "101", models.RoomStatusOccupied)
	require.NoError(t, env.settings.Upsert(ctx, constants.SettingElectricityRatePerUnit, "10.50"))

	_, err := env.billing.RecordReading(ctx, room.ID, date(2024, 1, 15), dec("100"))
	require.NoError(t, err)
	_, err = env.billing.RecordReading(ctx, room.ID, date(2024, 2, 15), dec("150"))
	require.NoError(t, err)

	bill, err := env.billing.CalcMonthBill(ctx, room.ID, 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, "2024-02", bill.Month)
	assert.Equal(t, "Sunrise - Floor 1 - Room 101", bill.Room)
	require.NotNil(t, bill.PreviousReading)
	require.NotNil(t, bill.CurrentReading)
	assert.True(t, bill.PreviousReading.Equal(dec("100")))
	assert.True(t, bill.CurrentReading.Equal(dec("150")))
	assert.True(t, bill.Units.Equal(dec("50")))
	assert.Equal(t, "525.00", bill.Total.StringFixed(2))
	assert.Empty(t, bill.Error)
}

func TestCalcMonthBillNoPriorReading(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room := env.rooms.add("Sunrise", 1, "101", models.RoomStatusOccupied)
	require.NoError(t, env.settings.Upsert(ctx, constants.SettingElectricityRatePerUnit, "10.50"))

	_, err := env.billing.RecordReading(ctx, room.ID, date(2024, 2, 15), dec("150"))
	require.NoError(t, err)

	bill, err := env.billing.CalcMonthBill(ctx, room.ID, 2024, 2)
	require.NoError(t, err)
	assert.Nil(t, bill.PreviousReading)
	require.NotNil(t, bill.CurrentReading)
	assert.True(t, bill.Units.IsZero())
	assert.True(t, bill.Total.IsZero())
	assert.Empty(t, bill.Error, "first period is not an error")
}

func TestCalcMonthBillNegativeDeltaIsSoft(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room := env.rooms.add("Sunrise", 1, "101", models.RoomStatusOccupied)
	require.NoError(t, env.settings.Upsert(ctx, constants.SettingElectricityRatePerUnit, "10.50"))

	// Bypass RecordReading so a backwards meter can exist in the store.
	require.NoError(t, env.readings.Create(ctx, &models.MeterReading{
		RoomID: room.ID, ReadingDate: date(2024, 1, 15), ReadingValue: dec("150"),
	}))
	require.NoError(t, env.readings.Create(ctx, &models.MeterReading{
		RoomID: room.ID, ReadingDate: date(2024, 2, 15), ReadingValue: dec("100"),
	}))

	bill, err := env.billing.CalcMonthBill(ctx, room.ID, 2024, 2)
	require.NoError(t, err, "a broken meter must not fail the whole calculation")
	assert.NotEmpty(t, bill.Error)
	assert.True(t, bill.Units.IsZero())
	assert.True(t, bill.Total.IsZero())
	require.NotNil(t, bill.PreviousReading)
	require.NotNil(t, bill.CurrentReading)
}

func TestCalcMonthBillUnknownRoom(t *testing.T) {
	env := newTestEnv()

	_, err := env.billing.CalcMonthBill(context.Background(), uuid.New(), 2024, 2)
	var notFound *utils.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCalcMonthBillUsesLatestReadingInMonth(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room := env.rooms.add("Sunrise", 1, "101", models.RoomStatusOccupied)
	require.NoError(t, env.settings.Upsert(ctx, constants.SettingElectricityRatePerUnit, "2"))

	_, err := env.billing.RecordReading(ctx, room.ID, date(2023, 11, 20), dec("80"))
	require.NoError(t, err)
	_, err = env.billing.RecordReading(ctx, room.ID, date(2024, 2, 5), dec("110"))
	require.NoError(t, err)
	_, err = env.billing.RecordReading(ctx, room.ID, date(2024, 2, 25), dec("130"))
	require.NoError(t, err)

	// Previous may be months old; current is the latest inside the month.
	bill, err := env.billing.CalcMonthBill(ctx, room.ID, 2024, 2)
	require.NoError(t, err)
	assert.True(t, bill.PreviousReading.Equal(dec("80")))
	assert.True(t, bill.CurrentReading.Equal(dec("130")))
	assert.True(t, bill.Units.Equal(dec("50")))
	assert.Equal(t, "100.00", bill.Total.StringFixed(2))
}

func TestRecordReadingValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room := env.rooms.add("Sunrise", 1, "101", models.RoomStatusOccupied)

	var valErr *utils.ValidationError
	_, err := env.billing.RecordReading(ctx, room.ID, date(2024, 1, 15), dec("-5"))
	require.ErrorAs(t, err, &valErr)

	var notFound *utils.NotFoundError
	_, err = env.billing.RecordReading(ctx, uuid.New(), date(2024, 1, 15), dec("100"))
	require.ErrorAs(t, err, &notFound)

	_, err = env.billing.RecordReading(ctx, room.ID, date(2024, 1, 15), dec("100"))
	require.NoError(t, err)

	// Lower than an earlier reading.
	_, err = env.billing.RecordReading(ctx, room.ID, date(2024, 2, 15), dec("90"))
	require.ErrorAs(t, err, &valErr)

	// Same date twice.
	var conflict *utils.ConflictError
	_, err = env.billing.RecordReading(ctx, room.ID, date(2024, 1, 15), dec("120"))
	require.ErrorAs(t, err, &conflict)

	// Equal value on a later date is fine, the meter just did not move.
	_, err = env.billing.RecordReading(ctx, room.ID, date(2024, 2, 15), dec("100"))
	require.NoError(t, err)
}

func TestRecordReadingsBulkPartialSuccess(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room := env.rooms.add("Sunrise", 1, "101", models.RoomStatusOccupied)

	resp, err := env.billing.RecordReadingsBulk(ctx, []dtos.CreateMeterReadingRequest{
		{RoomID: room.ID, ReadingDate: "2024-01-15", ReadingValue: dec("100")},
		{RoomID: room.ID, ReadingDate: "not-a-date", ReadingValue: dec("110")},
		{RoomID: room.ID, ReadingDate: "2024-02-15", ReadingValue: dec("90")},
		{RoomID: room.ID, ReadingDate: "2024-02-20", ReadingValue: dec("120")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Created)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, 1, resp.Errors[0].Index)
	assert.Equal(t, 2, resp.Errors[1].Index)

	// The successful rows are persisted despite the failures.
	readings, err := env.readings.List(ctx, repositories.ReadingFilter{RoomID: &room.ID})
	require.NoError(t, err)
	assert.Len(t, readings, 2)
}

func TestRecordReadingsBulkInsertFailureKeepsNothing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room := env.rooms.add("Sunrise", 1, "101", models.RoomStatusOccupied)
	env.readings.batchErr = errors.New("connection reset")

	_, err := env.billing.RecordReadingsBulk(ctx, []dtos.CreateMeterReadingRequest{
		{RoomID: room.ID, ReadingDate: "2024-01-15", ReadingValue: dec("100")},
		{RoomID: room.ID, ReadingDate: "2024-02-15", ReadingValue: dec("150")},
	})
	require.Error(t, err)

	readings, err := env.readings.List(ctx, repositories.ReadingFilter{RoomID: &room.ID})
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestRecordReadingsBulkValidatesWithinBatch(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room := env.rooms.add("Sunrise", 1, "101", models.RoomStatusOccupied)

	// Duplicate date inside the batch is a conflict; the later row
	// still validates against the first accepted one.
	resp, err := env.billing.RecordReadingsBulk(ctx, []dtos.CreateMeterReadingRequest{
		{RoomID: room.ID, ReadingDate: "2024-01-15", ReadingValue: dec("100")},
		{RoomID: room.ID, ReadingDate: "2024-01-15", ReadingValue: dec("105")},
		{RoomID: room.ID, ReadingDate: "2024-01-20", ReadingValue: dec("110")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Created)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 1, resp.Errors[0].Index)
	assert.Contains(t, resp.Errors[0].Error, "already exists")

	readings, err := env.readings.List(ctx, repositories.ReadingFilter{RoomID: &room.ID})
	require.NoError(t, err)
	assert.Len(t, readings, 2)
}

func TestRecordReadingsBulkRejectsStoredDuplicate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room := env.rooms.add("Sunrise", 1, "101", models.RoomStatusOccupied)

	_, err := env.billing.RecordReading(ctx, room.ID, date(2024, 1, 15), dec("100"))
	require.NoError(t, err)

	resp, err := env.billing.RecordReadingsBulk(ctx, []dtos.CreateMeterReadingRequest{
		{RoomID: room.ID, ReadingDate: "2024-01-15", ReadingValue: dec("100")},
		{RoomID: room.ID, ReadingDate: "2024-02-15", ReadingValue: dec("150")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 0, resp.Errors[0].Index)

	readings, err := env.readings.List(ctx, repositories.ReadingFilter{RoomID: &room.ID})
	require.NoError(t, err)
	assert.Len(t, readings, 2)
}

func TestGetRoomBillingSummary(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room := env.rooms.add("Sunrise", 1, "101", models.RoomStatusVacant)
	tenant := env.tenants.add("Asha Verma")
	require.NoError(t, env.settings.Upsert(ctx, constants.SettingElectricityRatePerUnit, "10"))

	_, err := env.occupancy.CreateLease(ctx, CreateLeaseParams{
		TenantID:    tenant.ID,
		RoomID:      room.ID,
		StartDate:   date(2024, 1, 1),
		MonthlyRent: dec("5000"),
		Deposit:     dec("10000"),
		BillingDay:  1,
	})
	require.NoError(t, err)

	_, err = env.billing.RecordReading(ctx, room.ID, date(2024, 1, 15), dec("100"))
	require.NoError(t, err)
	_, err = env.billing.RecordReading(ctx, room.ID, date(2024, 2, 15), dec("130"))
	require.NoError(t, err)

	summary, err := env.billing.GetRoomBillingSummary(ctx, room.ID, 2024, 2)
	require.NoError(t, err)
	require.NotNil(t, summary.ActiveLease)
	assert.Equal(t, "5000.00", summary.RentDue.StringFixed(2))
	assert.Equal(t, "300.00", summary.Electricity.Total.StringFixed(2))
	assert.Equal(t, "5300.00", summary.TotalDue.StringFixed(2))
}

func TestGetRoomBillingSummaryVacantRoom(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	room := env.rooms.add("Sunrise", 1, "101", models.RoomStatusVacant)

	summary, err := env.billing.GetRoomBillingSummary(ctx, room.ID, 2024, 2)
	require.NoError(t, err)
	assert.Nil(t, summary.ActiveLease)
	assert.True(t, summary.RentDue.IsZero())
	assert.True(t, summary.TotalDue.IsZero())
}
