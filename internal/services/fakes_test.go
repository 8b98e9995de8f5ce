package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/shopspring/decimal"

	"github.com/iNiketan/Tenent-Management-App/internal/models"
	"github.com/iNiketan/Tenent-Management-App/internal/repositories"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

// In-memory repositories for service tests. They mirror the Postgres
// behavior the services rely on: nil for missing rows, a 23505
// PgError for unique violations, and the lease/room status coupling.

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

/* ---------- buildings ---------- */

type fakeBuildingRepo struct {
	buildings map[uuid.UUID]*models.Building
}

func newFakeBuildingRepo() *fakeBuildingRepo {
	return &fakeBuildingRepo{buildings: make(map[uuid.UUID]*models.Building)}
}

func (f *fakeBuildingRepo) Create(_ context.Context, b *models.Building) error {
	for _, existing := range f.buildings {
		if existing.Name == b.Name {
			return uniqueViolation("uniq_building_name")
		}
	}
	building := *b
	f.buildings[b.ID] = &building
	return nil
}

func (f *fakeBuildingRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Building, error) {
	b, ok := f.buildings[id]
	if !ok {
		return nil, nil
	}
	out := *b
	return &out, nil
}

func (f *fakeBuildingRepo) GetByName(_ context.Context, name string) (*models.Building, error) {
	for _, b := range f.buildings {
		if b.Name == name {
			out := *b
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeBuildingRepo) List(_ context.Context) ([]*models.Building, error) {
	out := make([]*models.Building, 0, len(f.buildings))
	for _, b := range f.buildings {
		building := *b
		out = append(out, &building)
	}
	return out, nil
}

func (f *fakeBuildingRepo) Update(_ context.Context, b *models.Building) error {
	for id, existing := range f.buildings {
		if id != b.ID && existing.Name == b.Name {
			return uniqueViolation("uniq_building_name")
		}
	}
	if existing, ok := f.buildings[b.ID]; ok {
		*existing = *b
	}
	return nil
}

func (f *fakeBuildingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.buildings, id)
	return nil
}

/* ---------- floors ---------- */

type fakeFloorRepo struct {
	floors map[uuid.UUID]*models.Floor
}

func newFakeFloorRepo() *fakeFloorRepo {
	return &fakeFloorRepo{floors: make(map[uuid.UUID]*models.Floor)}
}

func (f *fakeFloorRepo) Create(_ context.Context, fl *models.Floor) error {
	for _, existing := range f.floors {
		if existing.BuildingID == fl.BuildingID && existing.FloorNumber == fl.FloorNumber {
			return uniqueViolation("uniq_floor_per_building")
		}
	}
	floor := *fl
	f.floors[fl.ID] = &floor
	return nil
}

func (f *fakeFloorRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Floor, error) {
	fl, ok := f.floors[id]
	if !ok {
		return nil, nil
	}
	out := *fl
	return &out, nil
}

func (f *fakeFloorRepo) ListByBuildingID(_ context.Context, buildingID uuid.UUID) ([]*models.Floor, error) {
	var out []*models.Floor
	for _, fl := range f.floors {
		if fl.BuildingID == buildingID {
			floor := *fl
			out = append(out, &floor)
		}
	}
	return out, nil
}

/* ---------- rooms ---------- */

type fakeRoomRepo struct {
	rooms map[uuid.UUID]*models.RoomWithLocation
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uuid.UUID]*models.RoomWithLocation)}
}

func (f *fakeRoomRepo) add(buildingName string, floorNumber int16, roomNumber string, status models.RoomStatus) *models.RoomWithLocation {
	r := &models.RoomWithLocation{
		Room: models.Room{
			ID:         uuid.New(),
			BuildingID: uuid.New(),
			FloorID:    uuid.New(),
			RoomNumber: roomNumber,
			Status:     status,
		},
		BuildingName: buildingName,
		FloorNumber:  floorNumber,
	}
	f.rooms[r.ID] = r
	return r
}

func (f *fakeRoomRepo) Create(_ context.Context, rm *models.Room) error {
	for _, existing := range f.rooms {
		if existing.BuildingID == rm.BuildingID && existing.RoomNumber == rm.RoomNumber {
			return uniqueViolation("uniq_room_per_building")
		}
	}
	f.rooms[rm.ID] = &models.RoomWithLocation{Room: *rm}
	return nil
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, nil
	}
	room := r.Room
	return &room, nil
}

func (f *fakeRoomRepo) GetWithLocation(_ context.Context, id uuid.UUID) (*models.RoomWithLocation, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, nil
	}
	out := *r
	return &out, nil
}

func (f *fakeRoomRepo) List(_ context.Context, filter repositories.RoomFilter) ([]*models.Room, error) {
	var out []*models.Room
	for _, r := range f.rooms {
		if filter.BuildingID != nil && r.BuildingID != *filter.BuildingID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		room := r.Room
		out = append(out, &room)
	}
	return out, nil
}

func (f *fakeRoomRepo) Update(_ context.Context, rm *models.Room) error {
	if r, ok := f.rooms[rm.ID]; ok {
		r.Room = *rm
	}
	return nil
}

func (f *fakeRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.rooms, id)
	return nil
}

/* ---------- meter readings ---------- */

type fakeReadingRepo struct {
	readings []*models.MeterReading

	// batchErr, when set, fails CreateBatchAtomic before anything is
	// stored, standing in for a transaction that rolls back.
	batchErr error
}

func newFakeReadingRepo() *fakeReadingRepo { return &fakeReadingRepo{} }

func (f *fakeReadingRepo) Create(_ context.Context, m *models.MeterReading) error {
	for _, r := range f.readings {
		if r.RoomID == m.RoomID && r.ReadingDate.Equal(m.ReadingDate) {
			return uniqueViolation("uniq_reading_per_room_date")
		}
	}
	reading := *m
	f.readings = append(f.readings, &reading)
	return nil
}

func (f *fakeReadingRepo) CreateBatchAtomic(_ context.Context, readings []*models.MeterReading) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	for _, m := range readings {
		for _, r := range f.readings {
			if r.RoomID == m.RoomID && r.ReadingDate.Equal(m.ReadingDate) {
				return uniqueViolation("uniq_reading_per_room_date")
			}
		}
	}
	for _, m := range readings {
		reading := *m
		f.readings = append(f.readings, &reading)
	}
	return nil
}

func (f *fakeReadingRepo) GetByID(_ context.Context, id uuid.UUID) (*models.MeterReading, error) {
	for _, r := range f.readings {
		if r.ID == id {
			out := *r
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeReadingRepo) GetLatestBefore(_ context.Context, roomID uuid.UUID, date time.Time) (*models.MeterReading, error) {
	var latest *models.MeterReading
	for _, r := range f.readings {
		if r.RoomID != roomID || !r.ReadingDate.Before(date) {
			continue
		}
		if latest == nil || r.ReadingDate.After(latest.ReadingDate) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	return &out, nil
}

func (f *fakeReadingRepo) GetLatestInRange(_ context.Context, roomID uuid.UUID, from, to time.Time) (*models.MeterReading, error) {
	var latest *models.MeterReading
	for _, r := range f.readings {
		if r.RoomID != roomID || r.ReadingDate.Before(from) || !r.ReadingDate.Before(to) {
			continue
		}
		if latest == nil || r.ReadingDate.After(latest.ReadingDate) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	return &out, nil
}

func (f *fakeReadingRepo) List(_ context.Context, filter repositories.ReadingFilter) ([]*models.MeterReading, error) {
	var out []*models.MeterReading
	for _, r := range f.readings {
		if filter.RoomID != nil && r.RoomID != *filter.RoomID {
			continue
		}
		if filter.From != nil && r.ReadingDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !r.ReadingDate.Before(*filter.To) {
			continue
		}
		reading := *r
		out = append(out, &reading)
	}
	return out, nil
}

func (f *fakeReadingRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, r := range f.readings {
		if r.ID == id {
			f.readings = append(f.readings[:i], f.readings[i+1:]...)
			return nil
		}
	}
	return nil
}

/* ---------- leases ---------- */

type fakeLeaseRepo struct {
	leases map[uuid.UUID]*models.Lease
	rooms  *fakeRoomRepo
}

func newFakeLeaseRepo(rooms *fakeRoomRepo) *fakeLeaseRepo {
	return &fakeLeaseRepo{leases: make(map[uuid.UUID]*models.Lease), rooms: rooms}
}

func (f *fakeLeaseRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Lease, error) {
	l, ok := f.leases[id]
	if !ok {
		return nil, nil
	}
	out := *l
	return &out, nil
}

func (f *fakeLeaseRepo) GetActiveByRoomID(_ context.Context, roomID uuid.UUID) (*models.Lease, error) {
	for _, l := range f.leases {
		if l.RoomID == roomID && l.Status == models.LeaseStatusActive {
			out := *l
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeLeaseRepo) ListByRoomID(_ context.Context, roomID uuid.UUID) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range f.leases {
		if l.RoomID == roomID {
			lease := *l
			out = append(out, &lease)
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) ListByTenantID(_ context.Context, tenantID uuid.UUID) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range f.leases {
		if l.TenantID == tenantID {
			lease := *l
			out = append(out, &lease)
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) ListActive(_ context.Context) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range f.leases {
		if l.Status == models.LeaseStatusActive {
			lease := *l
			out = append(out, &lease)
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) List(_ context.Context) ([]*models.Lease, error) {
	out := make([]*models.Lease, 0, len(f.leases))
	for _, l := range f.leases {
		lease := *l
		out = append(out, &lease)
	}
	return out, nil
}

func (f *fakeLeaseRepo) CreateActiveAtomic(_ context.Context, lease *models.Lease) error {
	for _, l := range f.leases {
		if l.RoomID == lease.RoomID && l.Status == models.LeaseStatusActive {
			return uniqueViolation("uniq_active_lease_per_room")
		}
	}
	stored := *lease
	f.leases[lease.ID] = &stored
	if r, ok := f.rooms.rooms[lease.RoomID]; ok {
		r.Status = models.RoomStatusOccupied
	}
	return nil
}

func (f *fakeLeaseRepo) EndAtomic(_ context.Context, leaseID uuid.UUID, endDate time.Time) (*models.Lease, error) {
	l, ok := f.leases[leaseID]
	if !ok {
		return nil, utils.NewNotFoundError("lease with id %s does not exist", leaseID)
	}
	if l.Status != models.LeaseStatusActive {
		return nil, utils.NewInvalidStateError("Lease is not active")
	}
	l.Status = models.LeaseStatusEnded
	end := endDate
	l.EndDate = &end
	if r, ok := f.rooms.rooms[l.RoomID]; ok {
		r.Status = models.RoomStatusVacant
	}
	out := *l
	return &out, nil
}

func (f *fakeLeaseRepo) Update(_ context.Context, lease *models.Lease) error {
	if l, ok := f.leases[lease.ID]; ok {
		*l = *lease
	}
	return nil
}

func (f *fakeLeaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.leases, id)
	return nil
}

/* ---------- tenants ---------- */

type fakeTenantRepo struct {
	tenants map[uuid.UUID]*models.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[uuid.UUID]*models.Tenant)}
}

func (f *fakeTenantRepo) add(fullName string) *models.Tenant {
	t := &models.Tenant{ID: uuid.New(), FullName: fullName}
	f.tenants[t.ID] = t
	return t
}

func (f *fakeTenantRepo) Create(_ context.Context, t *models.Tenant) error {
	tenant := *t
	f.tenants[t.ID] = &tenant
	return nil
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, nil
	}
	out := *t
	return &out, nil
}

func (f *fakeTenantRepo) List(_ context.Context) ([]*models.Tenant, error) {
	out := make([]*models.Tenant, 0, len(f.tenants))
	for _, t := range f.tenants {
		tenant := *t
		out = append(out, &tenant)
	}
	return out, nil
}

func (f *fakeTenantRepo) Update(_ context.Context, t *models.Tenant) error {
	if existing, ok := f.tenants[t.ID]; ok {
		*existing = *t
	}
	return nil
}

func (f *fakeTenantRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.tenants, id)
	return nil
}

/* ---------- settings ---------- */

type fakeSettingRepo struct {
	values map[string]string
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{values: make(map[string]string)}
}

func (f *fakeSettingRepo) GetValue(_ context.Context, key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeSettingRepo) Upsert(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeSettingRepo) List(_ context.Context) ([]*models.Setting, error) {
	out := make([]*models.Setting, 0, len(f.values))
	for k, v := range f.values {
		out = append(out, &models.Setting{Key: k, Value: v})
	}
	return out, nil
}

/* ---------- invoices ---------- */

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*models.Invoice
	items    map[uuid.UUID][]models.InvoiceItem
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[uuid.UUID]*models.Invoice),
		items:    make(map[uuid.UUID][]models.InvoiceItem),
	}
}

func (f *fakeInvoiceRepo) CreateWithItemsAtomic(_ context.Context, inv *models.Invoice, items []models.InvoiceItem) error {
	for _, existing := range f.invoices {
		if existing.RoomID == inv.RoomID && sameYearMonth(existing.Month, inv.Month) && existing.Type == inv.Type {
			return uniqueViolation("uniq_invoice_room_month_type")
		}
	}
	stored := *inv
	f.invoices[inv.ID] = &stored
	f.items[inv.ID] = append([]models.InvoiceItem(nil), items...)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, nil
	}
	out := *inv
	return &out, nil
}

func (f *fakeInvoiceRepo) GetByRoomMonthType(_ context.Context, roomID uuid.UUID, month time.Time, typ models.InvoiceType) (*models.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.RoomID == roomID && sameYearMonth(inv.Month, month) && inv.Type == typ {
			out := *inv
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) GetLatestByRoomID(_ context.Context, roomID uuid.UUID) (*models.Invoice, error) {
	var latest *models.Invoice
	for _, inv := range f.invoices {
		if inv.RoomID != roomID {
			continue
		}
		if latest == nil || inv.Month.After(latest.Month) {
			latest = inv
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	return &out, nil
}

func (f *fakeInvoiceRepo) ListByRoomUpToMonth(_ context.Context, roomID uuid.UUID, month time.Time) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range f.invoices {
		if inv.RoomID == roomID && !inv.Month.After(month) {
			invoice := *inv
			out = append(out, &invoice)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) List(_ context.Context, filter repositories.InvoiceFilter) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range f.invoices {
		if filter.RoomID != nil && inv.RoomID != *filter.RoomID {
			continue
		}
		if filter.Month != nil && !sameYearMonth(inv.Month, *filter.Month) {
			continue
		}
		if filter.Type != nil && inv.Type != *filter.Type {
			continue
		}
		invoice := *inv
		out = append(out, &invoice)
	}
	return out, nil
}

func (f *fakeInvoiceRepo) ListItems(_ context.Context, invoiceID uuid.UUID) ([]*models.InvoiceItem, error) {
	items := f.items[invoiceID]
	out := make([]*models.InvoiceItem, 0, len(items))
	for i := range items {
		item := items[i]
		out = append(out, &item)
	}
	return out, nil
}

func (f *fakeInvoiceRepo) SetPDFUrl(_ context.Context, id uuid.UUID, pdfURL string) error {
	if inv, ok := f.invoices[id]; ok {
		inv.PDFUrl = pdfURL
	}
	return nil
}

/* ---------- rent payments ---------- */

type fakePaymentRepo struct {
	payments map[uuid.UUID]*models.RentPayment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*models.RentPayment)}
}

func (f *fakePaymentRepo) Create(_ context.Context, p *models.RentPayment) error {
	payment := *p
	f.payments[p.ID] = &payment
	return nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.RentPayment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (f *fakePaymentRepo) ListByLeaseID(_ context.Context, leaseID uuid.UUID) ([]*models.RentPayment, error) {
	var out []*models.RentPayment
	for _, p := range f.payments {
		if p.LeaseID == leaseID {
			payment := *p
			out = append(out, &payment)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) ListByLeaseIDPaidOnOrBefore(_ context.Context, leaseID uuid.UUID, asOf time.Time) ([]*models.RentPayment, error) {
	var out []*models.RentPayment
	for _, p := range f.payments {
		if p.LeaseID == leaseID && !p.PaidOn.After(asOf) {
			payment := *p
			out = append(out, &payment)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) GetFirstInMonth(_ context.Context, leaseID uuid.UUID, monthStart, nextMonth time.Time) (*models.RentPayment, error) {
	var first *models.RentPayment
	for _, p := range f.payments {
		if p.LeaseID != leaseID || p.PaidOn.Before(monthStart) || !p.PaidOn.Before(nextMonth) {
			continue
		}
		if first == nil || p.PaidOn.Before(first.PaidOn) {
			first = p
		}
	}
	if first == nil {
		return nil, nil
	}
	out := *first
	return &out, nil
}

func (f *fakePaymentRepo) GetOrCreateForMonthAtomic(ctx context.Context, leaseID uuid.UUID, monthStart time.Time, amount decimal.Decimal, method, notes string) (*models.RentPayment, bool, error) {
	existing, err := f.GetFirstInMonth(ctx, leaseID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	now := time.Now()
	payment := &models.RentPayment{
		ID:        uuid.New(),
		LeaseID:   leaseID,
		PaidOn:    monthStart,
		Amount:    amount,
		Method:    method,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.payments[payment.ID] = payment
	out := *payment
	return &out, true, nil
}

func (f *fakePaymentRepo) Update(_ context.Context, p *models.RentPayment) error {
	if existing, ok := f.payments[p.ID]; ok {
		*existing = *p
	}
	return nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.payments, id)
	return nil
}

func (f *fakePaymentRepo) DeleteInMonth(_ context.Context, leaseID uuid.UUID, monthStart, nextMonth time.Time) (int64, error) {
	var deleted int64
	for id, p := range f.payments {
		if p.LeaseID == leaseID && !p.PaidOn.Before(monthStart) && p.PaidOn.Before(nextMonth) {
			delete(f.payments, id)
			deleted++
		}
	}
	return deleted, nil
}

/* ---------- wiring ---------- */

type testEnv struct {
	buildings *fakeBuildingRepo
	floors    *fakeFloorRepo
	rooms     *fakeRoomRepo
	readings  *fakeReadingRepo
	leases    *fakeLeaseRepo
	tenants   *fakeTenantRepo
	settings  *fakeSettingRepo
	invoices  *fakeInvoiceRepo
	payments  *fakePaymentRepo

	billing   *BillingService
	invoicing *InvoiceService
	occupancy *OccupancyService
	scheduler *InvoiceSchedulerService
	property  *PropertyService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		buildings: newFakeBuildingRepo(),
		floors:    newFakeFloorRepo(),
		rooms:     newFakeRoomRepo(),
		readings:  newFakeReadingRepo(),
		tenants:   newFakeTenantRepo(),
		settings:  newFakeSettingRepo(),
		invoices:  newFakeInvoiceRepo(),
		payments:  newFakePaymentRepo(),
	}
	env.leases = newFakeLeaseRepo(env.rooms)

	env.billing = NewBillingService(env.rooms, env.readings, env.leases, env.settings)
	env.invoicing = NewInvoiceService(env.invoices, env.payments, env.leases, env.rooms, env.tenants, env.settings, env.billing)
	env.occupancy = NewOccupancyService(env.leases, env.rooms, env.tenants, env.invoicing)
	env.scheduler = NewInvoiceSchedulerService(env.leases, env.invoicing)
	env.property = NewPropertyService(env.buildings, env.floors, env.rooms, env.tenants, env.leases)
	return env
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// sameYearMonth reports whether two dates fall in the same calendar
// month.
func sameYearMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
