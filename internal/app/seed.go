package app

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
	"github.com/iNiketan/Tenent-Management-App/internal/services"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

// SeedBuildingName doubles as the idempotency sentinel: when the
// building already exists, seeding is skipped entirely.
const SeedBuildingName = "Sunrise Residency"

// SeedDemoData populates a development database with one building,
// two floors, four rooms, tenants, leases, meter readings and the
// current month's invoices. Everything flows through the services so
// the demo data obeys the same invariants as real data.
func SeedDemoData(
	ctx context.Context,
	propertySvc *services.PropertyService,
	occupancySvc *services.OccupancyService,
	billingSvc *services.BillingService,
	invoiceSvc *services.InvoiceService,
	settingRepo repositories.SettingRepository,
	buildingRepo repositories.BuildingRepository,
) error {
	existing, err := buildingRepo.GetByName(ctx, SeedBuildingName)
	if err != nil {
		return fmt.Errorf("check seed sentinel: %w", err)
	}
	if existing != nil {
		utils.Logger.Info("Seed data already present; skipping seeding.")
		return nil
	}

	if err := settingRepo.Upsert(ctx, constants.SettingElectricityRatePerUnit, "10.50"); err != nil {
		return err
	}
	if err := settingRepo.Upsert(ctx, constants.SettingCurrencySymbol, constants.DefaultCurrencySymbol); err != nil {
		return err
	}
	if err := settingRepo.Upsert(ctx, constants.SettingOrgName, "Sunrise Rentals"); err != nil {
		return err
	}

	building, err := propertySvc.CreateBuilding(ctx, SeedBuildingName)
	if err != nil {
		return fmt.Errorf("seed building: %w", err)
	}

	groundFloor, err := propertySvc.CreateFloor(ctx, building.ID, 0)
	if err != nil {
		return err
	}
	firstFloor, err := propertySvc.CreateFloor(ctx, building.ID, 1)
	if err != nil {
		return err
	}

	mkRoom := func(floorID uuid.UUID, number string) (*models.Room, error) {
		return propertySvc.CreateRoom(ctx, dtos.CreateRoomRequest{
			BuildingID: building.ID,
			FloorID:    floorID,
			RoomNumber: number,
		})
	}
	roomG1, err := mkRoom(groundFloor.ID, "G1")
	if err != nil {
		return err
	}
	roomG2, err := mkRoom(groundFloor.ID, "G2")
	if err != nil {
		return err
	}
	room101, err := mkRoom(firstFloor.ID, "101")
	if err != nil {
		return err
	}
	// One room stays vacant for the dashboard.
	if _, err := mkRoom(firstFloor.ID, "102"); err != nil {
		return err
	}

	asha, err := propertySvc.CreateTenant(ctx, dtos.CreateTenantRequest{FullName: "Asha Verma", Phone: "9876500001"})
	if err != nil {
		return err
	}
	ravi, err := propertySvc.CreateTenant(ctx, dtos.CreateTenantRequest{FullName: "Ravi Kumar", Phone: "9876500002"})
	if err != nil {
		return err
	}
	meera, err := propertySvc.CreateTenant(ctx, dtos.CreateTenantRequest{FullName: "Meera Joshi", Phone: "9876500003"})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	mkLease := func(tenantID, roomID uuid.UUID, rent string) (*models.Lease, error) {
		return occupancySvc.CreateLease(ctx, services.CreateLeaseParams{
			TenantID:    tenantID,
			RoomID:      roomID,
			StartDate:   lastMonth,
			MonthlyRent: decimal.RequireFromString(rent),
			Deposit:     decimal.RequireFromString(rent).Mul(decimal.NewFromInt(2)),
			BillingDay:  1,
		})
	}
	leaseG1, err := mkLease(asha.ID, roomG1.ID, "5000")
	if err != nil {
		return err
	}
	if _, err := mkLease(ravi.ID, roomG2.ID, "5500"); err != nil {
		return err
	}
	if _, err := mkLease(meera.ID, room101.ID, "6000"); err != nil {
		return err
	}

	// Two months of readings for G1 so the electricity invoice prices
	// a real delta.
	if _, err := billingSvc.RecordReading(ctx, roomG1.ID, lastMonth.AddDate(0, 0, 14), decimal.RequireFromString("1200")); err != nil {
		return err
	}
	if _, err := billingSvc.RecordReading(ctx, roomG1.ID, thisMonth.AddDate(0, 0, 14), decimal.RequireFromString("1262")); err != nil {
		return err
	}

	if _, _, err := invoiceSvc.CreateElectricityInvoice(ctx, roomG1.ID, thisMonth.Year(), int(thisMonth.Month())); err != nil {
		return err
	}
	if _, _, err := invoiceSvc.CreateRentInvoice(ctx, leaseG1.ID, thisMonth.Year(), int(thisMonth.Month())); err != nil {
		return err
	}

	// Asha has paid last month in full.
	if _, err := invoiceSvc.RecordPayment(ctx, leaseG1.ID, lastMonth.AddDate(0, 0, 4), decimal.RequireFromString("5000"), "Cash", "Seed payment"); err != nil {
		return err
	}

	return nil
}
