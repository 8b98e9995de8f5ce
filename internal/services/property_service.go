package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iNiketan/Tenent-Management-App/internal/dtos"
	"github.com/iNiketan/Tenent-Management-App/internal/models"
	"github.com/iNiketan/Tenent-Management-App/internal/repositories"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

// PropertyService handles the buildings/floors/rooms/tenants catalog.
type PropertyService struct {
	buildingRepo repositories.BuildingRepository
	floorRepo    repositories.FloorRepository
	roomRepo     repositories.RoomRepository
	tenantRepo   repositories.TenantRepository
	leaseRepo    repositories.LeaseRepository
}

func NewPropertyService(
	buildingRepo repositories.BuildingRepository,
	floorRepo repositories.FloorRepository,
	roomRepo repositories.RoomRepository,
	tenantRepo repositories.TenantRepository,
	leaseRepo repositories.LeaseRepository,
) *PropertyService {
	return &PropertyService{
		buildingRepo: buildingRepo,
		floorRepo:    floorRepo,
		roomRepo:     roomRepo,
		tenantRepo:   tenantRepo,
		leaseRepo:    leaseRepo,
	}
}

/* ---------- Buildings ---------- */

func (s *PropertyService) CreateBuilding(ctx context.Context, name string) (*models.Building, error) {
	now := time.Now()
	b := &models.Building{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.buildingRepo.Create(ctx, b); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.NewConflictError("Building %q already exists", name)
		}
		return nil, err
	}
	return b, nil
}

func (s *PropertyService) GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	b, err := s.buildingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewNotFoundError("building with id %s does not exist", id)
	}
	return b, nil
}

func (s *PropertyService) ListBuildings(ctx context.Context) ([]*models.Building, error) {
	return s.buildingRepo.List(ctx)
}

func (s *PropertyService) UpdateBuilding(ctx context.Context, id uuid.UUID, name string) (*models.Building, error) {
	b, err := s.GetBuilding(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Name = name
	if err := s.buildingRepo.Update(ctx, b); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.NewConflictError("Building %q already exists", name)
		}
		return nil, err
	}
	return b, nil
}

func (s *PropertyService) DeleteBuilding(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetBuilding(ctx, id); err != nil {
		return err
	}
	return s.buildingRepo.Delete(ctx, id)
}

/* ---------- Floors ---------- */

func (s *PropertyService) CreateFloor(ctx context.Context, buildingID uuid.UUID, floorNumber int16) (*models.Floor, error) {
	if _, err := s.GetBuilding(ctx, buildingID); err != nil {
		return nil, err
	}
	now := time.Now()
	f := &models.Floor{
		ID:          uuid.New(),
		BuildingID:  buildingID,
		FloorNumber: floorNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.floorRepo.Create(ctx, f); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.NewConflictError("Floor %d already exists in this building", floorNumber)
		}
		return nil, err
	}
	return f, nil
}

func (s *PropertyService) ListFloors(ctx context.Context, buildingID uuid.UUID) ([]*models.Floor, error) {
	if _, err := s.GetBuilding(ctx, buildingID); err != nil {
		return nil, err
	}
	return s.floorRepo.ListByBuildingID(ctx, buildingID)
}

/* ---------- Rooms ---------- */

func (s *PropertyService) CreateRoom(ctx context.Context, req dtos.CreateRoomRequest) (*models.Room, error) {
	if _, err := s.GetBuilding(ctx, req.BuildingID); err != nil {
		return nil, err
	}
	floor, err := s.floorRepo.GetByID(ctx, req.FloorID)
	if err != nil {
		return nil, err
	}
	if floor == nil {
		return nil, utils.NewNotFoundError("floor with id %s does not exist", req.FloorID)
	}
	if floor.BuildingID != req.BuildingID {
		return nil, utils.NewValidationError("Floor does not belong to the given building")
	}

	status := models.RoomStatusVacant
	if req.Status != "" {
		status = models.RoomStatus(req.Status)
	}
	if status == models.RoomStatusOccupied {
		return nil, utils.NewValidationError("Rooms become occupied through leases, not directly")
	}

	now := time.Now()
	room := &models.Room{
		ID:         uuid.New(),
		BuildingID: req.BuildingID,
		FloorID:    req.FloorID,
		RoomNumber: req.RoomNumber,
		Status:     status,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.NewConflictError("Room %s already exists in this building", req.RoomNumber)
		}
		return nil, err
	}
	return room, nil
}

func (s *PropertyService) GetRoom(ctx context.Context, id uuid.UUID) (*models.RoomWithLocation, error) {
	room, err := s.roomRepo.GetWithLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, utils.NewNotFoundError("room with id %s does not exist", id)
	}
	return room, nil
}

func (s *PropertyService) ListRooms(ctx context.Context, filter repositories.RoomFilter) ([]*models.Room, error) {
	return s.roomRepo.List(ctx, filter)
}

func (s *PropertyService) UpdateRoom(ctx context.Context, id uuid.UUID, req dtos.UpdateRoomRequest) (*models.Room, error) {
	existing, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	room := existing.Room
	room.RoomNumber = req.RoomNumber
	room.Notes = req.Notes
	if req.Status != "" && models.RoomStatus(req.Status) != room.Status {
		if err := s.checkManualStatusChange(ctx, id, models.RoomStatus(req.Status)); err != nil {
			return nil, err
		}
		room.Status = models.RoomStatus(req.Status)
	}

	if err := s.roomRepo.Update(ctx, &room); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.NewConflictError("Room %s already exists in this building", req.RoomNumber)
		}
		return nil, err
	}
	return &room, nil
}

// checkManualStatusChange guards data-entry status edits: a leased
// room's status belongs to its lease, and occupied can only be set by
// creating one.
func (s *PropertyService) checkManualStatusChange(ctx context.Context, roomID uuid.UUID, status models.RoomStatus) error {
	if status == models.RoomStatusOccupied {
		return utils.NewValidationError("Rooms become occupied through leases, not directly")
	}
	active, err := s.leaseRepo.GetActiveByRoomID(ctx, roomID)
	if err != nil {
		return err
	}
	if active != nil {
		return utils.NewInvalidStateError("Room has an active lease; end it before changing the status")
	}
	return nil
}

func (s *PropertyService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return err
	}
	active, err := s.leaseRepo.GetActiveByRoomID(ctx, id)
	if err != nil {
		return err
	}
	if active != nil {
		return utils.NewInvalidStateError("Room has an active lease and cannot be deleted")
	}
	return s.roomRepo.Delete(ctx, id)
}

/* ---------- Tenants ---------- */

func (s *PropertyService) CreateTenant(ctx context.Context, req dtos.CreateTenantRequest) (*models.Tenant, error) {
	now := time.Now()
	t := &models.Tenant{
		ID:         uuid.New(),
		FullName:   req.FullName,
		Phone:      req.Phone,
		Email:      req.Email,
		IDProofURL: req.IDProofURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.tenantRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *PropertyService) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	t, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, utils.NewNotFoundError("tenant with id %s does not exist", id)
	}
	return t, nil
}

func (s *PropertyService) ListTenants(ctx context.Context) ([]*models.Tenant, error) {
	return s.tenantRepo.List(ctx)
}

func (s *PropertyService) UpdateTenant(ctx context.Context, id uuid.UUID, req dtos.UpdateTenantRequest) (*models.Tenant, error) {
	t, err := s.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	t.FullName = req.FullName
	t.Phone = req.Phone
	t.Email = req.Email
	t.IDProofURL = req.IDProofURL
	if err := s.tenantRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *PropertyService) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTenant(ctx, id); err != nil {
		return err
	}
	leases, err := s.leaseRepo.ListByTenantID(ctx, id)
	if err != nil {
		return err
	}
	for _, l := range leases {
		if l.Status == models.LeaseStatusActive {
			return utils.NewInvalidStateError("Tenant has an active lease and cannot be deleted")
		}
	}
	return s.tenantRepo.Delete(ctx, id)
}
