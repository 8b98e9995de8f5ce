package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/iNiketan/Tenent-Management-App/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type RoomFilter struct {
	BuildingID *uuid.UUID
	Status     *models.RoomStatus
}

type RoomRepository interface {
	Create(ctx context.Context, rm *models.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	GetWithLocation(ctx context.Context, id uuid.UUID) (*models.RoomWithLocation, error)
	List(ctx context.Context, filter RoomFilter) ([]*models.Room, error)
	Update(ctx context.Context, rm *models.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type roomRepo struct{ db DB }

func NewRoomRepository(db DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, rm *models.Room) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO rooms (
			id,building_id,floor_id,room_number,status,notes,created_at,updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, rm.ID, rm.BuildingID, rm.FloorID, rm.RoomNumber, rm.Status, rm.Notes, rm.CreatedAt, rm.UpdatedAt)
	return err
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	row := r.db.QueryRow(ctx, baseSelectRoom()+" WHERE id=$1", id)
	return scanRoom(row)
}

func (r *roomRepo) GetWithLocation(ctx context.Context, id uuid.UUID) (*models.RoomWithLocation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT r.id,r.building_id,r.floor_id,r.room_number,r.status,r.notes,
		       r.created_at,r.updated_at,b.name,f.floor_number
		FROM rooms r
		JOIN buildings b ON b.id=r.building_id
		JOIN floors f ON f.id=r.floor_id
		WHERE r.id=$1
	`, id)

	var rl models.RoomWithLocation
	if err := row.Scan(
		&rl.ID, &rl.BuildingID, &rl.FloorID, &rl.RoomNumber, &rl.Status, &rl.Notes,
		&rl.CreatedAt, &rl.UpdatedAt, &rl.BuildingName, &rl.FloorNumber,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rl, nil
}

func (r *roomRepo) List(ctx context.Context, filter RoomFilter) ([]*models.Room, error) {
	sql := baseSelectRoom() + " WHERE 1=1"
	args := []interface{}{}
	if filter.BuildingID != nil {
		args = append(args, *filter.BuildingID)
		sql += " AND building_id=$1"
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		if len(args) == 1 {
			sql += " AND status=$1"
		} else {
			sql += " AND status=$2"
		}
	}
	sql += " ORDER BY building_id, room_number"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *roomRepo) Update(ctx context.Context, rm *models.Room) error {
	_, err := r.db.Exec(ctx, `
		UPDATE rooms SET
		      building_id=$1,floor_id=$2,room_number=$3,status=$4,notes=$5,updated_at=NOW()
		WHERE id=$6
	`, rm.BuildingID, rm.FloorID, rm.RoomNumber, rm.Status, rm.Notes, rm.ID)
	return err
}

func (r *roomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectRoom() string {
	return `
		SELECT id,building_id,floor_id,room_number,status,notes,created_at,updated_at
		FROM rooms`
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	var rm models.Room
	if err := row.Scan(
		&rm.ID, &rm.BuildingID, &rm.FloorID, &rm.RoomNumber, &rm.Status, &rm.Notes,
		&rm.CreatedAt, &rm.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rm, nil
}
