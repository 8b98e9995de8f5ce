package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/iNiketan/Tenent-Management-App/internal/models"
)

type FloorRepository interface {
	Create(ctx context.Context, f *models.Floor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Floor, error)
	ListByBuildingID(ctx context.Context, buildingID uuid.UUID) ([]*models.Floor, error)
}

type floorRepo struct{ db DB }

func NewFloorRepository(db DB) FloorRepository {
	return &floorRepo{db: db}
}

func (r *floorRepo) Create(ctx context.Context, f *models.Floor) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO floors (
			id,building_id,floor_number,created_at,updated_at
		) VALUES ($1,$2,$3,$4,$5)
	`, f.ID, f.BuildingID, f.FloorNumber, f.CreatedAt, f.UpdatedAt)
	return err
}

func (r *floorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Floor, error) {
	row := r.db.QueryRow(ctx, baseSelectFloor()+" WHERE id=$1", id)
	return scanFloor(row)
}

func (r *floorRepo) ListByBuildingID(ctx context.Context, buildingID uuid.UUID) ([]*models.Floor, error) {
	rows, err := r.db.Query(ctx, baseSelectFloor()+" WHERE building_id=$1 ORDER BY floor_number", buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFloors(rows)
}

/* ---------- internals ---------- */

func baseSelectFloor() string {
	return `
		SELECT id,building_id,floor_number,created_at,updated_at
		FROM floors`
}

func scanFloor(row pgx.Row) (*models.Floor, error) {
	var f models.Floor
	if err := row.Scan(&f.ID, &f.BuildingID, &f.FloorNumber, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func collectFloors(rows pgx.Rows) ([]*models.Floor, error) {
	var out []*models.Floor
	for rows.Next() {
		f, err := scanFloor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
