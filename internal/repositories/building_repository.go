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

type BuildingRepository interface {
	Create(ctx context.Context, b *models.Building) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	GetByName(ctx context.Context, name string) (*models.Building, error)
	List(ctx context.Context) ([]*models.Building, error)
	Update(ctx context.Context, b *models.Building) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type buildingRepo struct{ db DB }

func NewBuildingRepository(db DB) BuildingRepository {
	return &buildingRepo{db: db}
}

/* ---------- Create ---------- */

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO buildings (
			id,name,created_at,updated_at
		) VALUES ($1,$2,$3,$4)
	`, b.ID, b.Name, b.CreatedAt, b.UpdatedAt)
	return err
}

/* ---------- Reads ---------- */

func (r *buildingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	row := r.db.QueryRow(ctx, baseSelectBuilding()+" WHERE id=$1", id)
	return scanBuilding(row)
}

func (r *buildingRepo) GetByName(ctx context.Context, name string) (*models.Building, error) {
	row := r.db.QueryRow(ctx, baseSelectBuilding()+" WHERE name=$1", name)
	return scanBuilding(row)
}

func (r *buildingRepo) List(ctx context.Context) ([]*models.Building, error) {
	rows, err := r.db.Query(ctx, baseSelectBuilding()+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Building
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

/* ---------- Update / Delete ---------- */

func (r *buildingRepo) Update(ctx context.Context, b *models.Building) error {
	_, err := r.db.Exec(ctx, `
		UPDATE buildings SET name=$1, updated_at=NOW()
		WHERE id=$2
	`, b.Name, b.ID)
	return err
}

func (r *buildingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM buildings WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectBuilding() string {
	return `
		SELECT id,name,created_at,updated_at
		FROM buildings`
}

func scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	if err := row.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
