package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/iNiketan/Tenent-Management-App/internal/models"
)

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	List(ctx context.Context) ([]*models.Tenant, error)
	Update(ctx context.Context, t *models.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tenantRepo struct{ db DB }

func NewTenantRepository(db DB) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tenants (
			id,full_name,phone,email,id_proof_url,created_at,updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, t.ID, t.FullName, t.Phone, t.Email, t.IDProofURL, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	row := r.db.QueryRow(ctx, baseSelectTenant()+" WHERE id=$1", id)
	return scanTenant(row)
}

func (r *tenantRepo) List(ctx context.Context) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, baseSelectTenant()+" ORDER BY full_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tenantRepo) Update(ctx context.Context, t *models.Tenant) error {
	_, err := r.db.Exec(ctx, `
		UPDATE tenants SET
		      full_name=$1,phone=$2,email=$3,id_proof_url=$4,updated_at=NOW()
		WHERE id=$5
	`, t.FullName, t.Phone, t.Email, t.IDProofURL, t.ID)
	return err
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectTenant() string {
	return `
		SELECT id,full_name,phone,email,id_proof_url,created_at,updated_at
		FROM tenants`
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	if err := row.Scan(
		&t.ID, &t.FullName, &t.Phone, &t.Email, &t.IDProofURL, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
