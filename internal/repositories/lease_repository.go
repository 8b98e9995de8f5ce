package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/iNiketan/Tenent-Management-App/internal/models"
	"github.com/iNiketan/Tenent-Management-App/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type LeaseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	GetActiveByRoomID(ctx context.Context, roomID uuid.UUID) (*models.Lease, error)
	ListByRoomID(ctx context.Context, roomID uuid.UUID) ([]*models.Lease, error)
	ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Lease, error)
	ListActive(ctx context.Context) ([]*models.Lease, error)
	List(ctx context.Context) ([]*models.Lease, error)

	// CreateActiveAtomic inserts the lease and flips the room to
	// occupied in one transaction. The room row is locked first so two
	// concurrent creations serialize; the loser gets a ConflictError
	// naming the sitting tenant.
	CreateActiveAtomic(ctx context.Context, lease *models.Lease) error

	// EndAtomic marks the lease ended and the room vacant in one
	// transaction. Fails with InvalidStateError when the lease is not
	// active anymore.
	EndAtomic(ctx context.Context, leaseID uuid.UUID, endDate time.Time) (*models.Lease, error)

	Update(ctx context.Context, lease *models.Lease) error
	// Delete is a hard data-entry correction, not a business
	// transition. It does not touch room status.
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type leaseRepo struct{ db DB }

func NewLeaseRepository(db DB) LeaseRepository {
	return &leaseRepo{db: db}
}

/* ---------- Reads ---------- */

func (r *leaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	row := r.db.QueryRow(ctx, baseSelectLease()+" WHERE id=$1", id)
	return scanLease(row)
}

func (r *leaseRepo) GetActiveByRoomID(ctx context.Context, roomID uuid.UUID) (*models.Lease, error) {
	row := r.db.QueryRow(ctx, baseSelectLease()+" WHERE room_id=$1 AND status='active'", roomID)
	return scanLease(row)
}

func (r *leaseRepo) ListByRoomID(ctx context.Context, roomID uuid.UUID) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, baseSelectLease()+" WHERE room_id=$1 ORDER BY start_date DESC", roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeases(rows)
}

func (r *leaseRepo) ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, baseSelectLease()+" WHERE tenant_id=$1 ORDER BY start_date DESC", tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeases(rows)
}

func (r *leaseRepo) ListActive(ctx context.Context) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, baseSelectLease()+" WHERE status='active' ORDER BY start_date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeases(rows)
}

func (r *leaseRepo) List(ctx context.Context) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, baseSelectLease()+" ORDER BY start_date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeases(rows)
}

/* ---------- Atomic transitions ---------- */

func (r *leaseRepo) CreateActiveAtomic(ctx context.Context, lease *models.Lease) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var roomNumber string
	err = tx.QueryRow(ctx, `SELECT room_number FROM rooms WHERE id=$1 FOR UPDATE`, lease.RoomID).Scan(&roomNumber)
	if err != nil {
		if err == pgx.ErrNoRows {
			err = utils.NewNotFoundError("room %s does not exist", lease.RoomID)
		}
		return err
	}

	var sittingTenant string
	conflictErr := tx.QueryRow(ctx, `
		SELECT t.full_name
		FROM leases l JOIN tenants t ON t.id=l.tenant_id
		WHERE l.room_id=$1 AND l.status='active'
	`, lease.RoomID).Scan(&sittingTenant)
	if conflictErr == nil {
		err = utils.NewConflictError(
			"Room %s already has an active lease with %s", roomNumber, sittingTenant)
		return err
	}
	if conflictErr != pgx.ErrNoRows {
		err = conflictErr
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO leases (
			id,tenant_id,room_id,start_date,end_date,monthly_rent,deposit,
			billing_day,status,created_at,updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, lease.ID, lease.TenantID, lease.RoomID, lease.StartDate, lease.EndDate,
		lease.MonthlyRent, lease.Deposit, lease.BillingDay, lease.Status,
		lease.CreatedAt, lease.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE rooms SET status=$1, updated_at=NOW() WHERE id=$2
	`, models.RoomStatusOccupied, lease.RoomID)
	return err
}

func (r *leaseRepo) EndAtomic(ctx context.Context, leaseID uuid.UUID, endDate time.Time) (*models.Lease, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectLease()+" WHERE id=$1 FOR UPDATE", leaseID)
	lease, err := scanLease(row)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		err = utils.NewNotFoundError("lease %s does not exist", leaseID)
		return nil, err
	}
	if lease.Status != models.LeaseStatusActive {
		err = utils.NewInvalidStateError("Lease is not active")
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE leases SET status=$1, end_date=$2, updated_at=NOW() WHERE id=$3
	`, models.LeaseStatusEnded, endDate, leaseID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE rooms SET status=$1, updated_at=NOW() WHERE id=$2
	`, models.RoomStatusVacant, lease.RoomID)
	if err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectLease()+" WHERE id=$1", leaseID)
	ended, err := scanLease(newRow)
	return ended, err
}

/* ---------- Update / Delete ---------- */

func (r *leaseRepo) Update(ctx context.Context, lease *models.Lease) error {
	_, err := r.db.Exec(ctx, `
		UPDATE leases SET
		      tenant_id=$1,start_date=$2,end_date=$3,monthly_rent=$4,deposit=$5,
		      billing_day=$6,status=$7,updated_at=NOW()
		WHERE id=$8
	`, lease.TenantID, lease.StartDate, lease.EndDate, lease.MonthlyRent,
		lease.Deposit, lease.BillingDay, lease.Status, lease.ID)
	return err
}

func (r *leaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM leases WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectLease() string {
	return `
		SELECT id,tenant_id,room_id,start_date,end_date,monthly_rent,deposit,
		       billing_day,status,created_at,updated_at
		FROM leases`
}

func scanLease(row pgx.Row) (*models.Lease, error) {
	var l models.Lease
	if err := row.Scan(
		&l.ID, &l.TenantID, &l.RoomID, &l.StartDate, &l.EndDate, &l.MonthlyRent,
		&l.Deposit, &l.BillingDay, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func collectLeases(rows pgx.Rows) ([]*models.Lease, error) {
	var out []*models.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
