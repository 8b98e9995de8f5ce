package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"

	"github.com/iNiketan/Tenent-Management-App/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type RentPaymentRepository interface {
	Create(ctx context.Context, p *models.RentPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RentPayment, error)
	ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.RentPayment, error)
	ListByLeaseIDPaidOnOrBefore(ctx context.Context, leaseID uuid.UUID, asOf time.Time) ([]*models.RentPayment, error)
	// GetFirstInMonth returns a representative payment whose paid_on
	// falls in [monthStart, nextMonth), or nil.
	GetFirstInMonth(ctx context.Context, leaseID uuid.UUID, monthStart, nextMonth time.Time) (*models.RentPayment, error)

	// GetOrCreateForMonthAtomic is the status-toggle shortcut: if any
	// payment exists for the month it is returned untouched, otherwise
	// one is created with paid_on = monthStart. The check and the
	// insert share a transaction.
	GetOrCreateForMonthAtomic(ctx context.Context, leaseID uuid.UUID, monthStart time.Time, amount decimal.Decimal, method, notes string) (*models.RentPayment, bool, error)

	Update(ctx context.Context, p *models.RentPayment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteInMonth(ctx context.Context, leaseID uuid.UUID, monthStart, nextMonth time.Time) (int64, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type rentPaymentRepo struct{ db DB }

func NewRentPaymentRepository(db DB) RentPaymentRepository {
	return &rentPaymentRepo{db: db}
}

func (r *rentPaymentRepo) Create(ctx context.Context, p *models.RentPayment) error {
	_, err := r.db.Exec(ctx, insertPaymentSQL(),
		p.ID, p.LeaseID, p.PaidOn, p.Amount, p.Method, p.Notes, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *rentPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.RentPayment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+" WHERE id=$1", id)
	return scanPayment(row)
}

func (r *rentPaymentRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.RentPayment, error) {
	rows, err := r.db.Query(ctx, baseSelectPayment()+" WHERE lease_id=$1 ORDER BY paid_on DESC", leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *rentPaymentRepo) ListByLeaseIDPaidOnOrBefore(ctx context.Context, leaseID uuid.UUID, asOf time.Time) ([]*models.RentPayment, error) {
	rows, err := r.db.Query(ctx, baseSelectPayment()+`
		WHERE lease_id=$1 AND paid_on <= $2 ORDER BY paid_on DESC
	`, leaseID, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *rentPaymentRepo) GetFirstInMonth(ctx context.Context, leaseID uuid.UUID, monthStart, nextMonth time.Time) (*models.RentPayment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+`
		WHERE lease_id=$1 AND paid_on >= $2 AND paid_on < $3
		ORDER BY paid_on LIMIT 1
	`, leaseID, monthStart, nextMonth)
	return scanPayment(row)
}

func (r *rentPaymentRepo) GetOrCreateForMonthAtomic(
	ctx context.Context,
	leaseID uuid.UUID,
	monthStart time.Time,
	amount decimal.Decimal,
	method, notes string,
) (*models.RentPayment, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	nextMonth := monthStart.AddDate(0, 1, 0)
	row := tx.QueryRow(ctx, baseSelectPayment()+`
		WHERE lease_id=$1 AND paid_on >= $2 AND paid_on < $3
		ORDER BY paid_on LIMIT 1 FOR UPDATE
	`, leaseID, monthStart, nextMonth)
	existing, err := scanPayment(row)
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
	_, err = tx.Exec(ctx, insertPaymentSQL(),
		payment.ID, payment.LeaseID, payment.PaidOn, payment.Amount,
		payment.Method, payment.Notes, payment.CreatedAt, payment.UpdatedAt)
	if err != nil {
		return nil, false, err
	}
	return payment, true, nil
}

func (r *rentPaymentRepo) Update(ctx context.Context, p *models.RentPayment) error {
	_, err := r.db.Exec(ctx, `
		UPDATE rent_payments SET
		      paid_on=$1,amount=$2,method=$3,notes=$4,updated_at=NOW()
		WHERE id=$5
	`, p.PaidOn, p.Amount, p.Method, p.Notes, p.ID)
	return err
}

func (r *rentPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rent_payments WHERE id=$1`, id)
	return err
}

func (r *rentPaymentRepo) DeleteInMonth(ctx context.Context, leaseID uuid.UUID, monthStart, nextMonth time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM rent_payments
		WHERE lease_id=$1 AND paid_on >= $2 AND paid_on < $3
	`, leaseID, monthStart, nextMonth)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

/* ---------- internals ---------- */

func insertPaymentSQL() string {
	return `
		INSERT INTO rent_payments (
			id,lease_id,paid_on,amount,method,notes,created_at,updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
}

func baseSelectPayment() string {
	return `
		SELECT id,lease_id,paid_on,amount,method,notes,created_at,updated_at
		FROM rent_payments`
}

func scanPayment(row pgx.Row) (*models.RentPayment, error) {
	var p models.RentPayment
	if err := row.Scan(
		&p.ID, &p.LeaseID, &p.PaidOn, &p.Amount, &p.Method, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func collectPayments(rows pgx.Rows) ([]*models.RentPayment, error) {
	var out []*models.RentPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
