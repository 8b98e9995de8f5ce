package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/iNiketan/Tenent-Management-App/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type ReadingFilter struct {
	RoomID *uuid.UUID
	From   *time.Time // inclusive
	To     *time.Time // exclusive
}

type MeterReadingRepository interface {
	Create(ctx context.Context, m *models.MeterReading) error
	// CreateBatchAtomic inserts all readings in one transaction; either
	// every row commits or none do.
	CreateBatchAtomic(ctx context.Context, readings []*models.MeterReading) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MeterReading, error)
	// GetLatestBefore returns the most recent reading strictly before
	// `date`, across all history for the room.
	GetLatestBefore(ctx context.Context, roomID uuid.UUID, date time.Time) (*models.MeterReading, error)
	// GetLatestInRange returns the most recent reading in [from, to).
	GetLatestInRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) (*models.MeterReading, error)
	List(ctx context.Context, filter ReadingFilter) ([]*models.MeterReading, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type meterReadingRepo struct{ db DB }

func NewMeterReadingRepository(db DB) MeterReadingRepository {
	return &meterReadingRepo{db: db}
}

func (r *meterReadingRepo) Create(ctx context.Context, m *models.MeterReading) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO meter_readings (
			id,room_id,reading_date,reading_value,created_at,updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`, m.ID, m.RoomID, m.ReadingDate, m.ReadingValue, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *meterReadingRepo) CreateBatchAtomic(ctx context.Context, readings []*models.MeterReading) error {
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

	for _, m := range readings {
		_, err = tx.Exec(ctx, `
			INSERT INTO meter_readings (
				id,room_id,reading_date,reading_value,created_at,updated_at
			) VALUES ($1,$2,$3,$4,$5,$6)
		`, m.ID, m.RoomID, m.ReadingDate, m.ReadingValue, m.CreatedAt, m.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *meterReadingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MeterReading, error) {
	row := r.db.QueryRow(ctx, baseSelectReading()+" WHERE id=$1", id)
	return scanReading(row)
}

func (r *meterReadingRepo) GetLatestBefore(ctx context.Context, roomID uuid.UUID, date time.Time) (*models.MeterReading, error) {
	row := r.db.QueryRow(ctx, baseSelectReading()+`
		WHERE room_id=$1 AND reading_date < $2
		ORDER BY reading_date DESC LIMIT 1
	`, roomID, date)
	return scanReading(row)
}

func (r *meterReadingRepo) GetLatestInRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) (*models.MeterReading, error) {
	row := r.db.QueryRow(ctx, baseSelectReading()+`
		WHERE room_id=$1 AND reading_date >= $2 AND reading_date < $3
		ORDER BY reading_date DESC LIMIT 1
	`, roomID, from, to)
	return scanReading(row)
}

func (r *meterReadingRepo) List(ctx context.Context, filter ReadingFilter) ([]*models.MeterReading, error) {
	sql := baseSelectReading() + " WHERE 1=1"
	args := []interface{}{}
	if filter.RoomID != nil {
		args = append(args, *filter.RoomID)
		sql += fmt.Sprintf(" AND room_id=$%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		sql += fmt.Sprintf(" AND reading_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		sql += fmt.Sprintf(" AND reading_date < $%d", len(args))
	}
	sql += " ORDER BY room_id, reading_date DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.MeterReading
	for rows.Next() {
		m, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *meterReadingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM meter_readings WHERE id=$1`, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectReading() string {
	return `
		SELECT id,room_id,reading_date,reading_value,created_at,updated_at
		FROM meter_readings`
}

func scanReading(row pgx.Row) (*models.MeterReading, error) {
	var m models.MeterReading
	if err := row.Scan(
		&m.ID, &m.RoomID, &m.ReadingDate, &m.ReadingValue, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
