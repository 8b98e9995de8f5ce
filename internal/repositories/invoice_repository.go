package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/iNiketan/Tenent-Management-App/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type InvoiceFilter struct {
	RoomID *uuid.UUID
	Month  *time.Time
	Type   *models.InvoiceType
}

type InvoiceRepository interface {
	// CreateWithItemsAtomic inserts the invoice and its items in one
	// transaction. A duplicate (room, month, type) surfaces as a
	// unique violation for the caller to resolve idempotently.
	CreateWithItemsAtomic(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	GetByRoomMonthType(ctx context.Context, roomID uuid.UUID, month time.Time, typ models.InvoiceType) (*models.Invoice, error)
	GetLatestByRoomID(ctx context.Context, roomID uuid.UUID) (*models.Invoice, error)
	ListByRoomUpToMonth(ctx context.Context, roomID uuid.UUID, month time.Time) ([]*models.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*models.Invoice, error)
	ListItems(ctx context.Context, invoiceID uuid.UUID) ([]*models.InvoiceItem, error)
	SetPDFUrl(ctx context.Context, id uuid.UUID, pdfURL string) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type invoiceRepo struct{ db DB }

func NewInvoiceRepository(db DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) CreateWithItemsAtomic(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) error {
	metaJSON, err := json.Marshal(inv.Meta)
	if err != nil {
		return err
	}

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

	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (
			id,room_id,month,type,subtotal,tax,total,pdf_url,meta,created_at,updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9::jsonb,$10,$11)
	`, inv.ID, inv.RoomID, inv.Month, inv.Type, inv.Subtotal, inv.Tax, inv.Total,
		inv.PDFUrl, string(metaJSON), inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range items {
		item := &items[i]
		var itemMeta []byte
		itemMeta, err = json.Marshal(item.Meta)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO invoice_items (
				id,invoice_id,label,qty,rate,amount,meta,created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7::jsonb,$8)
		`, item.ID, item.InvoiceID, item.Label, item.Qty, item.Rate, item.Amount,
			string(itemMeta), item.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

/* ---------- Reads ---------- */

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	row := r.db.QueryRow(ctx, baseSelectInvoice()+" WHERE id=$1", id)
	return scanInvoice(row)
}

func (r *invoiceRepo) GetByRoomMonthType(ctx context.Context, roomID uuid.UUID, month time.Time, typ models.InvoiceType) (*models.Invoice, error) {
	row := r.db.QueryRow(ctx, baseSelectInvoice()+`
		WHERE room_id=$1 AND month=$2 AND type=$3
	`, roomID, month, typ)
	return scanInvoice(row)
}

func (r *invoiceRepo) GetLatestByRoomID(ctx context.Context, roomID uuid.UUID) (*models.Invoice, error) {
	row := r.db.QueryRow(ctx, baseSelectInvoice()+`
		WHERE room_id=$1 ORDER BY month DESC LIMIT 1
	`, roomID)
	return scanInvoice(row)
}

func (r *invoiceRepo) ListByRoomUpToMonth(ctx context.Context, roomID uuid.UUID, month time.Time) ([]*models.Invoice, error) {
	rows, err := r.db.Query(ctx, baseSelectInvoice()+`
		WHERE room_id=$1 AND month <= $2 ORDER BY month DESC
	`, roomID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func (r *invoiceRepo) List(ctx context.Context, filter InvoiceFilter) ([]*models.Invoice, error) {
	sql := baseSelectInvoice() + " WHERE 1=1"
	args := []interface{}{}
	if filter.RoomID != nil {
		args = append(args, *filter.RoomID)
		sql += fmt.Sprintf(" AND room_id=$%d", len(args))
	}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		sql += fmt.Sprintf(" AND month=$%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		sql += fmt.Sprintf(" AND type=$%d", len(args))
	}
	sql += " ORDER BY month DESC, room_id"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func (r *invoiceRepo) ListItems(ctx context.Context, invoiceID uuid.UUID) ([]*models.InvoiceItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id,invoice_id,label,qty,rate,amount,meta,created_at
		FROM invoice_items
		WHERE invoice_id=$1 ORDER BY created_at, id
	`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.InvoiceItem
	for rows.Next() {
		var it models.InvoiceItem
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.Label, &it.Qty, &it.Rate, &it.Amount,
			&it.Meta, &it.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

func (r *invoiceRepo) SetPDFUrl(ctx context.Context, id uuid.UUID, pdfURL string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE invoices SET pdf_url=$1, updated_at=NOW() WHERE id=$2
	`, pdfURL, id)
	return err
}

/* ---------- internals ---------- */

func baseSelectInvoice() string {
	return `
		SELECT id,room_id,month,type,subtotal,tax,total,pdf_url,meta,created_at,updated_at
		FROM invoices`
}

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var inv models.Invoice
	if err := row.Scan(
		&inv.ID, &inv.RoomID, &inv.Month, &inv.Type, &inv.Subtotal, &inv.Tax,
		&inv.Total, &inv.PDFUrl, &inv.Meta, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func collectInvoices(rows pgx.Rows) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
