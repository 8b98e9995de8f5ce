package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"

	"github.com/iNiketan/Tenent-Management-App/internal/models"
)

type SettingRepository interface {
	// GetValue returns (value, found). Missing keys are not an error;
	// callers fall back to their defaults.
	GetValue(ctx context.Context, key string) (string, bool, error)
	Upsert(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]*models.Setting, error)
}

type settingRepo struct{ db DB }

func NewSettingRepository(db DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) GetValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE key=$1`, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *settingRepo) Upsert(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO settings (key,value,created_at,updated_at)
		VALUES ($1,$2,NOW(),NOW())
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()
	`, key, value)
	return err
}

func (r *settingRepo) List(ctx context.Context) ([]*models.Setting, error) {
	rows, err := r.db.Query(ctx, `
		SELECT key,value,created_at,updated_at FROM settings ORDER BY key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Setting
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
