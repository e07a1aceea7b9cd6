package repository

import (
	"context"
	"database/sql"

	"storefront/internal/entity"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db}
}

func (r *SettingsRepository) GetSettings(ctx context.Context) ([]entity.SettingRow, error) {
	query := `SELECT setting_key, setting_value, setting_type FROM store_settings`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []entity.SettingRow
	for rows.Next() {
		var row entity.SettingRow
		if err := rows.Scan(&row.Key, &row.Value, &row.Type); err != nil {
			return nil, err
		}
		settings = append(settings, row)
	}
	return settings, rows.Err()
}

// SaveSettings upserts every row in one transaction so a save is
// whole-object replace, never a partial patch.
func (r *SettingsRepository) SaveSettings(ctx context.Context, settings []entity.SettingRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	query := `INSERT INTO store_settings (setting_key, setting_value, setting_type) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value), setting_type = VALUES(setting_type)`
	for _, row := range settings {
		if _, err := tx.ExecContext(ctx, query, row.Key, row.Value, row.Type); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
