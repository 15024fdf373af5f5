package postgres

import (
	"context"
	"database/sql"
	"errors"

	"medication-tracker/internal/domain/settings"
)

type SettingsRepo struct {
	db dbtx
}

func NewSettingsRepo(db dbtx) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context, userID string) (settings.AppSettings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, threshold_expiring, threshold_running_out, show_delay_disclaimer, updated_at
		FROM app_settings
		WHERE user_id = $1
	`, userID)

	var s settings.AppSettings
	if err := row.Scan(&s.UserID, &s.ThresholdExpiring, &s.ThresholdRunningOut, &s.ShowDelayDisclaimer, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return settings.AppSettings{}, notFound(settings.ErrNotFound)
		}
		return settings.AppSettings{}, err
	}
	return s, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s settings.AppSettings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_settings (user_id, threshold_expiring, threshold_running_out, show_delay_disclaimer, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id) DO UPDATE SET
			threshold_expiring = EXCLUDED.threshold_expiring,
			threshold_running_out = EXCLUDED.threshold_running_out,
			show_delay_disclaimer = EXCLUDED.show_delay_disclaimer,
			updated_at = EXCLUDED.updated_at
	`, s.UserID, s.ThresholdExpiring, s.ThresholdRunningOut, s.ShowDelayDisclaimer, s.UpdatedAt)
	return err
}

func (r *SettingsRepo) Delete(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM app_settings WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, settings.ErrNotFound)
}
