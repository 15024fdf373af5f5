package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-tracker/internal/domain/doses"
)

type DosesRepo struct {
	db  dbtx
	loc *time.Location
}

func NewDosesRepo(db dbtx, loc *time.Location) *DosesRepo {
	if loc == nil {
		loc = time.Local
	}
	return &DosesRepo{db: db, loc: loc}
}

const doseColumns = `
	id, user_id, medication_id,
	to_char(dose_date, 'YYYY-MM-DD'), dose_time,
	status,
	created_at, updated_at
`

func (r *DosesRepo) Create(ctx context.Context, d doses.DoseEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_events (
			id, user_id, medication_id,
			dose_date, dose_time,
			status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4::date,$5,$6,$7,$8)
	`,
		d.ID,
		d.UserID,
		d.MedicationID,
		dateArg(d.Date),
		d.Time,
		string(d.Status),
		d.CreatedAt,
		d.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *DosesRepo) GetByID(ctx context.Context, userID, id string) (doses.DoseEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return doses.DoseEvent{}, notFound(doses.ErrNotFound)
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+doseColumns+` FROM dose_events WHERE id = $1 AND user_id = $2`, id, userID)
	return r.scanOne(row)
}

func (r *DosesRepo) FindSlot(ctx context.Context, userID, medicationID string, date time.Time, clock string) (doses.DoseEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+doseColumns+`
		FROM dose_events
		WHERE user_id = $1 AND medication_id = $2 AND dose_date = $3::date AND dose_time = $4
	`, userID, medicationID, dateArg(date), clock)
	return r.scanOne(row)
}

func (r *DosesRepo) List(ctx context.Context, userID string, filter doses.ListFilter) ([]doses.DoseEvent, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + doseColumns + ` FROM dose_events WHERE user_id = $1`)

	args := []any{userID}
	argN := 2

	if filter.MedicationID != "" {
		sb.WriteString(fmt.Sprintf(" AND medication_id = $%d", argN))
		args = append(args, filter.MedicationID)
		argN++
	}
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND dose_date >= $%d::date", argN))
		args = append(args, dateArg(*filter.From))
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND dose_date <= $%d::date", argN))
		args = append(args, dateArg(*filter.To))
	}
	sb.WriteString(" ORDER BY dose_date ASC, dose_time ASC, medication_id ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doses.DoseEvent, 0)
	for rows.Next() {
		d, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DosesRepo) UpdateStatus(ctx context.Context, userID, id string, status doses.Status, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dose_events SET status = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2
	`, id, userID, string(status), at)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, doses.ErrNotFound)
}

func (r *DosesRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dose_events WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, doses.ErrNotFound)
}

func (r *DosesRepo) DeleteByMedication(ctx context.Context, userID, medicationID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dose_events WHERE user_id = $1 AND medication_id = $2`, userID, medicationID)
	return err
}

func (r *DosesRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dose_events WHERE user_id = $1`, userID)
	return err
}

func (r *DosesRepo) scanOne(row *sql.Row) (doses.DoseEvent, error) {
	d, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return doses.DoseEvent{}, notFound(doses.ErrNotFound)
		}
		return doses.DoseEvent{}, err
	}
	return d, nil
}

func (r *DosesRepo) scan(row rowScanner) (doses.DoseEvent, error) {
	var (
		d            doses.DoseEvent
		date, status string
	)
	if err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.MedicationID,
		&date,
		&d.Time,
		&status,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return doses.DoseEvent{}, err
	}

	parsed, err := parseDateCol(date, r.loc)
	if err != nil {
		return doses.DoseEvent{}, fmt.Errorf("dose_date: %w", err)
	}
	d.Date = parsed
	d.Status = doses.Status(status)
	return d, nil
}
