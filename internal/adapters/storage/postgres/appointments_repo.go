package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-tracker/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db  dbtx
	loc *time.Location
}

func NewAppointmentsRepo(db dbtx, loc *time.Location) *AppointmentsRepo {
	if loc == nil {
		loc = time.Local
	}
	return &AppointmentsRepo{db: db, loc: loc}
}

const appointmentColumns = `
	id, user_id,
	type, doctor, specialty, location, notes,
	to_char(appt_date, 'YYYY-MM-DD'), appt_time,
	created_at, updated_at
`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, user_id,
			type, doctor, specialty, location, notes,
			appt_date, appt_time,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8::date,$9,$10,$11)
	`,
		a.ID,
		a.UserID,
		string(a.Type),
		a.Doctor,
		a.Specialty,
		a.Location,
		a.Notes,
		dateArg(a.Date),
		a.Time,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, userID, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, notFound(appointments.ErrNotFound)
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1 AND user_id = $2`, id, userID)
	a, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, notFound(appointments.ErrNotFound)
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) ListByUser(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE user_id = $1
		ORDER BY appt_date ASC, appt_time ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments SET
			type = $3, doctor = $4, specialty = $5, location = $6, notes = $7,
			appt_date = $8::date, appt_time = $9,
			updated_at = $10
		WHERE id = $1 AND user_id = $2
	`,
		a.ID,
		a.UserID,
		string(a.Type),
		a.Doctor,
		a.Specialty,
		a.Location,
		a.Notes,
		dateArg(a.Date),
		a.Time,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, appointments.ErrNotFound)
}

func (r *AppointmentsRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, appointments.ErrNotFound)
}

func (r *AppointmentsRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE user_id = $1`, userID)
	return err
}

func (r *AppointmentsRepo) scan(row rowScanner) (appointments.Appointment, error) {
	var (
		a         appointments.Appointment
		typ, date string
	)
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&typ,
		&a.Doctor,
		&a.Specialty,
		&a.Location,
		&a.Notes,
		&date,
		&a.Time,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}

	parsed, err := parseDateCol(date, r.loc)
	if err != nil {
		return appointments.Appointment{}, fmt.Errorf("appt_date: %w", err)
	}
	a.Date = parsed
	a.Type = appointments.Type(typ)
	return a, nil
}
