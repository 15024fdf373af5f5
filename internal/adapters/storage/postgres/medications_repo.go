package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-tracker/internal/domain/medications"
)

type MedicationsRepo struct {
	db  dbtx
	loc *time.Location

	// forUpdate bloquea la fila leída por GetByID hasta el fin de la transacción.
	forUpdate bool
}

func NewMedicationsRepo(db dbtx, loc *time.Location) *MedicationsRepo {
	if loc == nil {
		loc = time.Local
	}
	return &MedicationsRepo{db: db, loc: loc}
}

const medicationColumns = `
	id, user_id,
	name, dosage, unit,
	usage_category, doses_token, interval_days, interval_type, contraceptive_type, times,
	to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'), duration_days,
	max_doses_per_day,
	total_stock, current_stock, to_char(expiry_date, 'YYYY-MM-DD'),
	notes, color,
	created_at, updated_at
`

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, user_id,
			name, dosage, unit,
			usage_category, doses_token, interval_days, interval_type, contraceptive_type, times,
			start_date, end_date, duration_days,
			max_doses_per_day,
			total_stock, current_stock, expiry_date,
			notes, color,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12::date,$13::date,$14,$15,$16,$17,$18::date,$19,$20,$21,$22)
	`,
		m.ID,
		m.UserID,
		m.Name,
		m.Dosage,
		string(m.Unit),
		string(m.Category),
		m.DosesToken,
		m.IntervalDays,
		string(m.IntervalType),
		string(m.ContraceptiveType),
		joinTimes(m.Times),
		optionalDateArg(m.StartDate),
		optionalDateArg(m.EndDate),
		m.DurationDays,
		m.MaxDosesPerDay,
		m.TotalStock,
		m.CurrentStock,
		optionalDateArg(m.ExpiryDate),
		m.Notes,
		m.Color,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *MedicationsRepo) GetByID(ctx context.Context, userID, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, notFound(medications.ErrNotFound)
	}

	row := r.db.QueryRowContext(ctx, r.getByIDQuery(), id, userID)
	m, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return medications.Medication{}, notFound(medications.ErrNotFound)
		}
		return medications.Medication{}, err
	}
	return m, nil
}

func (r *MedicationsRepo) getByIDQuery() string {
	q := `SELECT ` + medicationColumns + ` FROM medications WHERE id = $1 AND user_id = $2`
	if r.forUpdate {
		q += ` FOR UPDATE`
	}
	return q
}

func (r *MedicationsRepo) ListByUser(ctx context.Context, userID string) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicationColumns+`
		FROM medications
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications SET
			name = $3, dosage = $4, unit = $5,
			usage_category = $6, doses_token = $7, interval_days = $8, interval_type = $9, contraceptive_type = $10, times = $11,
			start_date = $12::date, end_date = $13::date, duration_days = $14,
			max_doses_per_day = $15,
			total_stock = $16, current_stock = $17, expiry_date = $18::date,
			notes = $19, color = $20,
			updated_at = $21
		WHERE id = $1 AND user_id = $2
	`,
		m.ID,
		m.UserID,
		m.Name,
		m.Dosage,
		string(m.Unit),
		string(m.Category),
		m.DosesToken,
		m.IntervalDays,
		string(m.IntervalType),
		string(m.ContraceptiveType),
		joinTimes(m.Times),
		optionalDateArg(m.StartDate),
		optionalDateArg(m.EndDate),
		m.DurationDays,
		m.MaxDosesPerDay,
		m.TotalStock,
		m.CurrentStock,
		optionalDateArg(m.ExpiryDate),
		m.Notes,
		m.Color,
		m.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err)
	}
	return affectedOrNotFound(res, medications.ErrNotFound)
}

func (r *MedicationsRepo) UpdateStock(ctx context.Context, userID, id string, stock int, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications SET current_stock = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2
	`, id, userID, stock, at)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, medications.ErrNotFound)
}

func (r *MedicationsRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, medications.ErrNotFound)
}

func (r *MedicationsRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE user_id = $1`, userID)
	return err
}

func (r *MedicationsRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM medications ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *MedicationsRepo) scan(row rowScanner) (medications.Medication, error) {
	var (
		m                                        medications.Medication
		unit, category, intervalType, contraType string
		times                                    string
		start, end, expiry                       sql.NullString
	)
	if err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Dosage,
		&unit,
		&category,
		&m.DosesToken,
		&m.IntervalDays,
		&intervalType,
		&contraType,
		&times,
		&start,
		&end,
		&m.DurationDays,
		&m.MaxDosesPerDay,
		&m.TotalStock,
		&m.CurrentStock,
		&expiry,
		&m.Notes,
		&m.Color,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medications.Medication{}, err
	}

	m.Unit = medications.Unit(unit)
	m.Category = medications.Category(category)
	m.IntervalType = medications.IntervalType(intervalType)
	m.ContraceptiveType = medications.ContraceptiveType(contraType)
	m.Times = splitTimes(times)

	var err error
	if m.StartDate, err = parseOptionalDateCol(start, r.loc); err != nil {
		return medications.Medication{}, fmt.Errorf("start_date: %w", err)
	}
	if m.EndDate, err = parseOptionalDateCol(end, r.loc); err != nil {
		return medications.Medication{}, fmt.Errorf("end_date: %w", err)
	}
	if m.ExpiryDate, err = parseOptionalDateCol(expiry, r.loc); err != nil {
		return medications.Medication{}, fmt.Errorf("expiry_date: %w", err)
	}
	return m, nil
}

// Los horarios se guardan como "08:00,20:00".
func joinTimes(times []string) string {
	return strings.Join(times, ",")
}

func splitTimes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
