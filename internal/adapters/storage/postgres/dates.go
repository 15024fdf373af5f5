package postgres

import (
	"database/sql"
	"time"

	"medication-tracker/internal/domain/dates"
)

// Las columnas DATE viajan como texto YYYY-MM-DD para no depender de la zona de la sesión.

func dateArg(t time.Time) string {
	return dates.FormatDate(t)
}

func optionalDateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return dates.FormatDate(*t)
}

func parseDateCol(s string, loc *time.Location) (time.Time, error) {
	return dates.ParseDate(s, loc)
}

func parseOptionalDateCol(ns sql.NullString, loc *time.Location) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := dates.ParseDate(ns.String, loc)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
