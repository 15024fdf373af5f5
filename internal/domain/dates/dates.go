package dates

import (
	"errors"
	"strings"
	"time"
)

const (
	// Layout es el formato ISO de fecha calendario (sin zona).
	Layout = "2006-01-02"
	// ClockLayout es el formato HH:MM 24h usado para horarios de dosis.
	ClockLayout = "15:04"
)

var (
	ErrInvalidDate  = errors.New("date must be YYYY-MM-DD")
	ErrInvalidClock = errors.New("time must be HH:MM")
)

// Midnight devuelve una copia de t truncada a las 00:00:00.000 en su propia zona.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween cuenta días calendario de from a to (negativo si to es anterior).
// Se calcula sobre año/mes/día para que un cambio de horario no mueva el resultado.
func DaysBetween(from, to time.Time) int {
	return int(civilDay(to) - civilDay(from))
}

func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func IsPast(date, today time.Time) bool {
	return DaysBetween(today, date) < 0
}

func IsFuture(date, today time.Time) bool {
	return DaysBetween(today, date) > 0
}

func IsToday(date, today time.Time) bool {
	return DaysBetween(today, date) == 0
}

// AddDays suma n días calendario a partir de la medianoche de t.
func AddDays(t time.Time, n int) time.Time {
	return Midnight(t).AddDate(0, 0, n)
}

// ParseDate interpreta YYYY-MM-DD como medianoche local en loc (sin conversión a UTC).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseOptionalDate devuelve nil para cadenas vacías.
func ParseOptionalDate(s string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(Layout)
}

// FormatOptionalDate devuelve "" si t es nil.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(Layout)
}

// NormalizeClock valida un horario y lo devuelve con ceros a la izquierda ("8:05" -> "08:05").
// La comparación de strings HH:MM solo es válida sobre valores normalizados.
func NormalizeClock(s string) (string, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidClock
	}
	return t.Format(ClockLayout), nil
}

// Clock devuelve HH:MM de t en su zona.
func Clock(t time.Time) string {
	return t.Format(ClockLayout)
}

// At combina una fecha calendario con un horario HH:MM en la zona de date.
func At(date time.Time, clock string) (time.Time, error) {
	c, err := time.Parse(ClockLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, ErrInvalidClock
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, date.Location()), nil
}
