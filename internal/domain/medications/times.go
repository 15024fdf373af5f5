package medications

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"medication-tracker/internal/domain/dates"
)

// DefaultFirstDose es el horario inicial cuando no se informa ninguno.
const DefaultFirstDose = "08:00"

// TokenCount interpreta "1x".."5x". Devuelve 0 para "custom" o valores no numéricos.
func TokenCount(token string) int {
	token = strings.TrimSpace(strings.ToLower(token))
	n, err := strconv.Atoi(strings.TrimSuffix(token, "x"))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// GenerateTimes reparte n dosis de forma uniforme en 24h a partir de first.
// "2x" desde 08:00 => 08:00, 20:00. Para "custom" devuelve solo first.
func GenerateTimes(token, first string) ([]string, error) {
	start, err := time.Parse(dates.ClockLayout, strings.TrimSpace(first))
	if err != nil {
		return nil, dates.ErrInvalidClock
	}
	n := TokenCount(token)
	if n <= 1 {
		return []string{start.Format(dates.ClockLayout)}, nil
	}

	base := start.Hour()*60 + start.Minute()
	step := 24 * 60 / n
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		m := (base + i*step) % (24 * 60)
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out, nil
}

// normalizeTimes valida, rellena con ceros, ordena y elimina duplicados.
func normalizeTimes(in []string) ([]string, error) {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		c, err := dates.NormalizeClock(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}
