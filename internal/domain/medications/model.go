package medications

import "time"

// Unit define la unidad de presentación de la dosis.
// @Enum comprimido, gota, ml, dose
type Unit string

const (
	UnitTablet Unit = "comprimido"
	UnitDrop   Unit = "gota"
	UnitML     Unit = "ml"
	UnitDose   Unit = "dose"
)

// IntervalType define los intervalos predefinidos de la categoría intervals.
type IntervalType string

const (
	IntervalWeekly         IntervalType = "weekly"
	IntervalBiweekly       IntervalType = "biweekly"
	IntervalMonthly        IntervalType = "monthly"
	IntervalQuarterly      IntervalType = "quarterly"
	IntervalQuadrimesterly IntervalType = "quadrimesterly"
	IntervalCustom         IntervalType = "custom"
)

// intervalPresets: días entre tomas por tipo de intervalo.
var intervalPresets = map[IntervalType]int{
	IntervalWeekly:         7,
	IntervalBiweekly:       15,
	IntervalMonthly:        30,
	IntervalQuarterly:      90,
	IntervalQuadrimesterly: 120,
}

// ContraceptiveType es solo informativo; no altera la agenda.
type ContraceptiveType string

const (
	ContraceptiveDaily        ContraceptiveType = "daily"
	Contraceptive21x7         ContraceptiveType = "21_7"
	Contraceptive24x4         ContraceptiveType = "24_4"
	Contraceptive28Continuous ContraceptiveType = "28_continuous"
)

// Palette de colores asignados en orden a los medicamentos nuevos.
var Palette = []string{
	"bg-blue-500",
	"bg-green-500",
	"bg-purple-500",
	"bg-rose-500",
	"bg-amber-500",
	"bg-cyan-500",
	"bg-indigo-500",
}

// Medication representa un régimen de medicación de un usuario.
type Medication struct {
	ID     string
	UserID string

	Name   string
	Dosage string
	Unit   Unit

	Category          Category
	DosesToken        string // 1x..5x o custom
	IntervalDays      int    // >= 1
	IntervalType      IntervalType
	ContraceptiveType ContraceptiveType
	Times             []string // HH:MM ordenados

	StartDate    *time.Time
	EndDate      *time.Time // inclusiva; nil = sin fin
	DurationDays int        // solo period

	MaxDosesPerDay int // solo prn, informativo

	TotalStock   int
	CurrentStock int
	ExpiryDate   *time.Time

	Notes string
	Color string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval devuelve intervalDays normalizado (mínimo 1).
func (m Medication) Interval() int {
	if m.IntervalDays < 1 {
		return 1
	}
	return m.IntervalDays
}

func (m Medication) IsPRN() bool {
	return m.Category == CategoryPRN
}
