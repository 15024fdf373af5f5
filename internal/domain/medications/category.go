package medications

// Category selecciona el comportamiento de agenda del medicamento.
// @Enum continuous, period, intervals, contraceptive, prn
type Category string

const (
	CategoryContinuous    Category = "continuous"
	CategoryPeriod        Category = "period"
	CategoryIntervals     Category = "intervals"
	CategoryContraceptive Category = "contraceptive"
	CategoryPRN           Category = "prn"
)

// categoryRules agrupa todo lo que varía por categoría.
type categoryRules struct {
	// recurring: tiene recurrencia fija (start/end/interval). PRN solo existe donde hay registros.
	recurring bool
	// needsTimes: exige al menos un horario.
	needsTimes bool
	// rate: consumo medio en dosis por día.
	rate func(m Medication) float64
}

var categories = map[Category]categoryRules{
	CategoryContinuous:    {recurring: true, needsTimes: true, rate: timesPerInterval},
	CategoryPeriod:        {recurring: true, needsTimes: true, rate: timesPerInterval},
	CategoryIntervals:     {recurring: true, needsTimes: true, rate: oncePerInterval},
	CategoryContraceptive: {recurring: true, needsTimes: true, rate: constantRate(1)},
	CategoryPRN:           {recurring: false, needsTimes: false, rate: constantRate(0)},
}

// fallbackRules aplica a categorías vacías o desconocidas (registros legados).
var fallbackRules = categoryRules{recurring: true, needsTimes: false, rate: constantRate(1)}

func rulesFor(c Category) categoryRules {
	if r, ok := categories[c]; ok {
		return r
	}
	return fallbackRules
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// Recurring indica si la categoría sigue una recurrencia fija.
func (c Category) Recurring() bool {
	return rulesFor(c).recurring
}

func timesPerInterval(m Medication) float64 {
	n := len(m.Times)
	if n == 0 {
		n = 1
	}
	return float64(n) / float64(m.Interval())
}

func oncePerInterval(m Medication) float64 {
	return 1 / float64(m.Interval())
}

func constantRate(v float64) func(Medication) float64 {
	return func(Medication) float64 { return v }
}
