package atmos

// MoonPhase is one of the eight phases of the 30-day lunar cycle.
type MoonPhase string

const (
	NewMoon        MoonPhase = "new moon"
	WaxingCrescent MoonPhase = "waxing crescent"
	FirstQuarter   MoonPhase = "first quarter"
	WaxingGibbous  MoonPhase = "waxing gibbous"
	FullMoon       MoonPhase = "full moon"
	WaningGibbous  MoonPhase = "waning gibbous"
	LastQuarter    MoonPhase = "last quarter"
	WaningCrescent MoonPhase = "waning crescent"
)

const LunarCycleDays = 30

var moonPhases = []MoonPhase{
	NewMoon,
	WaxingCrescent,
	FirstQuarter,
	WaxingGibbous,
	FullMoon,
	WaningGibbous,
	LastQuarter,
	WaningCrescent,
}

// MoonPhaseForDay returns the phase for an absolute day count since the
// epoch. The cycle divides evenly into eight phases of 3.75 days.
func MoonPhaseForDay(day int) MoonPhase {
	dayInCycle := day % LunarCycleDays
	idx := dayInCycle * len(moonPhases) / LunarCycleDays
	return moonPhases[idx]
}

// Luminous reports whether the phase sheds enough light to see by at night.
func (p MoonPhase) Luminous() bool {
	switch p {
	case WaxingGibbous, FullMoon, WaningGibbous:
		return true
	}
	return false
}
