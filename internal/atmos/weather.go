package atmos

import (
	"math/rand"
	"sync"
)

// WeatherType is the broad class of current weather.
type WeatherType string

const (
	Clear    WeatherType = "clear"
	Windy    WeatherType = "windy"
	Rain     WeatherType = "rain"
	Storm    WeatherType = "storm"
	Snow     WeatherType = "snow"
	Sleet    WeatherType = "sleet"
	Fog      WeatherType = "fog"
	Heatwave WeatherType = "heatwave"
)

// Intensity grades how strongly the weather type manifests.
type Intensity string

const (
	IntensityNone     Intensity = "none"
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityHeavy    Intensity = "heavy"
)

// Temperature is the felt temperature band.
type Temperature string

const (
	TempCold   Temperature = "cold"
	TempChilly Temperature = "chilly"
	TempMild   Temperature = "mild"
	TempWarm   Temperature = "warm"
	TempHot    Temperature = "hot"
)

// State is a snapshot of the weather machine, serializable as part of the
// shared world document.
type State struct {
	Type           WeatherType `json:"type"`
	Intensity      Intensity   `json:"intensity"`
	Temperature    Temperature `json:"temperature"`
	Wind           Wind        `json:"wind"`
	Locked         bool        `json:"locked"`
	NextChangeTick int         `json:"next_change_tick"`
}

// Wind describes how hard the air is moving.
type Wind string

const (
	WindCalm    Wind = "calm"
	WindBreeze  Wind = "breeze"
	WindGusty   Wind = "gusty"
	WindHowling Wind = "howling"
)

// WeatherInterval is the number of ticks between transition rolls.
const WeatherInterval = 10

// Machine drives weather transitions. Transitions only happen when the
// current tick reaches the stored next-change tick, and never while the
// state is locked by an override.
type Machine struct {
	mu    sync.Mutex
	state State
	rng   *rand.Rand
}

// NewMachine starts a weather machine from a restored state. A zero state
// gets sensible defaults.
func NewMachine(st State, rng *rand.Rand) *Machine {
	if st.Type == "" {
		st.Type = Clear
	}
	if st.Intensity == "" {
		st.Intensity = IntensityNone
	}
	if st.Temperature == "" {
		st.Temperature = TempMild
	}
	if st.Wind == "" {
		st.Wind = windFor(st.Type, st.Intensity)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Machine{state: st, rng: rng}
}

// State returns a copy of the current weather state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Force pins the weather to the given type and intensity and locks the
// machine so automatic transitions stop until Unlock.
func (m *Machine) Force(t WeatherType, i Intensity) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Type = t
	m.state.Intensity = i
	m.state.Temperature = temperatureFor(t, m.state.Temperature)
	m.state.Wind = windFor(t, i)
	m.state.Locked = true
	return m.state
}

// Unlock resumes automatic transitions at the next due tick.
func (m *Machine) Unlock(tick int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Locked = false
	m.state.NextChangeTick = tick + WeatherInterval
}

// Update advances the machine for the given tick. It returns the state and,
// when a transition fired, a narration describing the change.
func (m *Machine) Update(tick int, season Season) (State, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Locked || tick < m.state.NextChangeTick {
		return m.state, "", false
	}
	m.state.NextChangeTick = tick + WeatherInterval

	prev := m.state
	// Most rolls only shift intensity; type changes are the exception and
	// become rarer the rougher the current weather already is.
	if m.rng.Float64() < 0.7 {
		m.state.Intensity = m.nextIntensity(prev.Intensity)
	} else if m.rng.Float64() < typeChangeChance(prev.Intensity) {
		next := m.nextType(prev.Type, season)
		if next != prev.Type {
			m.state.Type = next
			m.state.Intensity = initialIntensity(next, m.rng)
		}
	}
	m.state.Temperature = temperatureFor(m.state.Type, prev.Temperature)
	m.state.Wind = windFor(m.state.Type, m.state.Intensity)

	if m.state.Type == prev.Type && m.state.Intensity == prev.Intensity {
		return m.state, "", false
	}
	return m.state, transitionMessage(prev, m.state), true
}

func (m *Machine) nextIntensity(cur Intensity) Intensity {
	opts := intensityTransitions[cur]
	if len(opts) == 0 {
		return cur
	}
	return opts[m.rng.Intn(len(opts))]
}

func (m *Machine) nextType(cur WeatherType, season Season) WeatherType {
	opts := typeTransitions[cur]
	if len(opts) == 0 {
		return cur
	}
	weights := make([]float64, len(opts))
	var total float64
	for i, t := range opts {
		w := seasonWeight(t, season)
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return cur
	}
	roll := m.rng.Float64() * total
	for i, w := range weights {
		roll -= w
		if roll < 0 {
			return opts[i]
		}
	}
	return opts[len(opts)-1]
}
