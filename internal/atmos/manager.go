package atmos

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// Snapshot bundles everything room descriptions and ambiance need to know
// about the sky at one instant.
type Snapshot struct {
	Tick      int
	TimeOfDay TimeOfDay
	Season    Season
	Moon      MoonPhase
	Weather   State
	DayOfYear int
}

// Doc is the persisted form of the simulator, stored in the shared world
// document so the calendar survives restarts.
type Doc struct {
	Epoch   time.Time `json:"epoch"`
	Weather State     `json:"weather"`
}

// Manager owns the clock, lunar cycle, and weather machine, and detects
// sunrise and sunset crossings between updates.
type Manager struct {
	mu      sync.Mutex
	clock   *Clock
	machine *Machine
	rng     *rand.Rand

	lastTimeOfDay TimeOfDay
}

// NewManager restores a simulator from a persisted document. A zero-valued
// doc starts a brand new world.
func NewManager(doc Doc, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	clock := NewClock(doc.Epoch)
	m := &Manager{
		clock:   clock,
		machine: NewMachine(doc.Weather, rng),
		rng:     rng,
	}
	m.lastTimeOfDay = clock.TimeOfDay(SeasonForDay(clock.DayOfYear()))
	return m
}

// Doc returns the state to persist.
func (m *Manager) Doc() Doc {
	return Doc{Epoch: m.clock.Epoch(), Weather: m.machine.State()}
}

// Snapshot returns the current sky without advancing anything.
func (m *Manager) Snapshot() Snapshot {
	tick := m.clock.Tick()
	day := m.clock.DayOfYear()
	season := SeasonForDay(day)
	return Snapshot{
		Tick:      tick,
		TimeOfDay: TimeOfDayAt(tick%MinutesPerDay, season),
		Season:    season,
		Moon:      MoonPhaseForDay(m.clock.Minutes() / MinutesPerDay),
		Weather:   m.machine.State(),
		DayOfYear: day,
	}
}

// Update advances the weather machine and reports broadcast-worthy changes:
// a weather transition narration and/or a sunrise or sunset line. Empty
// strings mean nothing happened.
func (m *Manager) Update() (weatherMsg, sunMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.Snapshot()
	_, msg, changed := m.machine.Update(snap.Tick, snap.Season)
	if changed {
		slog.Debug("weather transition",
			"type", m.machine.State().Type,
			"intensity", m.machine.State().Intensity,
			"tick", snap.Tick)
		weatherMsg = msg
	}

	// Sunrise and sunset fire exactly once, on the band crossing.
	tod := snap.TimeOfDay
	if tod != m.lastTimeOfDay {
		switch {
		case tod == Dawn && m.lastTimeOfDay == Night:
			sunMsg = "The eastern sky lightens as dawn breaks over Duskmoor."
		case tod == Day && m.lastTimeOfDay == Dawn:
			sunMsg = "The sun clears the horizon, flooding the land with light."
		case tod == Dusk && m.lastTimeOfDay == Day:
			sunMsg = "The sun sinks low, staining the sky in reds and golds."
		case tod == Night && m.lastTimeOfDay == Dusk:
			sunMsg = "The last light fades and night settles over the land."
		}
		m.lastTimeOfDay = tod
	}
	return weatherMsg, sunMsg
}

// ForceWeather pins the weather for admins and locks out automatic changes.
func (m *Manager) ForceWeather(t WeatherType, i Intensity) State {
	return m.machine.Force(t, i)
}

// UnlockWeather resumes the automatic machine.
func (m *Manager) UnlockWeather() {
	m.machine.Unlock(m.clock.Tick())
}

// AmbianceLine proxies the message library with the manager's rng.
func (m *Manager) AmbianceLine() (string, bool) {
	snap := m.Snapshot()
	m.mu.Lock()
	defer m.mu.Unlock()
	return AmbianceLine(snap.Weather, snap.TimeOfDay, m.rng)
}

// WeatherState returns a snapshot of the weather machine for callers that
// match against asset data.
func (m *Manager) WeatherState() State {
	return m.machine.State()
}

// Describe renders the weather report for an observer.
func (m *Manager) Describe(outdoor bool) string {
	snap := m.Snapshot()
	return Describe(snap.Weather, snap.TimeOfDay, snap.Season, snap.Moon, outdoor)
}
