package atmos

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestMachine_TransitionsStayLegal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	m := NewMachine(State{}, rng)

	tick := 0
	for step := 0; step < 500; step++ {
		prev := m.State()
		tick += WeatherInterval
		next, _, changed := m.Update(tick, SeasonForDay((tick/MinutesPerDay)%DaysPerYear))

		if changed && next.Type != prev.Type {
			if !slices.Contains(AllowedNext(prev.Type), next.Type) {
				t.Fatalf("illegal transition %s -> %s", prev.Type, next.Type)
			}
		}
		if changed && next.Type == prev.Type {
			if !slices.Contains(intensityTransitions[prev.Intensity], next.Intensity) {
				t.Fatalf("intensity jumped %s -> %s", prev.Intensity, next.Intensity)
			}
		}
	}
}

func TestMachine_NoChangeBeforeDueTick(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := NewMachine(State{Type: Rain, Intensity: IntensityLight, NextChangeTick: 100}, rng)

	for tick := 0; tick < 100; tick++ {
		_, _, changed := m.Update(tick, Spring)
		if changed {
			t.Fatalf("transition fired at tick %d, before due tick 100", tick)
		}
	}
}

func TestMachine_LockSuppressesTransitions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := NewMachine(State{}, rng)

	st := m.Force(Storm, IntensityHeavy)
	testutil.AssertEqual(t, "type", st.Type, Storm)
	testutil.AssertEqual(t, "intensity", st.Intensity, IntensityHeavy)
	testutil.AssertEqual(t, "locked", st.Locked, true)

	for tick := 0; tick < 1000; tick += WeatherInterval {
		next, _, changed := m.Update(tick, Winter)
		if changed {
			t.Fatal("locked machine changed state")
		}
		testutil.AssertEqual(t, "type", next.Type, Storm)
	}

	m.Unlock(1000)
	testutil.AssertEqual(t, "locked", m.State().Locked, false)
	testutil.AssertEqual(t, "next change tick", m.State().NextChangeTick, 1000+WeatherInterval)
}

func TestMachine_ZeroStateDefaults(t *testing.T) {
	m := NewMachine(State{}, rand.New(rand.NewSource(0)))
	st := m.State()
	testutil.AssertEqual(t, "type", st.Type, Clear)
	testutil.AssertEqual(t, "intensity", st.Intensity, IntensityNone)
	testutil.AssertEqual(t, "temperature", st.Temperature, TempMild)
}

func TestSeasonWeight(t *testing.T) {
	tests := map[string]struct {
		weather WeatherType
		season  Season
		exp     float64
	}{
		"snow favored in winter":      {weather: Snow, season: Winter, exp: 1.5},
		"heatwave rare in winter":     {weather: Heatwave, season: Winter, exp: 0.1},
		"heatwave favored in summer":  {weather: Heatwave, season: Summer, exp: 1.3},
		"snow rare in summer":         {weather: Snow, season: Summer, exp: 0.1},
		"rain favored in spring":      {weather: Rain, season: Spring, exp: 1.4},
		"wind favored in autumn":      {weather: Windy, season: Autumn, exp: 1.3},
		"fog neutral everywhere":      {weather: Fog, season: Summer, exp: 1.0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "season weight", seasonWeight(tt.weather, tt.season), tt.exp)
		})
	}
}

func TestWindFor(t *testing.T) {
	tests := map[string]struct {
		weather   WeatherType
		intensity Intensity
		exp       Wind
	}{
		"storms always howl":     {weather: Storm, intensity: IntensityLight, exp: WindHowling},
		"heavy wind howls":       {weather: Windy, intensity: IntensityHeavy, exp: WindHowling},
		"light wind gusts":       {weather: Windy, intensity: IntensityLight, exp: WindGusty},
		"fog stills the air":     {weather: Fog, intensity: IntensityModerate, exp: WindCalm},
		"clear skies breeze":     {weather: Clear, intensity: IntensityNone, exp: WindBreeze},
		"heavy rain drives wind": {weather: Rain, intensity: IntensityHeavy, exp: WindGusty},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "wind for", windFor(tt.weather, tt.intensity), tt.exp)
		})
	}
}

func TestTransitionMessage(t *testing.T) {
	tests := map[string]struct {
		from State
		to   State
		exp  string
	}{
		"type change narrates arrival": {
			from: State{Type: Clear, Intensity: IntensityNone},
			to:   State{Type: Rain, Intensity: IntensityLight},
			exp:  "Rain begins to fall in a steady patter.",
		},
		"intensity up": {
			from: State{Type: Snow, Intensity: IntensityLight},
			to:   State{Type: Snow, Intensity: IntensityHeavy},
			exp:  "The snow intensifies.",
		},
		"intensity down": {
			from: State{Type: Storm, Intensity: IntensityHeavy},
			to:   State{Type: Storm, Intensity: IntensityModerate},
			exp:  "The storm eases off a little.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "transition message", transitionMessage(tt.from, tt.to), tt.exp)
		})
	}
}

func TestExposure_OutdoorGains(t *testing.T) {
	rates := DefaultExposureRates()

	e := &Exposure{}
	e.Apply(State{Type: Rain, Intensity: IntensityHeavy, Temperature: TempChilly}, true, rates)
	testutil.AssertEqual(t, "wetness", e.Wetness, 6)
	testutil.AssertEqual(t, "heat", e.Heat, 0)

	e = &Exposure{}
	e.Apply(State{Type: Heatwave, Temperature: TempHot}, true, rates)
	testutil.AssertEqual(t, "heat", e.Heat, 1)

	e = &Exposure{}
	e.Apply(State{Type: Snow, Intensity: IntensityModerate, Temperature: TempCold}, true, rates)
	testutil.AssertEqual(t, "cold", e.Cold, 3)
}

func TestExposure_GaugesClampAtTen(t *testing.T) {
	e := &Exposure{Wetness: 9}
	e.Apply(State{Type: Storm, Intensity: IntensityHeavy, Temperature: TempChilly}, true, DefaultExposureRates())
	testutil.AssertEqual(t, "wetness", e.Wetness, 10)
}

func TestExposure_IndoorDecay(t *testing.T) {
	rates := DefaultExposureRates()
	st := State{Type: Storm, Intensity: IntensityHeavy, Temperature: TempChilly}

	e := &Exposure{Wetness: 6, Cold: 6, Heat: 4}
	e.Apply(st, false, rates)
	testutil.AssertEqual(t, "wetness", e.Wetness, 4)
	testutil.AssertEqual(t, "heat", e.Heat, 2)
	// Still wet, so the cold only recedes slowly.
	testutil.AssertEqual(t, "cold", e.Cold, 5)

	e = &Exposure{Cold: 6}
	e.Apply(st, false, rates)
	testutil.AssertEqual(t, "cold", e.Cold, 4)
}

func TestExposure_Discomfort(t *testing.T) {
	tests := map[string]struct {
		exposure Exposure
		expMsg   bool
	}{
		"comfortable":   {exposure: Exposure{Wetness: 2, Cold: 1}, expMsg: false},
		"soaked":        {exposure: Exposure{Wetness: 8}, expMsg: true},
		"freezing":      {exposure: Exposure{Cold: 7}, expMsg: true},
		"overheating":   {exposure: Exposure{Heat: 5}, expMsg: true},
		"wet and cold":  {exposure: Exposure{Wetness: 5, Cold: 9}, expMsg: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, ok := tt.exposure.Discomfort()
			testutil.AssertEqual(t, "ok", ok, tt.expMsg)
		})
	}
}
