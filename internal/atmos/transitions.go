package atmos

import (
	"fmt"
	"math/rand"
)

// typeTransitions lists the weather types reachable from each type. Weather
// never jumps straight between extremes; a storm has to pass through rain,
// a heatwave only breaks into clear or windy skies.
var typeTransitions = map[WeatherType][]WeatherType{
	Clear:    {Clear, Windy, Fog, Heatwave},
	Windy:    {Windy, Clear, Fog, Storm},
	Fog:      {Fog, Clear, Windy, Rain, Snow, Sleet},
	Rain:     {Rain, Fog, Storm, Sleet},
	Storm:    {Storm, Rain, Windy},
	Snow:     {Snow, Fog, Sleet},
	Sleet:    {Sleet, Snow, Rain, Fog},
	Heatwave: {Heatwave, Clear, Windy},
}

// AllowedNext returns the legal successor types for a weather type.
func AllowedNext(t WeatherType) []WeatherType {
	opts := typeTransitions[t]
	out := make([]WeatherType, len(opts))
	copy(out, opts)
	return out
}

// intensityTransitions lists the intensities one step away from each level.
var intensityTransitions = map[Intensity][]Intensity{
	IntensityNone:     {IntensityNone, IntensityLight},
	IntensityLight:    {IntensityNone, IntensityLight, IntensityModerate},
	IntensityModerate: {IntensityLight, IntensityModerate, IntensityHeavy},
	IntensityHeavy:    {IntensityModerate, IntensityHeavy},
}

// typeChangeChance is the probability of the type itself changing, given
// the current intensity. Calm weather drifts; heavy weather persists.
func typeChangeChance(i Intensity) float64 {
	switch i {
	case IntensityNone:
		return 0.5
	case IntensityLight:
		return 0.3
	case IntensityModerate, IntensityHeavy:
		return 0.1
	}
	return 0.2
}

// seasonWeight biases the candidate pool toward seasonal weather.
func seasonWeight(t WeatherType, season Season) float64 {
	w := 1.0
	switch season {
	case Winter:
		switch t {
		case Snow, Sleet:
			w = 1.5
		case Heatwave:
			w = 0.1
		}
	case Summer:
		switch t {
		case Heatwave, Clear:
			w = 1.3
		case Snow, Sleet:
			w = 0.1
		}
	case Spring:
		if t == Rain {
			w = 1.4
		}
	case Autumn:
		switch t {
		case Windy, Rain:
			w = 1.3
		}
	}
	return w
}

// initialIntensity picks the intensity a fresh weather type starts at.
func initialIntensity(t WeatherType, rng *rand.Rand) Intensity {
	switch t {
	case Clear, Heatwave:
		return IntensityNone
	case Storm:
		if rng.Float64() < 0.5 {
			return IntensityHeavy
		}
		return IntensityModerate
	default:
		if rng.Float64() < 0.6 {
			return IntensityLight
		}
		return IntensityModerate
	}
}

// temperatureFor derives the felt temperature band from the weather type,
// nudged by where the temperature already was.
func temperatureFor(t WeatherType, prev Temperature) Temperature {
	switch t {
	case Heatwave:
		return TempHot
	case Snow:
		return TempCold
	case Sleet:
		return TempChilly
	case Storm, Rain, Fog:
		if prev == TempHot || prev == TempWarm {
			return TempMild
		}
		return TempChilly
	default:
		if prev == TempCold {
			return TempChilly
		}
		return TempMild
	}
}

// windFor derives the wind descriptor from the weather type and intensity.
func windFor(t WeatherType, i Intensity) Wind {
	switch t {
	case Storm:
		return WindHowling
	case Windy:
		if i == IntensityHeavy {
			return WindHowling
		}
		return WindGusty
	case Fog, Heatwave:
		return WindCalm
	default:
		if i == IntensityHeavy {
			return WindGusty
		}
		return WindBreeze
	}
}

var arrivalMessages = map[WeatherType]string{
	Clear:    "The sky clears, leaving it bright and open.",
	Windy:    "A restless wind picks up, tugging at cloaks and shutters.",
	Rain:     "Rain begins to fall in a steady patter.",
	Storm:    "Thunder rolls in the distance as a storm sweeps overhead.",
	Snow:     "Snowflakes begin drifting down from a leaden sky.",
	Sleet:    "Stinging sleet starts to fall, half rain and half ice.",
	Fog:      "A thick fog rolls in, swallowing the distance.",
	Heatwave: "The air turns thick and shimmering with oppressive heat.",
}

// transitionMessage narrates a weather change for broadcasting.
func transitionMessage(from, to State) string {
	if to.Type != from.Type {
		if msg, ok := arrivalMessages[to.Type]; ok {
			return msg
		}
		return fmt.Sprintf("The weather shifts; %s gives way to %s.", from.Type, to.Type)
	}
	switch {
	case intensityRank(to.Intensity) > intensityRank(from.Intensity):
		return fmt.Sprintf("The %s intensifies.", to.Type)
	case intensityRank(to.Intensity) < intensityRank(from.Intensity):
		return fmt.Sprintf("The %s eases off a little.", to.Type)
	}
	return ""
}

func intensityRank(i Intensity) int {
	switch i {
	case IntensityLight:
		return 1
	case IntensityModerate:
		return 2
	case IntensityHeavy:
		return 3
	}
	return 0
}
