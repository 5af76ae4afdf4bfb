package atmos

import "math/rand"

type messageKey struct {
	Type      WeatherType
	Intensity Intensity
}

// Periodic ambient weather lines, sent to outdoor rooms between transitions.
// Keys without an entry simply produce no message; silence is fine.
var weatherAmbiance = map[messageKey][]string{
	{Clear, IntensityNone}: {
		"Sunlight pours down from a cloudless sky.",
		"The air is still and the sky utterly clear.",
	},
	{Windy, IntensityLight}: {
		"A light breeze stirs the dust at your feet.",
		"Leaves skitter past on a gentle wind.",
	},
	{Windy, IntensityModerate}: {
		"The wind gusts hard enough to make you brace against it.",
	},
	{Windy, IntensityHeavy}: {
		"A howling gale tears at everything not nailed down.",
	},
	{Rain, IntensityLight}: {
		"A fine drizzle mists the air.",
		"Light rain patters softly around you.",
	},
	{Rain, IntensityModerate}: {
		"Steady rain drums on rooftops and puddles alike.",
	},
	{Rain, IntensityHeavy}: {
		"Rain hammers down in sheets, soaking everything.",
	},
	{Storm, IntensityModerate}: {
		"Lightning flickers behind the clouds, followed by rolling thunder.",
	},
	{Storm, IntensityHeavy}: {
		"A deafening thunderclap splits the sky overhead.",
		"The storm rages, wind and rain lashing in every direction.",
	},
	{Snow, IntensityLight}: {
		"Fat snowflakes drift lazily to the ground.",
	},
	{Snow, IntensityModerate}: {
		"Snow falls steadily, muffling every sound.",
	},
	{Snow, IntensityHeavy}: {
		"Driving snow whites out everything beyond arm's reach.",
	},
	{Sleet, IntensityLight}: {
		"Icy drops sting where they strike bare skin.",
	},
	{Sleet, IntensityModerate}: {
		"Sleet rattles off every hard surface.",
	},
	{Fog, IntensityNone}: {
		"Thin mist curls along the ground.",
	},
	{Fog, IntensityLight}: {
		"The fog thickens, dimming the light.",
	},
	{Heatwave, IntensityNone}: {
		"Heat shimmers above the ground in wavering lines.",
		"The oppressive heat makes every movement an effort.",
	},
}

var nightAmbiance = []string{
	"Somewhere in the dark, a night bird calls.",
	"The darkness presses close around the edges of your sight.",
}

// AmbianceLine picks a periodic line for the current weather, or reports
// that there is nothing to say.
func AmbianceLine(st State, tod TimeOfDay, rng *rand.Rand) (string, bool) {
	lines := weatherAmbiance[messageKey{st.Type, st.Intensity}]
	if len(lines) == 0 && tod == Night {
		lines = nightAmbiance
	}
	if len(lines) == 0 {
		return "", false
	}
	return lines[rng.Intn(len(lines))], true
}
