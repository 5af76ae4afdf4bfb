package atmos

import (
	"fmt"
	"strings"
)

var skyByType = map[WeatherType]string{
	Clear:    "The sky is clear",
	Windy:    "Wind drives ragged clouds across the sky",
	Rain:     "Rain falls from a grey sky",
	Storm:    "Storm clouds churn overhead",
	Snow:     "Snow falls from a white sky",
	Sleet:    "Sleet slants down from low clouds",
	Fog:      "Fog hangs in the air, muting shapes and sounds",
	Heatwave: "The sun blazes in a bleached sky",
}

var intensityQualifier = map[Intensity]string{
	IntensityLight:    "lightly",
	IntensityModerate: "steadily",
	IntensityHeavy:    "heavily",
}

var temperatureLine = map[Temperature]string{
	TempCold:   "The air is bitterly cold.",
	TempChilly: "There is a chill in the air.",
	TempMild:   "The temperature is mild.",
	TempWarm:   "The air is pleasantly warm.",
	TempHot:    "The heat is stifling.",
}

var windLine = map[Wind]string{
	WindGusty:   "A gusty wind comes and goes.",
	WindHowling: "The wind howls past, snatching at anything loose.",
}

// Describe renders the weather report shown by the weather command. Indoor
// observers get an attenuated version of what filters through the walls.
func Describe(st State, tod TimeOfDay, season Season, moon MoonPhase, outdoor bool) string {
	if !outdoor {
		return describeIndoor(st)
	}

	var b strings.Builder
	sky := skyByType[st.Type]
	if q, ok := intensityQualifier[st.Intensity]; ok && precipitating(st.Type) {
		b.WriteString(fmt.Sprintf("%s, falling %s.", sky, q))
	} else {
		b.WriteString(sky + ".")
	}
	b.WriteString(" ")
	b.WriteString(temperatureLine[st.Temperature])
	if line, ok := windLine[st.Wind]; ok {
		b.WriteString(" " + line)
	}

	if tod == Night && st.Type == Clear {
		b.WriteString(fmt.Sprintf(" A %s hangs among the stars.", moon))
	}
	b.WriteString(fmt.Sprintf(" It is %s in the Season of %s.", tod, season.Title()))
	return b.String()
}

func describeIndoor(st State) string {
	switch st.Type {
	case Storm:
		return "Thunder rumbles beyond the walls, muffled but unmistakable."
	case Rain:
		return "You can hear rain drumming on the roof."
	case Windy:
		return "Wind whistles around the eaves outside."
	case Heatwave:
		return "Even indoors the air is close and hot."
	default:
		return "You are sheltered from whatever weather stirs outside."
	}
}

func precipitating(t WeatherType) bool {
	switch t {
	case Rain, Storm, Snow, Sleet:
		return true
	}
	return false
}
