package atmos

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Season identifies one quarter of the 120-day game year.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

const (
	SeasonLength = DaysPerYear / 4
	MonthLength  = 10
)

// Seasons lists the seasons in calendar order.
var Seasons = []Season{Spring, Summer, Autumn, Winter}

// Twelve months of ten days each, running from early spring.
var monthNames = []string{
	"Firstmoon",
	"Rainmarch",
	"Greentide",
	"Highsun",
	"Emberwane",
	"Goldenfall",
	"Harvestend",
	"Mistveil",
	"Fallowdeep",
	"Frostwake",
	"Deepwinter",
	"Lastfrost",
}

var titleCaser = cases.Title(language.English)

// SeasonForDay returns the season for a 0-based day of year.
func SeasonForDay(day int) Season {
	return Seasons[(day/SeasonLength)%len(Seasons)]
}

// MonthForDay returns the month name for a 0-based day of year.
func MonthForDay(day int) string {
	return monthNames[(day/MonthLength)%len(monthNames)]
}

// DayOfMonth returns the 1-based day within the month.
func DayOfMonth(day int) int {
	return day%MonthLength + 1
}

// Title returns the season name capitalized for display.
func (s Season) Title() string {
	return titleCaser.String(string(s))
}

// CalendarLine renders the date for a 0-based day of year, e.g.
// "the 3rd of Rainmarch, in the Season of Spring".
func CalendarLine(day int) string {
	return fmt.Sprintf("the %s of %s, in the Season of %s",
		ordinal(DayOfMonth(day)), MonthForDay(day), SeasonForDay(day).Title())
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 10 {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	if n%100 >= 11 && n%100 <= 13 {
		suffix = "th"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
