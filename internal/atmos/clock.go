package atmos

import "time"

// Game time runs at a fixed acceleration over wall-clock time:
// 1 real minute = 12 game minutes, so one game day lasts 2 real hours.
const (
	TimeRatio     = 12
	MinutesPerDay = 24 * 60
	DaysPerYear   = 120
)

// TimeOfDay is the coarse daylight band used by descriptions and ambiance.
type TimeOfDay string

const (
	Night TimeOfDay = "night"
	Dawn  TimeOfDay = "dawn"
	Day   TimeOfDay = "day"
	Dusk  TimeOfDay = "dusk"
)

// Clock converts elapsed wall-clock time into in-game time. The zero of the
// game calendar is the epoch the world was first started; persisting and
// restoring the epoch keeps time continuous across restarts.
type Clock struct {
	epoch time.Time
	now   func() time.Time
}

func NewClock(epoch time.Time) *Clock {
	if epoch.IsZero() {
		epoch = time.Now()
	}
	return &Clock{epoch: epoch, now: time.Now}
}

// Epoch returns the wall-clock instant game time is measured from.
func (c *Clock) Epoch() time.Time {
	return c.epoch
}

// Minutes returns total in-game minutes elapsed since the epoch.
func (c *Clock) Minutes() int {
	elapsed := c.now().Sub(c.epoch)
	return int(elapsed.Minutes() * TimeRatio)
}

// Tick returns the current simulation tick. One tick is one game minute.
func (c *Clock) Tick() int {
	return c.Minutes()
}

// MinuteOfDay returns minutes from midnight (0-1439).
func (c *Clock) MinuteOfDay() int {
	return c.Minutes() % MinutesPerDay
}

// DayOfYear returns the current day of the game year (0-based).
func (c *Clock) DayOfYear() int {
	return (c.Minutes() / MinutesPerDay) % DaysPerYear
}

// Sunrise and sunset shift with the season.
var (
	sunriseMinutes = map[Season]int{
		Spring: 6*60 + 30,
		Summer: 6 * 60,
		Autumn: 6*60 + 30,
		Winter: 7 * 60,
	}
	sunsetMinutes = map[Season]int{
		Spring: 19*60 + 30,
		Summer: 20 * 60,
		Autumn: 19*60 + 30,
		Winter: 19 * 60,
	}
)

// SunTimes returns the season's sunrise and sunset as minutes from midnight.
func SunTimes(season Season) (sunrise, sunset int) {
	sunrise, ok := sunriseMinutes[season]
	if !ok {
		sunrise = 6 * 60
	}
	sunset, ok = sunsetMinutes[season]
	if !ok {
		sunset = 20 * 60
	}
	return sunrise, sunset
}

// TimeOfDayAt maps a minute-of-day to its daylight band. Dawn and dusk are
// the 30 minutes either side of sunrise and sunset.
func TimeOfDayAt(minuteOfDay int, season Season) TimeOfDay {
	sunrise, sunset := SunTimes(season)

	dawnStart := max(0, sunrise-30)
	dawnEnd := sunrise + 30
	duskStart := max(0, sunset-30)
	duskEnd := min(MinutesPerDay, sunset+30)

	switch {
	case minuteOfDay >= dawnStart && minuteOfDay < dawnEnd:
		return Dawn
	case minuteOfDay >= dawnEnd && minuteOfDay < duskStart:
		return Day
	case minuteOfDay >= duskStart && minuteOfDay < duskEnd:
		return Dusk
	default:
		return Night
	}
}

// TimeOfDay returns the clock's current daylight band.
func (c *Clock) TimeOfDay(season Season) TimeOfDay {
	return TimeOfDayAt(c.MinuteOfDay(), season)
}
