package engine

import (
	"fmt"
	"strings"

	"github.com/duskmoor/realmd/internal/atmos"
	"github.com/duskmoor/realmd/internal/display"
)

func (e *Engine) handleWeather(req *request) error {
	pal := display.Palette{Enabled: req.gs.Colors.Enabled}

	if len(req.args) == 0 {
		req.reply(pal.Sky(e.sky.Describe(req.room.Spec.Outdoor)))
		if msg, ok := req.player.Exposure.Discomfort(); ok {
			req.reply(msg)
		}
		return nil
	}

	// Subcommands are for admins: weather set <type> [intensity], weather unlock.
	if !req.player.Admin {
		return NewUserError("Only the weather itself decides that.")
	}

	switch strings.ToLower(req.args[0]) {
	case "set":
		if len(req.args) < 2 {
			return NewUserError("Set the weather to what? Try 'weather set storm heavy'.")
		}
		wt := atmos.WeatherType(strings.ToLower(req.args[1]))
		if !validWeatherType(wt) {
			return NewUserError(fmt.Sprintf("%q isn't a kind of weather.", req.args[1]))
		}
		intensity := atmos.IntensityModerate
		if len(req.args) >= 3 {
			intensity = atmos.Intensity(strings.ToLower(req.args[2]))
			if !validIntensity(intensity) {
				return NewUserError(fmt.Sprintf("%q isn't an intensity.", req.args[2]))
			}
		}
		st := e.sky.ForceWeather(wt, intensity)
		req.reply(fmt.Sprintf("The weather is now %s (%s) and locked against change.", st.Type, st.Intensity))
		return nil

	case "unlock":
		e.sky.UnlockWeather()
		req.reply("The weather will drift on its own again.")
		return nil

	default:
		return NewUserError("Try 'weather', 'weather set <type> [intensity]', or 'weather unlock'.")
	}
}

func validWeatherType(t atmos.WeatherType) bool {
	switch t {
	case atmos.Clear, atmos.Windy, atmos.Rain, atmos.Storm,
		atmos.Snow, atmos.Sleet, atmos.Fog, atmos.Heatwave:
		return true
	}
	return false
}

func validIntensity(i atmos.Intensity) bool {
	switch i {
	case atmos.IntensityNone, atmos.IntensityLight, atmos.IntensityModerate, atmos.IntensityHeavy:
		return true
	}
	return false
}

func (e *Engine) handleTime(req *request) error {
	snap := e.sky.Snapshot()
	pal := display.Palette{Enabled: req.gs.Colors.Enabled}

	req.reply(pal.Sky(fmt.Sprintf("It is %s, %s.", snap.TimeOfDay, atmos.CalendarLine(snap.DayOfYear))))
	if snap.TimeOfDay == atmos.Night {
		req.reply(fmt.Sprintf("A %s rides overhead.", snap.Moon))
	}
	return nil
}

func (e *Engine) handleColor(req *request) error {
	if len(req.args) < 1 {
		state := "off"
		if req.gs.Colors.Enabled {
			state = "on"
		}
		req.reply(fmt.Sprintf("Color is %s. Use 'color on' or 'color off'.", state))
		return nil
	}
	switch strings.ToLower(req.args[0]) {
	case "on":
		req.gs.Colors.Enabled = true
		req.reply("Color enabled.")
	case "off":
		req.gs.Colors.Enabled = false
		req.reply("Color disabled.")
	default:
		return NewUserError("Use 'color on' or 'color off'.")
	}
	return nil
}

func (e *Engine) handleHelp(req *request) error {
	req.reply(
		"Commands:",
		"  look [target]        - examine your surroundings or something in them",
		"  go <direction>       - move (also: north, south, east, west, up, down)",
		"  take / drop <item>   - pick things up or put them down",
		"  put <item> in <bag>  - stow something in a container",
		"  give <item> to <npc> - hand something over",
		"  say [to <npc>] <msg> - speak aloud, or to someone",
		"  talk <npc>           - strike up a conversation",
		"  inventory            - what you're carrying",
		"  quests / accept / complete - quest journal and turn-ins",
		"  weather, time        - the sky and the calendar",
		"  color on|off         - toggle color",
	)
	return nil
}
