package display

import "fmt"

// ANSI color codes used for command output. Players can turn color off,
// so every caller goes through a Palette rather than embedding codes.
const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiCyan   = "\x1b[36m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiBlue   = "\x1b[34m"
)

// Palette renders semantic text styles, honoring the player's color
// preference. The zero value renders plain text.
type Palette struct {
	Enabled bool
}

func (p Palette) wrap(code, s string) string {
	if !p.Enabled || s == "" {
		return s
	}
	return fmt.Sprintf("%s%s%s", code, s, ansiReset)
}

// Title styles a room title.
func (p Palette) Title(s string) string {
	return p.wrap(ansiBold+ansiCyan, s)
}

// Speech styles spoken dialogue.
func (p Palette) Speech(s string) string {
	return p.wrap(ansiYellow, s)
}

// Quest styles quest progress notices.
func (p Palette) Quest(s string) string {
	return p.wrap(ansiGreen, s)
}

// Sky styles weather and time-of-day lines.
func (p Palette) Sky(s string) string {
	return p.wrap(ansiBlue, s)
}
