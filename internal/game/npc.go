package game

import (
	"fmt"
	"strings"

	"github.com/duskmoor/realmd/internal/atmos"
	"github.com/duskmoor/realmd/internal/storage"
	"github.com/pixil98/go-errors"
)

// WeatherLine is an NPC reaction to a particular kind of weather. Intensity
// is optional; when empty the line covers every intensity of the type.
type WeatherLine struct {
	Type      string `json:"type"`
	Intensity string `json:"intensity,omitempty"`
	Line      string `json:"line"`
}

// NpcSpec defines an NPC loaded from asset files.
type NpcSpec struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`

	// Desc is shown when a player looks at the NPC
	Desc string `json:"desc"`

	// Room is where the NPC spawns
	Room storage.Identifier `json:"room"`

	// Personality seeds dialogue generation and idle flavor
	Personality string `json:"personality"`

	// Greeting is the canned line for players who talk without saying
	// anything in particular
	Greeting string `json:"greeting"`

	// Faction is whose reputation quest rewards and misdeeds move
	Faction string `json:"faction,omitempty"`

	IdleActions  []string      `json:"idle_actions,omitempty"`
	WeatherLines []WeatherLine `json:"weather_lines,omitempty"`

	// Stock lists item definitions a merchant offers for sale
	Stock []storage.Identifier `json:"stock,omitempty"`

	Stats Stats `json:"stats"`
}

// Validate satisfies storage.ValidatingSpec
func (s *NpcSpec) Validate() error {
	el := errors.NewErrorList()
	if s.Name == "" {
		el.Add(fmt.Errorf("npc name is required"))
	}
	if len(s.Aliases) < 1 {
		el.Add(fmt.Errorf("npc alias is required"))
	}
	if s.Room == "" {
		el.Add(fmt.Errorf("npc room is required"))
	}
	el.Add(s.Stats.Validate())
	return el.Err()
}

// NPC is the runtime instance of an NPC definition.
type NPC struct {
	Character

	Id   storage.Identifier
	Spec *NpcSpec

	Exposure atmos.Exposure
}

// NewNPC materializes an NPC from its definition.
func NewNPC(id storage.Identifier, spec *NpcSpec) *NPC {
	n := &NPC{
		Character: Character{
			Name:      spec.Name,
			Stats:     spec.Stats,
			Inventory: NewInventory(0, 0),
			RoomId:    string(spec.Room),
		},
		Id:   id,
		Spec: spec,
	}
	if n.Stats.Health == 0 {
		n.Stats.Health = n.Stats.MaxHealth
	}
	return n
}

// Matches reports whether the keyword targets this NPC.
func (n *NPC) Matches(keyword string) bool {
	keyword = strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(n.Name), keyword) {
		return true
	}
	for _, a := range n.Spec.Aliases {
		if strings.EqualFold(a, keyword) {
			return true
		}
	}
	return false
}

// WeatherReaction returns the NPC's line for the current weather, if any.
// An exact type+intensity match wins over a type-only match.
func (n *NPC) WeatherReaction(st atmos.State) (string, bool) {
	var fallback string
	for _, wl := range n.Spec.WeatherLines {
		if wl.Type != string(st.Type) {
			continue
		}
		if wl.Intensity == string(st.Intensity) {
			return wl.Line, true
		}
		if wl.Intensity == "" {
			fallback = wl.Line
		}
	}
	if fallback != "" {
		return fallback, true
	}
	return "", false
}
