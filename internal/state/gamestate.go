package state

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/duskmoor/realmd/internal/atmos"
	"github.com/duskmoor/realmd/internal/game"
	"github.com/duskmoor/realmd/internal/quest"
)

// ItemState is the persisted form of one carried item. Containers nest.
type ItemState struct {
	DefId    string      `json:"def_id"`
	Contents []ItemState `json:"contents,omitempty"`
}

// ColorSettings are per-player display preferences.
type ColorSettings struct {
	Enabled bool `json:"enabled"`
}

// GameState is the complete persisted record of one player: everything
// needed to put them back in the world exactly where they left it. It
// round-trips through JSON between commands.
type GameState struct {
	Location   string         `json:"location"`
	Stats      game.Stats     `json:"stats"`
	Currency   int            `json:"currency"`
	Reputation map[string]int `json:"reputation,omitempty"`
	Inventory  []ItemState    `json:"inventory,omitempty"`
	Quests     *quest.Log     `json:"quests"`
	Exposure   atmos.Exposure `json:"exposure"`
	Colors     ColorSettings  `json:"colors"`
	Admin      bool           `json:"admin,omitempty"`
}

// NewGameState builds the starting state for a brand new player.
func NewGameState(startRoom string) *GameState {
	return &GameState{
		Location: startRoom,
		Stats: game.Stats{
			Health:    20,
			MaxHealth: 20,
			Strength:  5,
			Agility:   5,
			Intellect: 5,
		},
		Currency:   10,
		Reputation: make(map[string]int),
		Quests:     quest.NewLog(),
		Colors:     ColorSettings{Enabled: true},
	}
}

// ParseGameState decodes a state document, repairing whatever is missing
// or damaged instead of failing: a corrupt save costs the player the
// broken section, never their login.
func ParseGameState(doc string, startRoom string) *GameState {
	gs := &GameState{}
	if doc != "" {
		if err := json.Unmarshal([]byte(doc), gs); err != nil {
			slog.Warn("discarding unreadable state document", "err", err)
			return NewGameState(startRoom)
		}
	}
	gs.repair(startRoom)
	return gs
}

// repair fills any missing sections from the new-player template.
func (gs *GameState) repair(startRoom string) {
	if gs.Location == "" {
		gs.Location = startRoom
	}
	if gs.Stats.MaxHealth == 0 {
		gs.Stats = NewGameState(startRoom).Stats
	}
	if gs.Stats.Health > gs.Stats.MaxHealth {
		gs.Stats.Health = gs.Stats.MaxHealth
	}
	if gs.Reputation == nil {
		gs.Reputation = make(map[string]int)
	}
	if gs.Quests == nil {
		gs.Quests = quest.NewLog()
	}
	if gs.Quests.Active == nil {
		gs.Quests.Active = make(map[string]*quest.Quest)
	}
}

// Marshal encodes the state document.
func (gs *GameState) Marshal() (string, error) {
	data, err := json.Marshal(gs)
	if err != nil {
		return "", fmt.Errorf("encoding state: %w", err)
	}
	return string(data), nil
}

// CaptureInventory snapshots a live inventory into its persisted form.
func CaptureInventory(inv *game.Inventory) []ItemState {
	items := inv.Items()
	out := make([]ItemState, 0, len(items))
	for _, it := range items {
		is := ItemState{DefId: string(it.DefId)}
		if it.Container != nil {
			is.Contents = CaptureInventory(it.Container.Inventory)
		}
		out = append(out, is)
	}
	return out
}
