package game

import "github.com/duskmoor/realmd/internal/atmos"

// Player is the in-world runtime for a connected (or recently connected)
// player character. Durable progress lives in the player's saved state
// document; this struct is what the simulation manipulates between saves.
type Player struct {
	Character

	Username string
	UserId   string

	Currency   int
	Reputation map[string]int

	Exposure atmos.Exposure

	// Admin gates the weather override and similar commands.
	Admin bool
}

// NewPlayer builds a runtime player with an unbounded personal inventory;
// encumbrance, not a slot count, is what limits carrying.
func NewPlayer(username, userId string) *Player {
	return &Player{
		Character: Character{
			Name:      username,
			Inventory: NewInventory(0, 0),
		},
		Username:   username,
		UserId:     userId,
		Reputation: make(map[string]int),
	}
}

// AdjustReputation shifts standing with a faction, creating it at zero
// first if the player has never dealt with them.
func (p *Player) AdjustReputation(faction string, delta int) int {
	p.Reputation[faction] += delta
	return p.Reputation[faction]
}
