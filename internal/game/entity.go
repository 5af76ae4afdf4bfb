package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Stats are the core attributes shared by players and NPCs.
type Stats struct {
	Health    int `json:"health"`
	MaxHealth int `json:"max_health"`
	Strength  int `json:"strength"`
	Agility   int `json:"agility"`
	Intellect int `json:"intellect"`
}

func (s *Stats) Validate() error {
	el := errors.NewErrorList()
	if s.MaxHealth < 1 {
		el.Add(fmt.Errorf("max health must be positive"))
	}
	if s.Strength < 1 {
		el.Add(fmt.Errorf("strength must be positive"))
	}
	return el.Err()
}

// Each point of strength carries this much weight before the character is
// too loaded down to move.
const weightPerStrength = 10.0

// Character is the shared runtime for anything that stands in a room and
// carries things.
type Character struct {
	Name      string
	Stats     Stats
	Inventory *Inventory
	RoomId    string
}

// CarryCapacity is the most weight the character can haul.
func (c *Character) CarryCapacity() float64 {
	return float64(c.Stats.Strength) * weightPerStrength
}

// Encumbered reports whether the character has reached their carry
// capacity. An encumbered character can still pick things up and put them
// down, but cannot leave the room.
func (c *Character) Encumbered() bool {
	return c.Inventory.Weight() >= c.CarryCapacity()
}

// TakeDamage reduces health, clamping at zero, and reports whether the
// character died from it.
func (c *Character) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	c.Stats.Health -= amount
	if c.Stats.Health <= 0 {
		c.Stats.Health = 0
		return true
	}
	return false
}

// Heal restores health, clamping at the maximum.
func (c *Character) Heal(amount int) {
	c.Stats.Health += amount
	if c.Stats.Health > c.Stats.MaxHealth {
		c.Stats.Health = c.Stats.MaxHealth
	}
}
