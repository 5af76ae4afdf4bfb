package game

import (
	"fmt"

	"github.com/google/uuid"
)

// DecayStage tracks how far gone a corpse is.
type DecayStage int

const (
	DecayFresh DecayStage = iota
	DecayRotting
	DecaySkeletal
	DecayGone
)

// NewCorpse builds a corpse item for a dead character. Whatever they were
// carrying spills into the corpse, which acts as an open container until
// it decays away.
func NewCorpse(of *Character) *Item {
	corpse := &Item{
		Id:        uuid.NewString(),
		Name:      fmt.Sprintf("the corpse of %s", of.Name),
		Aliases:   []string{"corpse", "body"},
		ShortDesc: fmt.Sprintf("the corpse of %s", of.Name),
		LongDesc:  fmt.Sprintf("The corpse of %s lies here.", of.Name),
		Kind:      ItemCorpse,
		Weight:    50,
		Corpse:    &CorpseInfo{Of: of.Name, Stage: DecayFresh},
		Container: &ContainerInfo{Inventory: newInventory(0, 0)},
	}
	corpse.Container.Inventory.owner = corpse
	for _, it := range of.Inventory.Items() {
		// Capacity is unlimited, the add cannot fail.
		_ = corpse.Container.Inventory.Add(it)
	}
	return corpse
}

// AdvanceDecay ages the corpse by one tick. Once enough ticks accumulate
// the corpse moves to the next stage and its description changes; the
// final stage reports true, telling the caller to remove it from the
// world.
func (it *Item) AdvanceDecay(ticksPerStage int) bool {
	if it.Corpse == nil || it.Corpse.Stage == DecayGone {
		return it.Corpse != nil
	}
	it.Corpse.DecayTicks++
	if it.Corpse.DecayTicks < ticksPerStage {
		return false
	}
	it.Corpse.DecayTicks = 0
	it.Corpse.Stage++

	switch it.Corpse.Stage {
	case DecayRotting:
		it.Name = fmt.Sprintf("the rotting corpse of %s", it.Corpse.Of)
		it.LongDesc = fmt.Sprintf("The rotting corpse of %s lies here, buzzing with flies.", it.Corpse.Of)
	case DecaySkeletal:
		it.Name = fmt.Sprintf("the skeletal remains of %s", it.Corpse.Of)
		it.LongDesc = fmt.Sprintf("The skeletal remains of %s lie scattered here.", it.Corpse.Of)
	case DecayGone:
		return true
	}
	it.ShortDesc = it.Name
	return false
}
