package world

import "context"

// DecayWorker rots corpses a little further each tick.
type DecayWorker struct {
	world         *Manager
	ticksPerStage int
}

func NewDecayWorker(world *Manager, ticksPerStage int) *DecayWorker {
	if ticksPerStage < 1 {
		ticksPerStage = 1
	}
	return &DecayWorker{world: world, ticksPerStage: ticksPerStage}
}

// Tick satisfies driver.Manager.
func (w *DecayWorker) Tick(ctx context.Context) error {
	w.world.DecayCorpses(w.ticksPerStage)
	return nil
}
