package ambiance

import (
	"context"

	"github.com/duskmoor/realmd/internal/game"
)

// Forecaster is the slice of the atmospheric manager the weather worker
// drives.
type Forecaster interface {
	Update() (weatherMsg, sunMsg string)
}

// WeatherWorker advances the sky each tick and narrates changes to the
// rooms that can see them. Weather transitions reach outdoor rooms with
// players in them; sunrise and sunset reach every occupied outdoor room
// too, since nothing indoors notices either.
type WeatherWorker struct {
	sky   Forecaster
	world World
	bus   Broadcaster
}

func NewWeatherWorker(sky Forecaster, world World, bus Broadcaster) *WeatherWorker {
	return &WeatherWorker{sky: sky, world: world, bus: bus}
}

// Tick satisfies driver.Manager.
func (w *WeatherWorker) Tick(ctx context.Context) error {
	weatherMsg, sunMsg := w.sky.Update()
	if weatherMsg == "" && sunMsg == "" {
		return nil
	}
	for _, room := range w.world.LiveRooms() {
		if !room.Spec.Outdoor || !room.HasPlayers() {
			continue
		}
		w.narrate(room, weatherMsg)
		w.narrate(room, sunMsg)
	}
	return nil
}

func (w *WeatherWorker) narrate(room *game.Room, msg string) {
	if msg == "" {
		return
	}
	w.bus.PublishRoom(string(room.Id), "weather_change", Line{Text: msg})
}
