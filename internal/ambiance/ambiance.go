package ambiance

import (
	"context"
	"math/rand"
	"time"

	"github.com/duskmoor/realmd/internal/atmos"
	"github.com/duskmoor/realmd/internal/game"
)

// Band is a randomized interval: each firing schedules the next one at a
// uniformly random delay between Min and Max.
type Band struct {
	Min time.Duration
	Max time.Duration
}

func (b Band) next(rng *rand.Rand) time.Duration {
	if b.Max <= b.Min {
		return b.Min
	}
	return b.Min + time.Duration(rng.Int63n(int64(b.Max-b.Min)))
}

// Config tunes how often each kind of background activity fires.
type Config struct {
	Npc     Band
	Ambient Band
}

func DefaultConfig() Config {
	return Config{
		Npc:     Band{Min: 30 * time.Second, Max: 60 * time.Second},
		Ambient: Band{Min: 2 * time.Minute, Max: 4 * time.Minute},
	}
}

// Broadcaster is the room-scoped publish the worker needs.
type Broadcaster interface {
	PublishRoom(roomId, eventType string, data any)
}

// World is the slice of the world manager the worker reads.
type World interface {
	LiveRooms() []*game.Room
	GetNPC(id string) *game.NPC
}

// Sky supplies the weather-driven ambiance material.
type Sky interface {
	AmbianceLine() (string, bool)
	WeatherState() atmos.State
}

// Line is the payload of ambient broadcasts.
type Line struct {
	Text string `json:"text"`
}

type roomTimers struct {
	npcDue     time.Time
	ambientDue time.Time
}

// Worker emits background activity into occupied rooms: ambient
// description lines and NPC idle behavior, each on its own per-room
// randomized timer. At most one message of each kind goes to a room per
// cycle, and empty rooms get nothing at all.
type Worker struct {
	cfg   Config
	world World
	sky   Sky
	bus   Broadcaster

	rng    *rand.Rand
	now    func() time.Time
	timers map[string]*roomTimers
}

func NewWorker(cfg Config, world World, sky Sky, bus Broadcaster, rng *rand.Rand) *Worker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Worker{
		cfg:    cfg,
		world:  world,
		sky:    sky,
		bus:    bus,
		rng:    rng,
		now:    time.Now,
		timers: make(map[string]*roomTimers),
	}
}

// Tick satisfies driver.Manager.
func (w *Worker) Tick(ctx context.Context) error {
	now := w.now()
	for _, room := range w.world.LiveRooms() {
		if !room.HasPlayers() {
			continue
		}
		t := w.timersFor(string(room.Id), now)

		if !now.Before(t.ambientDue) {
			t.ambientDue = now.Add(w.cfg.Ambient.next(w.rng))
			if line, ok := w.ambientLine(room); ok {
				w.bus.PublishRoom(string(room.Id), "ambiance", Line{Text: line})
			}
		}
		if !now.Before(t.npcDue) {
			t.npcDue = now.Add(w.cfg.Npc.next(w.rng))
			if line, ok := w.npcLine(room); ok {
				w.bus.PublishRoom(string(room.Id), "npc_action", Line{Text: line})
			}
		}
	}
	return nil
}

// timersFor returns the room's timers, creating them on first sight. A
// newly tracked room starts with both timers a full random interval out,
// so a server restart cannot make every room fire at once.
func (w *Worker) timersFor(roomId string, now time.Time) *roomTimers {
	if t, ok := w.timers[roomId]; ok {
		return t
	}
	t := &roomTimers{
		npcDue:     now.Add(w.cfg.Npc.next(w.rng)),
		ambientDue: now.Add(w.cfg.Ambient.next(w.rng)),
	}
	w.timers[roomId] = t
	return t
}

// ambientLine draws from the room's own pool, falling back to the sky for
// outdoor rooms.
func (w *Worker) ambientLine(room *game.Room) (string, bool) {
	pool := room.Spec.Ambient
	if len(pool) > 0 && (!room.Spec.Outdoor || w.rng.Float64() < 0.5) {
		return pool[w.rng.Intn(len(pool))], true
	}
	if room.Spec.Outdoor {
		return w.sky.AmbianceLine()
	}
	return "", false
}

// npcLine picks one NPC in the room and lets them act: a weather reaction
// outdoors when they have one, otherwise an idle action.
func (w *Worker) npcLine(room *game.Room) (string, bool) {
	ids := room.NPCs()
	if len(ids) == 0 {
		return "", false
	}
	npc := w.world.GetNPC(string(ids[w.rng.Intn(len(ids))]))
	if npc == nil {
		return "", false
	}

	if room.Spec.Outdoor {
		if line, ok := npc.WeatherReaction(w.sky.WeatherState()); ok && w.rng.Float64() < 0.5 {
			return line, true
		}
	}
	if len(npc.Spec.IdleActions) > 0 {
		return npc.Spec.IdleActions[w.rng.Intn(len(npc.Spec.IdleActions))], true
	}
	return "", false
}
