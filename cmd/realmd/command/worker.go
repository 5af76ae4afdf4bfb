package command

import (
	"context"
	"fmt"
	"time"

	"github.com/duskmoor/realmd/internal/ambiance"
	"github.com/duskmoor/realmd/internal/atmos"
	"github.com/duskmoor/realmd/internal/driver"
	"github.com/duskmoor/realmd/internal/engine"
	"github.com/duskmoor/realmd/internal/gateway"
	"github.com/duskmoor/realmd/internal/messaging"
	"github.com/duskmoor/realmd/internal/quest"
	"github.com/duskmoor/realmd/internal/session"
	"github.com/duskmoor/realmd/internal/state"
	"github.com/duskmoor/realmd/internal/world"
	service "github.com/pixil98/go-service"
)

// A corpse spends this many ticks in each decay stage unless configured
// otherwise.
const defaultDecayTicksPerStage = 120

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}
	ctx := context.Background()

	// Asset stores
	rooms, err := cfg.Storage.Rooms.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	npcs, err := cfg.Storage.Npcs.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating npc store: %w", err)
	}
	items, err := cfg.Storage.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}
	questSpecs, err := cfg.Storage.Quests.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating quest store: %w", err)
	}

	// Messaging
	natsServer, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	bus := messaging.NewEventBus(natsServer)

	// Durable state
	store, err := cfg.State.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("opening state store: %w", err)
	}
	states, err := cfg.State.BuildManager(store)
	if err != nil {
		return nil, fmt.Errorf("creating state manager: %w", err)
	}

	// Live world
	worldMgr := world.NewManager(rooms, npcs, items)
	doc, err := state.LoadWorldDoc(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("restoring world document: %w", err)
	}
	sky := atmos.NewManager(doc, nil)

	// Dialogue and commands
	talk, err := cfg.Dialogue.BuildService(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating dialogue service: %w", err)
	}
	var engineOpts []engine.Opt
	if cfg.Exposure != nil {
		engineOpts = append(engineOpts, engine.WithExposureRates(*cfg.Exposure))
	}
	eng, err := engine.New(worldMgr, sky, quest.NewEngine(questSpecs), states, talk, bus, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	// Client surface
	sessions := session.NewManager(natsServer)
	gw := gateway.New(eng, sessions, states, worldMgr, natsServer)

	// Background simulation
	ambCfg, err := cfg.Ambiance.BuildConfig()
	if err != nil {
		return nil, fmt.Errorf("creating ambiance config: %w", err)
	}
	decayTicks := cfg.Decay.TicksPerStage
	if decayTicks == 0 {
		decayTicks = defaultDecayTicksPerStage
	}

	var driverOpts []driver.MudDriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	mudDriver := driver.NewMudDriver([]driver.Manager{
		ambiance.NewWeatherWorker(sky, worldMgr, bus),
		ambiance.NewWorker(ambCfg, worldMgr, sky, bus, nil),
		world.NewDecayWorker(worldMgr, decayTicks),
		state.NewWorldFlusher(store, sky),
	}, driverOpts...)

	return service.WorkerList{
		"nats":    natsServer,
		"driver":  mudDriver,
		"gateway": gw,
	}, nil
}
