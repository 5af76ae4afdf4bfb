package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/duskmoor/realmd/internal/atmos"
	"github.com/duskmoor/realmd/internal/dialogue"
	"github.com/duskmoor/realmd/internal/display"
	"github.com/duskmoor/realmd/internal/game"
	"github.com/duskmoor/realmd/internal/quest"
	"github.com/duskmoor/realmd/internal/state"
	"github.com/duskmoor/realmd/internal/world"
)

// Broadcaster is the scoped publishing the engine needs after a command.
type Broadcaster interface {
	PublishRoom(roomId, eventType string, data any)
	PublishUser(username, eventType string, data any)
	PublishGlobal(eventType string, data any)
}

// request carries everything one command execution works with.
type request struct {
	ctx      context.Context
	player   *game.Player
	gs       *state.GameState
	room     *game.Room
	verb     string
	args     []string
	response []string
	events   []game.Event
}

func (r *request) reply(lines ...string) {
	r.response = append(r.response, lines...)
}

func (r *request) emit(ev game.Event) {
	r.events = append(r.events, ev)
}

func (r *request) argString() string {
	return strings.Join(r.args, " ")
}

type handlerFunc func(*request) error

// Engine executes player commands against the live world. Commands read
// and mutate a player's state document; everything a command causes that
// others should see goes out through the broadcaster.
type Engine struct {
	world    *world.Manager
	sky      *atmos.Manager
	quests   *quest.Engine
	states   *state.Manager
	talk     *dialogue.Service
	bus      Broadcaster
	messages *MessageSet
	rates    atmos.ExposureRates

	handlers map[string]handlerFunc
}

type Opt func(*Engine)

// WithExposureRates overrides how fast weather exposure accumulates.
func WithExposureRates(r atmos.ExposureRates) Opt {
	return func(e *Engine) {
		e.rates = r
	}
}

func New(w *world.Manager, sky *atmos.Manager, q *quest.Engine, st *state.Manager, talk *dialogue.Service, bus Broadcaster, opts ...Opt) (*Engine, error) {
	messages, err := NewMessageSet()
	if err != nil {
		return nil, fmt.Errorf("compiling message templates: %w", err)
	}
	e := &Engine{
		world:    w,
		sky:      sky,
		quests:   q,
		states:   st,
		talk:     talk,
		bus:      bus,
		messages: messages,
		rates:    atmos.DefaultExposureRates(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.handlers = map[string]handlerFunc{
		"look":      e.handleLook,
		"l":         e.handleLook,
		"go":        e.handleMove,
		"move":      e.handleMove,
		"north":     e.handleMoveShorthand("north"),
		"south":     e.handleMoveShorthand("south"),
		"east":      e.handleMoveShorthand("east"),
		"west":      e.handleMoveShorthand("west"),
		"up":        e.handleMoveShorthand("up"),
		"down":      e.handleMoveShorthand("down"),
		"n":         e.handleMoveShorthand("north"),
		"s":         e.handleMoveShorthand("south"),
		"e":         e.handleMoveShorthand("east"),
		"w":         e.handleMoveShorthand("west"),
		"take":      e.handleTake,
		"get":       e.handleTake,
		"drop":      e.handleDrop,
		"give":      e.handleGive,
		"put":       e.handlePut,
		"inventory": e.handleInventory,
		"inv":       e.handleInventory,
		"i":         e.handleInventory,
		"say":       e.handleSay,
		"talk":      e.handleTalk,
		"quests":    e.handleQuests,
		"accept":    e.handleAccept,
		"complete":  e.handleComplete,
		"weather":   e.handleWeather,
		"time":      e.handleTime,
		"color":     e.handleColor,
		"help":      e.handleHelp,
	}
	return e, nil
}

// HandleCommand executes one raw command line for a player and returns
// the response text along with the player's updated state document. The
// input state document is never mutated on failure: invalid commands come
// back as plain text with the state unchanged.
func (e *Engine) HandleCommand(ctx context.Context, raw, stateDoc, username, userId string) (string, string) {
	gs := e.states.LoadPlayer(ctx, username)
	if stateDoc != "" {
		gs = state.ParseGameState(stateDoc, e.startRoom())
	}

	response, newGs := e.execute(ctx, raw, gs, username, userId)

	doc, err := newGs.Marshal()
	if err != nil {
		slog.Error("encoding state after command", "username", username, "err", err)
		return response, stateDoc
	}
	e.states.SavePlayer(ctx, username, userId, newGs)
	return response, doc
}

func (e *Engine) execute(ctx context.Context, raw string, gs *state.GameState, username, userId string) (string, *state.GameState) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", gs
	}
	verb := strings.ToLower(fields[0])
	handler, ok := e.handlers[verb]
	if !ok {
		return fmt.Sprintf("You don't know how to %q. Try 'help'.", verb), gs
	}

	player := e.materialize(gs, username, userId)
	room := e.world.GetRoom(player.RoomId)
	if room == nil {
		// A room removed from content strands its occupants; send them home.
		slog.Warn("player in unknown room", "username", username, "room", player.RoomId)
		player.RoomId = e.startRoom()
		room = e.world.GetRoom(player.RoomId)
		if room == nil {
			return "The world is broken. Try again later.", gs
		}
	}
	room.AddPlayer(username)

	req := &request{
		ctx:    ctx,
		player: player,
		gs:     gs,
		room:   room,
		verb:   verb,
		args:   fields[1:],
	}

	if err := handler(req); err != nil {
		var userErr *UserError
		if errors.As(err, &userErr) {
			// The command didn't happen; hand back the message and the
			// untouched state.
			return display.Wrap(userErr.Message), gs
		}
		slog.Error("command failed", "username", username, "verb", verb, "err", err)
		return "Something went wrong.", gs
	}

	e.dispatchEvents(req)
	e.capture(req)

	return display.Wrap(strings.Join(req.response, "\n")), gs
}

// dispatchEvents fans command events out to the quest engine and the
// message bus.
func (e *Engine) dispatchEvents(req *request) {
	pal := display.Palette{Enabled: req.gs.Colors.Enabled}
	for _, ev := range req.events {
		for _, p := range e.quests.HandleEvent(req.gs.Quests, ev) {
			switch {
			case p.Ready:
				req.reply(pal.Quest(fmt.Sprintf("[%s] All objectives complete. Return to the quest giver and 'complete' it.", p.Name)))
			case p.StageDesc != "":
				req.reply(pal.Quest(fmt.Sprintf("[%s] %s", p.Name, p.StageDesc)))
			default:
				req.reply(pal.Quest(fmt.Sprintf("[%s] Objective complete.", p.Name)))
			}
			e.bus.PublishUser(ev.Username, "quest_update", questUpdate{
				QuestId: p.Id,
				Name:    p.Name,
				Ready:   p.Ready,
			})
		}
		if text, ok := e.messages.Narrate(ev, req.player, e.world); ok {
			e.bus.PublishRoom(string(ev.RoomId), string(ev.Type), broadcast{
				Username: ev.Username,
				Text:     text,
			})
		}
	}
}

// capture writes the runtime player back into the state document.
func (e *Engine) capture(req *request) {
	req.gs.Location = req.player.RoomId
	req.gs.Stats = req.player.Stats
	req.gs.Currency = req.player.Currency
	req.gs.Reputation = req.player.Reputation
	req.gs.Exposure = req.player.Exposure
	req.gs.Inventory = state.CaptureInventory(req.player.Inventory)
}

// materialize builds the runtime player from their state document,
// respawning their carried items from definitions.
func (e *Engine) materialize(gs *state.GameState, username, userId string) *game.Player {
	p := game.NewPlayer(username, userId)
	p.RoomId = gs.Location
	p.Stats = gs.Stats
	p.Currency = gs.Currency
	p.Reputation = gs.Reputation
	p.Exposure = gs.Exposure
	p.Admin = gs.Admin
	e.restoreItems(p.Inventory, gs.Inventory)
	return p
}

func (e *Engine) restoreItems(inv *game.Inventory, items []state.ItemState) {
	for _, is := range items {
		it := e.world.SpawnItem(is.DefId)
		if it == nil {
			slog.Warn("dropping unknown item from save", "item", is.DefId)
			continue
		}
		if err := inv.Add(it); err != nil {
			slog.Warn("restoring saved item", "item", is.DefId, "err", err)
			continue
		}
		if it.Container != nil {
			e.restoreItems(it.Container.Inventory, is.Contents)
		}
	}
}

func (e *Engine) exposureRates() atmos.ExposureRates {
	return e.rates
}

func (e *Engine) startRoom() string {
	return e.states.StartRoom()
}

// broadcast is the payload of room-scoped action messages.
type broadcast struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

// questUpdate is the payload of player-scoped quest progress events.
type questUpdate struct {
	QuestId string `json:"quest_id"`
	Name    string `json:"name"`
	Ready   bool   `json:"ready"`
}
