package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/duskmoor/realmd/internal/game"
	"github.com/duskmoor/realmd/internal/messaging"
	"github.com/duskmoor/realmd/internal/session"
	"github.com/duskmoor/realmd/internal/state"
)

// Frontends talk to the engine over the embedded broker: request/reply on
// the client.* subjects, with everything addressed to a connected player
// fanned into one delivery subject per username.
const (
	connectSubject    = "client.connect"
	commandSubject    = "client.command"
	disconnectSubject = "client.disconnect"
)

func deliverSubject(username string) string {
	return fmt.Sprintf("client.out.%s", username)
}

// Engine is the command surface the gateway fronts.
type Engine interface {
	HandleCommand(ctx context.Context, raw, stateDoc, username, userId string) (string, string)
}

// Transport is the broker surface the gateway needs: request/reply
// subscriptions inbound, plain publishes outbound.
type Transport interface {
	SubscribeReply(subject string, handler func(data []byte) []byte) (func(), error)
	Publish(subject string, data []byte) error
}

// Presence is the slice of the world the gateway touches: room lookup, so
// connects and disconnects keep room membership honest.
type Presence interface {
	GetRoom(id string) *game.Room
}

type ConnectRequest struct {
	Username string `json:"username"`
	UserId   string `json:"user_id"`
}

type ConnectResponse struct {
	Ok             bool   `json:"ok"`
	Error          string `json:"error,omitempty"`
	DeliverSubject string `json:"deliver_subject,omitempty"`
	Room           string `json:"room,omitempty"`
}

type CommandRequest struct {
	Username string `json:"username"`
	UserId   string `json:"user_id"`
	Line     string `json:"line"`

	// State carries the caller's copy of the player document. Empty means
	// use the engine's stored copy.
	State string `json:"state,omitempty"`
}

type CommandResponse struct {
	Response string `json:"response"`
	State    string `json:"state,omitempty"`
}

type DisconnectRequest struct {
	Username string `json:"username"`
}

// Gateway binds the engine, the session manager, and the broker together.
// It runs as a worker: Start blocks until the context is cancelled.
type Gateway struct {
	engine    Engine
	sessions  *session.Manager
	states    *state.Manager
	world     Presence
	transport Transport
}

func New(engine Engine, sessions *session.Manager, states *state.Manager, world Presence, transport Transport) *Gateway {
	return &Gateway{
		engine:    engine,
		sessions:  sessions,
		states:    states,
		world:     world,
		transport: transport,
	}
}

// Start subscribes the gateway's request subjects and serves until the
// context ends. The broker worker comes up concurrently, so subscription
// retries until it is accepting.
func (g *Gateway) Start(ctx context.Context) error {
	unsubs, err := g.subscribeAll(ctx)
	if err != nil {
		return err
	}
	defer func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}()

	slog.InfoContext(ctx, "gateway serving", "subjects", []string{connectSubject, commandSubject, disconnectSubject})
	<-ctx.Done()
	return nil
}

func (g *Gateway) subscribeAll(ctx context.Context) ([]func(), error) {
	handlers := map[string]func([]byte) []byte{
		connectSubject:    g.handleConnect,
		commandSubject:    g.handleCommand,
		disconnectSubject: g.handleDisconnect,
	}

	var unsubs []func()
	for subject, handler := range handlers {
		unsub, err := g.subscribe(ctx, subject, handler)
		if err != nil {
			for _, u := range unsubs {
				u()
			}
			return nil, err
		}
		unsubs = append(unsubs, unsub)
	}
	return unsubs, nil
}

func (g *Gateway) subscribe(ctx context.Context, subject string, handler func([]byte) []byte) (func(), error) {
	for {
		unsub, err := g.transport.SubscribeReply(subject, handler)
		if err == nil {
			return unsub, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("subscribing %s: %w", subject, err)
		case <-time.After(250 * time.Millisecond):
		}
	}
}

func (g *Gateway) handleConnect(data []byte) []byte {
	var req ConnectRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mustMarshal(ConnectResponse{Error: "malformed request"})
	}
	if req.Username == "" {
		return mustMarshal(ConnectResponse{Error: "username is required"})
	}

	ctx := context.Background()
	gs := g.states.LoadPlayer(ctx, req.Username)

	out := deliverSubject(req.Username)
	_, err := g.sessions.Connect(req.Username, req.UserId, gs.Location, func(env messaging.Envelope) {
		payload, err := json.Marshal(env)
		if err != nil {
			slog.Error("encoding delivery", "username", req.Username, "err", err)
			return
		}
		if err := g.transport.Publish(out, payload); err != nil {
			slog.Warn("dropping delivery", "username", req.Username, "err", err)
		}
	})
	if err != nil {
		return mustMarshal(ConnectResponse{Error: err.Error()})
	}
	if room := g.world.GetRoom(gs.Location); room != nil {
		room.AddPlayer(req.Username)
	}

	return mustMarshal(ConnectResponse{Ok: true, DeliverSubject: out, Room: gs.Location})
}

func (g *Gateway) handleCommand(data []byte) []byte {
	var req CommandRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mustMarshal(CommandResponse{Response: "Malformed request."})
	}

	ctx := context.Background()
	response, newDoc := g.engine.HandleCommand(ctx, req.Line, req.State, req.Username, req.UserId)

	// Movement re-points the session's room subscription.
	if s := g.sessions.Get(req.Username); s != nil {
		loc := state.ParseGameState(newDoc, g.states.StartRoom()).Location
		if loc != s.RoomId() {
			out := deliverSubject(req.Username)
			err := g.sessions.MoveRoom(s, loc, func(env messaging.Envelope) {
				payload, err := json.Marshal(env)
				if err != nil {
					return
				}
				if err := g.transport.Publish(out, payload); err != nil {
					slog.Warn("dropping delivery", "username", req.Username, "err", err)
				}
			})
			if err != nil {
				slog.Warn("re-pointing room subscription", "username", req.Username, "room", loc, "err", err)
			}
		}
	}

	return mustMarshal(CommandResponse{Response: response, State: newDoc})
}

func (g *Gateway) handleDisconnect(data []byte) []byte {
	var req DisconnectRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mustMarshal(ConnectResponse{Error: "malformed request"})
	}
	if s := g.sessions.Get(req.Username); s != nil {
		if room := g.world.GetRoom(s.RoomId()); room != nil {
			room.RemovePlayer(req.Username)
		}
		g.sessions.Disconnect(s)
	}
	return mustMarshal(ConnectResponse{Ok: true})
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("encoding reply", "err", err)
		return []byte("{}")
	}
	return data
}
