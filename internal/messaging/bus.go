package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Publisher is the transport half the bus writes to. *NatsServer satisfies
// it; tests swap in a recorder.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Subscriber is the transport half the bus reads from.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// Envelope is the wire form of every bus message.
type Envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Subjects. Every message goes to exactly one scope: a room, a user, or
// everyone.
const globalSubject = "global"

func roomSubject(roomId string) string {
	return fmt.Sprintf("room.%s", roomId)
}

func userSubject(username string) string {
	return fmt.Sprintf("user.%s", username)
}

// EventBus routes game events over the message transport. Delivery is
// best effort: a publish failure is logged and dropped so gameplay never
// stalls behind messaging trouble.
type EventBus struct {
	pub Publisher
	now func() time.Time
}

func NewEventBus(pub Publisher) *EventBus {
	return &EventBus{pub: pub, now: time.Now}
}

func (b *EventBus) publish(subject, eventType string, data any) {
	env := Envelope{Type: eventType, Timestamp: b.now()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			slog.Error("encoding event", "type", eventType, "err", err)
			return
		}
		env.Data = raw
	}
	payload, err := json.Marshal(env)
	if err != nil {
		slog.Error("encoding event envelope", "type", eventType, "err", err)
		return
	}
	if err := b.pub.Publish(subject, payload); err != nil {
		slog.Warn("dropping event", "subject", subject, "type", eventType, "err", err)
	}
}

// PublishRoom sends an event to everyone in one room.
func (b *EventBus) PublishRoom(roomId, eventType string, data any) {
	b.publish(roomSubject(roomId), eventType, data)
}

// PublishUser sends an event to a single player.
func (b *EventBus) PublishUser(username, eventType string, data any) {
	b.publish(userSubject(username), eventType, data)
}

// PublishGlobal sends an event to every connected player.
func (b *EventBus) PublishGlobal(eventType string, data any) {
	b.publish(globalSubject, eventType, data)
}

// SubscribeRoom, SubscribeUser, and SubscribeGlobal attach an envelope
// handler to one scope and return an unsubscribe function.
func SubscribeRoom(sub Subscriber, roomId string, handler func(Envelope)) (func(), error) {
	return subscribe(sub, roomSubject(roomId), handler)
}

func SubscribeUser(sub Subscriber, username string, handler func(Envelope)) (func(), error) {
	return subscribe(sub, userSubject(username), handler)
}

func SubscribeGlobal(sub Subscriber, handler func(Envelope)) (func(), error) {
	return subscribe(sub, globalSubject, handler)
}

func subscribe(sub Subscriber, subject string, handler func(Envelope)) (func(), error) {
	return sub.Subscribe(subject, func(data []byte) {
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			slog.Warn("discarding malformed event", "subject", subject, "err", err)
			return
		}
		handler(env)
	})
}
