package messaging

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

// recordingPublisher captures published messages for assertions.
type recordingPublisher struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func testBus(p Publisher) *EventBus {
	b := NewEventBus(p)
	b.now = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	return b
}

func TestEventBus_Scopes(t *testing.T) {
	tests := map[string]struct {
		publish    func(*EventBus)
		expSubject string
	}{
		"room scope": {
			publish:    func(b *EventBus) { b.PublishRoom("town_square", "ambiance", nil) },
			expSubject: "room.town_square",
		},
		"user scope": {
			publish:    func(b *EventBus) { b.PublishUser("revna", "quest_progress", nil) },
			expSubject: "user.revna",
		},
		"global scope": {
			publish:    func(b *EventBus) { b.PublishGlobal("weather_change", nil) },
			expSubject: "global",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := &recordingPublisher{}
			tt.publish(testBus(rec))

			// Exactly one subject gets the message.
			testutil.AssertEqual(t, "subjects count", len(rec.subjects), 1)
			testutil.AssertEqual(t, "subjects", rec.subjects[0], tt.expSubject)
		})
	}
}

func TestEventBus_EnvelopeShape(t *testing.T) {
	rec := &recordingPublisher{}
	testBus(rec).PublishRoom("town_square", "ambiance", map[string]string{"text": "Rain falls."})

	var env Envelope
	if err := json.Unmarshal(rec.payloads[0], &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	testutil.AssertEqual(t, "type", env.Type, "ambiance")
	testutil.AssertEqual(t, "timestamp", env.Timestamp, time.Unix(1700000000, 0).UTC())

	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	testutil.AssertEqual(t, "data", data["text"], "Rain falls.")
}

func TestEventBus_PublishFailureIsSwallowed(t *testing.T) {
	rec := &recordingPublisher{err: errors.New("transport down")}
	b := testBus(rec)

	// Must not panic or block; the event is just dropped.
	b.PublishGlobal("weather_change", nil)
	b.PublishRoom("town_square", "ambiance", nil)
	testutil.AssertEqual(t, "subjects count", len(rec.subjects), 0)
}

// recordingSubscriber hands the handler straight back for direct invocation.
type recordingSubscriber struct {
	handlers map[string]func([]byte)
}

func (s *recordingSubscriber) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	if s.handlers == nil {
		s.handlers = make(map[string]func([]byte))
	}
	s.handlers[subject] = handler
	return func() { delete(s.handlers, subject) }, nil
}

func TestSubscribe_DecodesEnvelopes(t *testing.T) {
	sub := &recordingSubscriber{}
	var got []Envelope
	unsub, err := SubscribeUser(sub, "revna", func(env Envelope) { got = append(got, env) })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	payload, _ := json.Marshal(Envelope{Type: "quest_progress", Timestamp: time.Now()})
	sub.handlers["user.revna"](payload)
	testutil.AssertEqual(t, "got count", len(got), 1)
	testutil.AssertEqual(t, "type", got[0].Type, "quest_progress")

	// Malformed payloads are discarded, not delivered.
	sub.handlers["user.revna"]([]byte("{broken"))
	testutil.AssertEqual(t, "got count", len(got), 1)

	unsub()
	if _, ok := sub.handlers["user.revna"]; ok {
		t.Error("unsubscribe did not remove the handler")
	}
}
