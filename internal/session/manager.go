package session

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/duskmoor/realmd/internal/messaging"
)

// Session is one live connection's view of the world: its identity, its
// current room, and the message subscriptions feeding it.
type Session struct {
	Username string
	UserId   string

	mu     sync.Mutex
	roomId string

	done      chan struct{}
	closeOnce sync.Once

	unsubUser   func()
	unsubRoom   func()
	unsubGlobal func()
}

// Done is closed when the session has been evicted or disconnected. The
// transport layer watches it to tear the connection down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// RoomId returns the room the session's subscriptions currently follow.
func (s *Session) RoomId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomId
}

// close tears down every subscription exactly once.
func (s *Session) close() {
	s.closeOnce.Do(func() {
		s.unsubscribeAll()
		close(s.done)
	})
}

func (s *Session) unsubscribeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, unsub := range []func(){s.unsubUser, s.unsubRoom, s.unsubGlobal} {
		if unsub != nil {
			unsub()
		}
	}
	s.unsubUser, s.unsubRoom, s.unsubGlobal = nil, nil, nil
}

// Manager enforces one live session per username. A second login for the
// same name evicts the first: the old session's subscriptions are torn
// down completely before the new one is admitted, so no message can reach
// a dead connection.
type Manager struct {
	mu       sync.Mutex
	sub      messaging.Subscriber
	sessions map[string]*Session
}

func NewManager(sub messaging.Subscriber) *Manager {
	return &Manager{
		sub:      sub,
		sessions: make(map[string]*Session),
	}
}

// Connect admits a session for the username, evicting any session that
// already holds it. The deliver callback receives everything addressed to
// the player: their user scope, their room's scope, and the global scope.
func (m *Manager) Connect(username, userId, roomId string, deliver func(messaging.Envelope)) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.sessions[username]; ok {
		slog.Info("evicting existing session", "username", username)
		old.close()
		delete(m.sessions, username)
	}

	s := &Session{
		Username: username,
		UserId:   userId,
		roomId:   roomId,
		done:     make(chan struct{}),
	}

	var err error
	s.unsubUser, err = messaging.SubscribeUser(m.sub, username, deliver)
	if err != nil {
		return nil, fmt.Errorf("subscribing user scope: %w", err)
	}
	s.unsubGlobal, err = messaging.SubscribeGlobal(m.sub, deliver)
	if err != nil {
		s.unsubscribeAll()
		return nil, fmt.Errorf("subscribing global scope: %w", err)
	}
	s.unsubRoom, err = messaging.SubscribeRoom(m.sub, roomId, deliver)
	if err != nil {
		s.unsubscribeAll()
		return nil, fmt.Errorf("subscribing room scope: %w", err)
	}

	m.sessions[username] = s
	return s, nil
}

// MoveRoom re-points the session's room subscription when the player
// moves. The old room's subscription drops first so the session never
// listens to two rooms at once.
func (m *Manager) MoveRoom(s *Session, roomId string, deliver func(messaging.Envelope)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unsubRoom != nil {
		s.unsubRoom()
		s.unsubRoom = nil
	}
	unsub, err := messaging.SubscribeRoom(m.sub, roomId, deliver)
	if err != nil {
		return fmt.Errorf("subscribing room scope: %w", err)
	}
	s.unsubRoom = unsub
	s.roomId = roomId
	return nil
}

// Disconnect removes the session. Disconnecting twice, or disconnecting a
// session that has already been evicted by a newer login, is a no-op and
// never touches the newer session.
func (m *Manager) Disconnect(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.sessions[s.Username]; ok && current == s {
		delete(m.sessions, s.Username)
	}
	s.close()
}

// Get returns the live session for a username, or nil.
func (m *Manager) Get(username string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[username]
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Usernames lists connected players.
func (m *Manager) Usernames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sessions))
	for u := range m.sessions {
		out = append(out, u)
	}
	return out
}
