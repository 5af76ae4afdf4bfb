package state

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Manager fronts the durable store with the TTL cache. Reads go cache
// first and repopulate on miss; writes go to both, and a storage failure
// is logged rather than rolled back, with the cache still carrying the
// fresh copy for a later retry.
type Manager struct {
	cache     *Cache[*GameState]
	store     *Store
	startRoom string
}

func NewManager(store *Store, ttl time.Duration, startRoom string) *Manager {
	return &Manager{
		cache:     NewCache[*GameState](ttl),
		store:     store,
		startRoom: startRoom,
	}
}

// StartRoom is where brand new and stranded players materialize.
func (m *Manager) StartRoom() string {
	return m.startRoom
}

func playerKey(username string) string {
	return fmt.Sprintf("player:%s:state", username)
}

// LoadPlayer returns the player's state, from cache, storage, or the
// new-player template, in that order.
func (m *Manager) LoadPlayer(ctx context.Context, username string) *GameState {
	key := playerKey(username)
	if gs, ok := m.cache.Get(key); ok {
		return gs
	}

	doc, err := m.store.LoadPlayer(ctx, username)
	if err != nil {
		slog.Error("loading player state", "username", username, "err", err)
		doc = ""
	}
	gs := ParseGameState(doc, m.startRoom)
	m.cache.Set(key, gs)
	return gs
}

// SavePlayer writes the state to cache and durable storage.
func (m *Manager) SavePlayer(ctx context.Context, username, userId string, gs *GameState) {
	m.cache.Set(playerKey(username), gs)

	doc, err := gs.Marshal()
	if err != nil {
		slog.Error("encoding player state", "username", username, "err", err)
		return
	}
	if err := m.store.SavePlayer(ctx, username, userId, doc); err != nil {
		slog.Error("persisting player state", "username", username, "err", err)
	}
}

// Invalidate drops the cached copy, forcing the next read to hit storage.
func (m *Manager) Invalidate(username string) {
	m.cache.Invalidate(playerKey(username))
}
