package world

import (
	"log/slog"
	"sync"

	"github.com/duskmoor/realmd/internal/game"
	"github.com/duskmoor/realmd/internal/storage"
)

// Manager materializes world content lazily from the definition stores.
// A room or NPC is only built the first time something needs it, then the
// one live instance serves everyone: runtime placement always wins over
// what the static definition says, so an NPC who wandered off does not
// snap home when their spawn room first loads.
type Manager struct {
	rooms storage.Storer[*game.RoomSpec]
	npcs  storage.Storer[*game.NpcSpec]
	items storage.Storer[*game.ItemSpec]

	mu        sync.Mutex
	liveRooms map[string]*game.Room
	liveNpcs  map[string]*game.NPC
}

func NewManager(rooms storage.Storer[*game.RoomSpec], npcs storage.Storer[*game.NpcSpec], items storage.Storer[*game.ItemSpec]) *Manager {
	return &Manager{
		rooms:     rooms,
		npcs:      npcs,
		items:     items,
		liveRooms: make(map[string]*game.Room),
		liveNpcs:  make(map[string]*game.NPC),
	}
}

// GetRoom returns the live room, materializing it on first touch. Unknown
// ids return nil; a dangling exit is a content bug, not a crash.
func (m *Manager) GetRoom(id string) *game.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getRoomLocked(id)
}

func (m *Manager) getRoomLocked(id string) *game.Room {
	if room, ok := m.liveRooms[id]; ok {
		return room
	}
	spec := m.rooms.Get(id)
	if spec == nil {
		return nil
	}

	room := game.NewRoom(storage.Identifier(id), spec)
	for _, itemId := range spec.Items {
		it := m.spawnItemLocked(string(itemId))
		if it == nil {
			slog.Warn("room references unknown item", "room", id, "item", itemId)
			continue
		}
		if err := room.Floor.Add(it); err != nil {
			slog.Warn("placing room item", "room", id, "item", itemId, "err", err)
		}
	}
	m.liveRooms[id] = room

	// Seat every NPC whose home this is, unless they are already live
	// somewhere else.
	for npcId, spec := range m.npcs.GetAll() {
		if string(spec.Room) != id {
			continue
		}
		npc := m.getNPCLocked(npcId)
		if npc != nil && npc.RoomId == id {
			room.AddNPC(npc.Id)
		}
	}
	return room
}

// GetNPC returns the live NPC, materializing from the definition on first
// touch. Unknown ids return nil.
func (m *Manager) GetNPC(id string) *game.NPC {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getNPCLocked(id)
}

func (m *Manager) getNPCLocked(id string) *game.NPC {
	if npc, ok := m.liveNpcs[id]; ok {
		return npc
	}
	spec := m.npcs.Get(id)
	if spec == nil {
		return nil
	}
	npc := game.NewNPC(storage.Identifier(id), spec)
	m.liveNpcs[id] = npc
	if room, ok := m.liveRooms[npc.RoomId]; ok {
		room.AddNPC(npc.Id)
	}
	return npc
}

// SpawnItem builds a fresh instance from an item definition. Items are
// never cached: every spawn is a new instance with its own id. Unknown
// definitions return nil.
func (m *Manager) SpawnItem(defId string) *game.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.spawnItemLocked(defId)
}

func (m *Manager) spawnItemLocked(defId string) *game.Item {
	spec := m.items.Get(defId)
	if spec == nil {
		return nil
	}
	return game.NewItem(storage.Identifier(defId), spec)
}

// ItemName resolves an item definition to its display name.
func (m *Manager) ItemName(defId string) string {
	spec := m.items.Get(defId)
	if spec == nil {
		return "something"
	}
	return spec.Name
}

// MoveNPC relocates a live NPC, keeping both rooms' presence lists and
// the NPC's own record consistent.
func (m *Manager) MoveNPC(npcId, toRoomId string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	npc := m.getNPCLocked(npcId)
	if npc == nil {
		return
	}
	dest := m.getRoomLocked(toRoomId)
	if dest == nil {
		return
	}
	if from, ok := m.liveRooms[npc.RoomId]; ok {
		from.RemoveNPC(npc.Id)
	}
	npc.RoomId = toRoomId
	dest.AddNPC(npc.Id)
}

// KillNPC replaces a live NPC with their corpse on the room floor. The
// corpse inherits everything they carried and decays away over time.
func (m *Manager) KillNPC(npcId string) *game.Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	npc, ok := m.liveNpcs[npcId]
	if !ok {
		return nil
	}
	delete(m.liveNpcs, npcId)

	room := m.liveRooms[npc.RoomId]
	if room == nil {
		return nil
	}
	room.RemoveNPC(npc.Id)

	corpse := game.NewCorpse(&npc.Character)
	if err := room.Floor.Add(corpse); err != nil {
		slog.Warn("placing corpse", "room", npc.RoomId, "err", err)
		return nil
	}
	return corpse
}

// DecayCorpses ages every corpse in every live room by one tick, removing
// the ones that have fully decayed.
func (m *Manager) DecayCorpses(ticksPerStage int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, room := range m.liveRooms {
		for _, it := range room.Floor.Items() {
			if it.Corpse == nil {
				continue
			}
			if it.AdvanceDecay(ticksPerStage) {
				room.Floor.Remove(it)
			}
		}
	}
}

// LiveRooms returns the currently materialized rooms.
func (m *Manager) LiveRooms() []*game.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*game.Room, 0, len(m.liveRooms))
	for _, r := range m.liveRooms {
		out = append(out, r)
	}
	return out
}

// FindNPCInRoom resolves a keyword against the NPCs standing in a room.
func (m *Manager) FindNPCInRoom(room *game.Room, keyword string) *game.NPC {
	for _, id := range room.NPCs() {
		npc := m.GetNPC(string(id))
		if npc != nil && npc.Matches(keyword) {
			return npc
		}
	}
	return nil
}
