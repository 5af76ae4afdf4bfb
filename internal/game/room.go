package game

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/duskmoor/realmd/internal/atmos"
	"github.com/duskmoor/realmd/internal/storage"
	"github.com/pixil98/go-errors"
)

var validExits = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"up": true, "down": true, "northeast": true, "northwest": true,
	"southeast": true, "southwest": true,
}

// RoomSpec defines a room loaded from asset files.
type RoomSpec struct {
	Title string `json:"title"`

	// Desc is the default description; TimeDescs override it per daylight
	// band ("dawn", "day", "dusk", "night") when present.
	Desc      string               `json:"desc"`
	TimeDescs map[string]string    `json:"time_descs,omitempty"`

	Exits map[string]storage.Identifier `json:"exits"`

	// Outdoor rooms see weather and accumulate exposure
	Outdoor bool `json:"outdoor"`

	// Ambient lines supplement the weather ambiance pool for this room
	Ambient []string `json:"ambient,omitempty"`

	// Items spawn on the floor when the room first materializes
	Items []storage.Identifier `json:"items,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (s *RoomSpec) Validate() error {
	el := errors.NewErrorList()
	if s.Title == "" {
		el.Add(fmt.Errorf("room title is required"))
	}
	if s.Desc == "" {
		el.Add(fmt.Errorf("room description is required"))
	}
	for dir := range s.Exits {
		if !validExits[strings.ToLower(dir)] {
			el.Add(fmt.Errorf("room exit direction %q is invalid", dir))
		}
	}
	for band := range s.TimeDescs {
		switch atmos.TimeOfDay(band) {
		case atmos.Dawn, atmos.Day, atmos.Dusk, atmos.Night:
		default:
			el.Add(fmt.Errorf("room time description band %q is invalid", band))
		}
	}
	return el.Err()
}

// Room is the live instance of a room definition: the floor inventory plus
// who is standing in it. Presence mutations are idempotent so retried
// joins and double disconnects cannot corrupt the lists.
type Room struct {
	Id   storage.Identifier
	Spec *RoomSpec

	Floor *Inventory

	mu      sync.RWMutex
	players map[string]bool
	npcs    map[storage.Identifier]bool
}

// NewRoom materializes a room from its definition. Floor items are spawned
// by the caller, which owns the item definitions.
func NewRoom(id storage.Identifier, spec *RoomSpec) *Room {
	return &Room{
		Id:      id,
		Spec:    spec,
		Floor:   NewInventory(0, 0),
		players: make(map[string]bool),
		npcs:    make(map[storage.Identifier]bool),
	}
}

// Describe returns the room description for the given daylight band,
// falling back to the default text.
func (r *Room) Describe(tod atmos.TimeOfDay) string {
	if d, ok := r.Spec.TimeDescs[string(tod)]; ok {
		return d
	}
	return r.Spec.Desc
}

// AddPlayer records a player as present. Adding twice is a no-op.
func (r *Room) AddPlayer(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[username] = true
}

// RemovePlayer records a player as gone. Removing twice is a no-op.
func (r *Room) RemovePlayer(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, username)
}

// Players returns the present usernames in stable order.
func (r *Room) Players() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.players))
	for u := range r.players {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// HasPlayers reports whether anyone is in the room.
func (r *Room) HasPlayers() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players) > 0
}

// AddNPC and RemoveNPC track which NPCs currently stand here.
func (r *Room) AddNPC(id storage.Identifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.npcs[id] = true
}

func (r *Room) RemoveNPC(id storage.Identifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.npcs, id)
}

// NPCs returns the present NPC ids in stable order.
func (r *Room) NPCs() []storage.Identifier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]storage.Identifier, 0, len(r.npcs))
	for id := range r.npcs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Exit resolves a direction to the destination room id.
func (r *Room) Exit(dir string) (storage.Identifier, bool) {
	dest, ok := r.Spec.Exits[strings.ToLower(dir)]
	return dest, ok
}
