package game

import (
	"time"

	"github.com/duskmoor/realmd/internal/storage"
)

// EventType names the gameplay occurrences the quest engine and broadcast
// layer care about.
type EventType string

const (
	EventEnterRoom EventType = "player_move"
	EventTakeItem  EventType = "take_item"
	EventDropItem  EventType = "drop_item"
	EventGiveItem  EventType = "give_item"
	EventTalkNPC   EventType = "talk_to_npc"
	EventSayToNPC  EventType = "say_to_npc"
	EventNPCDeath  EventType = "npc_death"
)

// Event describes one gameplay occurrence. Commands return the events they
// produce; the engine forwards them to the quest engine and the message
// bus, which keeps the object model free of wiring.
type Event struct {
	Type      EventType          `json:"type"`
	Username  string             `json:"username,omitempty"`
	RoomId    storage.Identifier `json:"room_id,omitempty"`
	NpcId     storage.Identifier `json:"npc_id,omitempty"`
	ItemDefId storage.Identifier `json:"item_def_id,omitempty"`
	Text      string             `json:"text,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// NewEvent stamps an event with the current time.
func NewEvent(t EventType, username string, roomId storage.Identifier) Event {
	return Event{
		Type:      t,
		Username:  username,
		RoomId:    roomId,
		Timestamp: time.Now(),
	}
}
