package quest

import (
	"strings"

	"github.com/duskmoor/realmd/internal/game"
)

// Status is where a quest instance stands.
type Status string

const (
	StatusActive    Status = "active"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
)

// Quest is one player's progress through a quest definition. It is stored
// inside the player's state document, so everything here serializes.
type Quest struct {
	Id     string `json:"id"`
	Status Status `json:"status"`

	// Stage indexes the current stage in the definition
	Stage int `json:"stage"`

	// Done marks objectives of the current stage as satisfied, by index
	Done map[int]bool `json:"done,omitempty"`

	// Notes is the journal accumulated as stages complete
	Notes []string `json:"notes,omitempty"`
}

// NewQuest starts a fresh instance.
func NewQuest(id string) *Quest {
	return &Quest{Id: id, Status: StatusActive, Done: make(map[int]bool)}
}

// Update applies a gameplay event to the quest. It returns true when the
// event changed anything. Re-delivering an event that already satisfied
// an objective changes nothing, so at-least-once delivery is safe.
func (q *Quest) Update(spec *QuestSpec, ev game.Event) bool {
	if q.Status != StatusActive || q.Stage >= len(spec.Stages) {
		return false
	}
	stage := spec.Stages[q.Stage]

	changed := false
	for i := range stage.Objectives {
		if q.Done[i] {
			continue
		}
		if objectiveMatches(&stage.Objectives[i], ev) {
			if q.Done == nil {
				q.Done = make(map[int]bool)
			}
			q.Done[i] = true
			changed = true
		}
	}
	if !changed {
		return false
	}

	for i := range stage.Objectives {
		if !q.Done[i] {
			return true
		}
	}
	q.advance(spec, stage)
	return true
}

// advance moves past a finished stage. The final stage leaves the quest
// ready rather than completed: rewards only pay out when the engine
// explicitly completes it.
func (q *Quest) advance(spec *QuestSpec, stage StageSpec) {
	if stage.Note != "" {
		q.Notes = append(q.Notes, stage.Note)
	}
	q.Stage++
	q.Done = make(map[int]bool)
	if q.Stage >= len(spec.Stages) {
		q.Status = StatusReady
	}
}

func objectiveMatches(o *ObjectiveSpec, ev game.Event) bool {
	switch o.Type() {
	case ObjectiveGoToRoom:
		return ev.Type == game.EventEnterRoom && ev.RoomId == o.Room
	case ObjectiveTalkToNpc:
		return ev.Type == game.EventTalkNPC && ev.NpcId == o.Npc
	case ObjectiveSayToNpc:
		if ev.Type != game.EventSayToNPC || ev.NpcId != o.Npc {
			return false
		}
		return containsAnyKeyword(ev.Text, o.Keywords)
	case ObjectiveObtainItem:
		return ev.Type == game.EventTakeItem && ev.ItemDefId == o.Item
	case ObjectiveDeliverItem:
		return ev.Type == game.EventGiveItem && ev.ItemDefId == o.Item && ev.NpcId == o.Npc
	}
	return false
}

// containsAnyKeyword reports whether the line contains at least one of the
// keywords as a case-insensitive substring.
func containsAnyKeyword(line string, keywords []string) bool {
	line = strings.ToLower(line)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(line, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
