package quest

import (
	"fmt"
	"strings"

	"github.com/duskmoor/realmd/internal/storage"
	"github.com/pixil98/go-errors"
)

// ObjectiveType defines what a player has to do to satisfy an objective.
type ObjectiveType int

const (
	ObjectiveUnknown ObjectiveType = iota
	ObjectiveGoToRoom
	ObjectiveTalkToNpc
	ObjectiveSayToNpc
	ObjectiveObtainItem
	ObjectiveDeliverItem
)

// ObjectiveSpec defines one objective within a quest stage.
type ObjectiveSpec struct {
	// TypeStr is the objective type from JSON
	TypeStr string `json:"type"`

	Desc string `json:"desc"`

	Room storage.Identifier `json:"room,omitempty"`
	Npc  storage.Identifier `json:"npc,omitempty"`
	Item storage.Identifier `json:"item,omitempty"`

	// Keywords apply to say_to_npc objectives: the player's line must
	// contain at least one of them, case-insensitively
	Keywords []string `json:"keywords,omitempty"`
}

// Type returns the parsed ObjectiveType from TypeStr.
func (o *ObjectiveSpec) Type() ObjectiveType {
	switch strings.ToLower(o.TypeStr) {
	case "go_to_room":
		return ObjectiveGoToRoom
	case "talk_to_npc":
		return ObjectiveTalkToNpc
	case "say_to_npc":
		return ObjectiveSayToNpc
	case "obtain_item":
		return ObjectiveObtainItem
	case "deliver_item":
		return ObjectiveDeliverItem
	default:
		return ObjectiveUnknown
	}
}

func (o *ObjectiveSpec) Validate() error {
	el := errors.NewErrorList()
	switch o.Type() {
	case ObjectiveUnknown:
		el.Add(fmt.Errorf("objective type %q is invalid", o.TypeStr))
	case ObjectiveGoToRoom:
		if o.Room == "" {
			el.Add(fmt.Errorf("go_to_room objective requires a room"))
		}
	case ObjectiveTalkToNpc:
		if o.Npc == "" {
			el.Add(fmt.Errorf("talk_to_npc objective requires an npc"))
		}
	case ObjectiveSayToNpc:
		if o.Npc == "" {
			el.Add(fmt.Errorf("say_to_npc objective requires an npc"))
		}
		if len(o.Keywords) < 1 {
			el.Add(fmt.Errorf("say_to_npc objective requires keywords"))
		}
	case ObjectiveObtainItem:
		if o.Item == "" {
			el.Add(fmt.Errorf("obtain_item objective requires an item"))
		}
	case ObjectiveDeliverItem:
		if o.Item == "" || o.Npc == "" {
			el.Add(fmt.Errorf("deliver_item objective requires an item and an npc"))
		}
	}
	return el.Err()
}

// StageSpec is one step of a quest: every objective in the stage must be
// satisfied before the quest moves on.
type StageSpec struct {
	Desc       string          `json:"desc"`
	Objectives []ObjectiveSpec `json:"objectives"`

	// Note is appended to the player's quest journal when the stage completes
	Note string `json:"note,omitempty"`
}

// RewardSpec is what completing the quest pays out.
type RewardSpec struct {
	Currency   int                  `json:"currency,omitempty"`
	Reputation map[string]int       `json:"reputation,omitempty"`
	Items      []storage.Identifier `json:"items,omitempty"`
}

// QuestSpec defines a quest loaded from asset files.
type QuestSpec struct {
	Name string `json:"name"`
	Desc string `json:"desc"`

	// Giver is the NPC who offers the quest
	Giver storage.Identifier `json:"giver"`

	Repeatable bool        `json:"repeatable,omitempty"`
	Stages     []StageSpec `json:"stages"`
	Rewards    RewardSpec  `json:"rewards,omitempty"`

	// TimeLimitMinutes and FailurePenalty are accepted from asset files
	// for forward compatibility; nothing enforces them yet.
	TimeLimitMinutes int            `json:"time_limit_minutes,omitempty"`
	FailurePenalty   map[string]int `json:"failure_penalty,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (s *QuestSpec) Validate() error {
	el := errors.NewErrorList()
	if s.Name == "" {
		el.Add(fmt.Errorf("quest name is required"))
	}
	if s.Giver == "" {
		el.Add(fmt.Errorf("quest giver is required"))
	}
	if len(s.Stages) < 1 {
		el.Add(fmt.Errorf("quest requires at least one stage"))
	}
	for i, st := range s.Stages {
		if len(st.Objectives) < 1 {
			el.Add(fmt.Errorf("quest stage %d has no objectives", i))
		}
		for j := range st.Objectives {
			if err := st.Objectives[j].Validate(); err != nil {
				el.Add(fmt.Errorf("quest stage %d objective %d: %w", i, j, err))
			}
		}
	}
	return el.Err()
}
