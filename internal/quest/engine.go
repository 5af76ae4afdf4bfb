package quest

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/duskmoor/realmd/internal/game"
	"github.com/duskmoor/realmd/internal/storage"
)

var (
	ErrUnknownQuest     = errors.New("no such quest")
	ErrAlreadyActive    = errors.New("quest already in progress")
	ErrAlreadyCompleted = errors.New("quest already completed")
	ErrNotReady         = errors.New("quest objectives not finished")
	ErrLogFull          = errors.New("too many quests in progress")
)

// MaxActiveQuests caps how many quests a player may carry at once.
const MaxActiveQuests = 5

// Log is a player's full quest history: what they are on and what they
// have finished. It lives inside the player state document.
type Log struct {
	Active    map[string]*Quest `json:"active,omitempty"`
	Completed []string          `json:"completed,omitempty"`
}

func NewLog() *Log {
	return &Log{Active: make(map[string]*Quest)}
}

// HasCompleted reports whether a quest id is in the completed list.
func (l *Log) HasCompleted(id string) bool {
	for _, c := range l.Completed {
		if c == id {
			return true
		}
	}
	return false
}

// Engine matches gameplay events against quest definitions and manages
// offers and completion. It holds no per-player state; the Log travels
// with the player.
type Engine struct {
	quests storage.Storer[*QuestSpec]
}

func NewEngine(quests storage.Storer[*QuestSpec]) *Engine {
	return &Engine{quests: quests}
}

// Get returns a quest definition, or ErrUnknownQuest.
func (e *Engine) Get(id string) (*QuestSpec, error) {
	spec := e.quests.Get(id)
	if spec == nil {
		return nil, ErrUnknownQuest
	}
	return spec, nil
}

// Offer starts the quest for the player. A quest already in progress, a
// completed non-repeatable quest, or a full log is refused.
func (e *Engine) Offer(log *Log, id string) (*QuestSpec, error) {
	spec, err := e.Get(id)
	if err != nil {
		return nil, err
	}
	if _, ok := log.Active[id]; ok {
		return nil, ErrAlreadyActive
	}
	if !spec.Repeatable && log.HasCompleted(id) {
		return nil, ErrAlreadyCompleted
	}
	if len(log.Active) >= MaxActiveQuests {
		return nil, ErrLogFull
	}
	if log.Active == nil {
		log.Active = make(map[string]*Quest)
	}
	log.Active[id] = NewQuest(id)
	return spec, nil
}

// Progress describes one quest whose state an event just moved.
type Progress struct {
	Id   string
	Name string
	// Ready is set when the final stage just finished
	Ready bool
	// StageDesc is the newly current stage's description, when one remains
	StageDesc string
}

// HandleEvent fans one gameplay event out to every active quest. Quests
// whose definition has disappeared from storage are skipped, not failed;
// content removal should never break a player.
func (e *Engine) HandleEvent(log *Log, ev game.Event) []Progress {
	var out []Progress
	for id, q := range log.Active {
		spec := e.quests.Get(id)
		if spec == nil {
			slog.Warn("active quest has no definition", "quest", id)
			continue
		}
		before := q.Stage
		if !q.Update(spec, ev) {
			continue
		}
		p := Progress{Id: id, Name: spec.Name, Ready: q.Status == StatusReady}
		if !p.Ready && q.Stage != before {
			p.StageDesc = spec.Stages[q.Stage].Desc
		}
		out = append(out, p)
	}
	return out
}

// Complete turns in a ready quest and returns its reward bundle. The
// caller applies the rewards to the player.
func (e *Engine) Complete(log *Log, id string) (*RewardSpec, error) {
	spec, err := e.Get(id)
	if err != nil {
		return nil, err
	}
	q, ok := log.Active[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuest, id)
	}
	if q.Status != StatusReady {
		return nil, ErrNotReady
	}
	delete(log.Active, id)
	if !log.HasCompleted(id) {
		log.Completed = append(log.Completed, id)
	}
	return &spec.Rewards, nil
}
