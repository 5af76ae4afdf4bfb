package engine

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/duskmoor/realmd/internal/game"
	"github.com/duskmoor/realmd/internal/world"
)

// narrationData is what the broadcast templates render with.
type narrationData struct {
	Player string
	Item   string
	Npc    string
	Text   string
}

// Third-person narration shown to everyone else in the room when a player
// acts. Events without a template are not broadcast.
var narrationSources = map[game.EventType]string{
	game.EventEnterRoom: `{{ .Player | title }} arrives.`,
	game.EventTakeItem:  `{{ .Player | title }} picks up {{ .Item }}.`,
	game.EventDropItem:  `{{ .Player | title }} drops {{ .Item }}.`,
	game.EventGiveItem:  `{{ .Player | title }} hands {{ .Item }} to {{ .Npc }}.`,
	game.EventSayToNPC:  `{{ .Player | title }} says to {{ .Npc }}, "{{ .Text }}"`,
	game.EventTalkNPC:   `{{ .Player | title }} strikes up a conversation with {{ .Npc }}.`,
}

// MessageSet holds the compiled broadcast templates.
type MessageSet struct {
	templates map[game.EventType]*template.Template
}

func NewMessageSet() (*MessageSet, error) {
	ms := &MessageSet{templates: make(map[game.EventType]*template.Template)}
	for evType, src := range narrationSources {
		tmpl, err := template.New(string(evType)).Funcs(sprig.TxtFuncMap()).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", evType, err)
		}
		ms.templates[evType] = tmpl
	}
	return ms, nil
}

// Narrate renders the room broadcast for an event, resolving ids to
// display names. Events with no template return false.
func (ms *MessageSet) Narrate(ev game.Event, player *game.Player, w *world.Manager) (string, bool) {
	tmpl, ok := ms.templates[ev.Type]
	if !ok {
		return "", false
	}

	data := narrationData{Player: ev.Username, Text: ev.Text}
	if ev.ItemDefId != "" {
		data.Item = w.ItemName(string(ev.ItemDefId))
	}
	if ev.NpcId != "" {
		if npc := w.GetNPC(string(ev.NpcId)); npc != nil {
			data.Npc = npc.Name
		} else {
			data.Npc = "someone"
		}
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", false
	}
	return b.String(), true
}
