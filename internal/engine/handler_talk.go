package engine

import (
	"fmt"
	"strings"

	"github.com/duskmoor/realmd/internal/display"
	"github.com/duskmoor/realmd/internal/game"
)

func (e *Engine) handleSay(req *request) error {
	if len(req.args) < 1 {
		return NewUserError("Say what?")
	}
	pal := display.Palette{Enabled: req.gs.Colors.Enabled}

	// say to <npc> <words> addresses someone; plain say is room speech.
	if len(req.args) >= 3 && strings.EqualFold(req.args[0], "to") {
		npcKw := req.args[1]
		words := strings.Join(req.args[2:], " ")
		npc := e.world.FindNPCInRoom(req.room, npcKw)
		if npc == nil {
			return NewUserError(fmt.Sprintf("There's nobody called %q here.", npcKw))
		}
		ev := game.NewEvent(game.EventSayToNPC, req.player.Username, req.room.Id)
		ev.NpcId = npc.Id
		ev.Text = words
		req.emit(ev)

		req.reply(fmt.Sprintf("You say to %s, %s", npc.Name, pal.Speech(fmt.Sprintf("%q", words))))
		reply := e.talk.Reply(req.ctx, npc, req.player.Username, words)
		req.reply(fmt.Sprintf("%s says, %s", npc.Name, pal.Speech(fmt.Sprintf("%q", reply))))
		return nil
	}

	words := req.argString()
	req.reply(fmt.Sprintf("You say, %s", pal.Speech(fmt.Sprintf("%q", words))))
	e.bus.PublishRoom(string(req.room.Id), "say", broadcast{
		Username: req.player.Username,
		Text:     fmt.Sprintf("%s says, %q", display.Capitalize(req.player.Username), words),
	})
	return nil
}

func (e *Engine) handleTalk(req *request) error {
	if len(req.args) < 1 {
		return NewUserError("Talk to whom?")
	}
	keyword := strings.TrimPrefix(req.argString(), "to ")
	npc := e.world.FindNPCInRoom(req.room, keyword)
	if npc == nil {
		return NewUserError(fmt.Sprintf("There's nobody called %q here.", keyword))
	}

	ev := game.NewEvent(game.EventTalkNPC, req.player.Username, req.room.Id)
	ev.NpcId = npc.Id
	req.emit(ev)

	pal := display.Palette{Enabled: req.gs.Colors.Enabled}
	reply := e.talk.Reply(req.ctx, npc, req.player.Username, "")
	req.reply(fmt.Sprintf("%s says, %s", npc.Name, pal.Speech(fmt.Sprintf("%q", reply))))
	return nil
}
