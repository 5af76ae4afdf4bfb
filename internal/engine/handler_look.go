package engine

import (
	"fmt"
	"strings"

	"github.com/duskmoor/realmd/internal/display"
)

func (e *Engine) handleLook(req *request) error {
	if len(req.args) > 0 {
		return e.lookAt(req, req.argString())
	}

	pal := display.Palette{Enabled: req.gs.Colors.Enabled}
	snap := e.sky.Snapshot()

	req.reply(pal.Title(req.room.Spec.Title))
	req.reply(req.room.Describe(snap.TimeOfDay))

	if req.room.Spec.Outdoor {
		req.reply(pal.Sky(e.sky.Describe(true)))
	}

	for _, it := range req.room.Floor.Items() {
		if it.LongDesc != "" {
			req.reply(it.LongDesc)
		} else {
			req.reply(fmt.Sprintf("%s lies here.", display.Capitalize(it.Name)))
		}
	}
	for _, id := range req.room.NPCs() {
		if npc := e.world.GetNPC(string(id)); npc != nil {
			req.reply(fmt.Sprintf("%s is here.", npc.Name))
		}
	}
	for _, u := range req.room.Players() {
		if u != req.player.Username {
			req.reply(fmt.Sprintf("%s is here.", display.Capitalize(u)))
		}
	}

	req.reply(exitLine(req))
	return nil
}

func exitLine(req *request) string {
	dirs := make([]string, 0, len(req.room.Spec.Exits))
	for dir := range req.room.Spec.Exits {
		dirs = append(dirs, dir)
	}
	if len(dirs) == 0 {
		return "There are no obvious exits."
	}
	return fmt.Sprintf("Exits: %s", strings.Join(dirs, ", "))
}

func (e *Engine) lookAt(req *request, keyword string) error {
	if it := req.player.Inventory.Find(keyword); it != nil {
		req.reply(itemDetail(it.Name, it.ShortDesc))
		return nil
	}
	if it := req.room.Floor.Find(keyword); it != nil {
		req.reply(itemDetail(it.Name, it.ShortDesc))
		return nil
	}
	if npc := e.world.FindNPCInRoom(req.room, keyword); npc != nil {
		if npc.Spec.Desc != "" {
			req.reply(npc.Spec.Desc)
		} else {
			req.reply(fmt.Sprintf("You see nothing special about %s.", npc.Name))
		}
		return nil
	}
	return NewUserError(fmt.Sprintf("You don't see any %q here.", keyword))
}

func itemDetail(name, desc string) string {
	if desc != "" {
		return desc
	}
	return fmt.Sprintf("You see nothing special about %s.", name)
}
