package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/duskmoor/realmd/internal/display"
	"github.com/duskmoor/realmd/internal/game"
)

func (e *Engine) handleTake(req *request) error {
	if len(req.args) < 1 {
		return NewUserError("Take what?")
	}
	keyword := req.argString()

	it := req.room.Floor.Find(keyword)
	if it == nil {
		return NewUserError(fmt.Sprintf("There's no %q here to take.", keyword))
	}
	ev, err := req.player.Take(req.room, it)
	if err != nil {
		return takeError(err, it)
	}
	req.emit(ev)
	req.reply(fmt.Sprintf("You pick up %s.", it.Name))
	return nil
}

func takeError(err error, it *game.Item) error {
	switch {
	case errors.Is(err, game.ErrTooHeavy):
		return NewUserError(fmt.Sprintf("%s is too heavy to carry with everything else.", display.Capitalize(it.Name)))
	case errors.Is(err, game.ErrTooManyItems):
		return NewUserError("Your hands are full.")
	default:
		return err
	}
}

func (e *Engine) handleDrop(req *request) error {
	if len(req.args) < 1 {
		return NewUserError("Drop what?")
	}
	keyword := req.argString()

	it := req.player.Inventory.Find(keyword)
	if it == nil {
		return NewUserError(fmt.Sprintf("You aren't carrying any %q.", keyword))
	}
	ev, err := req.player.Drop(req.room, it)
	if err != nil {
		return err
	}
	req.emit(ev)
	req.reply(fmt.Sprintf("You drop %s.", it.Name))
	return nil
}

func (e *Engine) handleGive(req *request) error {
	// give <item> to <npc>
	parts := strings.SplitN(strings.ToLower(req.argString()), " to ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return NewUserError("Give what to whom? Try 'give letter to blacksmith'.")
	}
	itemKw, npcKw := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	it := req.player.Inventory.Find(itemKw)
	if it == nil {
		return NewUserError(fmt.Sprintf("You aren't carrying any %q.", itemKw))
	}
	npc := e.world.FindNPCInRoom(req.room, npcKw)
	if npc == nil {
		return NewUserError(fmt.Sprintf("There's nobody called %q here.", npcKw))
	}

	ev, err := req.player.Give(req.room, npc, it)
	if err != nil {
		return err
	}
	req.emit(ev)
	req.reply(fmt.Sprintf("You hand %s to %s.", it.Name, npc.Name))
	return nil
}

func (e *Engine) handlePut(req *request) error {
	// put <item> in <container>
	parts := strings.SplitN(strings.ToLower(req.argString()), " in ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return NewUserError("Put what in what? Try 'put coin in bag'.")
	}
	itemKw, contKw := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	it := req.player.Inventory.Find(itemKw)
	if it == nil {
		return NewUserError(fmt.Sprintf("You aren't carrying any %q.", itemKw))
	}
	container := req.player.Inventory.Find(contKw)
	if container == nil {
		container = req.room.Floor.Find(contKw)
	}
	if container == nil {
		return NewUserError(fmt.Sprintf("There's no %q here.", contKw))
	}
	if container == it {
		return NewUserError("You can't put something inside itself.")
	}

	if err := req.player.PutIn(container, it); err != nil {
		switch {
		case errors.Is(err, game.ErrNotContainer):
			return NewUserError(fmt.Sprintf("%s can't hold things.", display.Capitalize(container.Name)))
		case errors.Is(err, game.ErrContainerLocked):
			return NewUserError(fmt.Sprintf("%s is locked.", display.Capitalize(container.Name)))
		case errors.Is(err, game.ErrContainment):
			return NewUserError("That would fold space in ways best left alone.")
		case errors.Is(err, game.ErrTooHeavy), errors.Is(err, game.ErrTooManyItems):
			return NewUserError(fmt.Sprintf("%s won't fit in %s.", display.Capitalize(it.Name), container.Name))
		default:
			return err
		}
	}
	req.reply(fmt.Sprintf("You put %s in %s.", it.Name, container.Name))
	return nil
}

func (e *Engine) handleInventory(req *request) error {
	items := req.player.Inventory.Items()
	if len(items) == 0 {
		req.reply("You aren't carrying anything.")
		return nil
	}
	req.reply("You are carrying:")
	for _, it := range items {
		line := it.Name
		if it.Container != nil && it.Container.Inventory.Count() > 0 {
			line += fmt.Sprintf(" (%d items inside)", it.Container.Inventory.Count())
		}
		req.reply(display.ListItem(line))
	}
	req.reply(fmt.Sprintf("Weight: %.1f / %.1f", req.player.Inventory.Weight(), req.player.CarryCapacity()))
	if req.player.Encumbered() {
		req.reply("You are overloaded.")
	}
	return nil
}
