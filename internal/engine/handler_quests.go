package engine

import (
	"errors"
	"fmt"

	"github.com/duskmoor/realmd/internal/display"
	"github.com/duskmoor/realmd/internal/quest"
)

func (e *Engine) handleQuests(req *request) error {
	log := req.gs.Quests
	if len(log.Active) == 0 && len(log.Completed) == 0 {
		req.reply("You have no quests. NPCs with work for you will offer it when you talk to them.")
		return nil
	}

	pal := display.Palette{Enabled: req.gs.Colors.Enabled}
	for id, q := range log.Active {
		spec, err := e.quests.Get(id)
		if err != nil {
			continue
		}
		switch q.Status {
		case quest.StatusReady:
			req.reply(pal.Quest(fmt.Sprintf("%s - ready to complete", spec.Name)))
		default:
			req.reply(pal.Quest(fmt.Sprintf("%s - stage %d of %d", spec.Name, q.Stage+1, len(spec.Stages))))
			if q.Stage < len(spec.Stages) {
				req.reply(display.ListItem(spec.Stages[q.Stage].Desc))
			}
		}
		for _, note := range q.Notes {
			req.reply(display.ListItem("* " + note))
		}
	}
	if len(log.Completed) > 0 {
		req.reply(fmt.Sprintf("Completed: %d", len(log.Completed)))
	}
	return nil
}

func (e *Engine) handleAccept(req *request) error {
	if len(req.args) < 1 {
		return NewUserError("Accept which quest?")
	}
	id := req.args[0]

	spec, err := e.quests.Offer(req.gs.Quests, id)
	switch {
	case errors.Is(err, quest.ErrUnknownQuest):
		return NewUserError(fmt.Sprintf("Nobody is offering a quest called %q.", id))
	case errors.Is(err, quest.ErrAlreadyActive):
		return NewUserError("You're already on that quest.")
	case errors.Is(err, quest.ErrAlreadyCompleted):
		return NewUserError("You've already done that, and it can't be done twice.")
	case errors.Is(err, quest.ErrLogFull):
		return NewUserError("You have too many quests on your plate already.")
	case err != nil:
		return err
	}

	pal := display.Palette{Enabled: req.gs.Colors.Enabled}
	req.reply(pal.Quest(fmt.Sprintf("Quest accepted: %s", spec.Name)))
	req.reply(spec.Desc)
	if len(spec.Stages) > 0 {
		req.reply(spec.Stages[0].Desc)
	}
	return nil
}

func (e *Engine) handleComplete(req *request) error {
	if len(req.args) < 1 {
		return NewUserError("Complete which quest?")
	}
	id := req.args[0]

	spec, err := e.quests.Get(id)
	if errors.Is(err, quest.ErrUnknownQuest) {
		return NewUserError(fmt.Sprintf("Nobody is offering a quest called %q.", id))
	} else if err != nil {
		return err
	}

	// Turn-in happens face to face with the quest giver.
	giverPresent := false
	for _, npcId := range req.room.NPCs() {
		if npcId == spec.Giver {
			giverPresent = true
			break
		}
	}
	if !giverPresent {
		name := "the quest giver"
		if giver := e.world.GetNPC(string(spec.Giver)); giver != nil {
			name = giver.Name
		}
		return NewUserError(fmt.Sprintf("You need to find %s to complete that.", name))
	}

	rewards, err := e.quests.Complete(req.gs.Quests, id)
	switch {
	case errors.Is(err, quest.ErrNotReady):
		return NewUserError("You haven't finished that quest's objectives yet.")
	case errors.Is(err, quest.ErrUnknownQuest):
		return NewUserError("You aren't on that quest.")
	case err != nil:
		return err
	}

	pal := display.Palette{Enabled: req.gs.Colors.Enabled}
	req.reply(pal.Quest(fmt.Sprintf("Quest complete: %s", spec.Name)))
	if rewards.Currency > 0 {
		req.player.Currency += rewards.Currency
		req.reply(fmt.Sprintf("You receive %d coins.", rewards.Currency))
	}
	for faction, delta := range rewards.Reputation {
		req.player.AdjustReputation(faction, delta)
		req.reply(fmt.Sprintf("Your standing with %s improves.", faction))
	}
	for _, itemId := range rewards.Items {
		it := e.world.SpawnItem(string(itemId))
		if it == nil {
			continue
		}
		if err := req.player.Inventory.Add(it); err != nil {
			// No room on the character; the reward lands at their feet.
			if addErr := req.room.Floor.Add(it); addErr == nil {
				req.reply(fmt.Sprintf("%s is placed at your feet.", display.Capitalize(it.Name)))
			}
			continue
		}
		req.reply(fmt.Sprintf("You receive %s.", it.Name))
	}
	return nil
}
