package engine

import (
	"fmt"

	"github.com/duskmoor/realmd/internal/game"
)

func (e *Engine) handleMove(req *request) error {
	if len(req.args) < 1 {
		return NewUserError("Go where? Try 'go north'.")
	}
	return e.move(req, req.args[0])
}

func (e *Engine) handleMoveShorthand(dir string) handlerFunc {
	return func(req *request) error {
		return e.move(req, dir)
	}
}

func (e *Engine) move(req *request, dir string) error {
	destId, ok := req.room.Exit(dir)
	if !ok {
		return NewUserError(fmt.Sprintf("You can't go %s from here.", dir))
	}
	if req.player.Encumbered() {
		return NewUserError("You are carrying too much to move. Drop something first.")
	}
	dest := e.world.GetRoom(string(destId))
	if dest == nil {
		return NewUserError(fmt.Sprintf("The way %s is impassable.", dir))
	}

	req.room.RemovePlayer(req.player.Username)
	dest.AddPlayer(req.player.Username)
	req.player.RoomId = string(destId)

	// Time outdoors wears on you; shelter lets you recover.
	req.player.Exposure.Apply(e.sky.Snapshot().Weather, dest.Spec.Outdoor, e.exposureRates())

	req.emit(game.NewEvent(game.EventEnterRoom, req.player.Username, destId))

	// Show the new surroundings.
	req.room = dest
	req.args = nil
	if err := e.handleLook(req); err != nil {
		return err
	}
	if msg, ok := req.player.Exposure.Discomfort(); ok {
		req.reply(msg)
	}
	return nil
}
