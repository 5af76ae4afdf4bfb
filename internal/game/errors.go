package game

import "errors"

var (
	ErrTooManyItems    = errors.New("inventory item limit reached")
	ErrTooHeavy        = errors.New("inventory weight limit exceeded")
	ErrContainment     = errors.New("container cannot hold itself")
	ErrNotHeld         = errors.New("item is not in this inventory")
	ErrNotContainer    = errors.New("item is not a container")
	ErrContainerLocked = errors.New("container is locked")
	ErrEncumbered      = errors.New("carrying too much to move")
)
