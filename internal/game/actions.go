package game

// Take moves an item from the room floor into the player's inventory. The
// move is atomic: if the inventory rejects the item, the floor keeps it.
func (p *Player) Take(room *Room, it *Item) (Event, error) {
	if !room.Floor.Contains(it.Id) {
		return Event{}, ErrNotHeld
	}
	if err := p.Inventory.Add(it); err != nil {
		return Event{}, err
	}
	ev := NewEvent(EventTakeItem, p.Username, room.Id)
	ev.ItemDefId = it.DefId
	return ev, nil
}

// Drop moves an item from the player's inventory onto the room floor.
func (p *Player) Drop(room *Room, it *Item) (Event, error) {
	if !p.Inventory.Contains(it.Id) {
		return Event{}, ErrNotHeld
	}
	if err := room.Floor.Add(it); err != nil {
		return Event{}, err
	}
	ev := NewEvent(EventDropItem, p.Username, room.Id)
	ev.ItemDefId = it.DefId
	return ev, nil
}

// Give hands an item from the player to an NPC. The NPC keeps it; delivery
// quests watch the resulting event.
func (p *Player) Give(room *Room, npc *NPC, it *Item) (Event, error) {
	if !p.Inventory.Contains(it.Id) {
		return Event{}, ErrNotHeld
	}
	if err := npc.Inventory.Add(it); err != nil {
		return Event{}, err
	}
	ev := NewEvent(EventGiveItem, p.Username, room.Id)
	ev.NpcId = npc.Id
	ev.ItemDefId = it.DefId
	return ev, nil
}

// PutIn stows an item inside a container the player holds or that sits on
// the floor.
func (p *Player) PutIn(container, it *Item) error {
	if container.Container == nil {
		return ErrNotContainer
	}
	if container.Container.Locked {
		return ErrContainerLocked
	}
	return container.Container.Inventory.Add(it)
}

// TakeOut retrieves an item from a container into the player's inventory.
func (p *Player) TakeOut(container, it *Item) error {
	if container.Container == nil {
		return ErrNotContainer
	}
	if container.Container.Locked {
		return ErrContainerLocked
	}
	if !container.Container.Inventory.Contains(it.Id) {
		return ErrNotHeld
	}
	return p.Inventory.Add(it)
}
