package game

// Inventory holds item instances for a room floor, a character, or a
// container item. Items keep their insertion order, so listings are stable
// between identical commands. Total weight is memoized and recomputed
// lazily; any mutation invalidates the memo all the way up the containment
// chain so a bag inside a chest inside a pack never reports a stale total.
type Inventory struct {
	// owner is the container item this inventory belongs to, nil for
	// room and character inventories.
	owner *Item

	items     []*Item
	index     map[string]*Item
	maxWeight float64 // 0 = unlimited
	maxItems  int     // 0 = unlimited

	cachedWeight float64
	weightValid  bool
}

// NewInventory creates an empty room or character inventory.
func NewInventory(maxWeight float64, maxItems int) *Inventory {
	return newInventory(maxWeight, maxItems)
}

func newInventory(maxWeight float64, maxItems int) *Inventory {
	return &Inventory{
		index:     make(map[string]*Item),
		maxWeight: maxWeight,
		maxItems:  maxItems,
	}
}

// Items returns the contained items in insertion order. The slice is a
// copy; mutating it does not touch the inventory.
func (inv *Inventory) Items() []*Item {
	out := make([]*Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Count returns the number of directly contained items.
func (inv *Inventory) Count() int {
	return len(inv.items)
}

// Weight returns the total weight of the contents, containers included.
func (inv *Inventory) Weight() float64 {
	if inv.weightValid {
		return inv.cachedWeight
	}
	var w float64
	for _, it := range inv.items {
		w += it.TotalWeight()
	}
	inv.cachedWeight = w
	inv.weightValid = true
	return w
}

// invalidate marks this inventory's weight memo stale, and every inventory
// above it in the containment chain.
func (inv *Inventory) invalidate() {
	for cur := inv; cur != nil; {
		cur.weightValid = false
		if cur.owner == nil {
			return
		}
		cur = cur.owner.holder
	}
}

// CanAdd checks whether the item fits: item count first, then weight, then
// containment cycles. It returns nil or the reason it cannot fit. Nothing
// is mutated either way.
func (inv *Inventory) CanAdd(it *Item) error {
	if inv.Contains(it.Id) {
		return nil
	}
	if inv.maxItems > 0 && len(inv.items) >= inv.maxItems {
		return ErrTooManyItems
	}
	if inv.maxWeight > 0 && inv.Weight()+it.TotalWeight() > inv.maxWeight {
		return ErrTooHeavy
	}
	if inv.wouldCycle(it) {
		return ErrContainment
	}
	return nil
}

// wouldCycle reports whether adding the item here would place a container
// inside itself, directly or through any chain of nesting.
func (inv *Inventory) wouldCycle(it *Item) bool {
	if it.Container == nil {
		return false
	}
	for cur := inv; cur != nil; {
		if cur.owner == it {
			return true
		}
		if cur.owner == nil {
			return false
		}
		cur = cur.owner.holder
	}
	return false
}

// Add places the item at the end of this inventory, removing it from its
// previous holder. Adding an item already present is a no-op. The capacity
// checks run before anything moves, so a failed add changes nothing.
func (inv *Inventory) Add(it *Item) error {
	if inv.Contains(it.Id) {
		return nil
	}
	if err := inv.CanAdd(it); err != nil {
		return err
	}
	if it.holder != nil {
		it.holder.removeItem(it)
	}
	inv.items = append(inv.items, it)
	inv.index[it.Id] = it
	it.holder = inv
	inv.invalidate()
	return nil
}

// Remove takes the item out of this inventory. Removing an item that is
// not present is a no-op.
func (inv *Inventory) Remove(it *Item) {
	if !inv.Contains(it.Id) {
		return
	}
	inv.removeItem(it)
}

func (inv *Inventory) removeItem(it *Item) {
	for i, cur := range inv.items {
		if cur == it {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			break
		}
	}
	delete(inv.index, it.Id)
	it.holder = nil
	inv.invalidate()
}

// Contains checks if an item instance is directly in the inventory.
func (inv *Inventory) Contains(instanceId string) bool {
	_, ok := inv.index[instanceId]
	return ok
}

// Find returns the first item matching the keyword, or nil.
func (inv *Inventory) Find(keyword string) *Item {
	for _, it := range inv.items {
		if it.Matches(keyword) {
			return it
		}
	}
	return nil
}

// FindByDef returns the first item spawned from the given definition, or nil.
func (inv *Inventory) FindByDef(defId string) *Item {
	for _, it := range inv.items {
		if string(it.DefId) == defId {
			return it
		}
	}
	return nil
}
