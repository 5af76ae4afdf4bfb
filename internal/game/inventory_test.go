package game

import (
	"testing"

	"github.com/duskmoor/realmd/internal/storage"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pixil98/go-testutil"
)

func plainItem(name string, weight float64) *Item {
	return NewItem(storage.Identifier("test-"+name), &ItemSpec{
		Name:    name,
		Aliases: []string{name},
		Weight:  weight,
	})
}

func containerItem(name string, weight, maxWeight float64, maxItems int) *Item {
	return NewItem(storage.Identifier("test-"+name), &ItemSpec{
		Name:      name,
		Aliases:   []string{name},
		KindStr:   "container",
		Weight:    weight,
		Container: &ContainerSpec{MaxWeight: maxWeight, MaxItems: maxItems},
	})
}

func TestInventory_WeightIncludesNestedContents(t *testing.T) {
	inv := NewInventory(0, 0)
	bag := containerItem("bag", 1, 0, 0)
	coin := plainItem("coin", 0.5)
	rock := plainItem("rock", 3)

	if err := inv.Add(bag); err != nil {
		t.Fatalf("add bag: %v", err)
	}
	if err := bag.Container.Inventory.Add(coin); err != nil {
		t.Fatalf("add coin: %v", err)
	}
	if err := inv.Add(rock); err != nil {
		t.Fatalf("add rock: %v", err)
	}

	testutil.AssertEqual(t, "weight", inv.Weight(), 4.5)
	testutil.AssertEqual(t, "total weight", bag.TotalWeight(), 1.5)
}

func TestInventory_MemoInvalidatesUpTheChain(t *testing.T) {
	inv := NewInventory(0, 0)
	chest := containerItem("chest", 10, 0, 0)
	bag := containerItem("bag", 1, 0, 0)

	if err := inv.Add(chest); err != nil {
		t.Fatal(err)
	}
	if err := chest.Container.Inventory.Add(bag); err != nil {
		t.Fatal(err)
	}

	// Prime the memo at every level.
	testutil.AssertEqual(t, "weight", inv.Weight(), 11.0)

	// Mutating the innermost inventory must show up at the top.
	if err := bag.Container.Inventory.Add(plainItem("gem", 2)); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, "weight", inv.Weight(), 13.0)

	bag.Container.Inventory.Remove(bag.Container.Inventory.Find("gem"))
	testutil.AssertEqual(t, "weight", inv.Weight(), 11.0)
}

func TestInventory_CanAddChecksInOrder(t *testing.T) {
	tests := map[string]struct {
		setup  func() (*Inventory, *Item)
		expErr error
	}{
		"count limit wins over weight": {
			setup: func() (*Inventory, *Item) {
				inv := NewInventory(1, 1)
				if err := inv.Add(plainItem("pebble", 0.1)); err != nil {
					t.Fatal(err)
				}
				return inv, plainItem("boulder", 100)
			},
			expErr: ErrTooManyItems,
		},
		"weight limit": {
			setup: func() (*Inventory, *Item) {
				inv := NewInventory(5, 0)
				if err := inv.Add(plainItem("rock", 4)); err != nil {
					t.Fatal(err)
				}
				return inv, plainItem("rock2", 2)
			},
			expErr: ErrTooHeavy,
		},
		"weight counts container contents": {
			setup: func() (*Inventory, *Item) {
				inv := NewInventory(5, 0)
				bag := containerItem("bag", 1, 0, 0)
				if err := bag.Container.Inventory.Add(plainItem("brick", 5)); err != nil {
					t.Fatal(err)
				}
				return inv, bag
			},
			expErr: ErrTooHeavy,
		},
		"fits": {
			setup: func() (*Inventory, *Item) {
				return NewInventory(10, 2), plainItem("apple", 1)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inv, it := tt.setup()
			err := inv.CanAdd(it)
			if tt.expErr == nil {
				if err != nil {
					t.Errorf("expected fit, got %v", err)
				}
				return
			}
			if err != tt.expErr {
				t.Errorf("expected %v, got %v", tt.expErr, err)
			}
		})
	}
}

func TestInventory_RejectsContainmentCycles(t *testing.T) {
	bag := containerItem("bag", 1, 0, 0)
	sack := containerItem("sack", 1, 0, 0)
	pouch := containerItem("pouch", 1, 0, 0)

	// bag > sack > pouch
	if err := bag.Container.Inventory.Add(sack); err != nil {
		t.Fatal(err)
	}
	if err := sack.Container.Inventory.Add(pouch); err != nil {
		t.Fatal(err)
	}

	// Direct cycle.
	testutil.AssertEqual(t, "can add", bag.Container.Inventory.CanAdd(bag), ErrContainment, cmpopts.EquateErrors())
	// Transitive cycle: the bag into the pouch at the bottom of its own chain.
	testutil.AssertEqual(t, "can add", pouch.Container.Inventory.CanAdd(bag), ErrContainment, cmpopts.EquateErrors())

	// Failed add leaves everything where it was.
	err := pouch.Container.Inventory.Add(bag)
	testutil.AssertEqual(t, "err", err, ErrContainment, cmpopts.EquateErrors())
	testutil.AssertEqual(t, "contains", bag.Container.Inventory.Contains(sack.Id), true)
	testutil.AssertEqual(t, "contains", pouch.Container.Inventory.Contains(bag.Id), false)
}

func TestInventory_AddRemoveIdempotent(t *testing.T) {
	inv := NewInventory(0, 1)
	coin := plainItem("coin", 1)

	if err := inv.Add(coin); err != nil {
		t.Fatal(err)
	}
	// Re-adding the same instance is a no-op even at the item limit.
	if err := inv.Add(coin); err != nil {
		t.Errorf("re-add should be a no-op, got %v", err)
	}
	testutil.AssertEqual(t, "count", inv.Count(), 1)

	inv.Remove(coin)
	inv.Remove(coin)
	testutil.AssertEqual(t, "count", inv.Count(), 0)
	testutil.AssertEqual(t, "weight", inv.Weight(), 0.0)
}

func TestInventory_AddMovesBetweenHolders(t *testing.T) {
	floor := NewInventory(0, 0)
	pack := NewInventory(0, 0)
	sword := plainItem("sword", 5)

	if err := floor.Add(sword); err != nil {
		t.Fatal(err)
	}
	if err := pack.Add(sword); err != nil {
		t.Fatal(err)
	}

	testutil.AssertEqual(t, "contains", floor.Contains(sword.Id), false)
	testutil.AssertEqual(t, "contains", pack.Contains(sword.Id), true)
	testutil.AssertEqual(t, "weight", floor.Weight(), 0.0)
	testutil.AssertEqual(t, "weight", pack.Weight(), 5.0)
}

func TestInventory_Find(t *testing.T) {
	inv := NewInventory(0, 0)
	sword := NewItem("test-sword", &ItemSpec{
		Name:    "rusty sword",
		Aliases: []string{"sword", "blade"},
		Weight:  5,
	})
	if err := inv.Add(sword); err != nil {
		t.Fatal(err)
	}

	testutil.AssertEqual(t, "find", inv.Find("sword"), sword)
	testutil.AssertEqual(t, "find", inv.Find("BLADE"), sword)
	testutil.AssertEqual(t, "find", inv.Find("rusty"), sword)
	if inv.Find("shield") != nil {
		t.Error("expected nil for unknown keyword")
	}
}

func TestInventory_KeepsInsertionOrder(t *testing.T) {
	inv := NewInventory(0, 0)
	names := []string{"lantern", "rope", "ration", "flask", "chalk"}
	for _, n := range names {
		if err := inv.Add(plainItem(n, 1)); err != nil {
			t.Fatal(err)
		}
	}

	listed := func() []string {
		out := []string{}
		for _, it := range inv.Items() {
			out = append(out, it.Name)
		}
		return out
	}
	testutil.AssertEqual(t, "listing", listed(), names)

	// Removing from the middle keeps the rest in place.
	inv.Remove(inv.Find("ration"))
	testutil.AssertEqual(t, "listing", listed(), []string{"lantern", "rope", "flask", "chalk"})

	// Re-adding goes to the end, not back to the old slot.
	if err := inv.Add(plainItem("ration", 1)); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, "listing", listed(), []string{"lantern", "rope", "flask", "chalk", "ration"})
}
