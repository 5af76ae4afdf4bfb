package game

import (
	"fmt"
	"strings"

	"github.com/duskmoor/realmd/internal/storage"
	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
)

// ItemKind defines the category of an item.
type ItemKind string

const (
	ItemPlain      ItemKind = "plain"
	ItemWeapon     ItemKind = "weapon"
	ItemArmor      ItemKind = "armor"
	ItemContainer  ItemKind = "container"
	ItemConsumable ItemKind = "consumable"
	ItemCorpse     ItemKind = "corpse"
)

// ItemSpec defines a type of item loaded from asset files. Multiple
// instances can be spawned from one definition.
type ItemSpec struct {
	Name string `json:"name"`

	// Aliases are keywords players can use to target this item
	Aliases []string `json:"aliases"`

	// ShortDesc is used in action messages (e.g., "You pick up a rusty sword.")
	ShortDesc string `json:"short_desc"`

	// LongDesc is shown when the item is on the ground in a room
	LongDesc string `json:"long_desc"`

	KindStr string  `json:"kind"`
	Weight  float64 `json:"weight"`
	Value   int     `json:"value"`

	Weapon     *WeaponInfo     `json:"weapon,omitempty"`
	Armor      *ArmorInfo      `json:"armor,omitempty"`
	Container  *ContainerSpec  `json:"container,omitempty"`
	Consumable *ConsumableInfo `json:"consumable,omitempty"`
}

// Kind returns the parsed ItemKind from KindStr.
func (s *ItemSpec) Kind() ItemKind {
	switch strings.ToLower(s.KindStr) {
	case "plain", "":
		return ItemPlain
	case "weapon":
		return ItemWeapon
	case "armor":
		return ItemArmor
	case "container":
		return ItemContainer
	case "consumable":
		return ItemConsumable
	default:
		return ItemKind("")
	}
}

// Validate satisfies storage.ValidatingSpec
func (s *ItemSpec) Validate() error {
	el := errors.NewErrorList()
	if s.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if len(s.Aliases) < 1 {
		el.Add(fmt.Errorf("item alias is required"))
	}
	if s.Weight < 0 {
		el.Add(fmt.Errorf("item weight cannot be negative"))
	}
	if s.KindStr != "" && s.Kind() == ItemKind("") {
		el.Add(fmt.Errorf("item kind %q is invalid", s.KindStr))
	}
	if s.Kind() == ItemWeapon && s.Weapon == nil {
		el.Add(fmt.Errorf("weapon items require a weapon block"))
	}
	if s.Kind() == ItemArmor && s.Armor == nil {
		el.Add(fmt.Errorf("armor items require an armor block"))
	}
	if s.Kind() == ItemContainer && s.Container == nil {
		el.Add(fmt.Errorf("container items require a container block"))
	}
	return el.Err()
}

// WeaponInfo holds the combat properties of weapon items.
type WeaponInfo struct {
	Damage     int    `json:"damage"`
	DamageType string `json:"damage_type"`
}

// ArmorInfo holds the protective properties of armor items.
type ArmorInfo struct {
	Protection int    `json:"protection"`
	Slot       string `json:"slot"`
}

// ContainerSpec defines the capacity of container items.
type ContainerSpec struct {
	MaxWeight float64            `json:"max_weight"`
	MaxItems  int                `json:"max_items"`
	Locked    bool               `json:"locked"`
	KeyId     storage.Identifier `json:"key_id,omitempty"`
}

// ConsumableInfo holds the use properties of consumable items.
type ConsumableInfo struct {
	Charges int    `json:"charges"`
	Effect  string `json:"effect"`
}

// ContainerInfo is the runtime state of a container item, wrapping the
// nested inventory and lock state.
type ContainerInfo struct {
	Inventory *Inventory
	Locked    bool
	KeyId     storage.Identifier
}

// CorpseInfo tracks decay for corpse items.
type CorpseInfo struct {
	Of         string
	Stage      DecayStage
	DecayTicks int
}

// Item is a single spawned instance of an item definition. Every instance
// gets its own id so two copies of the same definition stay distinct.
type Item struct {
	Id    string
	DefId storage.Identifier

	Name      string
	Aliases   []string
	ShortDesc string
	LongDesc  string
	Kind      ItemKind
	Weight    float64
	Value     int

	Weapon     *WeaponInfo
	Armor      *ArmorInfo
	Container  *ContainerInfo
	Consumable *ConsumableInfo
	Corpse     *CorpseInfo

	// holder is the inventory currently containing this item, nil when the
	// item is nowhere.
	holder *Inventory
}

// NewItem spawns a fresh instance from a definition.
func NewItem(id storage.Identifier, spec *ItemSpec) *Item {
	it := &Item{
		Id:        uuid.NewString(),
		DefId:     id,
		Name:      spec.Name,
		Aliases:   append([]string(nil), spec.Aliases...),
		ShortDesc: spec.ShortDesc,
		LongDesc:  spec.LongDesc,
		Kind:      spec.Kind(),
		Weight:    spec.Weight,
		Value:     spec.Value,
	}
	if spec.Weapon != nil {
		w := *spec.Weapon
		it.Weapon = &w
	}
	if spec.Armor != nil {
		a := *spec.Armor
		it.Armor = &a
	}
	if spec.Consumable != nil {
		c := *spec.Consumable
		it.Consumable = &c
	}
	if spec.Container != nil {
		it.Container = &ContainerInfo{
			Inventory: newInventory(spec.Container.MaxWeight, spec.Container.MaxItems),
			Locked:    spec.Container.Locked,
			KeyId:     spec.Container.KeyId,
		}
		it.Container.Inventory.owner = it
	}
	return it
}

// TotalWeight is the item's own weight plus, for containers, the weight of
// everything inside it.
func (it *Item) TotalWeight() float64 {
	w := it.Weight
	if it.Container != nil {
		w += it.Container.Inventory.Weight()
	}
	return w
}

// Matches reports whether the keyword targets this item.
func (it *Item) Matches(keyword string) bool {
	keyword = strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(it.Name), keyword) {
		return true
	}
	for _, a := range it.Aliases {
		if strings.EqualFold(a, keyword) {
			return true
		}
	}
	return false
}
