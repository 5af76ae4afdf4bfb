package game

import (
	"testing"

	"github.com/duskmoor/realmd/internal/atmos"
	"github.com/duskmoor/realmd/internal/storage"
	"github.com/pixil98/go-testutil"
)

func exits(pairs ...string) map[string]storage.Identifier {
	out := make(map[string]storage.Identifier)
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i]] = storage.Identifier(pairs[i+1])
	}
	return out
}

func TestRoomSpec_Validate(t *testing.T) {
	tests := map[string]struct {
		spec   RoomSpec
		expErr bool
	}{
		"valid": {
			spec: RoomSpec{
				Title: "Town Square",
				Desc:  "A broad cobbled square.",
				Exits: exits("north", "market_row"),
			},
		},
		"missing title": {
			spec:   RoomSpec{Desc: "A room."},
			expErr: true,
		},
		"missing description": {
			spec:   RoomSpec{Title: "Somewhere"},
			expErr: true,
		},
		"bad exit direction": {
			spec: RoomSpec{
				Title: "Town Square",
				Desc:  "A square.",
				Exits: exits("sideways", "nowhere"),
			},
			expErr: true,
		},
		"bad time band": {
			spec: RoomSpec{
				Title:     "Town Square",
				Desc:      "A square.",
				TimeDescs: map[string]string{"noonish": "Bright."},
			},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.expErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestRoom_DescribeByTimeOfDay(t *testing.T) {
	room := NewRoom("town_square", &RoomSpec{
		Title: "Town Square",
		Desc:  "A broad cobbled square.",
		TimeDescs: map[string]string{
			"night": "The square lies empty under lantern light.",
		},
	})

	testutil.AssertEqual(t, "describe", room.Describe(atmos.Night), "The square lies empty under lantern light.")
	testutil.AssertEqual(t, "describe", room.Describe(atmos.Day), "A broad cobbled square.")
}

func TestRoom_PresenceIdempotent(t *testing.T) {
	room := NewRoom("town_square", &RoomSpec{Title: "Town Square", Desc: "A square."})

	room.AddPlayer("revna")
	room.AddPlayer("revna")
	room.AddPlayer("aldric")
	testutil.AssertEqual(t, "players", room.Players(), []string{"aldric", "revna"})

	room.RemovePlayer("revna")
	room.RemovePlayer("revna")
	testutil.AssertEqual(t, "players", room.Players(), []string{"aldric"})
	testutil.AssertEqual(t, "has players", room.HasPlayers(), true)

	room.RemovePlayer("aldric")
	testutil.AssertEqual(t, "has players", room.HasPlayers(), false)
}

func TestNPC_WeatherReaction(t *testing.T) {
	npc := NewNPC("blacksmith", &NpcSpec{
		Name:    "Harl",
		Aliases: []string{"harl"},
		Room:    "town_square",
		Stats:   Stats{MaxHealth: 30, Strength: 8},
		WeatherLines: []WeatherLine{
			{Type: "rain", Line: "Harl glances at the sky and shrugs."},
			{Type: "rain", Intensity: "heavy", Line: "Harl hauls his wares under the awning."},
		},
	})

	line, ok := npc.WeatherReaction(atmos.State{Type: atmos.Rain, Intensity: atmos.IntensityHeavy})
	testutil.AssertEqual(t, "ok", ok, true)
	testutil.AssertEqual(t, "line", line, "Harl hauls his wares under the awning.")

	line, ok = npc.WeatherReaction(atmos.State{Type: atmos.Rain, Intensity: atmos.IntensityLight})
	testutil.AssertEqual(t, "ok", ok, true)
	testutil.AssertEqual(t, "line", line, "Harl glances at the sky and shrugs.")

	_, ok = npc.WeatherReaction(atmos.State{Type: atmos.Snow, Intensity: atmos.IntensityLight})
	testutil.AssertEqual(t, "ok", ok, false)
}

func TestCorpse_DecayProgression(t *testing.T) {
	npc := NewNPC("bandit", &NpcSpec{
		Name:    "a ragged bandit",
		Aliases: []string{"bandit"},
		Room:    "forest_path",
		Stats:   Stats{MaxHealth: 10, Strength: 4},
	})
	loot := plainItem("dagger", 1)
	if err := npc.Inventory.Add(loot); err != nil {
		t.Fatal(err)
	}

	corpse := NewCorpse(&npc.Character)
	testutil.AssertEqual(t, "name", corpse.Name, "the corpse of a ragged bandit")
	testutil.AssertEqual(t, "contains", corpse.Container.Inventory.Contains(loot.Id), true)

	// Two ticks per stage: fresh -> rotting -> skeletal -> gone.
	for i := 0; i < 2; i++ {
		testutil.AssertEqual(t, "advance decay", corpse.AdvanceDecay(2), false)
	}
	testutil.AssertEqual(t, "stage", corpse.Corpse.Stage, DecayRotting)
	testutil.AssertEqual(t, "name", corpse.Name, "the rotting corpse of a ragged bandit")

	corpse.AdvanceDecay(2)
	testutil.AssertEqual(t, "advance decay", corpse.AdvanceDecay(2), false)
	testutil.AssertEqual(t, "name", corpse.Name, "the skeletal remains of a ragged bandit")

	corpse.AdvanceDecay(2)
	testutil.AssertEqual(t, "advance decay", corpse.AdvanceDecay(2), true)
	testutil.AssertEqual(t, "stage", corpse.Corpse.Stage, DecayGone)
}
