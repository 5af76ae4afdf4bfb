package quest

import (
	"fmt"
	"testing"

	"github.com/duskmoor/realmd/internal/game"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pixil98/go-testutil"
)

// memStore is an in-memory Storer for tests.
type memStore struct {
	specs map[string]*QuestSpec
}

func (m *memStore) Save(id string, s *QuestSpec) error { m.specs[id] = s; return nil }
func (m *memStore) Get(id string) *QuestSpec           { return m.specs[id] }
func (m *memStore) GetAll() map[string]*QuestSpec      { return m.specs }

func courierQuest() *QuestSpec {
	return &QuestSpec{
		Name:  "The Miller's Letter",
		Desc:  "Deliver the miller's letter to the blacksmith.",
		Giver: "miller",
		Stages: []StageSpec{
			{
				Desc: "Pick up the letter from the mill.",
				Objectives: []ObjectiveSpec{
					{TypeStr: "go_to_room", Room: "old_mill"},
					{TypeStr: "obtain_item", Item: "sealed_letter"},
				},
				Note: "You collected the letter from the mill.",
			},
			{
				Desc: "Deliver the letter to Harl the blacksmith.",
				Objectives: []ObjectiveSpec{
					{TypeStr: "deliver_item", Item: "sealed_letter", Npc: "blacksmith"},
				},
				Note: "Harl has the letter now.",
			},
		},
		Rewards: RewardSpec{
			Currency:   25,
			Reputation: map[string]int{"millbrook": 5},
		},
	}
}

func passwordQuest() *QuestSpec {
	return &QuestSpec{
		Name:  "The Watchword",
		Desc:  "Speak the watchword to the gate guard.",
		Giver: "captain",
		Stages: []StageSpec{
			{
				Desc: "Tell the guard the watchword.",
				Objectives: []ObjectiveSpec{
					{TypeStr: "say_to_npc", Npc: "gate_guard", Keywords: []string{"ember", "ashes"}},
				},
			},
		},
	}
}

func TestQuest_StageProgression(t *testing.T) {
	spec := courierQuest()
	q := NewQuest("millers_letter")

	// Wrong room does nothing.
	ev := game.NewEvent(game.EventEnterRoom, "revna", "town_square")
	testutil.AssertEqual(t, "update", q.Update(spec, ev), false)

	ev = game.NewEvent(game.EventEnterRoom, "revna", "old_mill")
	testutil.AssertEqual(t, "update", q.Update(spec, ev), true)
	testutil.AssertEqual(t, "stage", q.Stage, 0)

	// Redelivery of the same event changes nothing.
	testutil.AssertEqual(t, "update", q.Update(spec, ev), false)

	take := game.NewEvent(game.EventTakeItem, "revna", "old_mill")
	take.ItemDefId = "sealed_letter"
	testutil.AssertEqual(t, "update", q.Update(spec, take), true)

	// Stage finished: note appended, objectives reset.
	testutil.AssertEqual(t, "stage", q.Stage, 1)
	testutil.AssertEqual(t, "notes", q.Notes, []string{"You collected the letter from the mill."})
	testutil.AssertEqual(t, "status", q.Status, StatusActive)

	give := game.NewEvent(game.EventGiveItem, "revna", "town_square")
	give.ItemDefId = "sealed_letter"
	give.NpcId = "blacksmith"
	testutil.AssertEqual(t, "update", q.Update(spec, give), true)

	// Final stage done: quest is ready to turn in, not auto-completed.
	testutil.AssertEqual(t, "status", q.Status, StatusReady)
	testutil.AssertEqual(t, "notes count", len(q.Notes), 2)
}

func TestQuest_DeliverRequiresRightNpc(t *testing.T) {
	spec := courierQuest()
	q := NewQuest("millers_letter")
	q.Stage = 1

	give := game.NewEvent(game.EventGiveItem, "revna", "town_square")
	give.ItemDefId = "sealed_letter"
	give.NpcId = "miller"
	testutil.AssertEqual(t, "update", q.Update(spec, give), false)

	give.NpcId = "blacksmith"
	testutil.AssertEqual(t, "update", q.Update(spec, give), true)
}

func TestQuest_KeywordMatching(t *testing.T) {
	tests := map[string]struct {
		line string
		exp  bool
	}{
		"exact keyword":        {line: "ember", exp: true},
		"keyword in sentence":  {line: "the watchword is ember, let me in", exp: true},
		"case insensitive":     {line: "EMBER", exp: true},
		"second keyword":       {line: "only ashes remain", exp: true},
		"no keyword":           {line: "please let me through", exp: false},
		"substring of keyword": {line: "embers everywhere", exp: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			spec := passwordQuest()
			q := NewQuest("watchword")

			say := game.NewEvent(game.EventSayToNPC, "revna", "gate")
			say.NpcId = "gate_guard"
			say.Text = tt.line
			testutil.AssertEqual(t, "update", q.Update(spec, say), tt.exp)
		})
	}
}

func TestEngine_OfferRules(t *testing.T) {
	store := &memStore{specs: map[string]*QuestSpec{
		"millers_letter": courierQuest(),
	}}
	repeatable := passwordQuest()
	repeatable.Repeatable = true
	store.specs["watchword"] = repeatable

	e := NewEngine(store)
	log := NewLog()

	if _, err := e.Offer(log, "millers_letter"); err != nil {
		t.Fatalf("first offer: %v", err)
	}
	_, err := e.Offer(log, "millers_letter")
	testutil.AssertEqual(t, "err", err, ErrAlreadyActive, cmpopts.EquateErrors())

	_, err = e.Offer(log, "no_such_quest")
	testutil.AssertEqual(t, "err", err, ErrUnknownQuest, cmpopts.EquateErrors())

	// Completed and non-repeatable: refused.
	log.Active["millers_letter"].Status = StatusReady
	if _, err := e.Complete(log, "millers_letter"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	_, err = e.Offer(log, "millers_letter")
	testutil.AssertEqual(t, "err", err, ErrAlreadyCompleted, cmpopts.EquateErrors())

	// Completed but repeatable: allowed again.
	if _, err := e.Offer(log, "watchword"); err != nil {
		t.Fatalf("offer repeatable: %v", err)
	}
	log.Active["watchword"].Status = StatusReady
	if _, err := e.Complete(log, "watchword"); err != nil {
		t.Fatalf("complete repeatable: %v", err)
	}
	if _, err := e.Offer(log, "watchword"); err != nil {
		t.Errorf("re-offer repeatable: %v", err)
	}

	// A full log refuses new offers.
	store.specs["second_errand"] = courierQuest()
	for i := 0; i < MaxActiveQuests; i++ {
		log.Active[fmt.Sprintf("filler_%d", i)] = NewQuest(fmt.Sprintf("filler_%d", i))
	}
	_, err = e.Offer(log, "second_errand")
	testutil.AssertEqual(t, "err", err, ErrLogFull, cmpopts.EquateErrors())
}

func TestEngine_CompleteRequiresReady(t *testing.T) {
	store := &memStore{specs: map[string]*QuestSpec{"millers_letter": courierQuest()}}
	e := NewEngine(store)
	log := NewLog()

	if _, err := e.Offer(log, "millers_letter"); err != nil {
		t.Fatal(err)
	}
	_, err := e.Complete(log, "millers_letter")
	testutil.AssertEqual(t, "err", err, ErrNotReady, cmpopts.EquateErrors())

	log.Active["millers_letter"].Status = StatusReady
	rewards, err := e.Complete(log, "millers_letter")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	testutil.AssertEqual(t, "currency", rewards.Currency, 25)
	testutil.AssertEqual(t, "has completed", log.HasCompleted("millers_letter"), true)
	testutil.AssertEqual(t, "active count", len(log.Active), 0)
}

func TestEngine_HandleEventFansOut(t *testing.T) {
	store := &memStore{specs: map[string]*QuestSpec{
		"millers_letter": courierQuest(),
		"watchword":      passwordQuest(),
	}}
	e := NewEngine(store)
	log := NewLog()
	if _, err := e.Offer(log, "millers_letter"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Offer(log, "watchword"); err != nil {
		t.Fatal(err)
	}

	// An event only some quests care about.
	ev := game.NewEvent(game.EventEnterRoom, "revna", "old_mill")
	progress := e.HandleEvent(log, ev)
	testutil.AssertEqual(t, "progress count", len(progress), 1)
	testutil.AssertEqual(t, "name", progress[0].Name, "The Miller's Letter")

	// A quest whose definition vanished is skipped without error.
	delete(store.specs, "watchword")
	say := game.NewEvent(game.EventSayToNPC, "revna", "gate")
	say.NpcId = "gate_guard"
	say.Text = "ember"
	testutil.AssertEqual(t, "handle event count", len(e.HandleEvent(log, say)), 0)
}

func TestQuestSpec_Validate(t *testing.T) {
	tests := map[string]struct {
		mutate func(*QuestSpec)
		expErr bool
	}{
		"valid":            {mutate: func(*QuestSpec) {}},
		"missing name":     {mutate: func(s *QuestSpec) { s.Name = "" }, expErr: true},
		"missing giver":    {mutate: func(s *QuestSpec) { s.Giver = "" }, expErr: true},
		"no stages":        {mutate: func(s *QuestSpec) { s.Stages = nil }, expErr: true},
		"empty stage":      {mutate: func(s *QuestSpec) { s.Stages[0].Objectives = nil }, expErr: true},
		"bad objective":    {mutate: func(s *QuestSpec) { s.Stages[0].Objectives[0].TypeStr = "fly" }, expErr: true},
		"say without keywords": {
			mutate: func(s *QuestSpec) {
				s.Stages[0].Objectives[0] = ObjectiveSpec{TypeStr: "say_to_npc", Npc: "guard"}
			},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			spec := courierQuest()
			tt.mutate(spec)
			err := spec.Validate()
			if tt.expErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
