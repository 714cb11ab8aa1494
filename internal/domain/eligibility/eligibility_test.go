package eligibility

import (
	"reflect"
	"testing"

	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/progress"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestResolveGates(t *testing.T) {
	tests := []struct {
		name  string
		quest catalog.Quest
		attrs Attributes
		want  State
	}{
		{
			name:  "level below requirement",
			quest: catalog.Quest{ID: "q", LevelRequirement: intPtr(10)},
			attrs: Attributes{Level: intPtr(9)},
			want:  State{Status: StatusLocked, Reasons: []Reason{{Gate: GateLevel, Detail: "level 10"}}},
		},
		{
			name:  "level at requirement",
			quest: catalog.Quest{ID: "q", LevelRequirement: intPtr(10)},
			attrs: Attributes{Level: intPtr(10)},
			want:  State{Status: StatusAvailable},
		},
		{
			name:  "unknown level passes",
			quest: catalog.Quest{ID: "q", LevelRequirement: intPtr(10)},
			want:  State{Status: StatusAvailable},
		},
		{
			name:  "positive reputation floor",
			quest: catalog.Quest{ID: "q", RequiredPrestige: intPtr(4)},
			attrs: Attributes{Reputation: floatPtr(3.99)},
			want:  State{Status: StatusLocked, Reasons: []Reason{{Gate: GateReputation, Detail: "Fence rep 4.00"}}},
		},
		{
			name:  "zero reputation floor met",
			quest: catalog.Quest{ID: "q", RequiredPrestige: intPtr(0)},
			attrs: Attributes{Reputation: floatPtr(0)},
			want:  State{Status: StatusAvailable},
		},
		{
			name:  "negative reputation ceiling met",
			quest: catalog.Quest{ID: "q", RequiredPrestige: intPtr(-1)},
			attrs: Attributes{Reputation: floatPtr(-1.5)},
			want:  State{Status: StatusAvailable},
		},
		{
			name:  "negative reputation ceiling exceeded",
			quest: catalog.Quest{ID: "q", RequiredPrestige: intPtr(-1)},
			attrs: Attributes{Reputation: floatPtr(0.2)},
			want:  State{Status: StatusLocked, Reasons: []Reason{{Gate: GateReputation, Detail: "Fence rep -1.00"}}},
		},
		{
			name:  "edition subsumed by unheard",
			quest: catalog.Quest{ID: "q", EditionRequirement: catalog.EditionEdgeOfDarkness},
			attrs: Attributes{Edition: string(catalog.EditionUnheard)},
			want:  State{Status: StatusAvailable},
		},
		{
			name:  "edition missing",
			quest: catalog.Quest{ID: "q", EditionRequirement: catalog.EditionEdgeOfDarkness},
			attrs: Attributes{Edition: string(catalog.EditionStandard)},
			want:  State{Status: StatusLocked, Reasons: []Reason{{Gate: GateEdition, Detail: "Edge of Darkness edition"}}},
		},
		{
			name:  "empty edition passes",
			quest: catalog.Quest{ID: "q", EditionRequirement: catalog.EditionEdgeOfDarkness},
			want:  State{Status: StatusAvailable},
		},
		{
			name: "trader entry missing fails",
			quest: catalog.Quest{ID: "q", RequiredTraderLevels: []catalog.TraderLevel{
				{TraderName: "Prapor", LoyaltyLevel: 2},
				{TraderName: "Skier", LoyaltyLevel: 3},
			}},
			attrs: Attributes{TraderLevels: map[string]int{"Prapor": 2}},
			want:  State{Status: StatusLocked, Reasons: []Reason{{Gate: GateTrader, Detail: "Skier LL3"}}},
		},
		{
			name:  "unknown trader levels pass",
			quest: catalog.Quest{ID: "q", RequiredTraderLevels: []catalog.TraderLevel{{TraderName: "Skier", LoyaltyLevel: 3}}},
			want:  State{Status: StatusAvailable},
		},
		{
			name:  "prerequisite missing from catalog",
			quest: catalog.Quest{ID: "q", PreviousQuestIDs: []string{"ghost"}},
			want: State{
				Status:               StatusLocked,
				Reasons:              []Reason{{Gate: GatePrerequisite, Detail: "ghost"}},
				MissingPrerequisites: []string{"ghost"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve([]catalog.Quest{tt.quest}, nil, tt.attrs)
			if !reflect.DeepEqual(got[tt.quest.ID], tt.want) {
				t.Errorf("Resolve() = %+v, want %+v", got[tt.quest.ID], tt.want)
			}
		})
	}
}

func TestResolveCompletedIgnoresGates(t *testing.T) {
	q := catalog.Quest{
		ID:                 "q",
		PreviousQuestIDs:   []string{"p"},
		LevelRequirement:   intPtr(50),
		EditionRequirement: catalog.EditionUnheard,
	}
	got := Resolve([]catalog.Quest{q}, map[string]bool{"q": true}, Attributes{Level: intPtr(1), Edition: "Standard"})
	if got["q"].Status != StatusCompleted || got["q"].Reasons != nil {
		t.Errorf("Resolve() = %+v, want completed without reasons", got["q"])
	}
}

func TestResolvePrerequisiteChain(t *testing.T) {
	quests := []catalog.Quest{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B", PreviousQuestIDs: []string{"a"}},
		{ID: "c", Title: "C", PreviousQuestIDs: []string{"b"}},
	}
	got := Resolve(quests, map[string]bool{"a": true}, Attributes{})

	want := map[string]State{
		"a": {Status: StatusCompleted},
		"b": {Status: StatusAvailable},
		"c": {
			Status:               StatusLocked,
			Reasons:              []Reason{{Gate: GatePrerequisite, Detail: "B"}},
			MissingPrerequisites: []string{"b"},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
}

func TestResolveCycleTerminates(t *testing.T) {
	quests := []catalog.Quest{
		{ID: "a", Title: "A", PreviousQuestIDs: []string{"b"}},
		{ID: "b", Title: "B", PreviousQuestIDs: []string{"a"}},
	}
	got := Resolve(quests, nil, Attributes{})
	for _, id := range []string{"a", "b"} {
		if got[id].Status != StatusLocked {
			t.Errorf("Resolve()[%s] = %v, want locked", id, got[id].Status)
		}
	}
}

func TestResolveEndToEnd(t *testing.T) {
	quests := []catalog.Quest{
		{ID: "a", Title: "Quest A"},
		{ID: "b", Title: "Quest B", PreviousQuestIDs: []string{"a"}, LevelRequirement: intPtr(15)},
	}

	actor := progress.NewActor("u1")
	actor.Level = intPtr(10)

	got := ResolveActor(quests, actor)
	if got["a"].Status != StatusAvailable {
		t.Errorf("a = %v, want available", got["a"].Status)
	}
	wantB := State{
		Status: StatusLocked,
		Reasons: []Reason{
			{Gate: GatePrerequisite, Detail: "Quest A"},
			{Gate: GateLevel, Detail: "level 15"},
		},
		MissingPrerequisites: []string{"a"},
	}
	if !reflect.DeepEqual(got["b"], wantB) {
		t.Errorf("b = %+v, want %+v", got["b"], wantB)
	}
	if details := got["b"].Details(); !reflect.DeepEqual(details, []string{"Quest A", "level 15"}) {
		t.Errorf("Details() = %v", details)
	}

	actor.QuestStatus["a"] = progress.StatusCompleted
	actor.Level = intPtr(15)

	got = ResolveActor(quests, actor)
	if got["b"].Status != StatusAvailable {
		t.Errorf("b = %+v, want available", got["b"])
	}
}

func TestSummarize(t *testing.T) {
	quests := []catalog.Quest{
		{ID: "a", KappaRequired: true},
		{ID: "b", KappaRequired: true, LightkeeperRequired: true},
		{ID: "c"},
		{ID: "d"},
	}
	states := map[string]State{
		"a": {Status: StatusCompleted},
		"b": {Status: StatusAvailable},
		"c": {Status: StatusLocked},
	}
	want := Summary{Total: 4, Completed: 1, Available: 1, Locked: 2, KappaTotal: 2, KappaCompleted: 1, LightkeeperTotal: 1}
	if got := Summarize(quests, states); got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}
