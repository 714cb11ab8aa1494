package team

import (
	"reflect"
	"testing"

	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/eligibility"
	"github.com/raidledger/raidledger/internal/domain/requirements"
)

func memberItems(pairs ...requirements.Item) []requirements.Item { return pairs }

func TestCombine(t *testing.T) {
	alice := Member{ActorID: "u1", Username: "alice", Role: "owner", Items: memberItems(
		requirements.Item{ItemID: "salewa", Name: "Salewa", TotalRequired: 3, TotalCollected: 1},
		requirements.Item{ItemID: "gasan", Name: "Gas analyzer", TotalRequired: 1},
	)}
	bob := Member{ActorID: "u2", Username: "bob", Role: "member", Items: memberItems(
		requirements.Item{ItemID: "salewa", Name: "Salewa (other)", TotalRequired: 2, TotalCollected: 2, RequiresFIR: true},
	)}

	got := Combine([]Member{alice, bob})
	want := []Item{
		{
			ItemID: "gasan", Name: "Gas analyzer", TotalRequired: 1,
			Members: []MemberNeed{{ActorID: "u1", Username: "alice", Role: "owner", Required: 1}},
		},
		{
			ItemID: "salewa", Name: "Salewa", TotalRequired: 5, TotalCollected: 3, RequiresFIR: true,
			Members: []MemberNeed{
				{ActorID: "u1", Username: "alice", Role: "owner", Required: 3, Collected: 1},
				{ActorID: "u2", Username: "bob", Role: "member", Required: 2, Collected: 2},
			},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Combine() = %+v, want %+v", got, want)
	}
}

func TestCombineAdditivity(t *testing.T) {
	members := []Member{
		{ActorID: "a", Items: memberItems(requirements.Item{ItemID: "x", TotalRequired: 4, TotalCollected: 1})},
		{ActorID: "b", Items: memberItems(requirements.Item{ItemID: "x", TotalRequired: 2})},
		{ActorID: "c", Items: memberItems(requirements.Item{ItemID: "y", TotalRequired: 7})},
	}

	got := Combine(members)
	x := got[0]
	if x.ItemID != "x" || x.TotalRequired != 6 {
		t.Fatalf("Combine() x = %+v, want required 6", x)
	}
	sum := 0
	for _, m := range x.Members {
		sum += m.Required
	}
	if sum != x.TotalRequired {
		t.Errorf("member breakdown sums to %d, want %d", sum, x.TotalRequired)
	}

	withoutC := Combine(members[:2])
	if !reflect.DeepEqual(withoutC[0], x) {
		t.Errorf("dropping an unrelated member changed x: %+v", withoutC[0])
	}
	if len(withoutC) != 1 {
		t.Errorf("Combine() = %+v, want only x", withoutC)
	}
}

func TestCombineSameMemberTwice(t *testing.T) {
	m := Member{ActorID: "a", Items: memberItems(requirements.Item{ItemID: "x", TotalRequired: 1})}
	h := Member{ActorID: "a", Items: memberItems(requirements.Item{ItemID: "x", TotalRequired: 2, TotalCollected: 1})}
	got := Combine([]Member{m, h})
	if len(got[0].Members) != 1 || got[0].Members[0].Required != 3 || got[0].Members[0].Collected != 1 {
		t.Errorf("Combine() = %+v, want one entry 1/3", got[0].Members)
	}
}

func TestQuestMatrix(t *testing.T) {
	quests := []catalog.Quest{{ID: "a", Title: "A", Trader: "Prapor"}, {ID: "b", Title: "B", KappaRequired: true}}
	members := []MemberStates{
		{ActorID: "u1", Username: "alice", States: map[string]eligibility.State{
			"a": {Status: eligibility.StatusCompleted},
			"b": {Status: eligibility.StatusAvailable},
		}},
		{ActorID: "u2", Username: "bob"},
	}
	got := QuestMatrix(members, quests)
	want := []QuestRow{
		{QuestID: "a", Title: "A", Trader: "Prapor", Statuses: []MemberStatus{
			{ActorID: "u1", Username: "alice", Status: eligibility.StatusCompleted},
			{ActorID: "u2", Username: "bob", Status: eligibility.StatusLocked},
		}},
		{QuestID: "b", Title: "B", Kappa: true, Statuses: []MemberStatus{
			{ActorID: "u1", Username: "alice", Status: eligibility.StatusAvailable},
			{ActorID: "u2", Username: "bob", Status: eligibility.StatusLocked},
		}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("QuestMatrix() = %+v, want %+v", got, want)
	}
}
