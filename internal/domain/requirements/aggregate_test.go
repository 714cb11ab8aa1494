package requirements

import (
	"reflect"
	"testing"

	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/eligibility"
	"github.com/raidledger/raidledger/internal/domain/progress"
)

var (
	roubles = catalog.ItemRef{ID: "rub", Name: "Roubles", ShortName: "RUB"}
	salewa  = catalog.ItemRef{ID: "salewa", Name: "Salewa first aid kit", ShortName: "Salewa"}
	gasan   = catalog.ItemRef{ID: "gasan", Name: "Gas analyzer", ShortName: "GasAn"}
)

func available(ids ...string) map[string]eligibility.State {
	out := make(map[string]eligibility.State)
	for _, id := range ids {
		out[id] = eligibility.State{Status: eligibility.StatusAvailable}
	}
	return out
}

func TestAggregateQuestsCurrencyCollapse(t *testing.T) {
	quests := []catalog.Quest{{
		ID:    "q",
		Title: "Shortage",
		Objectives: []catalog.Objective{
			{ID: "o", Items: []catalog.ItemRef{roubles}, Count: 50000},
		},
	}}

	tests := []struct {
		name          string
		collected     int
		wantRequired  int
		wantCollected int
	}{
		{"nothing collected", 0, 1, 0},
		{"partially collected", 49999, 1, 0},
		{"fully collected", 50000, 1, 1},
		{"over collected", 90000, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progressMap := map[progress.ObjectiveKey]int{{QuestID: "q", ObjectiveID: "o"}: tt.collected}
			got := AggregateQuests(quests, available("q"), progressMap, Scope{})
			if len(got) != 1 {
				t.Fatalf("AggregateQuests() returned %d items", len(got))
			}
			if got[0].TotalRequired != tt.wantRequired || got[0].TotalCollected != tt.wantCollected {
				t.Errorf("totals = %d/%d, want %d/%d", got[0].TotalCollected, got[0].TotalRequired, tt.wantCollected, tt.wantRequired)
			}
			if row := got[0].Rows[0]; !row.Currency || row.NominalCount != 50000 {
				t.Errorf("row = %+v, want currency with nominal 50000", row)
			}
		})
	}
}

func TestAggregateQuestsMultiItemExclusion(t *testing.T) {
	quests := []catalog.Quest{{
		ID: "q",
		Objectives: []catalog.Objective{
			{ID: "alt", Items: []catalog.ItemRef{salewa, gasan}, Count: 2},
			{ID: "one", Items: []catalog.ItemRef{gasan}, Count: 1},
		},
	}}
	got := AggregateQuests(quests, available("q"), nil, Scope{})
	if len(got) != 1 || got[0].ItemID != "gasan" || got[0].TotalRequired != 1 {
		t.Errorf("AggregateQuests() = %+v, want only the single-item objective", got)
	}
}

func TestAggregateQuestsDescriptionFilter(t *testing.T) {
	quests := []catalog.Quest{{
		ID: "q",
		Objectives: []catalog.Objective{
			{ID: "a", Description: "Hand over the Gas analyzer", Items: []catalog.ItemRef{gasan}},
			{ID: "b", Description: "Hand over 2 GasAn", Items: []catalog.ItemRef{gasan}, Count: 2},
			{ID: "c", Description: "Hand over any medical supplies", Items: []catalog.ItemRef{salewa}},
			{ID: "d", Items: []catalog.ItemRef{salewa}, Count: 3},
		},
	}}
	got := AggregateQuests(quests, available("q"), nil, Scope{})
	want := map[string]int{"gasan": 3, "salewa": 3}
	if len(got) != len(want) {
		t.Fatalf("AggregateQuests() = %+v", got)
	}
	for _, it := range got {
		if it.TotalRequired != want[it.ItemID] {
			t.Errorf("%s required = %d, want %d", it.ItemID, it.TotalRequired, want[it.ItemID])
		}
	}
}

func TestAggregateQuestsGrouping(t *testing.T) {
	quests := []catalog.Quest{
		{ID: "q1", Title: "First", KappaRequired: true, Objectives: []catalog.Objective{
			{ID: "o1", Items: []catalog.ItemRef{salewa}, Count: 2},
		}},
		{ID: "q2", Title: "Second", Objectives: []catalog.Objective{
			{ID: "o2", Items: []catalog.ItemRef{salewa}, Count: 3, FoundInRaid: true},
			{ID: "o3", Items: []catalog.ItemRef{gasan}, Count: 1},
		}},
		{ID: "q3", Title: "Third", Objectives: []catalog.Objective{
			{ID: "o4", Items: []catalog.ItemRef{salewa}, Count: 5},
		}},
	}
	states := map[string]eligibility.State{
		"q1": {Status: eligibility.StatusCompleted},
		"q2": {Status: eligibility.StatusAvailable},
		"q3": {Status: eligibility.StatusLocked},
	}
	objectives := map[progress.ObjectiveKey]int{
		{QuestID: "q1", ObjectiveID: "o1"}: 0,
		{QuestID: "q2", ObjectiveID: "o2"}: 7,
		{QuestID: "q2", ObjectiveID: "o3"}: -4,
	}

	got := AggregateQuests(quests, states, objectives, Scope{Mode: ScopeActive})
	want := []Item{
		{
			ItemID: "gasan", Name: "Gas analyzer", ShortName: "GasAn",
			TotalRequired: 1, TotalCollected: 0,
			Rows: []Row{
				{SourceType: SourceQuestObjective, SourceID: "q2", SourceName: "Second", RefID: "o3", ItemID: "gasan", RequiredCount: 1, NominalCount: 1},
			},
		},
		{
			ItemID: "salewa", Name: "Salewa first aid kit", ShortName: "Salewa",
			TotalRequired: 5, TotalCollected: 5, RequiresFIR: true,
			Rows: []Row{
				{SourceType: SourceQuestObjective, SourceID: "q1", SourceName: "First", RefID: "o1", ItemID: "salewa", RequiredCount: 2, Collected: 2, NominalCount: 2, SourceCompleted: true},
				{SourceType: SourceQuestObjective, SourceID: "q2", SourceName: "Second", RefID: "o2", ItemID: "salewa", RequiredCount: 3, Collected: 3, NominalCount: 3, RequiresFIR: true},
			},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateQuests() = %+v, want %+v", got, want)
	}
	if n := got[1].SourceCount(); n != 2 {
		t.Errorf("SourceCount() = %d, want 2", n)
	}

	kappa := AggregateQuests(quests, states, objectives, Scope{Mode: ScopeAll, KappaOnly: true})
	if len(kappa) != 1 || kappa[0].TotalRequired != 2 {
		t.Errorf("kappa scope = %+v", kappa)
	}

	outstanding := AggregateQuests(quests, states, objectives, Scope{Mode: ScopeOutstanding})
	if s, ok := Find(outstanding, "salewa"); !ok || s.TotalRequired != 3 {
		t.Errorf("outstanding scope = %+v", outstanding)
	}

	all := AggregateQuests(quests, states, objectives, Scope{Mode: ScopeAll})
	if s, _ := Find(all, "salewa"); s.TotalRequired != 10 {
		t.Errorf("all scope salewa required = %d, want 10", s.TotalRequired)
	}
}

func TestAggregateHideout(t *testing.T) {
	stations := []catalog.Station{
		{ID: "med", Name: "Medstation", Levels: []catalog.StationLevel{
			{ID: "med-1", Level: 1, ItemRequirements: []catalog.StationItemRequirement{
				{Item: salewa, Count: 2},
				{Item: roubles, Count: 25000},
			}},
			{ID: "med-2", Level: 2, ItemRequirements: []catalog.StationItemRequirement{
				{Item: salewa, Count: 1, Attributes: []catalog.Attribute{{Name: "found_in_raid"}}},
				{Item: gasan, Count: 1},
			}},
		}},
	}
	items := map[progress.StationItemKey]int{
		{StationID: "med", LevelID: "med-2", ItemID: "gasan"}: 1,
	}
	opts := HideoutOptions{
		FIRKeys:     map[string]bool{"gasanalyzer": true},
		BuiltLevels: map[string]int{"med": 1},
	}

	got := AggregateHideout(stations, items, opts)
	if len(got) != 3 {
		t.Fatalf("AggregateHideout() = %+v", got)
	}

	gas, _ := Find(got, "gasan")
	if !gas.RequiresFIR || gas.TotalCollected != 1 {
		t.Errorf("gasan = %+v, want FIR from wiki keys and collected 1", gas)
	}
	rub, _ := Find(got, "rub")
	if rub.TotalRequired != 1 || rub.TotalCollected != 1 || !rub.Rows[0].SourceCompleted {
		t.Errorf("rub = %+v, want collapsed and completed", rub)
	}
	sal, _ := Find(got, "salewa")
	if sal.TotalRequired != 3 || sal.TotalCollected != 2 || !sal.RequiresFIR {
		t.Errorf("salewa = %+v, want 2/3 with FIR", sal)
	}
	if sal.Rows[1].StationLevel != 2 || sal.Rows[1].SourceType != SourceStationLevel {
		t.Errorf("salewa row = %+v", sal.Rows[1])
	}

	opts.ActiveOnly = true
	opts.LevelStates = map[string]eligibility.State{
		"med-1": {Status: eligibility.StatusCompleted},
		"med-2": {Status: eligibility.StatusAvailable},
	}
	active := AggregateHideout(stations, items, opts)
	if s, _ := Find(active, "salewa"); s.TotalRequired != 1 {
		t.Errorf("active salewa required = %d, want 1", s.TotalRequired)
	}
	if _, ok := Find(active, "rub"); ok {
		t.Errorf("active demand must not include built levels")
	}
}

func TestMergeAndSum(t *testing.T) {
	quests := AggregateQuests([]catalog.Quest{{ID: "q", Objectives: []catalog.Objective{
		{ID: "o", Items: []catalog.ItemRef{salewa}, Count: 2},
	}}}, available("q"), nil, Scope{})
	hideout := AggregateHideout([]catalog.Station{{ID: "med", Levels: []catalog.StationLevel{
		{ID: "med-1", Level: 1, ItemRequirements: []catalog.StationItemRequirement{{Item: salewa, Count: 1}, {Item: gasan, Count: 1}}},
	}}}, map[progress.StationItemKey]int{{StationID: "med", LevelID: "med-1", ItemID: "gasan"}: 1}, HideoutOptions{})

	merged := Merge(quests, hideout)
	if len(merged) != 2 {
		t.Fatalf("Merge() = %+v", merged)
	}
	sal, _ := Find(merged, "salewa")
	if sal.TotalRequired != 3 || len(sal.Rows) != 2 || sal.Rows[0].SourceType != SourceQuestObjective {
		t.Errorf("merged salewa = %+v", sal)
	}

	want := Totals{Items: 2, Found: 1, Required: 4, Collected: 1, Remaining: 3}
	if got := Sum(merged); got != want {
		t.Errorf("Sum() = %+v, want %+v", got, want)
	}
}

func TestFilterApply(t *testing.T) {
	list := []Item{
		{ItemID: "a", Name: "Alpha", TotalRequired: 2, TotalCollected: 2, RequiresFIR: true},
		{ItemID: "b", Name: "Bravo", ShortName: "BRV", TotalRequired: 2, TotalCollected: 1, Rows: []Row{{SourceName: "Gunsmith"}}},
		{ItemID: "c", Name: "Charlie", TotalRequired: 1, RequiresFIR: true},
	}
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"a", "b", "c"}},
		{"needed", Filter{Tab: TabNeeded}, []string{"b", "c"}},
		{"found", Filter{Tab: TabFound}, []string{"a"}},
		{"fir only needed", Filter{Tab: TabNeeded, FIROnly: true}, []string{"c"}},
		{"query short name", Filter{Query: "brv"}, []string{"b"}},
		{"query source", Filter{Query: "gunsmith"}, []string{"b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, it := range tt.filter.Apply(list) {
				got = append(got, it.ItemID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortByName(t *testing.T) {
	list := []Item{
		{ItemID: "3", Name: "bolts"},
		{ItemID: "2", Name: "Àlpha"},
		{ItemID: "1", Name: "Bolts"},
		{ItemID: "4", ShortName: "axe"},
	}
	SortByName(list)
	var got []string
	for _, it := range list {
		got = append(got, it.ItemID)
	}
	want := []string{"2", "4", "1", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByName() = %v, want %v", got, want)
	}
}
