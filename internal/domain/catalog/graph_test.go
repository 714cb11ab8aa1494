package catalog

import (
	"reflect"
	"testing"
	"time"
)

func TestAncestors(t *testing.T) {
	quests := []Quest{
		{ID: "a"},
		{ID: "b", PreviousQuestIDs: []string{"a"}},
		{ID: "c", PreviousQuestIDs: []string{"b", "x"}},
		{ID: "d", PreviousQuestIDs: []string{"c", "a"}},
	}
	got := Ancestors(quests, "d")
	want := []string{"c", "a", "b", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ancestors() = %v, want %v", got, want)
	}
}

func TestAncestorsCycle(t *testing.T) {
	quests := []Quest{
		{ID: "a", PreviousQuestIDs: []string{"c"}},
		{ID: "b", PreviousQuestIDs: []string{"a"}},
		{ID: "c", PreviousQuestIDs: []string{"b"}},
	}
	got := Ancestors(quests, "a")
	want := []string{"c", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ancestors() = %v, want %v", got, want)
	}
}

func TestCycles(t *testing.T) {
	tests := []struct {
		name   string
		quests []Quest
		want   [][]string
	}{
		{
			name: "acyclic",
			quests: []Quest{
				{ID: "a"},
				{ID: "b", PreviousQuestIDs: []string{"a"}},
			},
		},
		{
			name: "three cycle",
			quests: []Quest{
				{ID: "b", PreviousQuestIDs: []string{"a"}},
				{ID: "a", PreviousQuestIDs: []string{"c"}},
				{ID: "c", PreviousQuestIDs: []string{"b"}},
			},
			want: [][]string{{"a", "c", "b"}},
		},
		{
			name: "self loop and unknown prerequisite",
			quests: []Quest{
				{ID: "s", PreviousQuestIDs: []string{"s", "missing"}},
			},
			want: [][]string{{"s"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cycles(tt.quests); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Cycles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshotLookups(t *testing.T) {
	s := NewSnapshot([]Quest{{ID: "a", Title: "Debut"}}, []Station{{ID: "gen", Name: "Generator"}}, time.Time{})
	if q, ok := s.QuestByID("a"); !ok || q.Title != "Debut" {
		t.Errorf("QuestByID() = %v, %v", q, ok)
	}
	if _, ok := s.QuestByTitle("Nope"); ok {
		t.Errorf("QuestByTitle() found unknown title")
	}
	if st, ok := s.StationByID("gen"); !ok || st.Name != "Generator" {
		t.Errorf("StationByID() = %v, %v", st, ok)
	}
	if stale := s.WithStale(true); !stale.Stale || s.Stale {
		t.Errorf("WithStale() must copy the snapshot")
	}
}
