package requirements

import (
	"reflect"
	"testing"
)

func threeRows() Item {
	it := Item{ItemID: "x", Rows: []Row{
		{SourceID: "q1", ItemID: "x", RequiredCount: 1},
		{SourceID: "q2", ItemID: "x", RequiredCount: 1},
		{SourceID: "q3", ItemID: "x", RequiredCount: 1},
	}}
	it.recount()
	return it
}

func collected(it Item) []int {
	out := make([]int, 0, len(it.Rows))
	for _, r := range it.Rows {
		out = append(out, r.Collected)
	}
	return out
}

func TestAdjustDeterministicRedistribution(t *testing.T) {
	it, rows := Adjust(threeRows(), 2)
	if got := collected(it); !reflect.DeepEqual(got, []int{1, 1, 0}) {
		t.Errorf("Adjust(+2) = %v, want [1 1 0]", got)
	}
	if len(rows) != 2 || rows[0].SourceID != "q1" || rows[1].SourceID != "q2" {
		t.Errorf("Adjust(+2) changed rows = %+v", rows)
	}

	it, rows = Adjust(it, -1)
	if got := collected(it); !reflect.DeepEqual(got, []int{1, 0, 0}) {
		t.Errorf("Adjust(-1) = %v, want [1 0 0]", got)
	}
	if len(rows) != 1 || rows[0].SourceID != "q2" {
		t.Errorf("Adjust(-1) changed rows = %+v", rows)
	}
	if it.TotalCollected != 1 || it.TotalRequired != 3 {
		t.Errorf("totals = %d/%d, want 1/3", it.TotalCollected, it.TotalRequired)
	}
}

func TestAdjustClamping(t *testing.T) {
	base := Item{ItemID: "x", Rows: []Row{
		{SourceID: "a", RequiredCount: 2, Collected: 1},
		{SourceID: "b", RequiredCount: 3, Collected: 0},
	}}
	tests := []struct {
		name      string
		delta     int
		want      []int
		wantTotal int
		wantRows  int
	}{
		{"zero is a no-op", 0, []int{1, 0}, 1, 0},
		{"fills first row first", 1, []int{2, 0}, 2, 1},
		{"spills into next row", 3, []int{2, 2}, 4, 2},
		{"clamped to total required", 100, []int{2, 3}, 5, 2},
		{"clamped to zero", -100, []int{0, 0}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rows := Adjust(base, tt.delta)
			if !reflect.DeepEqual(collected(got), tt.want) {
				t.Errorf("Adjust(%d) = %v, want %v", tt.delta, collected(got), tt.want)
			}
			if got.TotalCollected != tt.wantTotal {
				t.Errorf("TotalCollected = %d, want %d", got.TotalCollected, tt.wantTotal)
			}
			if len(rows) != tt.wantRows {
				t.Errorf("changed rows = %d, want %d", len(rows), tt.wantRows)
			}
			if got.TotalCollected < 0 || got.TotalCollected > got.TotalRequired {
				t.Errorf("totals out of range: %d/%d", got.TotalCollected, got.TotalRequired)
			}
		})
	}
	if !reflect.DeepEqual(collected(base), []int{1, 0}) {
		t.Errorf("Adjust mutated its input: %v", collected(base))
	}
}

func TestAdjustNoOpAtBounds(t *testing.T) {
	full, _ := Adjust(threeRows(), 3)
	if _, rows := Adjust(full, 1); rows != nil {
		t.Errorf("Adjust(+1) at total required changed %v", rows)
	}
	if _, rows := Adjust(threeRows(), -1); rows != nil {
		t.Errorf("Adjust(-1) at zero changed %v", rows)
	}
}

func TestAdjustIdempotentZero(t *testing.T) {
	it, _ := Adjust(threeRows(), 2)
	again, rows := Adjust(it, 0)
	if !reflect.DeepEqual(again, it) || rows != nil {
		t.Errorf("Adjust(0) = %+v, want %+v", again, it)
	}
}

func TestAdjustSequenceKeepsInvariants(t *testing.T) {
	it := Item{ItemID: "x", Rows: []Row{
		{RequiredCount: 4},
		{RequiredCount: 1, Collected: 9},
		{RequiredCount: 2, Collected: -3},
	}}
	for _, d := range []int{3, -10, 7, 2, -1, 0, 100, -4} {
		it, _ = Adjust(it, d)
		if it.TotalCollected < 0 || it.TotalCollected > it.TotalRequired {
			t.Fatalf("after %d totals = %d/%d", d, it.TotalCollected, it.TotalRequired)
		}
		for _, r := range it.Rows {
			if r.Collected < 0 || r.Collected > r.RequiredCount {
				t.Fatalf("after %d row = %+v", d, r)
			}
		}
	}
}

func TestMarkAll(t *testing.T) {
	it, _ := Adjust(threeRows(), 1)

	found, rows := MarkAll(it, true)
	if !reflect.DeepEqual(collected(found), []int{1, 1, 1}) || len(rows) != 2 {
		t.Errorf("MarkAll(found) = %v, rows %d", collected(found), len(rows))
	}

	needed, rows := MarkAll(found, false)
	if !reflect.DeepEqual(collected(needed), []int{0, 0, 0}) || len(rows) != 3 {
		t.Errorf("MarkAll(needed) = %v, rows %d", collected(needed), len(rows))
	}

	if _, rows := MarkAll(needed, false); rows != nil {
		t.Errorf("MarkAll(needed) twice changed %v", rows)
	}
}

func TestStoredCollected(t *testing.T) {
	tests := []struct {
		row  Row
		want int
	}{
		{Row{RequiredCount: 3, Collected: 2}, 2},
		{Row{Currency: true, RequiredCount: 1, Collected: 1, NominalCount: 50000}, 50000},
		{Row{Currency: true, RequiredCount: 1, Collected: 0, NominalCount: 50000}, 0},
	}
	for _, tt := range tests {
		if got := tt.row.StoredCollected(); got != tt.want {
			t.Errorf("StoredCollected(%+v) = %d, want %d", tt.row, got, tt.want)
		}
	}
}
