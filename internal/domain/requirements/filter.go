package requirements

import "strings"

type Tab string

const (
	TabNeeded Tab = "needed"
	TabFound  Tab = "found"
	TabAll    Tab = "all"
)

type Filter struct {
	Tab     Tab
	FIROnly bool
	// Query is matched case-insensitively against name, short name and the
	// names of the contributing sources.
	Query string
}

// Apply returns the items of list accepted by f, preserving order.
func (f Filter) Apply(list []Item) []Item {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Item, 0, len(list))
	for _, it := range list {
		switch f.Tab {
		case TabNeeded:
			if it.Found() {
				continue
			}
		case TabFound:
			if !it.Found() {
				continue
			}
		}
		if f.FIROnly && !it.RequiresFIR {
			continue
		}
		if q != "" && !matchesQuery(it, q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesQuery(it Item, q string) bool {
	if strings.Contains(strings.ToLower(it.Name), q) || strings.Contains(strings.ToLower(it.ShortName), q) {
		return true
	}
	for _, r := range it.Rows {
		if strings.Contains(strings.ToLower(r.SourceName), q) {
			return true
		}
	}
	return false
}

type Totals struct {
	Items     int `json:"items"`
	Found     int `json:"found"`
	Required  int `json:"required"`
	Collected int `json:"collected"`
	Remaining int `json:"remaining"`
}

func Sum(list []Item) Totals {
	var t Totals
	for _, it := range list {
		t.Items++
		if it.Found() {
			t.Found++
		}
		t.Required += it.TotalRequired
		t.Collected += it.TotalCollected
	}
	t.Remaining = t.Required - t.Collected
	return t
}

// Merge folds several aggregation outputs of the same actor into one list
// keyed by item id. Rows are concatenated in argument order.
func Merge(lists ...[]Item) []Item {
	b := newBuilder()
	for _, list := range lists {
		for _, it := range list {
			for _, r := range it.Rows {
				b.add(it, r)
			}
		}
	}
	return b.build()
}

// Find returns the item with the given id.
func Find(list []Item, itemID string) (Item, bool) {
	for _, it := range list {
		if it.ItemID == itemID {
			return it, true
		}
	}
	return Item{}, false
}
