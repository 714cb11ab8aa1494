// Package requirements folds quest objectives and hideout station levels into
// per-item demand and applies incremental progress to it.
package requirements

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SourceType string

const (
	SourceQuestObjective SourceType = "quest-objective"
	SourceStationLevel   SourceType = "hideout-station-level"
)

// Row is one contributing requirement. Rows for the same item are kept apart
// so partial progress can be redistributed.
type Row struct {
	SourceType SourceType `json:"sourceType"`
	// SourceID is the quest id or the station id.
	SourceID   string `json:"sourceId"`
	SourceName string `json:"sourceName"`
	// RefID is the objective id or the station level id.
	RefID         string `json:"refId"`
	StationLevel  int    `json:"stationLevel,omitempty"`
	ItemID        string `json:"itemId"`
	RequiredCount int    `json:"requiredCount"`
	Collected     int    `json:"collected"`
	RequiresFIR   bool   `json:"requiresFir"`
	// Currency rows demand one unit; NominalCount keeps the amount from the
	// catalog so progress can be stored in the original unit.
	Currency        bool `json:"currency,omitempty"`
	NominalCount    int  `json:"nominalCount"`
	SourceCompleted bool `json:"sourceCompleted,omitempty"`
}

// StoredCollected converts the row's collected units back into the amount
// persisted for its source.
func (r Row) StoredCollected() int {
	if r.Currency {
		if r.Collected >= r.RequiredCount {
			return r.NominalCount
		}
		return 0
	}
	return r.Collected
}

type Item struct {
	ItemID         string `json:"itemId"`
	Name           string `json:"name"`
	ShortName      string `json:"shortName"`
	IconLink       string `json:"iconLink,omitempty"`
	WikiLink       string `json:"wikiLink,omitempty"`
	TotalRequired  int    `json:"totalRequired"`
	TotalCollected int    `json:"totalCollected"`
	RequiresFIR    bool   `json:"requiresFir"`
	Rows           []Row  `json:"rows"`
}

func (it Item) Remaining() int {
	return it.TotalRequired - it.TotalCollected
}

func (it Item) Found() bool {
	return it.TotalRequired > 0 && it.TotalCollected >= it.TotalRequired
}

// SourceCount is the number of distinct quests or station levels using it.
func (it Item) SourceCount() int {
	seen := make(map[string]bool, len(it.Rows))
	for _, r := range it.Rows {
		seen[string(r.SourceType)+"\x00"+r.SourceID+"\x00"+levelKey(r)] = true
	}
	return len(seen)
}

func levelKey(r Row) string {
	if r.SourceType == SourceStationLevel {
		return r.RefID
	}
	return ""
}

// DisplayName prefers the full name and falls back to the short name and id.
func (it Item) DisplayName() string {
	switch {
	case strings.TrimSpace(it.Name) != "":
		return it.Name
	case strings.TrimSpace(it.ShortName) != "":
		return it.ShortName
	default:
		return it.ItemID
	}
}

// recount recomputes the totals from the rows, clamping every row into
// [0, RequiredCount].
func (it *Item) recount() {
	it.TotalRequired, it.TotalCollected, it.RequiresFIR = 0, 0, false
	for i := range it.Rows {
		r := &it.Rows[i]
		if r.RequiredCount < 0 {
			r.RequiredCount = 0
		}
		r.Collected = clamp(r.Collected, 0, r.RequiredCount)
		it.TotalRequired += r.RequiredCount
		it.TotalCollected += r.Collected
		it.RequiresFIR = it.RequiresFIR || r.RequiresFIR
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SortByName orders items by display name using an English collator, with
// the item id as the tie-break.
func SortByName(items []Item) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		if cmp := c.CompareString(items[i].DisplayName(), items[j].DisplayName()); cmp != 0 {
			return cmp < 0
		}
		return items[i].ItemID < items[j].ItemID
	})
}

// builder groups rows by item id, keeping first-seen item order and metadata.
type builder struct {
	order []string
	byID  map[string]*Item
}

func newBuilder() *builder {
	return &builder{byID: make(map[string]*Item)}
}

func (b *builder) add(meta Item, row Row) {
	it, ok := b.byID[row.ItemID]
	if !ok {
		meta.ItemID = row.ItemID
		meta.Rows = nil
		it = &meta
		b.byID[row.ItemID] = it
		b.order = append(b.order, row.ItemID)
	}
	it.Rows = append(it.Rows, row)
}

func (b *builder) build() []Item {
	out := make([]Item, 0, len(b.order))
	for _, id := range b.order {
		it := *b.byID[id]
		it.recount()
		out = append(out, it)
	}
	SortByName(out)
	return out
}
