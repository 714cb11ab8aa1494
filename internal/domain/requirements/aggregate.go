package requirements

import (
	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/eligibility"
	"github.com/raidledger/raidledger/internal/domain/itemclass"
	"github.com/raidledger/raidledger/internal/domain/progress"
)

type ScopeMode string

const (
	// ScopeAll counts every quest regardless of status.
	ScopeAll ScopeMode = "all"
	// ScopeActive counts available and completed quests.
	ScopeActive ScopeMode = "active"
	// ScopeOutstanding counts available quests only.
	ScopeOutstanding ScopeMode = "outstanding"
)

type Scope struct {
	Mode            ScopeMode
	KappaOnly       bool
	LightkeeperOnly bool
}

func ParseScopeMode(s string) (ScopeMode, bool) {
	switch ScopeMode(s) {
	case ScopeAll, ScopeActive, ScopeOutstanding:
		return ScopeMode(s), true
	case "":
		return ScopeAll, true
	}
	return "", false
}

func (s Scope) includes(q catalog.Quest, status eligibility.Status) bool {
	if s.KappaOnly && !q.KappaRequired {
		return false
	}
	if s.LightkeeperOnly && !q.LightkeeperRequired {
		return false
	}
	switch s.Mode {
	case ScopeActive:
		return status == eligibility.StatusAvailable || status == eligibility.StatusCompleted
	case ScopeOutstanding:
		return status == eligibility.StatusAvailable
	default:
		return true
	}
}

// AggregateQuests folds the single-item objectives of the quests in scope into
// per-item demand. Objectives of completed quests count as fully collected.
func AggregateQuests(quests []catalog.Quest, states map[string]eligibility.State, objectives map[progress.ObjectiveKey]int, scope Scope) []Item {
	b := newBuilder()
	for _, q := range quests {
		status := states[q.ID].Status
		if !scope.includes(q, status) {
			continue
		}
		completed := status == eligibility.StatusCompleted

		for _, o := range q.Objectives {
			req, ok := o.SingleItem()
			if !ok {
				continue
			}
			if !itemclass.DescriptionNames(o.Description, req.Item.Name, req.Item.ShortName) {
				continue
			}

			raw := objectives[progress.ObjectiveKey{QuestID: q.ID, ObjectiveID: o.ID}]
			row := Row{
				SourceType:      SourceQuestObjective,
				SourceID:        q.ID,
				SourceName:      q.Title,
				RefID:           o.ID,
				ItemID:          req.Item.ID,
				RequiresFIR:     req.FoundInRaid,
				SourceCompleted: completed,
			}
			fillCounts(&row, req.Item, req.RequiredCount, raw, completed)
			b.add(itemMeta(req.Item), row)
		}
	}
	return b.build()
}

// fillCounts applies the completed override, the currency collapse and the
// row clamp.
func fillCounts(row *Row, item catalog.ItemRef, base, raw int, completed bool) {
	if base <= 0 {
		base = 1
	}
	if completed {
		raw = base
	}
	row.NominalCount = base
	if itemclass.IsCurrency(item.Name, item.ShortName) {
		row.Currency = true
		row.RequiredCount = 1
		if raw >= base {
			row.Collected = 1
		}
		return
	}
	row.RequiredCount = base
	row.Collected = clamp(raw, 0, base)
}

func itemMeta(ref catalog.ItemRef) Item {
	return Item{
		ItemID:    ref.ID,
		Name:      ref.Name,
		ShortName: ref.ShortName,
		IconLink:  ref.IconLink,
		WikiLink:  ref.WikiLink,
	}
}
