// Package team combines the item demand and quest status of team members
// into one read-only view. Callers are responsible for checking membership.
package team

import (
	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/eligibility"
	"github.com/raidledger/raidledger/internal/domain/requirements"
)

type Member struct {
	ActorID  string
	Username string
	Role     string
	Items    []requirements.Item
}

type MemberNeed struct {
	ActorID   string `json:"actorId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Required  int    `json:"required"`
	Collected int    `json:"collected"`
}

type Item struct {
	ItemID         string       `json:"itemId"`
	Name           string       `json:"name"`
	ShortName      string       `json:"shortName"`
	IconLink       string       `json:"iconLink,omitempty"`
	WikiLink       string       `json:"wikiLink,omitempty"`
	TotalRequired  int          `json:"totalRequired"`
	TotalCollected int          `json:"totalCollected"`
	RequiresFIR    bool         `json:"requiresFir"`
	Members        []MemberNeed `json:"members"`
}

func (it Item) Remaining() int {
	return it.TotalRequired - it.TotalCollected
}

// Combine merges every member's items by item id. Totals are the sum over
// members, metadata comes from the first member listing the item and the FIR
// flag is OR'd across members. A member contributes at most one breakdown
// entry per item.
func Combine(members []Member) []Item {
	var order []string
	byID := make(map[string]*Item)
	entry := make(map[string]map[string]int)

	for _, m := range members {
		for _, src := range m.Items {
			it, ok := byID[src.ItemID]
			if !ok {
				it = &Item{
					ItemID:    src.ItemID,
					Name:      src.Name,
					ShortName: src.ShortName,
					IconLink:  src.IconLink,
					WikiLink:  src.WikiLink,
				}
				byID[src.ItemID] = it
				entry[src.ItemID] = make(map[string]int)
				order = append(order, src.ItemID)
			}
			it.TotalRequired += src.TotalRequired
			it.TotalCollected += src.TotalCollected
			it.RequiresFIR = it.RequiresFIR || src.RequiresFIR

			if i, seen := entry[src.ItemID][m.ActorID]; seen {
				it.Members[i].Required += src.TotalRequired
				it.Members[i].Collected += src.TotalCollected
				continue
			}
			entry[src.ItemID][m.ActorID] = len(it.Members)
			it.Members = append(it.Members, MemberNeed{
				ActorID:   m.ActorID,
				Username:  m.Username,
				Role:      m.Role,
				Required:  src.TotalRequired,
				Collected: src.TotalCollected,
			})
		}
	}

	out := make([]Item, 0, len(order))
	sortable := make([]requirements.Item, 0, len(order))
	for _, id := range order {
		it := byID[id]
		sortable = append(sortable, requirements.Item{ItemID: it.ItemID, Name: it.Name, ShortName: it.ShortName})
	}
	requirements.SortByName(sortable)
	for _, s := range sortable {
		out = append(out, *byID[s.ItemID])
	}
	return out
}

type MemberStates struct {
	ActorID  string
	Username string
	States   map[string]eligibility.State
}

type MemberStatus struct {
	ActorID  string             `json:"actorId"`
	Username string             `json:"username"`
	Status   eligibility.Status `json:"status"`
}

type QuestRow struct {
	QuestID  string         `json:"questId"`
	Title    string         `json:"title"`
	Trader   string         `json:"trader"`
	Kappa    bool           `json:"kappaRequired"`
	Statuses []MemberStatus `json:"statuses"`
}

// QuestMatrix lists every quest with each member's resolved status, in
// catalog order. Members without a state for a quest are reported locked.
func QuestMatrix(members []MemberStates, quests []catalog.Quest) []QuestRow {
	out := make([]QuestRow, 0, len(quests))
	for _, q := range quests {
		row := QuestRow{QuestID: q.ID, Title: q.Title, Trader: q.Trader, Kappa: q.KappaRequired}
		for _, m := range members {
			status := eligibility.StatusLocked
			if st, ok := m.States[q.ID]; ok {
				status = st.Status
			}
			row.Statuses = append(row.Statuses, MemberStatus{ActorID: m.ActorID, Username: m.Username, Status: status})
		}
		out = append(out, row)
	}
	return out
}
