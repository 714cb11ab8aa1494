package services

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/requirements"
	"github.com/raidledger/raidledger/internal/domain/team"
)

type itemSearchItems []requirements.Item

func (s itemSearchItems) String(i int) string {
	return normalizeQuery(s[i].Name + " " + s[i].ShortName)
}

func (s itemSearchItems) Len() int {
	return len(s)
}

type teamSearchItems []team.Item

func (s teamSearchItems) String(i int) string {
	return normalizeQuery(s[i].Name + " " + s[i].ShortName)
}

func (s teamSearchItems) Len() int {
	return len(s)
}

type questSearchItems []catalog.Quest

func (s questSearchItems) String(i int) string {
	return normalizeQuery(s[i].Title)
}

func (s questSearchItems) Len() int {
	return len(s)
}

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

// SearchItems returns the items matching query, best match first.
func SearchItems(items []requirements.Item, query string) []requirements.Item {
	query = normalizeQuery(query)
	if query == "" {
		return items
	}
	matches := fuzzy.FindFrom(query, itemSearchItems(items))
	out := make([]requirements.Item, len(matches))
	for i, m := range matches {
		out[i] = items[m.Index]
	}
	return out
}

// SearchTeamItems is SearchItems for combined team needs.
func SearchTeamItems(items []team.Item, query string) []team.Item {
	query = normalizeQuery(query)
	if query == "" {
		return items
	}
	matches := fuzzy.FindFrom(query, teamSearchItems(items))
	out := make([]team.Item, len(matches))
	for i, m := range matches {
		out[i] = items[m.Index]
	}
	return out
}

// SearchQuests returns up to limit quests whose title matches query, best
// match first. A non-positive limit returns every match.
func SearchQuests(quests []catalog.Quest, query string, limit int) []catalog.Quest {
	query = normalizeQuery(query)
	if query == "" {
		if limit > 0 && len(quests) > limit {
			return quests[:limit]
		}
		return quests
	}
	matches := fuzzy.FindFrom(query, questSearchItems(quests))
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]catalog.Quest, len(matches))
	for i, m := range matches {
		out[i] = quests[m.Index]
	}
	return out
}
