package catalog

import (
	"fmt"
	"strings"
)

type SkipKind string

const (
	SkipTask              SkipKind = "task"
	SkipObjective         SkipKind = "objective"
	SkipStation           SkipKind = "station"
	SkipStationLevel      SkipKind = "station-level"
	SkipStationItem       SkipKind = "station-item"
	SkipTraderRequirement SkipKind = "trader-requirement"
)

// Skip records a feed record that was dropped during parsing.
type Skip struct {
	Kind   SkipKind `json:"kind"`
	ID     string   `json:"id,omitempty"`
	Parent string   `json:"parent,omitempty"`
	Reason string   `json:"reason"`
}

func (s Skip) String() string {
	if s.Parent != "" {
		return fmt.Sprintf("%s %q in %q: %s", s.Kind, s.ID, s.Parent, s.Reason)
	}
	return fmt.Sprintf("%s %q: %s", s.Kind, s.ID, s.Reason)
}

const unknownTrader = "Unknown trader"

// ParseTasks converts raw tasks into quests. Records missing a required field
// are reported as skips and parsing continues with the rest of the feed.
func ParseTasks(raw []RawTask) ([]Quest, []Skip) {
	var (
		quests []Quest
		skips  []Skip
	)

	for i, t := range raw {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			skips = append(skips, Skip{Kind: SkipTask, ID: fmt.Sprintf("#%d", i), Reason: "missing id"})
			continue
		}

		q := Quest{
			ID:                  id,
			Title:               strings.TrimSpace(t.Name),
			Trader:              unknownTrader,
			KappaRequired:       t.KappaRequired,
			LightkeeperRequired: t.LightkeeperRequired,
			WikiLink:            t.WikiLink,
		}
		if q.Title == "" {
			q.Title = "Unknown task"
		}
		if t.Trader != nil && strings.TrimSpace(t.Trader.Name) != "" {
			q.Trader = strings.TrimSpace(t.Trader.Name)
		}
		if t.Map != nil {
			q.Map = t.Map.Name
		}
		if t.MinPlayerLevel != nil {
			level := *t.MinPlayerLevel
			q.LevelRequirement = &level
		}
		if t.RequiredPrestige != nil && t.RequiredPrestige.PrestigeLevel != nil {
			p := *t.RequiredPrestige.PrestigeLevel
			q.RequiredPrestige = &p
		}
		if p, ok := prestigeOverride(q.Title); ok {
			q.RequiredPrestige = &p
		}
		if e, ok := editionOverride(q.Title); ok {
			q.EditionRequirement = e
		}

		seenPrev := make(map[string]bool)
		for _, req := range t.TaskRequirements {
			if req.Task == nil || req.Task.ID == "" || seenPrev[req.Task.ID] {
				continue
			}
			seenPrev[req.Task.ID] = true
			q.PreviousQuestIDs = append(q.PreviousQuestIDs, req.Task.ID)
		}

		levels, traderSkips := parseTraderLevels(t.TraderRequirements, id)
		q.RequiredTraderLevels = levels
		skips = append(skips, traderSkips...)

		for j, o := range t.Objectives {
			oid := strings.TrimSpace(o.ID)
			if oid == "" {
				skips = append(skips, Skip{Kind: SkipObjective, ID: fmt.Sprintf("#%d", j), Parent: id, Reason: "missing id"})
				continue
			}
			obj, ok := parseObjective(oid, o)
			if !ok {
				skips = append(skips, Skip{Kind: SkipObjective, ID: oid, Parent: id, Reason: "item without id"})
				continue
			}
			q.Objectives = append(q.Objectives, obj)
		}

		quests = append(quests, q)
	}

	linkNextQuests(quests)
	return quests, skips
}

func parseObjective(id string, o RawObjective) (Objective, bool) {
	obj := Objective{
		ID:          id,
		Type:        o.Type,
		Description: strings.TrimSpace(o.Description),
		Count:       1,
		FoundInRaid: o.FoundInRaid,
	}
	if o.Count != nil && *o.Count > 0 {
		obj.Count = *o.Count
	}
	for _, m := range o.Maps {
		if m.Name != "" {
			obj.Maps = append(obj.Maps, m.Name)
		} else if m.NormalizedName != "" {
			obj.Maps = append(obj.Maps, m.NormalizedName)
		}
	}
	for _, it := range o.Items {
		if strings.TrimSpace(it.ID) == "" {
			return Objective{}, false
		}
		obj.Items = append(obj.Items, itemRef(it))
	}
	for _, k := range o.RequiredKeys {
		if k.ID != "" {
			obj.RequiredKeys = append(obj.RequiredKeys, itemRef(k))
		}
	}
	obj.Tags = objectiveTags(obj.Description, len(obj.Items))
	return obj, true
}

func parseTraderLevels(raw []RawTraderRequirement, parent string) ([]TraderLevel, []Skip) {
	var (
		levels []TraderLevel
		skips  []Skip
	)
	for _, r := range raw {
		if r.RequirementType != "loyaltyLevel" {
			continue
		}
		name := ""
		if r.Trader != nil {
			name = strings.TrimSpace(r.Trader.Name)
		}
		if name == "" || r.Value == nil || *r.Value <= 0 {
			skips = append(skips, Skip{Kind: SkipTraderRequirement, ID: r.ID, Parent: parent, Reason: "missing trader or level"})
			continue
		}
		levels = append(levels, TraderLevel{TraderName: name, LoyaltyLevel: int(*r.Value)})
	}
	return levels, skips
}

func itemRef(it RawItem) ItemRef {
	return ItemRef{
		ID:        strings.TrimSpace(it.ID),
		Name:      it.Name,
		ShortName: it.ShortName,
		IconLink:  it.IconLink,
		WikiLink:  it.WikiLink,
	}
}

func linkNextQuests(quests []Quest) {
	index := make(map[string]int, len(quests))
	for i, q := range quests {
		index[q.ID] = i
	}
	for _, q := range quests {
		for _, prev := range q.PreviousQuestIDs {
			if i, ok := index[prev]; ok {
				quests[i].NextQuestIDs = append(quests[i].NextQuestIDs, q.ID)
			}
		}
	}
}

// ParseStations converts raw hideout stations. Item requirements without an
// item id and levels without an id or level number are skipped.
func ParseStations(raw []RawStation) ([]Station, []Skip) {
	var (
		stations []Station
		skips    []Skip
	)

	for i, s := range raw {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			skips = append(skips, Skip{Kind: SkipStation, ID: fmt.Sprintf("#%d", i), Reason: "missing id"})
			continue
		}
		st := Station{ID: id, Name: strings.TrimSpace(s.Name), NormalizedName: s.NormalizedName}
		if st.Name == "" {
			st.Name = id
		}

		for j, l := range s.Levels {
			lid := strings.TrimSpace(l.ID)
			if lid == "" || l.Level == nil {
				skips = append(skips, Skip{Kind: SkipStationLevel, ID: fmt.Sprintf("#%d", j), Parent: id, Reason: "missing id or level"})
				continue
			}
			level := StationLevel{ID: lid, Level: *l.Level}

			for k, r := range l.ItemRequirements {
				if r.Item == nil || strings.TrimSpace(r.Item.ID) == "" {
					skips = append(skips, Skip{Kind: SkipStationItem, ID: fmt.Sprintf("#%d", k), Parent: lid, Reason: "missing item id"})
					continue
				}
				req := StationItemRequirement{Item: itemRef(*r.Item), Count: stationItemCount(r)}
				for _, a := range r.Attributes {
					req.Attributes = append(req.Attributes, Attribute{Type: a.Type, Name: a.Name, Value: a.Value})
				}
				level.ItemRequirements = append(level.ItemRequirements, req)
			}

			for _, r := range l.StationLevelRequirements {
				if r.Station == nil || r.Station.ID == "" {
					continue
				}
				level.StationLevelRequirements = append(level.StationLevelRequirements, StationLevelRef{
					StationID:   r.Station.ID,
					StationName: r.Station.Name,
					Level:       r.Level,
				})
			}

			for _, r := range l.SkillRequirements {
				level.SkillRequirements = append(level.SkillRequirements, SkillLevel{Name: r.Name, Level: r.Level})
			}

			traders, traderSkips := parseTraderLevels(l.TraderRequirements, lid)
			level.TraderRequirements = traders
			skips = append(skips, traderSkips...)

			st.Levels = append(st.Levels, level)
		}

		stations = append(stations, st)
	}

	return stations, skips
}

// stationItemCount prefers quantity over count and falls back to 1 for a
// missing or non-positive value.
func stationItemCount(r RawItemRequirement) int {
	n := 0
	switch {
	case r.Quantity != nil:
		n = *r.Quantity
	case r.Count != nil:
		n = *r.Count
	}
	if n <= 0 {
		return 1
	}
	return n
}
