package services

import (
	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/progress"
	"github.com/raidledger/raidledger/tracker/database/models"
)

// actorFromProgress builds the engine snapshot from stored rows.
func actorFromProgress(p *models.Progress) progress.Actor {
	a := progress.NewActor(p.User.ID)
	a.Level = p.User.Level
	a.Reputation = p.User.Reputation
	a.Edition = p.User.Edition

	for _, q := range p.Quests {
		a.QuestStatus[q.QuestID] = progress.QuestStatus(q.Status)
	}
	for _, o := range p.Objectives {
		a.ObjectiveProgress[progress.ObjectiveKey{QuestID: o.QuestID, ObjectiveID: o.ObjectiveID}] = o.Collected
	}
	for _, s := range p.Stations {
		a.StationLevels[s.StationID] = s.Level
	}
	for _, it := range p.Items {
		key := progress.StationItemKey{StationID: it.StationID, LevelID: it.LevelID, ItemID: it.ItemID}
		a.StationItemProgress[key] = it.Collected
	}

	if len(p.Traders) > 0 {
		standings := make(map[string]int, len(p.Traders))
		for _, t := range p.Traders {
			standings[t.TraderID] = t.Level
		}
		a.TraderLevels = catalog.TraderLevelsByName(standings)
	}
	return a
}

const (
	stashStation         = "stash"
	cultistCircleStation = "cultist-circle"
)

// seedEditionStations fills in the stash and cultist circle levels an
// account starts with when the user has not recorded them.
func seedEditionStations(a *progress.Actor, stations []catalog.Station, stashLevels map[string]int, circleEditions []string) {
	if a.Edition == "" {
		return
	}
	for _, st := range stations {
		if _, ok := a.StationLevels[st.ID]; ok {
			continue
		}
		switch st.NormalizedName {
		case stashStation:
			if lvl, ok := stashLevels[a.Edition]; ok && lvl > 0 {
				a.StationLevels[st.ID] = min(lvl, st.MaxLevel())
			}
		case cultistCircleStation:
			for _, e := range circleEditions {
				if e == a.Edition {
					a.StationLevels[st.ID] = st.MaxLevel()
					break
				}
			}
		}
	}
}
