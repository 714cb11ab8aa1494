package requirements

import (
	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/eligibility"
	"github.com/raidledger/raidledger/internal/domain/itemclass"
	"github.com/raidledger/raidledger/internal/domain/progress"
)

type HideoutOptions struct {
	// FIRKeys holds normalized item names that the wiki lists as needing to
	// be found in raid.
	FIRKeys map[string]bool
	// BuiltLevels maps station id to its built level. Levels at or below it
	// count as fully collected.
	BuiltLevels map[string]int
	// LevelStates are the gate results per station level id. With ActiveOnly
	// only available levels contribute.
	LevelStates map[string]eligibility.State
	ActiveOnly  bool
}

// AggregateHideout folds station level item requirements into per-item demand.
func AggregateHideout(stations []catalog.Station, items map[progress.StationItemKey]int, opts HideoutOptions) []Item {
	b := newBuilder()
	for _, st := range stations {
		built := opts.BuiltLevels[st.ID]
		for _, level := range st.Levels {
			if opts.ActiveOnly && opts.LevelStates[level.ID].Status != eligibility.StatusAvailable {
				continue
			}
			completed := level.Level <= built

			for _, req := range level.ItemRequirements {
				raw := items[progress.StationItemKey{StationID: st.ID, LevelID: level.ID, ItemID: req.Item.ID}]
				row := Row{
					SourceType:      SourceStationLevel,
					SourceID:        st.ID,
					SourceName:      st.Name,
					RefID:           level.ID,
					StationLevel:    level.Level,
					ItemID:          req.Item.ID,
					RequiresFIR:     hideoutFIR(req, opts.FIRKeys),
					SourceCompleted: completed,
				}
				fillCounts(&row, req.Item, req.Count, raw, completed)
				b.add(itemMeta(req.Item), row)
			}
		}
	}
	return b.build()
}

func hideoutFIR(req catalog.StationItemRequirement, keys map[string]bool) bool {
	if itemclass.HasFIRAttribute(req.Attributes) {
		return true
	}
	if len(keys) == 0 {
		return false
	}
	if k := itemclass.NormalizeKey(req.Item.Name); k != "" && keys[k] {
		return true
	}
	if k := itemclass.NormalizeKey(req.Item.ShortName); k != "" && keys[k] {
		return true
	}
	return false
}
