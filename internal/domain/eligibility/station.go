package eligibility

import (
	"fmt"

	"github.com/raidledger/raidledger/internal/domain/catalog"
)

// ResolveStations gates every hideout station level. Levels at or below the
// built level are completed. The next level is available when its station
// level and trader requirements are met. Levels further ahead are locked
// behind their predecessor.
func ResolveStations(stations []catalog.Station, built map[string]int, traderLevels map[string]int) map[string]State {
	names := make(map[string]string, len(stations))
	for _, st := range stations {
		names[st.ID] = st.Name
	}

	out := make(map[string]State)
	for _, st := range stations {
		current := built[st.ID]
		for _, level := range st.Levels {
			out[level.ID] = resolveStationLevel(st, level, current, names, built, traderLevels)
		}
	}
	return out
}

func resolveStationLevel(st catalog.Station, level catalog.StationLevel, current int, names map[string]string, built map[string]int, traderLevels map[string]int) State {
	if level.Level <= current {
		return State{Status: StatusCompleted}
	}

	var s State
	if level.Level > current+1 {
		s.Reasons = append(s.Reasons, Reason{Gate: GateStation, Detail: fmt.Sprintf("%s level %d", st.Name, level.Level-1)})
	}
	for _, req := range level.StationLevelRequirements {
		if built[req.StationID] >= req.Level {
			continue
		}
		name := req.StationName
		if name == "" {
			name = names[req.StationID]
		}
		if name == "" {
			name = req.StationID
		}
		s.Reasons = append(s.Reasons, Reason{Gate: GateStation, Detail: fmt.Sprintf("%s level %d", name, req.Level)})
	}
	s.Reasons = append(s.Reasons, traderReasons(level.TraderRequirements, traderLevels)...)

	if len(s.Reasons) > 0 {
		s.Status = StatusLocked
		return s
	}
	return State{Status: StatusAvailable}
}
