package catalog

import "time"

// Snapshot is an immutable view of the catalog at one point in time.
type Snapshot struct {
	Quests    []Quest
	Stations  []Station
	Skips     []Skip
	FetchedAt time.Time
	// Stale is set when the snapshot was served from a fallback after a
	// failed refresh.
	Stale bool

	questIndex   map[string]int
	titleIndex   map[string]int
	stationIndex map[string]int
}

func NewSnapshot(quests []Quest, stations []Station, fetchedAt time.Time) *Snapshot {
	s := &Snapshot{
		Quests:       quests,
		Stations:     stations,
		FetchedAt:    fetchedAt,
		questIndex:   make(map[string]int, len(quests)),
		titleIndex:   make(map[string]int, len(quests)),
		stationIndex: make(map[string]int, len(stations)),
	}
	for i, q := range quests {
		s.questIndex[q.ID] = i
		if _, ok := s.titleIndex[q.Title]; !ok {
			s.titleIndex[q.Title] = i
		}
	}
	for i, st := range stations {
		s.stationIndex[st.ID] = i
	}
	return s
}

func (s *Snapshot) QuestByID(id string) (Quest, bool) {
	i, ok := s.questIndex[id]
	if !ok {
		return Quest{}, false
	}
	return s.Quests[i], true
}

func (s *Snapshot) QuestByTitle(title string) (Quest, bool) {
	i, ok := s.titleIndex[title]
	if !ok {
		return Quest{}, false
	}
	return s.Quests[i], true
}

func (s *Snapshot) StationByID(id string) (Station, bool) {
	i, ok := s.stationIndex[id]
	if !ok {
		return Station{}, false
	}
	return s.Stations[i], true
}

// Titles maps quest ids to titles.
func (s *Snapshot) Titles() map[string]string {
	out := make(map[string]string, len(s.Quests))
	for _, q := range s.Quests {
		out[q.ID] = q.Title
	}
	return out
}

// WithStale returns a copy of s flagged as stale.
func (s *Snapshot) WithStale(stale bool) *Snapshot {
	c := *s
	c.Stale = stale
	return &c
}
