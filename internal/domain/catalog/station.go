package catalog

type Attribute struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type StationItemRequirement struct {
	Item       ItemRef     `json:"item"`
	Count      int         `json:"count"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

type StationLevelRef struct {
	StationID   string `json:"stationId"`
	StationName string `json:"stationName"`
	Level       int    `json:"level"`
}

type SkillLevel struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type StationLevel struct {
	ID                       string                   `json:"id"`
	Level                    int                      `json:"level"`
	ItemRequirements         []StationItemRequirement `json:"itemRequirements,omitempty"`
	StationLevelRequirements []StationLevelRef        `json:"stationLevelRequirements,omitempty"`
	TraderRequirements       []TraderLevel            `json:"traderRequirements,omitempty"`
	SkillRequirements        []SkillLevel             `json:"skillRequirements,omitempty"`
}

type Station struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	NormalizedName string         `json:"normalizedName"`
	Levels         []StationLevel `json:"levels"`
}

// MaxLevel is the highest level listed for s.
func (s Station) MaxLevel() int {
	max := 0
	for _, l := range s.Levels {
		if l.Level > max {
			max = l.Level
		}
	}
	return max
}

// Trader is one entry of the fixed trader roster. Standings are stored by ID
// while the feed names traders by display name.
type Trader struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MaxLevel int    `json:"maxLevel"`
}

var Traders = []Trader{
	{ID: "prapor", Name: "Prapor", MaxLevel: 4},
	{ID: "therapist", Name: "Therapist", MaxLevel: 4},
	{ID: "fence", Name: "Fence", MaxLevel: 4},
	{ID: "skier", Name: "Skier", MaxLevel: 4},
	{ID: "peacekeeper", Name: "Peacekeeper", MaxLevel: 4},
	{ID: "mechanic", Name: "Mechanic", MaxLevel: 4},
	{ID: "ragman", Name: "Ragman", MaxLevel: 4},
	{ID: "jaeger", Name: "Jaeger", MaxLevel: 4},
	{ID: "ref", Name: "Ref", MaxLevel: 4},
	{ID: "lightkeeper", Name: "Lightkeeper", MaxLevel: 1},
}

func TraderByID(id string) (Trader, bool) {
	for _, t := range Traders {
		if t.ID == id {
			return t, true
		}
	}
	return Trader{}, false
}

// TraderLevelsByName converts standings keyed by trader ID into loyalty levels
// keyed by display name, clamping each level to [1, MaxLevel]. Unknown IDs are
// dropped. A nil result means no standing was usable.
func TraderLevelsByName(standings map[string]int) map[string]int {
	var out map[string]int
	for id, level := range standings {
		t, ok := TraderByID(id)
		if !ok {
			continue
		}
		if level < 1 {
			level = 1
		}
		if level > t.MaxLevel {
			level = t.MaxLevel
		}
		if out == nil {
			out = make(map[string]int)
		}
		out[t.Name] = level
	}
	return out
}
