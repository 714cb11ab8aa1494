package catalog

// Raw* types mirror the JSON returned by the tarkov.dev GraphQL API. Every
// field that the feed may omit is a pointer or a slice so the parser can tell
// "absent" from "zero".

type RawNamed struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalizedName"`
}

type RawItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	IconLink  string `json:"iconLink"`
	WikiLink  string `json:"wikiLink"`
}

type RawPrestige struct {
	PrestigeLevel *int `json:"prestigeLevel"`
}

type RawTaskRequirement struct {
	Task   *RawNamed `json:"task"`
	Status []string  `json:"status"`
}

type RawTraderRequirement struct {
	ID              string    `json:"id"`
	RequirementType string    `json:"requirementType"`
	CompareMethod   string    `json:"compareMethod"`
	Value           *float64  `json:"value"`
	Trader          *RawNamed `json:"trader"`
}

type RawObjective struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Maps         []RawNamed `json:"maps"`
	Items        []RawItem  `json:"items"`
	Count        *int       `json:"count"`
	FoundInRaid  bool       `json:"foundInRaid"`
	RequiredKeys []RawItem  `json:"requiredKeys"`
}

type RawTask struct {
	ID                  string                 `json:"id"`
	Name                string                 `json:"name"`
	KappaRequired       bool                   `json:"kappaRequired"`
	LightkeeperRequired bool                   `json:"lightkeeperRequired"`
	MinPlayerLevel      *int                   `json:"minPlayerLevel"`
	RequiredPrestige    *RawPrestige           `json:"requiredPrestige"`
	WikiLink            string                 `json:"wikiLink"`
	Trader              *RawNamed              `json:"trader"`
	Map                 *RawNamed              `json:"map"`
	TaskRequirements    []RawTaskRequirement   `json:"taskRequirements"`
	TraderRequirements  []RawTraderRequirement `json:"traderRequirements"`
	Objectives          []RawObjective         `json:"objectives"`
}

type RawAttribute struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type RawItemRequirement struct {
	Count      *int           `json:"count"`
	Quantity   *int           `json:"quantity"`
	Attributes []RawAttribute `json:"attributes"`
	Item       *RawItem       `json:"item"`
}

type RawStationLevelRequirement struct {
	ID      string    `json:"id"`
	Level   int       `json:"level"`
	Station *RawNamed `json:"station"`
}

type RawSkillRequirement struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type RawStationLevel struct {
	ID                       string                       `json:"id"`
	Level                    *int                         `json:"level"`
	ItemRequirements         []RawItemRequirement         `json:"itemRequirements"`
	StationLevelRequirements []RawStationLevelRequirement `json:"stationLevelRequirements"`
	SkillRequirements        []RawSkillRequirement        `json:"skillRequirements"`
	TraderRequirements       []RawTraderRequirement       `json:"traderRequirements"`
}

type RawStation struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	NormalizedName string            `json:"normalizedName"`
	Levels         []RawStationLevel `json:"levels"`
}
