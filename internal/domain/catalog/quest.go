package catalog

import "strings"

type Edition string

const (
	EditionStandard         Edition = "Standard"
	EditionLeftBehind       Edition = "Left Behind"
	EditionPrepareForEscape Edition = "Prepare for Escape"
	EditionEdgeOfDarkness   Edition = "Edge of Darkness"
	EditionUnheard          Edition = "Unheard"
)

var Editions = []Edition{
	EditionStandard,
	EditionLeftBehind,
	EditionPrepareForEscape,
	EditionEdgeOfDarkness,
	EditionUnheard,
}

// ParseEdition returns the edition whose name matches s case-insensitively.
func ParseEdition(s string) (Edition, bool) {
	s = strings.TrimSpace(s)
	for _, e := range Editions {
		if strings.EqualFold(string(e), s) {
			return e, true
		}
	}
	return "", false
}

// SatisfiedBy reports whether an account of edition owned meets requirement e.
// Unheard accounts include everything Edge of Darkness grants.
func (e Edition) SatisfiedBy(owned Edition) bool {
	if e == EditionEdgeOfDarkness {
		return owned == EditionEdgeOfDarkness || owned == EditionUnheard
	}
	return owned == e
}

type Tag string

const (
	TagMarker Tag = "marker"
	TagJammer Tag = "jammer"
	TagCamera Tag = "camera"
	TagItem   Tag = "item"
	TagKey    Tag = "key"
)

type ItemRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	IconLink  string `json:"iconLink,omitempty"`
	WikiLink  string `json:"wikiLink,omitempty"`
}

// ItemRequirement is the payload of an objective that names exactly one item.
type ItemRequirement struct {
	Item          ItemRef
	RequiredCount int
	FoundInRaid   bool
}

type Objective struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Maps         []string  `json:"maps,omitempty"`
	Items        []ItemRef `json:"items,omitempty"`
	Count        int       `json:"count"`
	FoundInRaid  bool      `json:"foundInRaid"`
	RequiredKeys []ItemRef `json:"requiredKeys,omitempty"`
	Tags         []Tag     `json:"tags,omitempty"`
}

// SingleItem returns the item requirement of o when exactly one item is
// listed. Objectives listing alternatives return false.
func (o Objective) SingleItem() (ItemRequirement, bool) {
	if len(o.Items) != 1 {
		return ItemRequirement{}, false
	}
	count := o.Count
	if count <= 0 {
		count = 1
	}
	return ItemRequirement{Item: o.Items[0], RequiredCount: count, FoundInRaid: o.FoundInRaid}, true
}

func (o Objective) HasTag(tag Tag) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type TraderLevel struct {
	TraderName   string `json:"traderName"`
	LoyaltyLevel int    `json:"loyaltyLevel"`
}

type Quest struct {
	ID                   string        `json:"id"`
	Title                string        `json:"title"`
	Trader               string        `json:"trader"`
	Map                  string        `json:"map"`
	PreviousQuestIDs     []string      `json:"previousQuestIds,omitempty"`
	NextQuestIDs         []string      `json:"nextQuestIds,omitempty"`
	LevelRequirement     *int          `json:"levelRequirement,omitempty"`
	EditionRequirement   Edition       `json:"editionRequirement,omitempty"`
	RequiredPrestige     *int          `json:"requiredPrestige,omitempty"`
	RequiredTraderLevels []TraderLevel `json:"requiredTraderLevels,omitempty"`
	KappaRequired        bool          `json:"kappaRequired"`
	LightkeeperRequired  bool          `json:"lightkeeperRequired"`
	WikiLink             string        `json:"wikiLink,omitempty"`
	Objectives           []Objective   `json:"objectives,omitempty"`
}

// Tags returns the union of the objective tags of q in first-seen order.
func (q Quest) Tags() []Tag {
	var tags []Tag
	seen := make(map[Tag]bool)
	for _, o := range q.Objectives {
		for _, t := range o.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

func objectiveTags(description string, itemCount int) []Tag {
	d := strings.ToLower(description)
	var tags []Tag
	if strings.Contains(d, "mark") || strings.Contains(d, "signal") {
		tags = append(tags, TagMarker)
	}
	if strings.Contains(d, "jammer") {
		tags = append(tags, TagJammer)
	}
	if strings.Contains(d, "camera") {
		tags = append(tags, TagCamera)
	}
	if itemCount > 0 {
		tags = append(tags, TagItem)
	}
	if strings.Contains(d, " key") {
		tags = append(tags, TagKey)
	}
	return tags
}
