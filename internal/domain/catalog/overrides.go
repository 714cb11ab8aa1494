package catalog

import "strings"

// EditionOverrides lists quests the feed does not mark as edition-locked,
// keyed by exact title.
var EditionOverrides = map[string]Edition{
	"Minute of Fame":          EditionEdgeOfDarkness,
	"The Good Times - Part 1": EditionEdgeOfDarkness,
	"Quality Standard":        EditionEdgeOfDarkness,
	"Key to the City":         EditionEdgeOfDarkness,
	"Serious Allegations":     EditionEdgeOfDarkness,
}

type PrestigeOverride struct {
	Match    string
	Prestige int
}

// PrestigeOverrides sets the Fence reputation threshold of quests whose title
// contains Match, case-insensitively. The first match wins.
var PrestigeOverrides = []PrestigeOverride{
	{Match: "Compensation for Damage", Prestige: -1},
	{Match: "Establish Contact", Prestige: 4},
}

func editionOverride(title string) (Edition, bool) {
	e, ok := EditionOverrides[title]
	return e, ok
}

func prestigeOverride(title string) (int, bool) {
	t := strings.ToLower(title)
	for _, o := range PrestigeOverrides {
		if strings.Contains(t, strings.ToLower(o.Match)) {
			return o.Prestige, true
		}
	}
	return 0, false
}
