// Package eligibility resolves quest and hideout level status from recorded
// completion and the actor's gating attributes.
package eligibility

import (
	"fmt"
	"math"

	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/progress"
)

type Status string

const (
	StatusLocked    Status = "locked"
	StatusAvailable Status = "available"
	StatusCompleted Status = "completed"
)

type Gate string

const (
	GatePrerequisite Gate = "prerequisite"
	GateLevel        Gate = "level"
	GateReputation   Gate = "reputation"
	GateEdition      Gate = "edition"
	GateTrader       Gate = "trader"
	GateStation      Gate = "station"
)

type Reason struct {
	Gate   Gate   `json:"gate"`
	Detail string `json:"detail"`
}

type State struct {
	Status  Status   `json:"status"`
	Reasons []Reason `json:"reasons,omitempty"`
	// MissingPrerequisites holds the ids of incomplete prerequisites in
	// PreviousQuestIDs order.
	MissingPrerequisites []string `json:"missingPrerequisites,omitempty"`
}

// Details returns the human readable lock reasons in evaluation order.
func (s State) Details() []string {
	out := make([]string, 0, len(s.Reasons))
	for _, r := range s.Reasons {
		out = append(out, r.Detail)
	}
	return out
}

// Attributes are the actor values the gates compare against. A nil or empty
// attribute lets its gate pass; a trader missing from a non-nil map fails.
type Attributes struct {
	Level        *int
	Reputation   *float64
	Edition      string
	TraderLevels map[string]int
}

func AttributesOf(a progress.Actor) Attributes {
	return Attributes{
		Level:        a.Level,
		Reputation:   a.Reputation,
		Edition:      a.Edition,
		TraderLevels: a.TraderLevels,
	}
}

// Resolve computes the status of every quest. Completed quests are never
// re-gated.
func Resolve(quests []catalog.Quest, completed map[string]bool, attrs Attributes) map[string]State {
	titles := make(map[string]string, len(quests))
	for _, q := range quests {
		titles[q.ID] = q.Title
	}

	out := make(map[string]State, len(quests))
	for _, q := range quests {
		out[q.ID] = evaluate(q, titles, completed, attrs)
	}
	return out
}

// ResolveActor resolves quests against one actor snapshot.
func ResolveActor(quests []catalog.Quest, a progress.Actor) map[string]State {
	return Resolve(quests, a.Completed(), AttributesOf(a))
}

func evaluate(q catalog.Quest, titles map[string]string, completed map[string]bool, attrs Attributes) State {
	if completed[q.ID] {
		return State{Status: StatusCompleted}
	}

	var s State
	for _, prev := range q.PreviousQuestIDs {
		if completed[prev] {
			continue
		}
		detail, ok := titles[prev]
		if !ok || detail == "" {
			detail = prev
		}
		s.MissingPrerequisites = append(s.MissingPrerequisites, prev)
		s.Reasons = append(s.Reasons, Reason{Gate: GatePrerequisite, Detail: detail})
	}

	if q.LevelRequirement != nil && attrs.Level != nil && *attrs.Level < *q.LevelRequirement {
		s.Reasons = append(s.Reasons, Reason{Gate: GateLevel, Detail: fmt.Sprintf("level %d", *q.LevelRequirement)})
	}

	if q.RequiredPrestige != nil && attrs.Reputation != nil && !math.IsNaN(*attrs.Reputation) {
		if !meetsReputation(*attrs.Reputation, *q.RequiredPrestige) {
			s.Reasons = append(s.Reasons, Reason{Gate: GateReputation, Detail: fmt.Sprintf("Fence rep %.2f", float64(*q.RequiredPrestige))})
		}
	}

	if q.EditionRequirement != "" && attrs.Edition != "" {
		if !q.EditionRequirement.SatisfiedBy(catalog.Edition(attrs.Edition)) {
			s.Reasons = append(s.Reasons, Reason{Gate: GateEdition, Detail: fmt.Sprintf("%s edition", q.EditionRequirement)})
		}
	}

	s.Reasons = append(s.Reasons, traderReasons(q.RequiredTraderLevels, attrs.TraderLevels)...)

	if len(s.Reasons) > 0 {
		s.Status = StatusLocked
		return s
	}
	return State{Status: StatusAvailable}
}

// meetsReputation treats a negative threshold as a ceiling.
func meetsReputation(current float64, required int) bool {
	if required >= 0 {
		return current >= float64(required)
	}
	return current <= float64(required)
}

func traderReasons(required []catalog.TraderLevel, levels map[string]int) []Reason {
	if levels == nil {
		return nil
	}
	var out []Reason
	for _, req := range required {
		current, ok := levels[req.TraderName]
		if !ok || current < req.LoyaltyLevel {
			out = append(out, Reason{Gate: GateTrader, Detail: fmt.Sprintf("%s LL%d", req.TraderName, req.LoyaltyLevel)})
		}
	}
	return out
}
