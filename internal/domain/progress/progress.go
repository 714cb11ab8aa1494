// Package progress defines the per-actor progress snapshot that every
// resolution runs against.
package progress

type QuestStatus string

const (
	StatusNotStarted QuestStatus = "not_started"
	StatusInProgress QuestStatus = "in_progress"
	StatusCompleted  QuestStatus = "completed"
)

type ObjectiveKey struct {
	QuestID     string
	ObjectiveID string
}

type StationItemKey struct {
	StationID string
	LevelID   string
	ItemID    string
}

// Actor is one consistent snapshot of a user's recorded progress. Only
// StatusCompleted is treated specially; other statuses are labels.
type Actor struct {
	ActorID             string
	QuestStatus         map[string]QuestStatus
	ObjectiveProgress   map[ObjectiveKey]int
	StationItemProgress map[StationItemKey]int
	StationLevels       map[string]int
	Level               *int
	Reputation          *float64
	Edition             string
	// TraderLevels is keyed by trader display name. Nil means unknown.
	TraderLevels map[string]int
}

func NewActor(id string) Actor {
	return Actor{
		ActorID:             id,
		QuestStatus:         make(map[string]QuestStatus),
		ObjectiveProgress:   make(map[ObjectiveKey]int),
		StationItemProgress: make(map[StationItemKey]int),
		StationLevels:       make(map[string]int),
	}
}

// Completed returns the set of quest ids recorded as completed.
func (a Actor) Completed() map[string]bool {
	out := make(map[string]bool)
	for id, status := range a.QuestStatus {
		if status == StatusCompleted {
			out[id] = true
		}
	}
	return out
}

// HasObjectiveProgress reports whether any objective of questID has a
// positive collected count.
func (a Actor) HasObjectiveProgress(questID string) bool {
	for k, v := range a.ObjectiveProgress {
		if k.QuestID == questID && v > 0 {
			return true
		}
	}
	return false
}
