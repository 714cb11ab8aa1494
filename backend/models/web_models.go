package models

import (
	"time"

	"github.com/raidledger/raidledger/tracker/database/models"
)

// UserSession is the signed payload carried in the session cookie
type UserSession struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdjustRequest changes the collected count of one aggregated item. Exactly
// one of Delta and MarkAll is set.
type AdjustRequest struct {
	Delta   *int   `json:"delta"`
	MarkAll string `json:"markAll"`
	Scope   string `json:"scope"`
}

const (
	MarkAllFound  = "found"
	MarkAllNeeded = "needed"
)

type StationLevelRequest struct {
	Level *int `json:"level"`
}

type CreateTeamRequest struct {
	Name string `json:"name"`
}

type JoinTeamRequest struct {
	InviteCode string `json:"inviteCode"`
}

// UserDTO is the public view of a user account
type UserDTO struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Level      *int      `json:"level,omitempty"`
	Reputation *float64  `json:"reputation,omitempty"`
	Edition    string    `json:"edition,omitempty"`
	Faction    string    `json:"faction,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Username:   u.Username,
		Level:      u.Level,
		Reputation: u.Reputation,
		Edition:    u.Edition,
		Faction:    u.Faction,
		CreatedAt:  u.CreatedAt,
	}
}

// ProgressDTO is the stored progress of the signed-in user
type ProgressDTO struct {
	User       UserDTO           `json:"user"`
	Quests     map[string]string `json:"quests"`
	Objectives []ObjectiveDTO    `json:"objectives"`
	Traders    map[string]int    `json:"traders"`
	Stations   map[string]int    `json:"stations"`
}

type ObjectiveDTO struct {
	QuestID     string `json:"questId"`
	ObjectiveID string `json:"objectiveId"`
	Collected   int    `json:"collected"`
}

func NewProgressDTO(p *models.Progress) ProgressDTO {
	dto := ProgressDTO{
		User:       NewUserDTO(p.User),
		Quests:     make(map[string]string, len(p.Quests)),
		Objectives: make([]ObjectiveDTO, 0, len(p.Objectives)),
		Traders:    make(map[string]int, len(p.Traders)),
		Stations:   make(map[string]int, len(p.Stations)),
	}
	for _, q := range p.Quests {
		dto.Quests[q.QuestID] = q.Status
	}
	for _, o := range p.Objectives {
		dto.Objectives = append(dto.Objectives, ObjectiveDTO{QuestID: o.QuestID, ObjectiveID: o.ObjectiveID, Collected: o.Collected})
	}
	for _, t := range p.Traders {
		dto.Traders[t.TraderID] = t.Level
	}
	for _, s := range p.Stations {
		dto.Stations[s.StationID] = s.Level
	}
	return dto
}
