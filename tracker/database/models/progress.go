package models

import (
	"time"

	"github.com/uptrace/bun"
)

type QuestProgress struct {
	bun.BaseModel `bun:"table:quest_progress,alias:qp"`

	UserID      string     `bun:"user_id,pk"`
	QuestID     string     `bun:"quest_id,pk"`
	Status      string     `bun:"status,notnull"`
	CompletedAt *time.Time `bun:"completed_at"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

type ObjectiveProgress struct {
	bun.BaseModel `bun:"table:objective_progress,alias:op"`

	UserID      string    `bun:"user_id,pk"`
	QuestID     string    `bun:"quest_id,pk"`
	ObjectiveID string    `bun:"objective_id,pk"`
	Collected   int       `bun:"collected,notnull,default:0"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// TraderStanding is keyed by the catalog trader id, not the display name.
type TraderStanding struct {
	bun.BaseModel `bun:"table:trader_standings,alias:ts"`

	UserID   string `bun:"user_id,pk"`
	TraderID string `bun:"trader_id,pk"`
	Level    int    `bun:"level,notnull,default:1"`
}

type StationLevel struct {
	bun.BaseModel `bun:"table:station_levels,alias:sl"`

	UserID    string `bun:"user_id,pk"`
	StationID string `bun:"station_id,pk"`
	Level     int    `bun:"level,notnull,default:0"`
}

type StationItemProgress struct {
	bun.BaseModel `bun:"table:station_item_progress,alias:sip"`

	UserID    string    `bun:"user_id,pk"`
	StationID string    `bun:"station_id,pk"`
	LevelID   string    `bun:"level_id,pk"`
	ItemID    string    `bun:"item_id,pk"`
	Collected int       `bun:"collected,notnull,default:0"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// HideoutItemProgress is a per-item copy of the latest hideout aggregation,
// read by team views without recomputing every member's hideout.
type HideoutItemProgress struct {
	bun.BaseModel `bun:"table:hideout_item_progress,alias:hip"`

	UserID         string    `bun:"user_id,pk"`
	ItemID         string    `bun:"item_id,pk"`
	Name           string    `bun:"name,notnull"`
	ShortName      string    `bun:"short_name,notnull,default:''"`
	IconLink       string    `bun:"icon_link,notnull,default:''"`
	RequiresFIR    bool      `bun:"requires_fir,notnull,default:false"`
	TotalRequired  int       `bun:"total_required,notnull,default:0"`
	TotalCollected int       `bun:"total_collected,notnull,default:0"`
	UpdatedAt      time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Progress is everything stored for one user.
type Progress struct {
	User       *User
	Quests     []QuestProgress
	Objectives []ObjectiveProgress
	Traders    []TraderStanding
	Stations   []StationLevel
	Items      []StationItemProgress
}
