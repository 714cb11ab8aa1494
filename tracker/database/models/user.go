package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string    `bun:"id,pk"`
	Username     string    `bun:"username,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Level        *int      `bun:"level"`
	Reputation   *float64  `bun:"reputation"`
	Edition      string    `bun:"edition,notnull,default:''"`
	Faction      string    `bun:"faction,notnull,default:''"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// UserProfile holds the attribute columns a progress update may change.
// Nil fields are left untouched.
type UserProfile struct {
	Level      *int
	Reputation *float64
	Edition    *string
	Faction    *string
	// ClearLevel and ClearReputation reset the column to NULL.
	ClearLevel      bool
	ClearReputation bool
}
