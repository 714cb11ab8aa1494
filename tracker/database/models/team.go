package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID         string    `bun:"id,pk"`
	Name       string    `bun:"name,notnull"`
	InviteCode string    `bun:"invite_code,notnull,unique"`
	OwnerID    string    `bun:"owner_id,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

type TeamMember struct {
	bun.BaseModel `bun:"table:team_members,alias:tm"`

	TeamID   string    `bun:"team_id,pk"`
	UserID   string    `bun:"user_id,pk"`
	Role     string    `bun:"role,notnull,default:'member'"`
	JoinedAt time.Time `bun:"joined_at,notnull,default:current_timestamp"`

	User *User `bun:"rel:belongs-to,join:user_id=id"`
}
