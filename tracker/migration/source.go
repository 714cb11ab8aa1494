package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/raidledger/raidledger/tracker/logger"
)

// Source reads a legacy sqlite database file. It never writes to it.
type Source struct {
	db *sql.DB
}

func OpenSource(path string) (*Source, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open legacy database: %w", err)
	}
	return &Source{db: db}, nil
}

func (s *Source) Close() error {
	return s.db.Close()
}

// Load reads every user, team and membership row.
func (s *Source) Load(ctx context.Context) (*LegacyData, error) {
	start := time.Now()
	data := &LegacyData{}

	var err error
	if data.Users, err = s.users(ctx); err != nil {
		return nil, err
	}
	if data.Teams, err = s.teams(ctx); err != nil {
		return nil, err
	}
	if data.Members, err = s.members(ctx); err != nil {
		return nil, err
	}

	slog.Info("Legacy database loaded",
		slog.String("type", "db"),
		slog.Int("users", len(data.Users)),
		slog.Int("teams", len(data.Teams)),
		slog.Int("members", len(data.Members)),
		logger.Since(start))
	return data, nil
}

const usersQuery = `SELECT id, username, password_hash, faction, game_edition, level, fence_rep,
	quests, objective_progress, hideout_items, trader_standings
	FROM users ORDER BY username`

func (s *Source) users(ctx context.Context) ([]LegacyUser, error) {
	rows, err := s.query(ctx, usersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LegacyUser
	for rows.Next() {
		var u LegacyUser
		var id, username, hash sql.NullString
		if err := rows.Scan(&id, &username, &hash, &u.Faction, &u.GameEdition, &u.Level, &u.FenceRep,
			&u.Quests, &u.ObjectiveProgress, &u.HideoutItems, &u.TraderStandings); err != nil {
			return nil, fmt.Errorf("failed to scan legacy user: %w", err)
		}
		u.ID, u.Username, u.PasswordHash = id.String, username.String, hash.String
		out = append(out, u)
	}
	return out, rows.Err()
}

const teamsQuery = `SELECT id, name, owner_user_id, invite_code, created_at FROM teams ORDER BY created_at`

func (s *Source) teams(ctx context.Context) ([]LegacyTeam, error) {
	rows, err := s.query(ctx, teamsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LegacyTeam
	for rows.Next() {
		var t LegacyTeam
		var id, name, owner, code sql.NullString
		if err := rows.Scan(&id, &name, &owner, &code, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan legacy team: %w", err)
		}
		t.ID, t.Name, t.OwnerUserID, t.InviteCode = id.String, name.String, owner.String, code.String
		out = append(out, t)
	}
	return out, rows.Err()
}

const membersQuery = `SELECT id, team_id, user_id, role, joined_at FROM team_members ORDER BY joined_at`

func (s *Source) members(ctx context.Context) ([]LegacyMember, error) {
	rows, err := s.query(ctx, membersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LegacyMember
	for rows.Next() {
		var m LegacyMember
		var id, teamID, userID sql.NullString
		if err := rows.Scan(&id, &teamID, &userID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan legacy team member: %w", err)
		}
		m.ID, m.TeamID, m.UserID = id.String, teamID.String, userID.String
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Source) query(ctx context.Context, query string) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query)
	logger.LogQuery("legacy_select", query, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("legacy query failed: %w", err)
	}
	return rows, nil
}
