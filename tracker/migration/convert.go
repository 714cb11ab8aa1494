package migration

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/raidledger/raidledger/internal/domain/progress"
	"github.com/raidledger/raidledger/tracker/database/models"
)

// MaxTeamMembers mirrors the live membership cap. Members beyond it are
// skipped in join order, the owner always kept.
const MaxTeamMembers = 5

// Plan is the converted data ready to be written.
type Plan struct {
	Users        []models.User
	Quests       []models.QuestProgress
	Objectives   []models.ObjectiveProgress
	Traders      []models.TraderStanding
	HideoutItems map[string][]models.HideoutItemProgress
	Teams        []models.Team
	Members      []models.TeamMember
}

// Convert maps legacy rows onto the current models. Rows that cannot be
// represented are recorded in stats and left out of the plan. A malformed
// JSON column drops that column only.
func Convert(data *LegacyData, stats *Stats, now time.Time) *Plan {
	plan := &Plan{HideoutItems: make(map[string][]models.HideoutItemProgress)}

	users := make(map[string]bool, len(data.Users))
	names := make(map[string]bool, len(data.Users))
	for _, lu := range data.Users {
		stats.processed("users")
		name := strings.TrimSpace(lu.Username)
		switch {
		case lu.ID == "":
			stats.skipped("users", "missing id", name)
			continue
		case name == "" || lu.PasswordHash == "":
			stats.skipped("users", "missing credentials", lu.ID)
			continue
		case users[lu.ID]:
			stats.skipped("users", "duplicate id", lu.ID)
			continue
		case names[name]:
			stats.skipped("users", "duplicate username", name)
			continue
		}
		users[lu.ID], names[name] = true, true
		plan.Users = append(plan.Users, convertUser(lu, name, now))

		plan.Quests = append(plan.Quests, convertQuests(lu, stats, now)...)
		plan.Objectives = append(plan.Objectives, convertObjectives(lu, stats, now)...)
		plan.Traders = append(plan.Traders, convertTraders(lu, stats)...)
		if items := convertHideoutItems(lu, stats, now); len(items) > 0 {
			plan.HideoutItems[lu.ID] = items
		}
	}

	teams := make(map[string]models.Team, len(data.Teams))
	codes := make(map[string]bool, len(data.Teams))
	for _, lt := range data.Teams {
		stats.processed("teams")
		code := strings.TrimSpace(lt.InviteCode)
		switch {
		case lt.ID == "" || code == "":
			stats.skipped("teams", "missing id or invite code", lt.ID)
			continue
		case !users[lt.OwnerUserID]:
			stats.skipped("teams", "owner not migrated", lt.ID)
			continue
		case codes[code]:
			stats.skipped("teams", "duplicate invite code", lt.ID)
			continue
		}
		if _, dup := teams[lt.ID]; dup {
			stats.skipped("teams", "duplicate team", lt.ID)
			continue
		}
		codes[code] = true
		name := strings.TrimSpace(lt.Name)
		if name == "" {
			name = "Team " + code
		}
		t := models.Team{
			ID:         lt.ID,
			Name:       name,
			InviteCode: code,
			OwnerID:    lt.OwnerUserID,
			CreatedAt:  parseTime(lt.CreatedAt.String, now),
		}
		plan.Teams = append(plan.Teams, t)
		teams[lt.ID] = t
	}

	plan.Members = convertMembers(data.Members, teams, users, stats, now)
	return plan
}

func convertUser(lu LegacyUser, name string, now time.Time) models.User {
	u := models.User{
		ID:           lu.ID,
		Username:     name,
		PasswordHash: lu.PasswordHash,
		Faction:      lu.Faction.String,
		Edition:      lu.GameEdition.String,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if lu.Level.Valid {
		level := int(lu.Level.Int64)
		u.Level = &level
	}
	if lu.FenceRep.Valid {
		rep := lu.FenceRep.Float64
		u.Reputation = &rep
	}
	return u
}

func convertQuests(lu LegacyUser, stats *Stats, now time.Time) []models.QuestProgress {
	var in []legacyQuest
	if !decodeColumn(lu.Quests.String, &in, "quest_progress", lu.ID, stats) {
		return nil
	}

	seen := make(map[string]bool, len(in))
	var out []models.QuestProgress
	for _, q := range in {
		stats.processed("quest_progress")
		status := progress.QuestStatus(q.Status)
		switch {
		case q.QuestID == "":
			stats.skipped("quest_progress", "missing quest id", lu.ID)
			continue
		case status == progress.StatusNotStarted:
			// absence of a row already means not started
			stats.skipped("quest_progress", "not started", lu.ID+"/"+q.QuestID)
			continue
		case status != progress.StatusInProgress && status != progress.StatusCompleted:
			stats.skipped("quest_progress", "unknown status "+q.Status, lu.ID+"/"+q.QuestID)
			continue
		case seen[q.QuestID]:
			stats.skipped("quest_progress", "duplicate quest", lu.ID+"/"+q.QuestID)
			continue
		}
		seen[q.QuestID] = true

		row := models.QuestProgress{UserID: lu.ID, QuestID: q.QuestID, Status: string(status), UpdatedAt: now}
		if status == progress.StatusCompleted {
			at := parseTime(q.CompletedAt, now)
			row.CompletedAt = &at
		}
		out = append(out, row)
	}
	return out
}

func convertObjectives(lu LegacyUser, stats *Stats, now time.Time) []models.ObjectiveProgress {
	var in []legacyObjective
	if !decodeColumn(lu.ObjectiveProgress.String, &in, "objective_progress", lu.ID, stats) {
		return nil
	}

	index := make(map[[2]string]int, len(in))
	var out []models.ObjectiveProgress
	for _, o := range in {
		stats.processed("objective_progress")
		if o.QuestID == "" || o.ObjectiveID == "" {
			stats.skipped("objective_progress", "missing quest or objective id", lu.ID)
			continue
		}
		if o.Collected <= 0 {
			stats.skipped("objective_progress", "nothing collected", lu.ID+"/"+o.ObjectiveID)
			continue
		}
		key := [2]string{o.QuestID, o.ObjectiveID}
		if i, ok := index[key]; ok {
			// later entries win
			out[i].Collected = o.Collected
			continue
		}
		index[key] = len(out)
		out = append(out, models.ObjectiveProgress{
			UserID:      lu.ID,
			QuestID:     o.QuestID,
			ObjectiveID: o.ObjectiveID,
			Collected:   o.Collected,
			UpdatedAt:   now,
		})
	}
	return out
}

func convertTraders(lu LegacyUser, stats *Stats) []models.TraderStanding {
	var in []legacyTrader
	if !decodeColumn(lu.TraderStandings.String, &in, "trader_standings", lu.ID, stats) {
		return nil
	}

	levels := make(map[string]int, len(in))
	for _, t := range in {
		stats.processed("trader_standings")
		if t.TraderID == "" {
			stats.skipped("trader_standings", "missing trader id", lu.ID)
			continue
		}
		levels[t.TraderID] = max(t.Level, 1)
	}

	out := make([]models.TraderStanding, 0, len(levels))
	for id, level := range levels {
		out = append(out, models.TraderStanding{UserID: lu.ID, TraderID: id, Level: level})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TraderID < out[j].TraderID })
	return out
}

func convertHideoutItems(lu LegacyUser, stats *Stats, now time.Time) []models.HideoutItemProgress {
	var in []legacyHideoutItem
	if !decodeColumn(lu.HideoutItems.String, &in, "hideout_item_progress", lu.ID, stats) {
		return nil
	}

	seen := make(map[string]bool, len(in))
	var out []models.HideoutItemProgress
	for _, h := range in {
		stats.processed("hideout_item_progress")
		switch {
		case h.ItemID == "":
			stats.skipped("hideout_item_progress", "missing item id", lu.ID)
			continue
		case h.TotalRequired <= 0:
			stats.skipped("hideout_item_progress", "nothing required", lu.ID+"/"+h.ItemID)
			continue
		case seen[h.ItemID]:
			stats.skipped("hideout_item_progress", "duplicate item", lu.ID+"/"+h.ItemID)
			continue
		}
		seen[h.ItemID] = true

		name := h.Name
		if name == "" {
			name = h.ItemID
		}
		out = append(out, models.HideoutItemProgress{
			UserID:         lu.ID,
			ItemID:         h.ItemID,
			Name:           name,
			ShortName:      h.ShortName,
			IconLink:       h.IconLink,
			RequiresFIR:    h.RequiresFIR,
			TotalRequired:  h.TotalRequired,
			TotalCollected: min(max(h.TotalCollected, 0), h.TotalRequired),
			UpdatedAt:      now,
		})
	}
	return out
}

func convertMembers(in []LegacyMember, teams map[string]models.Team, users map[string]bool, stats *Stats, now time.Time) []models.TeamMember {
	byTeam := make(map[string][]models.TeamMember)
	seen := make(map[[2]string]bool, len(in))
	for _, lm := range in {
		stats.processed("team_members")
		key := [2]string{lm.TeamID, lm.UserID}
		t, ok := teams[lm.TeamID]
		switch {
		case !ok:
			stats.skipped("team_members", "team not migrated", lm.ID)
			continue
		case !users[lm.UserID]:
			stats.skipped("team_members", "user not migrated", lm.ID)
			continue
		case seen[key]:
			stats.skipped("team_members", "duplicate membership", lm.ID)
			continue
		}
		seen[key] = true

		role := models.RoleMember
		if lm.UserID == t.OwnerID {
			role = models.RoleOwner
		}
		byTeam[lm.TeamID] = append(byTeam[lm.TeamID], models.TeamMember{
			TeamID:   lm.TeamID,
			UserID:   lm.UserID,
			Role:     role,
			JoinedAt: parseTime(lm.JoinedAt.String, now),
		})
	}

	var out []models.TeamMember
	for id, t := range teams {
		members := byTeam[id]
		if !seen[[2]string{id, t.OwnerID}] {
			members = append(members, models.TeamMember{TeamID: id, UserID: t.OwnerID, Role: models.RoleOwner, JoinedAt: t.CreatedAt})
		}
		sort.SliceStable(members, func(i, j int) bool {
			if (members[i].Role == models.RoleOwner) != (members[j].Role == models.RoleOwner) {
				return members[i].Role == models.RoleOwner
			}
			return members[i].JoinedAt.Before(members[j].JoinedAt)
		})
		if len(members) > MaxTeamMembers {
			for _, m := range members[MaxTeamMembers:] {
				stats.skipped("team_members", "team full", m.TeamID+"/"+m.UserID)
			}
			members = members[:MaxTeamMembers]
		}
		out = append(out, members...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out
}

func decodeColumn(raw string, dest any, table, userID string, stats *Stats) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		stats.failed(table, fmt.Sprintf("malformed json: %v", err), userID)
		return false
	}
	return true
}

func parseTime(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return fallback
}
