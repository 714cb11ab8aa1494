package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/raidledger/raidledger/internal/domain/catalog"
	"github.com/raidledger/raidledger/internal/domain/eligibility"
	"github.com/raidledger/raidledger/internal/domain/requirements"
	"github.com/raidledger/raidledger/internal/domain/team"
	"github.com/raidledger/raidledger/tracker/database/models"
	"github.com/raidledger/raidledger/tracker/database/repositories"
)

const (
	MaxTeamMembers     = 5
	maxTeamNameLength  = 64
	memberLoadParallel = 4
	inviteCodeAttempts = 3
)

type TeamService struct {
	teams    repositories.TeamRepository
	progress repositories.ProgressRepository
	tracker  *TrackerService
}

func NewTeamService(teams repositories.TeamRepository, progressRepo repositories.ProgressRepository, tracker *TrackerService) *TeamService {
	return &TeamService{teams: teams, progress: progressRepo, tracker: tracker}
}

func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TeamService) Create(ctx context.Context, ownerID, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxTeamNameLength {
		return nil, fmt.Errorf("%w: team name must be 1-%d characters", ErrInvalidInput, maxTeamNameLength)
	}

	var err error
	for i := 0; i < inviteCodeAttempts; i++ {
		t := &models.Team{
			ID:         uuid.NewString(),
			Name:       name,
			InviteCode: newInviteCode(),
			OwnerID:    ownerID,
		}
		if err = s.teams.Create(ctx, t); err == nil {
			return t, nil
		}
		if !repositories.IsConflict(err) {
			break
		}
	}
	return nil, fmt.Errorf("failed to create team: %w", err)
}

// Join adds the user to the team with the given invite code. Joining a team
// the user already belongs to returns the team.
func (s *TeamService) Join(ctx context.Context, userID, code string) (*models.Team, error) {
	t, err := s.teams.GetByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load team: %w", err)
	}

	members, err := s.teams.Members(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	for _, m := range members {
		if m.UserID == userID {
			return t, nil
		}
	}
	if len(members) >= MaxTeamMembers {
		return nil, ErrTeamFull
	}

	err = s.teams.AddMember(ctx, &models.TeamMember{TeamID: t.ID, UserID: userID, Role: models.RoleMember})
	if err != nil && !repositories.IsConflict(err) {
		return nil, fmt.Errorf("failed to join team: %w", err)
	}
	return t, nil
}

func (s *TeamService) List(ctx context.Context, userID string) ([]models.Team, error) {
	return s.teams.ListForUser(ctx, userID)
}

type TeamDetail struct {
	Team    *models.Team        `json:"team"`
	Members []models.TeamMember `json:"members"`
}

func (s *TeamService) Get(ctx context.Context, userID, teamID string) (*TeamDetail, error) {
	t, members, err := s.authorize(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}
	return &TeamDetail{Team: t, Members: members}, nil
}

// authorize loads the team and its members and checks userID is one of them.
func (s *TeamService) authorize(ctx context.Context, userID, teamID string) (*models.Team, []models.TeamMember, error) {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to load team: %w", err)
	}
	members, err := s.teams.Members(ctx, teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load members: %w", err)
	}
	for _, m := range members {
		if m.UserID == userID {
			return t, members, nil
		}
	}
	return nil, nil, ErrForbidden
}

type NeedsSource string

const (
	NeedsQuests  NeedsSource = "quests"
	NeedsHideout NeedsSource = "hideout"
	NeedsAll     NeedsSource = "all"
)

type NeedsQuery struct {
	Source NeedsSource
	Scope  requirements.Scope
	Filter requirements.Filter
}

type NeedsView struct {
	Items   []team.Item         `json:"items"`
	Members []models.TeamMember `json:"members"`
}

func (s *TeamService) Needs(ctx context.Context, userID, teamID string, query NeedsQuery) (*NeedsView, error) {
	_, members, err := s.authorize(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}
	return s.needs(ctx, members, query)
}

// NeedsByInviteCode serves the read-only team view to holders of the invite
// code, such as the Discord bot.
func (s *TeamService) NeedsByInviteCode(ctx context.Context, code string, query NeedsQuery) (*models.Team, *NeedsView, error) {
	t, err := s.teams.GetByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to load team: %w", err)
	}
	members, err := s.teams.Members(ctx, t.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load members: %w", err)
	}
	view, err := s.needs(ctx, members, query)
	return t, view, err
}

func (s *TeamService) needs(ctx context.Context, members []models.TeamMember, query NeedsQuery) (*NeedsView, error) {
	if query.Source == "" {
		query.Source = NeedsAll
	}

	var snap *catalog.Snapshot
	if query.Source != NeedsHideout {
		var err error
		if snap, err = s.tracker.catalog.Snapshot(ctx); err != nil {
			return nil, err
		}
	}

	loaded := make([]team.Member, len(members))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(memberLoadParallel)
	for i, m := range members {
		g.Go(func() error {
			var lists [][]requirements.Item
			if query.Source != NeedsHideout {
				actor, err := s.tracker.LoadActor(gctx, m.UserID)
				if err != nil {
					return fmt.Errorf("load member %s: %w", m.UserID, err)
				}
				lists = append(lists, questItems(snap, actor, query.Scope))
			}
			if query.Source != NeedsQuests {
				rows, err := s.progress.HideoutItems(gctx, m.UserID)
				if err != nil {
					return fmt.Errorf("load member %s hideout: %w", m.UserID, err)
				}
				lists = append(lists, cachedHideoutItems(rows))
			}
			loaded[i] = team.Member{
				ActorID:  m.UserID,
				Username: memberName(m),
				Role:     m.Role,
				Items:    concatItems(lists),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &NeedsView{
		Items:   filterTeamItems(team.Combine(loaded), query.Filter),
		Members: members,
	}, nil
}

func cachedHideoutItems(rows []models.HideoutItemProgress) []requirements.Item {
	out := make([]requirements.Item, 0, len(rows))
	for _, r := range rows {
		out = append(out, requirements.Item{
			ItemID:         r.ItemID,
			Name:           r.Name,
			ShortName:      r.ShortName,
			IconLink:       r.IconLink,
			TotalRequired:  r.TotalRequired,
			TotalCollected: r.TotalCollected,
			RequiresFIR:    r.RequiresFIR,
		})
	}
	return out
}

func concatItems(lists [][]requirements.Item) []requirements.Item {
	var out []requirements.Item
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func memberName(m models.TeamMember) string {
	if m.User != nil {
		return m.User.Username
	}
	return m.UserID
}

func filterTeamItems(items []team.Item, f requirements.Filter) []team.Item {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]team.Item, 0, len(items))
	for _, it := range items {
		found := it.TotalRequired > 0 && it.TotalCollected >= it.TotalRequired
		switch f.Tab {
		case requirements.TabNeeded:
			if found {
				continue
			}
		case requirements.TabFound:
			if !found {
				continue
			}
		}
		if f.FIROnly && !it.RequiresFIR {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) && !strings.Contains(strings.ToLower(it.ShortName), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Quests returns each quest's status for the first MaxTeamMembers members.
func (s *TeamService) Quests(ctx context.Context, userID, teamID string, kappaOnly bool) ([]team.QuestRow, error) {
	_, members, err := s.authorize(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}
	if len(members) > MaxTeamMembers {
		members = members[:MaxTeamMembers]
	}

	snap, err := s.tracker.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	states := make([]team.MemberStates, len(members))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(memberLoadParallel)
	for i, m := range members {
		g.Go(func() error {
			actor, err := s.tracker.LoadActor(gctx, m.UserID)
			if err != nil {
				return fmt.Errorf("load member %s: %w", m.UserID, err)
			}
			states[i] = team.MemberStates{
				ActorID:  m.UserID,
				Username: memberName(m),
				States:   eligibility.ResolveActor(snap.Quests, actor),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	quests := snap.Quests
	if kappaOnly {
		quests = make([]catalog.Quest, 0, len(snap.Quests))
		for _, q := range snap.Quests {
			if q.KappaRequired {
				quests = append(quests, q)
			}
		}
	}
	return team.QuestMatrix(states, quests), nil
}
