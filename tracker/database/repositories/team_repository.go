package repositories

//go:generate mockgen -source=team_repository.go -destination=mock/team_repository.go -package=mock

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/raidledger/raidledger/tracker/database/models"
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Team, error)
	AddMember(ctx context.Context, member *models.TeamMember) error
	Members(ctx context.Context, teamID string) ([]models.TeamMember, error)
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]models.Team, error)
}

type teamRepository struct {
	BaseRepository
}

func NewTeamRepository(db *bun.DB) TeamRepository {
	return &teamRepository{BaseRepository: NewBaseRepository(db)}
}

// Create inserts the team and its owner membership together.
func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	now := time.Now()
	team.CreatedAt = now
	owner := &models.TeamMember{TeamID: team.ID, UserID: team.OwnerID, Role: models.RoleOwner, JoinedAt: now}

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(team).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(owner).Exec(ctx)
		return err
	})
	if isUniqueViolation(err) {
		return &ConflictError{Entity: "team", Field: "invite_code", Value: team.InviteCode}
	}
	return r.HandleErrorWithID("Create", "team", team.ID, err)
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	team := new(models.Team)
	if err := r.db.NewSelect().Model(team).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, r.HandleErrorWithID("GetByID", "team", id, err)
	}
	return team, nil
}

func (r *teamRepository) GetByInviteCode(ctx context.Context, code string) (*models.Team, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	team := new(models.Team)
	if err := r.db.NewSelect().Model(team).Where("invite_code = ?", code).Scan(ctx); err != nil {
		return nil, r.HandleErrorWithID("GetByInviteCode", "team", code, err)
	}
	return team, nil
}

func (r *teamRepository) AddMember(ctx context.Context, member *models.TeamMember) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	member.JoinedAt = time.Now()
	if _, err := r.db.NewInsert().Model(member).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return &ConflictError{Entity: "team member", Field: "user_id", Value: member.UserID}
		}
		return r.HandleErrorWithID("AddMember", "team member", member.UserID, err)
	}
	return nil
}

// Members returns the team's members with their user rows, oldest first.
func (r *teamRepository) Members(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var members []models.TeamMember
	err := r.db.NewSelect().
		Model(&members).
		Relation("User").
		Where("tm.team_id = ?", teamID).
		Order("tm.joined_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("Members", "team member", teamID, err)
	}
	return members, nil
}

func (r *teamRepository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	ok, err := r.db.NewSelect().
		Model((*models.TeamMember)(nil)).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Exists(ctx)
	if err != nil {
		return false, r.HandleErrorWithID("IsMember", "team member", userID, err)
	}
	return ok, nil
}

func (r *teamRepository) ListForUser(ctx context.Context, userID string) ([]models.Team, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var teams []models.Team
	err := r.db.NewSelect().
		Model(&teams).
		Join("JOIN team_members AS tm ON tm.team_id = t.id").
		Where("tm.user_id = ?", userID).
		Order("t.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("ListForUser", "team", userID, err)
	}
	return teams, nil
}
