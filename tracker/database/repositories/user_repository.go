package repositories

//go:generate mockgen -source=user_repository.go -destination=mock/user_repository.go -package=mock

import (
	"context"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/raidledger/raidledger/tracker/database/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, profile models.UserProfile) error
}

type userRepository struct {
	BaseRepository
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return &ConflictError{Entity: "user", Field: "username", Value: user.Username}
		}
		return r.HandleErrorWithID("Create", "user", user.Username, err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("GetByID", "user", id, err)
	}
	return user, nil
}

// GetByUsername matches case-insensitively.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	slog.Debug("UserRepository.GetByUsername called",
		slog.String("type", "db"),
		slog.String("username", username))

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("LOWER(username) = LOWER(?)", username).Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("GetByUsername", "user", username, err)
	}
	return user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, p models.UserProfile) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	q := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id)

	switch {
	case p.ClearLevel:
		q = q.Set("level = NULL")
	case p.Level != nil:
		q = q.Set("level = ?", *p.Level)
	}
	switch {
	case p.ClearReputation:
		q = q.Set("reputation = NULL")
	case p.Reputation != nil:
		q = q.Set("reputation = ?", *p.Reputation)
	}
	if p.Edition != nil {
		q = q.Set("edition = ?", *p.Edition)
	}
	if p.Faction != nil {
		q = q.Set("faction = ?", *p.Faction)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("UpdateProfile", "user", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "user", ID: id}
	}
	return nil
}
