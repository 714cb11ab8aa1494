package repositories

//go:generate mockgen -source=progress_repository.go -destination=mock/progress_repository.go -package=mock

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/raidledger/raidledger/tracker/database/models"
)

// ProgressRepository stores per-user quest, trader and hideout progress.
// Writes are upserts so concurrent edits are last-writer-wins per row.
type ProgressRepository interface {
	Load(ctx context.Context, userID string) (*models.Progress, error)
	UpsertQuests(ctx context.Context, rows []models.QuestProgress) error
	UpsertObjectives(ctx context.Context, rows []models.ObjectiveProgress) error
	UpsertTraders(ctx context.Context, rows []models.TraderStanding) error
	UpsertStationLevel(ctx context.Context, row models.StationLevel) error
	UpsertStationItems(ctx context.Context, rows []models.StationItemProgress) error
	ReplaceHideoutItems(ctx context.Context, userID string, rows []models.HideoutItemProgress) error
	HideoutItems(ctx context.Context, userID string) ([]models.HideoutItemProgress, error)
}

type progressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *bun.DB) ProgressRepository {
	return &progressRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *progressRepository) Load(ctx context.Context, userID string) (*models.Progress, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	p := &models.Progress{User: new(models.User)}
	if err := r.db.NewSelect().Model(p.User).Where("id = ?", userID).Scan(ctx); err != nil {
		return nil, r.HandleErrorWithID("Load", "user", userID, err)
	}

	selects := []struct {
		entity string
		dest   any
	}{
		{"quest_progress", &p.Quests},
		{"objective_progress", &p.Objectives},
		{"trader_standings", &p.Traders},
		{"station_levels", &p.Stations},
		{"station_item_progress", &p.Items},
	}
	for _, s := range selects {
		if err := r.db.NewSelect().Model(s.dest).Where("user_id = ?", userID).Scan(ctx); err != nil {
			return nil, r.HandleErrorWithID("Load", s.entity, userID, err)
		}
	}
	return p, nil
}

func (r *progressRepository) UpsertQuests(ctx context.Context, rows []models.QuestProgress) error {
	if len(rows) == 0 {
		return nil
	}
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	for i := range rows {
		rows[i].UpdatedAt = now
	}
	_, err := r.db.NewInsert().
		Model(&rows).
		On("CONFLICT (user_id, quest_id) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("completed_at = EXCLUDED.completed_at").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return r.HandleErrorWithID("UpsertQuests", "quest_progress", rows[0].UserID, err)
}

func (r *progressRepository) UpsertObjectives(ctx context.Context, rows []models.ObjectiveProgress) error {
	if len(rows) == 0 {
		return nil
	}
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	for i := range rows {
		rows[i].UpdatedAt = now
	}
	_, err := r.db.NewInsert().
		Model(&rows).
		On("CONFLICT (user_id, quest_id, objective_id) DO UPDATE").
		Set("collected = EXCLUDED.collected").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return r.HandleErrorWithID("UpsertObjectives", "objective_progress", rows[0].UserID, err)
}

func (r *progressRepository) UpsertTraders(ctx context.Context, rows []models.TraderStanding) error {
	if len(rows) == 0 {
		return nil
	}
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	_, err := r.db.NewInsert().
		Model(&rows).
		On("CONFLICT (user_id, trader_id) DO UPDATE").
		Set("level = EXCLUDED.level").
		Exec(ctx)
	return r.HandleErrorWithID("UpsertTraders", "trader_standings", rows[0].UserID, err)
}

func (r *progressRepository) UpsertStationLevel(ctx context.Context, row models.StationLevel) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	_, err := r.db.NewInsert().
		Model(&row).
		On("CONFLICT (user_id, station_id) DO UPDATE").
		Set("level = EXCLUDED.level").
		Exec(ctx)
	return r.HandleErrorWithID("UpsertStationLevel", "station_levels", row.UserID, err)
}

func (r *progressRepository) UpsertStationItems(ctx context.Context, rows []models.StationItemProgress) error {
	if len(rows) == 0 {
		return nil
	}
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	for i := range rows {
		rows[i].UpdatedAt = now
	}
	_, err := r.db.NewInsert().
		Model(&rows).
		On("CONFLICT (user_id, station_id, level_id, item_id) DO UPDATE").
		Set("collected = EXCLUDED.collected").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return r.HandleErrorWithID("UpsertStationItems", "station_item_progress", rows[0].UserID, err)
}

// ReplaceHideoutItems swaps the user's cached hideout aggregation in one
// transaction.
func (r *progressRepository) ReplaceHideoutItems(ctx context.Context, userID string, rows []models.HideoutItemProgress) error {
	now := time.Now()
	for i := range rows {
		rows[i].UserID = userID
		rows[i].UpdatedAt = now
	}
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.HideoutItemProgress)(nil)).
			Where("user_id = ?", userID).
			Exec(ctx); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&rows).Exec(ctx)
		return err
	})
	return r.HandleErrorWithID("ReplaceHideoutItems", "hideout_item_progress", userID, err)
}

func (r *progressRepository) HideoutItems(ctx context.Context, userID string) ([]models.HideoutItemProgress, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rows []models.HideoutItemProgress
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("HideoutItems", "hideout_item_progress", userID, err)
	}
	return rows, nil
}
