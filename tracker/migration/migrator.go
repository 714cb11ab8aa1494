// Package migration imports users, progress and teams from the legacy sqlite
// database into Postgres.
package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"

	"github.com/raidledger/raidledger/tracker/database/models"
	"github.com/raidledger/raidledger/tracker/database/repositories"
	"github.com/raidledger/raidledger/tracker/logger"
)

const defaultBatchSize = 500

type Migrator struct {
	db        *bun.DB
	progress  repositories.ProgressRepository
	batchSize int
	stats     *Stats

	// Optional pgx COPY fast path for the progress tables
	useCopy bool
	pool    *pgxpool.Pool
}

func NewMigrator(db *bun.DB) *Migrator {
	return &Migrator{
		db:        db,
		progress:  repositories.NewProgressRepository(db),
		batchSize: defaultBatchSize,
		stats:     newStats(),
	}
}

// SetBatchSize overrides the number of rows written per statement.
func (m *Migrator) SetBatchSize(size int) {
	if size > 0 {
		m.batchSize = size
	}
}

// UseCopy enables COPY FROM through pool for quest and objective rows.
func (m *Migrator) UseCopy(pool *pgxpool.Pool) {
	m.pool = pool
	m.useCopy = pool != nil
}

func (m *Migrator) Stats() *Stats {
	return m.stats
}

// MigrateAll converts src and writes it in dependency order. Writes are
// upserts, so a rerun over the same legacy file converges.
func (m *Migrator) MigrateAll(ctx context.Context, src *LegacyData) error {
	logger.LogSystem("Starting legacy migration",
		slog.Int("users", len(src.Users)),
		slog.Int("teams", len(src.Teams)))

	m.stats = newStats()
	plan := Convert(src, m.stats, time.Now().UTC())

	steps := []struct {
		name    string
		migrate func(context.Context, *Plan) error
	}{
		{"users", m.writeUsers},
		{"quest_progress", m.writeQuests},
		{"objective_progress", m.writeObjectives},
		{"trader_standings", m.writeTraders},
		{"hideout_item_progress", m.writeHideoutItems},
		{"teams", m.writeTeams},
		{"team_members", m.writeMembers},
	}
	for _, step := range steps {
		start := time.Now()
		if err := step.migrate(ctx, plan); err != nil {
			return fmt.Errorf("migration failed at step %s: %w", step.name, err)
		}
		logger.LogSystem("Migration step completed", slog.String("step", step.name), logger.Since(start))
	}

	m.stats.finish()
	logger.LogSystem("Legacy migration completed",
		slog.Duration("duration", m.stats.EndTime.Sub(m.stats.StartTime)),
		slog.Int("total_processed", m.stats.TotalProcessed),
		slog.Int("total_skipped", m.stats.TotalSkipped),
		slog.Int("total_errors", m.stats.TotalErrors))
	return nil
}

// WriteReport encodes the run statistics as indented JSON.
func (m *Migrator) WriteReport(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m.stats); err != nil {
		return fmt.Errorf("failed to write migration report: %w", err)
	}
	return nil
}

func (m *Migrator) writeUsers(ctx context.Context, plan *Plan) error {
	return inBatches(plan.Users, m.batchSize, func(batch []models.User) error {
		_, err := m.db.NewInsert().
			Model(&batch).
			On("CONFLICT (id) DO UPDATE").
			Set("username = EXCLUDED.username").
			Set("password_hash = EXCLUDED.password_hash").
			Set("level = EXCLUDED.level").
			Set("reputation = EXCLUDED.reputation").
			Set("edition = EXCLUDED.edition").
			Set("faction = EXCLUDED.faction").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("users batch: %w", err)
		}
		m.stats.successful("users", len(batch))
		return nil
	})
}

func (m *Migrator) writeQuests(ctx context.Context, plan *Plan) error {
	return inBatches(plan.Quests, m.batchSize, func(batch []models.QuestProgress) error {
		if m.useCopy {
			rows := make([][]any, len(batch))
			for i, q := range batch {
				rows[i] = []any{q.UserID, q.QuestID, q.Status, q.CompletedAt, q.UpdatedAt}
			}
			err := m.copyUpsert(ctx, questCopy, rows)
			if err == nil {
				m.stats.successful("quest_progress", len(batch))
				return nil
			}
			slog.Warn("COPY path failed, falling back to upsert",
				slog.String("type", "db"),
				slog.String("table", "quest_progress"),
				slog.String("error", err.Error()))
		}
		if err := m.progress.UpsertQuests(ctx, batch); err != nil {
			return err
		}
		m.stats.successful("quest_progress", len(batch))
		return nil
	})
}

func (m *Migrator) writeObjectives(ctx context.Context, plan *Plan) error {
	return inBatches(plan.Objectives, m.batchSize, func(batch []models.ObjectiveProgress) error {
		if m.useCopy {
			rows := make([][]any, len(batch))
			for i, o := range batch {
				rows[i] = []any{o.UserID, o.QuestID, o.ObjectiveID, o.Collected, o.UpdatedAt}
			}
			err := m.copyUpsert(ctx, objectiveCopy, rows)
			if err == nil {
				m.stats.successful("objective_progress", len(batch))
				return nil
			}
			slog.Warn("COPY path failed, falling back to upsert",
				slog.String("type", "db"),
				slog.String("table", "objective_progress"),
				slog.String("error", err.Error()))
		}
		if err := m.progress.UpsertObjectives(ctx, batch); err != nil {
			return err
		}
		m.stats.successful("objective_progress", len(batch))
		return nil
	})
}

func (m *Migrator) writeTraders(ctx context.Context, plan *Plan) error {
	return inBatches(plan.Traders, m.batchSize, func(batch []models.TraderStanding) error {
		if err := m.progress.UpsertTraders(ctx, batch); err != nil {
			return err
		}
		m.stats.successful("trader_standings", len(batch))
		return nil
	})
}

// writeHideoutItems seeds the hideout cache. Station levels and per-level
// item counts did not exist in the legacy store; the cache is rebuilt from
// them on the user's next hideout write.
func (m *Migrator) writeHideoutItems(ctx context.Context, plan *Plan) error {
	for userID, items := range plan.HideoutItems {
		if err := m.progress.ReplaceHideoutItems(ctx, userID, items); err != nil {
			m.stats.failed("hideout_item_progress", err.Error(), userID)
			continue
		}
		m.stats.successful("hideout_item_progress", len(items))
	}
	return nil
}

func (m *Migrator) writeTeams(ctx context.Context, plan *Plan) error {
	return inBatches(plan.Teams, m.batchSize, func(batch []models.Team) error {
		_, err := m.db.NewInsert().
			Model(&batch).
			On("CONFLICT (id) DO UPDATE").
			Set("name = EXCLUDED.name").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("teams batch: %w", err)
		}
		m.stats.successful("teams", len(batch))
		return nil
	})
}

func (m *Migrator) writeMembers(ctx context.Context, plan *Plan) error {
	return inBatches(plan.Members, m.batchSize, func(batch []models.TeamMember) error {
		_, err := m.db.NewInsert().
			Model(&batch).
			On("CONFLICT (team_id, user_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("team members batch: %w", err)
		}
		m.stats.successful("team_members", len(batch))
		return nil
	})
}

func inBatches[T any](rows []T, size int, write func([]T) error) error {
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		if err := write(rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}
