package migration

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// copyTarget describes a table written through a temp table and COPY.
type copyTarget struct {
	table    string
	columns  []string
	conflict []string
	update   []string
}

var questCopy = copyTarget{
	table:    "quest_progress",
	columns:  []string{"user_id", "quest_id", "status", "completed_at", "updated_at"},
	conflict: []string{"user_id", "quest_id"},
	update:   []string{"status", "completed_at", "updated_at"},
}

var objectiveCopy = copyTarget{
	table:    "objective_progress",
	columns:  []string{"user_id", "quest_id", "objective_id", "collected", "updated_at"},
	conflict: []string{"user_id", "quest_id", "objective_id"},
	update:   []string{"collected", "updated_at"},
}

func (t copyTarget) upsertSQL(tmp string) string {
	cols := strings.Join(t.columns, ", ")
	sets := make([]string, len(t.update))
	for i, c := range t.update {
		sets[i] = fmt.Sprintf("%s = EXCLUDED.%s", c, c)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT (%s) DO UPDATE SET %s",
		t.table, cols, cols, tmp, strings.Join(t.conflict, ", "), strings.Join(sets, ", "))
}

// copyUpsert streams rows into a transaction-scoped temp table and merges
// them into the target with one INSERT ... ON CONFLICT.
func (m *Migrator) copyUpsert(ctx context.Context, t copyTarget, rows [][]any) error {
	if m.pool == nil {
		return fmt.Errorf("pgx pool not configured")
	}
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tmp := "tmp_" + t.table
	if _, err := tx.Exec(ctx, fmt.Sprintf("CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP", tmp, t.table)); err != nil {
		return fmt.Errorf("failed to create temp table: %w", err)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{tmp}, t.columns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy to temp failed: %w", err)
	}
	if _, err := tx.Exec(ctx, t.upsertSQL(tmp)); err != nil {
		return fmt.Errorf("%s upsert from temp failed: %w", t.table, err)
	}
	return tx.Commit(ctx)
}
