package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const defaultQueryTimeout = 10 * time.Second

// BaseRepository provides timeouts and error mapping shared by repositories.
type BaseRepository struct {
	db             *bun.DB
	defaultTimeout time.Duration
}

func NewBaseRepository(db *bun.DB) BaseRepository {
	return BaseRepository{db: db, defaultTimeout: defaultQueryTimeout}
}

type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s for %s: %v", re.Operation, re.Entity, re.Err)
}

func (re *RepositoryError) Unwrap() error {
	return re.Err
}

type NotFoundError struct {
	Entity string
	ID     any
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", nfe.Entity, nfe.ID)
}

type ConflictError struct {
	Entity string
	Field  string
	Value  any
}

func (ce *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %v already exists", ce.Entity, ce.Field, ce.Value)
}

func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func (br BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.defaultTimeout)
}

// HandleErrorWithID maps sql.ErrNoRows to NotFoundError and wraps anything
// else in a RepositoryError.
func (br BaseRepository) HandleErrorWithID(operation, entity string, id any, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	slog.Error("Repository operation failed",
		slog.String("type", "db"),
		slog.String("operation", operation),
		slog.String("entity", entity),
		slog.Any("id", id),
		slog.Any("error", err))
	return &RepositoryError{Operation: operation, Entity: entity, Err: err}
}

// Transaction runs fn in a transaction bounded by the default timeout.
func (br BaseRepository) Transaction(ctx context.Context, fn func(context.Context, bun.Tx) error) error {
	ctx, cancel := br.WithTimeout(ctx)
	defer cancel()
	return br.db.RunInTx(ctx, nil, fn)
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}
