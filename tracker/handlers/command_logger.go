package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/handler"

	"github.com/raidledger/raidledger/tracker/logger"
)

const (
	slowCommand    = 2 * time.Second
	commandTimeout = 10 * time.Second
)

// WrapWithLogging wraps a command handler with logging and a timeout
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()

		slog.Debug("Command started",
			slog.String("type", "cmd"),
			slog.String("name", name),
			slog.String("user_id", e.User().ID.String()),
			slog.String("user_name", e.User().Username),
		)

		done := make(chan error, 1)
		go func() {
			done <- h(e)
		}()

		select {
		case err := <-done:
			took := time.Since(start)
			if err == nil && took > slowCommand {
				slog.Warn("Command executed slowly",
					slog.String("type", "cmd"),
					slog.String("name", name),
					slog.Duration("took", took))
				return nil
			}
			logger.LogCommand(name, took, err)
			return err

		case <-time.After(commandTimeout):
			err := fmt.Errorf("command timed out after %s", commandTimeout)
			logger.LogCommand(name, time.Since(start), err)
			return err
		}
	}
}
