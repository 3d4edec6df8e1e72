package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/champfut/champfutbot/champfutbot/config"
	"github.com/disgoorg/disgo/handler"
)

// WrapWithLogging wraps a command handler with logging functionality
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()

		slog.Info("Command started",
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
			duration := time.Since(start)

			attrs := []any{
				slog.String("type", "cmd"),
				slog.String("name", name),
				slog.String("user_id", e.User().ID.String()),
				slog.String("user_name", e.User().Username),
				slog.Duration("took", duration),
			}

			if err != nil {
				slog.Error("Command failed", append(attrs, slog.Any("error", err))...)
			} else if duration > 2*time.Second {
				slog.Warn("Command executed slowly", attrs...)
			} else {
				slog.Info("Command completed", attrs...)
			}
			return err

		case <-time.After(config.CommandExecutionTimeout):
			slog.Error("Command timed out",
				slog.String("type", "cmd"),
				slog.String("name", name),
				slog.String("user_id", e.User().ID.String()),
				slog.String("user_name", e.User().Username),
				slog.Duration("timeout", config.CommandExecutionTimeout),
			)
			return fmt.Errorf("command timed out after %s", config.CommandExecutionTimeout)
		}
	}
}

// WrapComponentWithLogging wraps a component handler with logging functionality
func WrapComponentWithLogging(name string, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		start := time.Now()

		done := make(chan error, 1)
		go func() {
			done <- h(e)
		}()

		select {
		case err := <-done:
			duration := time.Since(start)

			attrs := []any{
				slog.String("type", "cmd"),
				slog.String("name", name),
				slog.String("user_id", e.User().ID.String()),
				slog.String("user_name", e.User().Username),
				slog.Duration("took", duration),
			}

			if err != nil {
				slog.Error("Component interaction failed", append(attrs, slog.Any("error", err))...)
			} else {
				slog.Info("Component interaction completed", attrs...)
			}
			return err

		case <-time.After(config.CommandExecutionTimeout):
			slog.Error("Component interaction timed out",
				slog.String("type", "cmd"),
				slog.String("name", name),
				slog.String("user_id", e.User().ID.String()),
				slog.String("user_name", e.User().Username),
				slog.Duration("timeout", config.CommandExecutionTimeout),
			)
			return fmt.Errorf("component interaction timed out after %s", config.CommandExecutionTimeout)
		}
	}
}
