package commands

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// Outcome classifies how a command execution ended.
type Outcome string

const (
	OutcomeSucceeded   Outcome = "success"
	OutcomeFailed      Outcome = "failed"
	OutcomeInterrupted Outcome = "context_error"
)

// TelemetryInfo describes one execution for telemetry callbacks.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Outcome   Outcome
	// Logger already carries Fields and the execution context.
	Logger interfaces.Logger
}

// Telemetry is invoked once per execution, after the wrapped function returns.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes with their duration. fallback is used when
// the execution carries no logger.
func DefaultTelemetry[T command.Message](fallback interfaces.Logger) Telemetry[T] {
	return func(ctx context.Context, _ T, info TelemetryInfo) {
		if info.Logger == nil {
			info.Logger = EnsureLogger(fallback).WithContext(ctx)
		}
		logOutcome(info, "duration_ms", info.Duration.Milliseconds())
	}
}

func logOutcome(info TelemetryInfo, args ...any) {
	switch info.Outcome {
	case OutcomeSucceeded:
		info.Logger.Info("command.execute.success", args...)
	case OutcomeInterrupted:
		info.Logger.Error("command.execute.context_error", append(args, "error", info.Error)...)
	default:
		info.Logger.Error("command.execute.failed", append(args, "error", info.Error)...)
	}
}

// classify settles the outcome of exec. A nil error on an expired context
// still counts as interrupted.
func classify(ctx context.Context, err error) (Outcome, error) {
	switch {
	case err == nil && ctx.Err() != nil:
		return OutcomeInterrupted, ctx.Err()
	case err == nil:
		return OutcomeSucceeded, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeInterrupted, err
	default:
		return OutcomeFailed, err
	}
}

type errorTag struct {
	category goerrors.Category
	message  string
	code     string
}

var (
	tagValidation = errorTag{goerrors.CategoryValidation, "command validation failed", "COMMAND_VALIDATION_FAILED"}
	tagExecute    = errorTag{goerrors.CategoryCommand, "command execution failed", "COMMAND_EXECUTION_FAILED"}
	tagCanceled   = errorTag{goerrors.CategoryCommand, "command execution cancelled", "COMMAND_CONTEXT_CANCELED"}
	tagDeadline   = errorTag{goerrors.CategoryCommand, "command execution deadline exceeded", "COMMAND_CONTEXT_TIMEOUT"}
	tagContext    = errorTag{goerrors.CategoryCommand, "command context error", "COMMAND_CONTEXT_ERROR"}
)

// tag wraps err unless it already carries a go-errors category.
func (t errorTag) tag(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, t.category, t.message).WithTextCode(t.code)
}

func contextTag(err error) errorTag {
	switch {
	case errors.Is(err, context.Canceled):
		return tagCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return tagDeadline
	}
	return tagContext
}

func (o Outcome) wrap(err error) error {
	switch o {
	case OutcomeSucceeded:
		return nil
	case OutcomeInterrupted:
		return contextTag(err).tag(err)
	}
	return tagExecute.tag(err)
}

// Cause returns the innermost error so callers can surface the
// collaborator's original message.
func Cause(err error) error {
	for next := errors.Unwrap(err); next != nil; next = errors.Unwrap(err) {
		err = next
	}
	return err
}
