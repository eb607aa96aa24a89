package projectcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/commands"
	"github.com/goliatone/go-site-builder/internal/revisions"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

const rollbackProjectMessageType = "builder.project.rollback"

// RollbackResult receives the revision being restored and the checkpoint
// recorded for the document it replaces.
type RollbackResult struct {
	Target     revisions.Revision
	Checkpoint revisions.Revision
}

// RollbackProjectCommand loads a stored revision after checkpointing the
// current document. Applying the target to the editor is left to the caller.
type RollbackProjectCommand struct {
	WeddingID   string                `json:"wedding_id"`
	RevisionID  string                `json:"revision_id"`
	Current     *document.Project     `json:"current"`
	WeddingData *document.WeddingData `json:"wedding_data,omitempty"`
	Actor       string                `json:"actor,omitempty"`
	Result      *RollbackResult       `json:"-"`
}

// Type implements command.Message.
func (RollbackProjectCommand) Type() string { return rollbackProjectMessageType }

// Validate ensures the command names the revision to restore.
func (m RollbackProjectCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.WeddingID) == "" {
		errs["wedding_id"] = validation.NewError("builder.project.rollback.wedding_id_required", "wedding_id is required")
	}
	if strings.TrimSpace(m.RevisionID) == "" {
		errs["revision_id"] = validation.NewError("builder.project.rollback.revision_id_required", "revision_id is required")
	}
	if m.Current == nil {
		errs["current"] = validation.NewError("builder.project.rollback.current_required", "current project is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RollbackProjectHandler resolves rollback targets from the revision log.
type RollbackProjectHandler struct {
	inner *commands.Handler[RollbackProjectCommand]
}

// NewRollbackProjectHandler constructs a handler wired to log.
func NewRollbackProjectHandler(log RevisionLog, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[RollbackProjectCommand]) *RollbackProjectHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RollbackProjectCommand) error {
		if log == nil || !gates.revisionsEnabled() {
			return ErrRevisionsDisabled
		}
		target, err := log.Get(ctx, msg.WeddingID, msg.RevisionID)
		if err != nil {
			return err
		}
		checkpoint, err := log.Record(ctx, revisions.RecordInput{
			WeddingID:   msg.WeddingID,
			Project:     msg.Current,
			WeddingData: msg.WeddingData,
			Action:      revisions.ActionRollback,
			Actor:       msg.Actor,
		})
		if err != nil {
			return err
		}
		if msg.Result != nil {
			msg.Result.Target = target
			msg.Result.Checkpoint = checkpoint
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[RollbackProjectCommand]{
		commands.WithLogger[RollbackProjectCommand](baseLogger),
		commands.WithOperation[RollbackProjectCommand]("project.rollback"),
		commands.WithMessageFields(func(msg RollbackProjectCommand) map[string]any {
			fields := projectFields(msg.WeddingID, msg.Current, msg.Actor)
			if fields == nil {
				fields = map[string]any{}
			}
			if trimmed := strings.TrimSpace(msg.RevisionID); trimmed != "" {
				fields["revision_id"] = trimmed
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RollbackProjectCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RollbackProjectHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RollbackProjectCommand].Execute.
func (h *RollbackProjectHandler) Execute(ctx context.Context, msg RollbackProjectCommand) error {
	return h.inner.Execute(ctx, msg)
}
