package projectcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/commands"
	"github.com/goliatone/go-site-builder/internal/logging"
	"github.com/goliatone/go-site-builder/internal/revisions"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

const saveProjectMessageType = "builder.project.save"

// SaveResult receives the outcome of a successful save.
type SaveResult struct {
	Revision *revisions.Revision
}

// SaveProjectCommand persists the project and content record.
type SaveProjectCommand struct {
	WeddingID   string                `json:"wedding_id"`
	Project     *document.Project     `json:"project"`
	WeddingData *document.WeddingData `json:"wedding_data,omitempty"`
	Actor       string                `json:"actor,omitempty"`
	Result      *SaveResult           `json:"-"`
}

// Type implements command.Message.
func (SaveProjectCommand) Type() string { return saveProjectMessageType }

// Validate ensures the command carries a structurally valid project.
func (m SaveProjectCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.WeddingID) == "" {
		errs["wedding_id"] = validation.NewError("builder.project.save.wedding_id_required", "wedding_id is required")
	}
	if m.Project == nil {
		errs["project"] = validation.NewError("builder.project.save.project_required", "project is required")
	} else if err := m.Project.Validate(); err != nil {
		errs["project"] = validation.NewError("builder.project.save.project_invalid", err.Error())
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveProjectHandler saves through the persistence collaborator and records
// a save revision.
type SaveProjectHandler struct {
	inner *commands.Handler[SaveProjectCommand]
}

// NewSaveProjectHandler constructs a handler wired to persister and log. A nil
// log disables revision recording.
func NewSaveProjectHandler(persister interfaces.ProjectPersister, log RevisionLog, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SaveProjectCommand]) *SaveProjectHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SaveProjectCommand) error {
		if persister == nil {
			return ErrPersisterRequired
		}
		if err := persister.Save(ctx, msg.Project, msg.WeddingData); err != nil {
			return err
		}
		if log == nil || !gates.revisionsEnabled() {
			return nil
		}
		rev, err := log.Record(ctx, revisions.RecordInput{
			WeddingID:   msg.WeddingID,
			Project:     msg.Project,
			WeddingData: msg.WeddingData,
			Action:      revisions.ActionSave,
			Actor:       msg.Actor,
		})
		if err != nil {
			// the save itself succeeded
			logging.With(baseLogger, "wedding_id", msg.WeddingID).
				Warn("builder.project.save.revision_failed", "error", err)
			return nil
		}
		if msg.Result != nil {
			msg.Result.Revision = &rev
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SaveProjectCommand]{
		commands.WithLogger[SaveProjectCommand](baseLogger),
		commands.WithOperation[SaveProjectCommand]("project.save"),
		commands.WithMessageFields(func(msg SaveProjectCommand) map[string]any {
			return projectFields(msg.WeddingID, msg.Project, msg.Actor)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SaveProjectCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveProjectHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SaveProjectCommand].Execute.
func (h *SaveProjectHandler) Execute(ctx context.Context, msg SaveProjectCommand) error {
	return h.inner.Execute(ctx, msg)
}

func projectFields(weddingID string, project *document.Project, actor string) map[string]any {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(weddingID); trimmed != "" {
		fields["wedding_id"] = trimmed
	}
	if project != nil {
		fields["project_id"] = project.ID
		fields["page_count"] = len(project.Pages)
	}
	if trimmed := strings.TrimSpace(actor); trimmed != "" {
		fields["actor"] = trimmed
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
