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

const publishProjectMessageType = "builder.project.publish"

// PublishResult receives the publish version and the recorded revision.
type PublishResult struct {
	interfaces.PublishResult
	Revision *revisions.Revision
}

// PublishProjectCommand asks the publish collaborator to make the saved
// project public. Project is recorded in the revision log.
type PublishProjectCommand struct {
	WeddingID   string                `json:"wedding_id"`
	Project     *document.Project     `json:"project"`
	WeddingData *document.WeddingData `json:"wedding_data,omitempty"`
	Actor       string                `json:"actor,omitempty"`
	Result      *PublishResult        `json:"-"`
}

// Type implements command.Message.
func (PublishProjectCommand) Type() string { return publishProjectMessageType }

// Validate ensures the command identifies the project being published.
func (m PublishProjectCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.WeddingID) == "" {
		errs["wedding_id"] = validation.NewError("builder.project.publish.wedding_id_required", "wedding_id is required")
	}
	if m.Project == nil {
		errs["project"] = validation.NewError("builder.project.publish.project_required", "project is required")
	} else if strings.TrimSpace(m.Project.ID) == "" {
		errs["project"] = validation.NewError("builder.project.publish.project_id_required", "project id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishProjectHandler publishes via the publish collaborator.
type PublishProjectHandler struct {
	inner *commands.Handler[PublishProjectCommand]
}

// NewPublishProjectHandler constructs a handler wired to publisher and log.
func NewPublishProjectHandler(publisher interfaces.Publisher, log RevisionLog, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[PublishProjectCommand]) *PublishProjectHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg PublishProjectCommand) error {
		if publisher == nil {
			return ErrPublisherRequired
		}
		result, err := publisher.Publish(ctx, msg.Project.ID)
		if err != nil {
			return err
		}
		if msg.Result != nil {
			msg.Result.PublishResult = result
		}
		if log == nil || !gates.revisionsEnabled() {
			return nil
		}

		published := msg.Project.Clone()
		version := result.Version
		published.PublishedVersion = &version
		published.PublishStatus = document.PublishStatusPublished
		published.LastPublishedAt = result.PublishedAt

		rev, err := log.Record(ctx, revisions.RecordInput{
			WeddingID:   msg.WeddingID,
			Project:     published,
			WeddingData: msg.WeddingData,
			Action:      revisions.ActionPublish,
			Actor:       msg.Actor,
		})
		if err != nil {
			logging.With(baseLogger, "wedding_id", msg.WeddingID, "version", result.Version).
				Warn("builder.project.publish.revision_failed", "error", err)
			return nil
		}
		if msg.Result != nil {
			msg.Result.Revision = &rev
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[PublishProjectCommand]{
		commands.WithLogger[PublishProjectCommand](baseLogger),
		commands.WithOperation[PublishProjectCommand]("project.publish"),
		commands.WithMessageFields(func(msg PublishProjectCommand) map[string]any {
			return projectFields(msg.WeddingID, msg.Project, msg.Actor)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishProjectCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishProjectHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishProjectCommand].Execute.
func (h *PublishProjectHandler) Execute(ctx context.Context, msg PublishProjectCommand) error {
	return h.inner.Execute(ctx, msg)
}
