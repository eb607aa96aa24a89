package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-site-builder/document"
	projectcmd "github.com/goliatone/go-site-builder/internal/commands/project"
	"github.com/goliatone/go-site-builder/internal/editor"
)

// IssueKind classifies why a document cannot be published.
type IssueKind string

const (
	IssueNoPages           IssueKind = "no-pages"
	IssueNoEnabledSections IssueKind = "no-enabled-sections"
)

// MessageResolveSaveErrors is shown when the implicit save before a publish
// fails.
const MessageResolveSaveErrors = "Resolve save errors before publishing."

var (
	// ErrPublishBlocked is matched by every *IssueError.
	ErrPublishBlocked = errors.New("session: publish blocked")
	// ErrUnsavedChanges indicates the implicit save before a publish failed.
	ErrUnsavedChanges = errors.New("session: resolve save errors before publishing")
)

// Issue is a publish blocker. FirstSectionID and FirstPageID point at the
// first section of the document so the editor can jump to it.
type Issue struct {
	Kind           IssueKind
	Message        string
	FirstSectionID string
	FirstPageID    string
}

// Hints returns the guidance lines for the issue.
func (i Issue) Hints() []string {
	return PublishHints(i.Message)
}

// IssueError reports a publish refused because of a blocker.
type IssueError struct {
	Issue Issue
}

func (e *IssueError) Error() string {
	return e.Issue.Message
}

// Is lets errors.Is match ErrPublishBlocked.
func (e *IssueError) Is(target error) bool {
	return target == ErrPublishBlocked
}

// PublishIssue returns the first blocker preventing project from being
// published, or nil when it is publishable.
func PublishIssue(project *document.Project) *Issue {
	if project == nil || len(project.Pages) == 0 {
		return &Issue{Kind: IssueNoPages, Message: "Add at least one page before publishing."}
	}
	var firstSectionID, firstPageID string
	for _, page := range project.Pages {
		if page == nil {
			continue
		}
		for _, section := range page.Sections {
			if section == nil {
				continue
			}
			if section.Enabled {
				return nil
			}
			if firstSectionID == "" {
				firstSectionID = section.ID
				firstPageID = page.ID
			}
		}
	}
	return &Issue{
		Kind:           IssueNoEnabledSections,
		Message:        "Enable at least one section before publishing.",
		FirstSectionID: firstSectionID,
		FirstPageID:    firstPageID,
	}
}

// PublishHints maps a publish blocker message to actionable guidance.
func PublishHints(message string) []string {
	switch {
	case message == "":
		return []string{}
	case strings.Contains(message, "page"):
		return []string{"Open Templates and apply a starter layout.", "Or add a page/section from the Add panel."}
	case strings.Contains(message, "Enable at least one section"):
		return []string{"Select any section on canvas.", "Enable it in the inspector panel."}
	case strings.Contains(message, "partner names"):
		return []string{"Open couple details.", "Fill both partner names exactly as you want them shown."}
	case strings.Contains(message, "wedding date"):
		return []string{"Open event settings.", "Set the wedding date before publishing."}
	case strings.Contains(message, "venue"):
		return []string{"Add at least one venue name or address.", "Confirm the venue appears in your details section."}
	case strings.Contains(message, "Enable RSVP"):
		return []string{"Turn RSVP back on in settings.", "Or remove RSVP CTAs if you are not collecting responses yet."}
	default:
		return []string{"Use Fix blockers to jump to the right place."}
	}
}

// ShouldAutoPublish reports whether a query string requests publish-on-load.
func ShouldAutoPublish(rawQuery string) bool {
	return queryFlag(rawQuery, "publishNow")
}

// ShouldOpenPhotoTips reports whether a query string requests the photo tips
// panel.
func ShouldOpenPhotoTips(rawQuery string) bool {
	return queryFlag(rawQuery, "photoTips")
}

func queryFlag(rawQuery, key string) bool {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return false
	}
	return values.Get(key) == "1"
}

// AutoPublishAction is the outcome of a publish-on-load request.
type AutoPublishAction string

const (
	AutoPublishSkip        AutoPublishAction = "skip"
	AutoPublishFixBlockers AutoPublishAction = "fix-blockers"
	AutoPublishPublish     AutoPublishAction = "publish"
)

// AutoPublishActionFor decides what a publish-on-load request does for project.
func AutoPublishActionFor(requested bool, project *document.Project) AutoPublishAction {
	if !requested || project == nil {
		return AutoPublishSkip
	}
	if PublishIssue(project) != nil {
		return AutoPublishFixBlockers
	}
	return AutoPublishPublish
}

// Publish makes the current document public. A dirty document is saved first.
// Concurrent callers join the publish that is already running. The published
// snapshot, and the implicit save of it, are taken when the publish starts, so
// edits made while it runs stay dirty.
func (c *Controller) Publish(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c.mu.Lock()
	for {
		if f := c.publishing; f != nil {
			c.mu.Unlock()
			return f.wait(ctx)
		}
		running := c.saving
		if running == nil {
			break
		}
		// Let the running save settle so dirtiness reflects it.
		c.mu.Unlock()
		if err := running.wait(ctx); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		c.mu.Lock()
	}
	if !c.state.Loaded() {
		c.mu.Unlock()
		return ErrNoProject
	}
	if issue := PublishIssue(c.state.Project); issue != nil {
		c.apply(editor.SetError{Message: issue.Message})
		c.mu.Unlock()
		c.emit(EventPublishBlocked, func(evt *Event) { evt.Message = issue.Message })
		return &IssueError{Issue: *issue}
	}
	f := newFlight()
	c.publishing = f
	c.apply(editor.SetPublishing{Publishing: true})
	var save *saveJob
	if c.state.Dirty {
		save = c.beginSave()
	}
	project := c.adapter.Serialize(c.state.Project)
	data := c.state.WeddingData.Clone()
	c.mu.Unlock()

	c.emit(EventPublishStarted, nil)
	err := c.runPublish(ctx, save, project, data)

	c.mu.Lock()
	c.publishing = nil
	c.mu.Unlock()
	f.finish(err)
	return err
}

func (c *Controller) runPublish(ctx context.Context, save *saveJob, project *document.Project, data *document.WeddingData) error {
	logger := c.logger.WithContext(ctx)
	if save != nil {
		if err := c.runSave(ctx, save); err != nil {
			c.failPublish(MessageResolveSaveErrors)
			logger.Warn("session.publish.save_failed", "error", err)
			return fmt.Errorf("%w: %w", ErrUnsavedChanges, err)
		}
	}

	result := &projectcmd.PublishResult{}
	err := c.publishHandler.Execute(ctx, projectcmd.PublishProjectCommand{
		WeddingID:   c.weddingID,
		Project:     project,
		WeddingData: data,
		Actor:       c.actor,
		Result:      result,
	})
	if err != nil {
		c.failPublish(failureMessage(err))
		logger.Warn("session.publish.failed", "error", err)
		return err
	}

	c.Dispatch(editor.MarkPublished{Version: result.Version, PublishedAt: result.PublishedAt})
	logger.Info("session.publish.succeeded", "version", result.Version)
	c.emit(EventPublishSucceeded, func(evt *Event) {
		evt.Version = result.Version
		if result.Revision != nil {
			evt.RevisionID = result.Revision.ID
		}
	})
	return nil
}

func (c *Controller) failPublish(message string) {
	c.Dispatch(editor.PublishFailed{Message: message})
	c.emit(EventPublishFailed, func(evt *Event) { evt.Message = message })
}

// AutoPublishOnLoad acts on a pending publish-on-load request once the
// document has loaded. The request is consumed on first use, so later calls
// return AutoPublishSkip. With blockers, the first section (or page) is
// selected so the user can fix it.
func (c *Controller) AutoPublishOnLoad(ctx context.Context) (AutoPublishAction, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.mu.Lock()
	if !c.publishNowPending || !c.autoPublish || !c.state.Loaded() {
		c.mu.Unlock()
		return AutoPublishSkip, nil
	}
	c.publishNowPending = false
	action := AutoPublishActionFor(true, c.state.Project)
	if action == AutoPublishFixBlockers {
		issue := PublishIssue(c.state.Project)
		switch {
		case issue.FirstSectionID != "":
			c.apply(editor.SelectSection{SectionID: issue.FirstSectionID})
		case issue.FirstPageID != "":
			c.apply(editor.SetActivePage{PageID: issue.FirstPageID})
		}
		c.apply(editor.SetError{Message: issue.Message})
	}
	c.mu.Unlock()

	c.logger.WithContext(ctx).Info("session.publish_now", "action", string(action))
	if action != AutoPublishPublish {
		return action, nil
	}
	return action, c.Publish(ctx)
}
