package session

import (
	"context"
	"strings"

	projectcmd "github.com/goliatone/go-site-builder/internal/commands/project"
	"github.com/goliatone/go-site-builder/internal/editor"
	"github.com/goliatone/go-site-builder/internal/revisions"
)

// Revisions lists the stored revisions of this wedding, most recent first.
func (c *Controller) Revisions(ctx context.Context) ([]revisions.Revision, error) {
	if c.revisions == nil {
		return nil, projectcmd.ErrRevisionsDisabled
	}
	return c.revisions.List(ctx, c.weddingID)
}

// Rollback checkpoints the current document as a rollback revision and then
// restores revisionID as an undoable edit. An empty actor falls back to the
// session actor.
func (c *Controller) Rollback(ctx context.Context, revisionID, actor string) (revisions.Revision, error) {
	c.mu.Lock()
	if !c.state.Loaded() {
		c.mu.Unlock()
		return revisions.Revision{}, ErrNoProject
	}
	current := c.state.Project.Clone()
	data := c.state.WeddingData.Clone()
	c.mu.Unlock()

	if strings.TrimSpace(actor) == "" {
		actor = c.actor
	}
	result := &projectcmd.RollbackResult{}
	err := c.rollbackHandler.Execute(ctx, projectcmd.RollbackProjectCommand{
		WeddingID:   c.weddingID,
		RevisionID:  revisionID,
		Current:     current,
		WeddingData: data,
		Actor:       actor,
		Result:      result,
	})
	if err != nil {
		c.logger.WithContext(ctx).Warn("session.rollback.failed", "revision_id", revisionID, "error", err)
		return revisions.Revision{}, err
	}

	c.Dispatch(editor.RestoreRevision{RevisionID: result.Target.ID, Project: result.Target.Project})
	c.emit(EventRollbackSucceeded, func(evt *Event) { evt.RevisionID = result.Target.ID })
	return result.Target, nil
}
