package session

import (
	"context"
	"time"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/bindings"
	projectcmd "github.com/goliatone/go-site-builder/internal/commands/project"
	"github.com/goliatone/go-site-builder/internal/editor"
	"github.com/goliatone/go-site-builder/internal/logging"
)

// Save persists the current document. Concurrent callers join the save that
// is already running and receive its result. On failure the document stays
// dirty and the collaborator's message is shown.
func (c *Controller) Save(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c.mu.Lock()
	if f := c.saving; f != nil {
		c.mu.Unlock()
		return f.wait(ctx)
	}
	if !c.state.Loaded() {
		c.mu.Unlock()
		return ErrNoProject
	}
	job := c.beginSave()
	c.mu.Unlock()
	return c.runSave(ctx, job)
}

// saveJob is a document snapshot taken when a save flight starts.
type saveJob struct {
	flight  *flight
	project *document.Project
	data    *document.WeddingData
	seq     uint64
}

// beginSave starts a save flight and snapshots the document. Must be called
// with mu held and no save running.
func (c *Controller) beginSave() *saveJob {
	f := newFlight()
	c.saving = f
	c.apply(editor.SetSaving{Saving: true})
	c.syncContent()
	return &saveJob{
		flight:  f,
		project: c.adapter.Serialize(c.state.Project),
		data:    c.state.WeddingData.Clone(),
		seq:     c.state.ChangeSeq,
	}
}

func (c *Controller) runSave(ctx context.Context, job *saveJob) error {
	ctx = logging.ContextWithDocument(ctx, c.weddingID, job.project.ID)
	c.emit(EventSaveStarted, nil)
	logger := c.logger.WithContext(ctx)
	logger.Debug("session.save.start", "change_seq", job.seq)

	result := &projectcmd.SaveResult{}
	err := c.saveHandler.Execute(ctx, projectcmd.SaveProjectCommand{
		WeddingID:   c.weddingID,
		Project:     job.project,
		WeddingData: job.data,
		Actor:       c.actor,
		Result:      result,
	})

	c.mu.Lock()
	if err != nil {
		c.apply(editor.SaveFailed{Message: failureMessage(err)})
	} else {
		c.apply(editor.MarkSaved{SavedAt: document.Timestamp(c.now()), ChangeSeq: job.seq})
	}
	c.saving = nil
	c.mu.Unlock()
	job.flight.finish(err)

	if err != nil {
		logger.Warn("session.save.failed", "error", err)
		c.emit(EventSaveFailed, func(evt *Event) { evt.Message = failureMessage(err) })
		return err
	}
	logger.Info("session.save.succeeded", "change_seq", job.seq)
	c.emit(EventSaveSucceeded, func(evt *Event) {
		if result.Revision != nil {
			evt.RevisionID = result.Revision.ID
		}
	})
	return nil
}

// syncContent writes section edits back into the content record. Must be
// called with mu held.
func (c *Controller) syncContent() {
	if c.state.WeddingData == nil || c.state.Project == nil {
		return
	}
	var all []*document.Section
	for _, page := range c.state.Project.Pages {
		all = append(all, page.Sections...)
	}
	update := bindings.ExtractContentUpdates(all, c.state.WeddingData)
	if update.Empty() {
		return
	}
	c.apply(editor.SetWeddingData{Data: update.ApplyTo(c.state.WeddingData)})
}

// Run autosaves every interval while the document is dirty and no save is
// running. Failures are logged and retried on the next tick. Run returns when
// ctx is cancelled, or immediately when autosave is disabled.
func (c *Controller) Run(ctx context.Context) error {
	if c.autosaveInterval <= 0 {
		return nil
	}
	ticker := time.NewTicker(c.autosaveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.autosave(ctx)
		}
	}
}

func (c *Controller) autosave(ctx context.Context) bool {
	c.mu.Lock()
	due := c.state.Loaded() && c.state.Dirty && c.saving == nil
	c.mu.Unlock()

	c.emit(EventAutosaveTick, nil)
	if !due {
		return false
	}
	if err := c.Save(ctx); err != nil {
		c.logger.WithContext(ctx).Warn("session.autosave.failed", "error", err)
	}
	return true
}
