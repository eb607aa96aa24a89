package session

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/editor"
	"github.com/goliatone/go-site-builder/internal/revisions"
)

func disableAll(c *Controller) {
	state := c.State()
	for _, section := range state.Project.Pages[0].Sections {
		if section.Enabled {
			c.Dispatch(editor.ToggleSectionVisibility{PageID: state.Project.Pages[0].ID, SectionID: section.ID})
		}
	}
}

func TestPublishIssue(t *testing.T) {
	if issue := PublishIssue(nil); issue == nil || issue.Kind != IssueNoPages {
		t.Fatalf("expected no-pages issue, got %+v", issue)
	}
	if issue := PublishIssue(&document.Project{}); issue == nil || issue.Message != "Add at least one page before publishing." {
		t.Fatalf("unexpected issue %+v", issue)
	}

	adapter := newAdapter()
	project := newProject(adapter)
	if issue := PublishIssue(project); issue != nil {
		t.Fatalf("expected publishable project, got %+v", issue)
	}

	for _, section := range project.Pages[0].Sections {
		section.Enabled = false
	}
	issue := PublishIssue(project)
	if issue == nil || issue.Kind != IssueNoEnabledSections {
		t.Fatalf("expected no-enabled-sections, got %+v", issue)
	}
	if issue.FirstSectionID != "sec_1" || issue.FirstPageID != project.Pages[0].ID {
		t.Fatalf("expected first section pointers, got %+v", issue)
	}
	if hints := issue.Hints(); len(hints) != 2 || hints[0] != "Select any section on canvas." {
		t.Fatalf("unexpected hints %v", hints)
	}
}

func TestPublishHints(t *testing.T) {
	cases := map[string]string{
		"Add at least one page before publishing.":  "Open Templates and apply a starter layout.",
		"Add both partner names before publishing.": "Open couple details.",
		"Add your wedding date before publishing.":  "Open event settings.",
		"Add at least one venue before publishing.": "Add at least one venue name or address.",
		"Enable RSVP before publishing.":            "Turn RSVP back on in settings.",
		"Something else":                            "Use Fix blockers to jump to the right place.",
	}
	for message, first := range cases {
		hints := PublishHints(message)
		if len(hints) == 0 || hints[0] != first {
			t.Fatalf("%q: expected %q, got %v", message, first, hints)
		}
	}
	if hints := PublishHints(""); len(hints) != 0 {
		t.Fatalf("expected no hints for empty message, got %v", hints)
	}
}

func TestShouldAutoPublish(t *testing.T) {
	if !ShouldAutoPublish("?publishNow=1") || !ShouldAutoPublish("foo=bar&publishNow=1") {
		t.Fatal("expected publishNow=1 to request publishing")
	}
	if ShouldAutoPublish("?publishNow=0") || ShouldAutoPublish("") {
		t.Fatal("expected other values to be ignored")
	}
	if !ShouldOpenPhotoTips("?photoTips=1") || ShouldOpenPhotoTips("?photoTips=true") {
		t.Fatal("unexpected photo tips detection")
	}
}

func TestPublishSavesDirtyDocumentFirst(t *testing.T) {
	c, persister, publisher := newController(t)
	touch(c)
	events := c.Subscribe(context.Background())

	if err := c.Publish(context.Background()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if persister.count() != 1 {
		t.Fatalf("expected implicit save, got %d persists", persister.count())
	}
	state := c.State()
	if len(publisher.ids) != 1 || publisher.ids[0] != state.Project.ID {
		t.Fatalf("unexpected publish calls %v", publisher.ids)
	}
	if state.Dirty || state.PublishStatus != editor.PublishPublished {
		t.Fatalf("unexpected state dirty=%v status=%s", state.Dirty, state.PublishStatus)
	}
	if state.Project.PublishedVersion == nil || *state.Project.PublishedVersion != 1 {
		t.Fatalf("expected published version 1, got %v", state.Project.PublishedVersion)
	}

	var kinds []EventKind
	for len(kinds) < 4 {
		kinds = append(kinds, nextEvent(t, events).Kind)
	}
	want := []EventKind{EventPublishStarted, EventSaveStarted, EventSaveSucceeded, EventPublishSucceeded}
	if !slices.Equal(kinds, want) {
		t.Fatalf("expected events %v, got %v", want, kinds)
	}

	list, _ := c.Revisions(context.Background())
	if len(list) != 2 || list[0].Action != revisions.ActionPublish {
		t.Fatalf("expected publish revision on top of the save, got %+v", list)
	}
}

func TestConcurrentPublishesShareOneFlight(t *testing.T) {
	c, _, publisher := newController(t)
	publisher.started = make(chan struct{}, 2)
	publisher.release = make(chan struct{})

	results := make(chan error, 2)
	go func() { results <- c.Publish(context.Background()) }()
	<-publisher.started
	go func() { results <- c.Publish(context.Background()) }()
	time.Sleep(50 * time.Millisecond)
	close(publisher.release)

	for i := 0; i < 2; i++ {
		if err := <-results; err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}
	if publisher.count() != 1 {
		t.Fatalf("expected a single publish, got %d", publisher.count())
	}
	if state := c.State(); state.Project.PublishedVersion == nil || *state.Project.PublishedVersion != 1 {
		t.Fatalf("expected published version 1, got %v", state.Project.PublishedVersion)
	}
}

func TestEditDuringPublishStaysDirty(t *testing.T) {
	c, persister, publisher := newController(t)
	persister.started = make(chan struct{}, 1)
	persister.release = make(chan struct{})
	touch(c)

	done := make(chan error, 1)
	go func() { done <- c.Publish(context.Background()) }()
	<-persister.started
	touch(c)
	close(persister.release)

	if err := <-done; err != nil {
		t.Fatalf("publish: %v", err)
	}
	if persister.count() != 1 || publisher.count() != 1 {
		t.Fatalf("expected one save and one publish, got %d and %d", persister.count(), publisher.count())
	}
	state := c.State()
	if !state.Dirty || state.PublishStatus != editor.PublishPublished {
		t.Fatalf("expected the later edit to stay dirty, got dirty=%v status=%s", state.Dirty, state.PublishStatus)
	}
}

func TestPublishWaitsForRunningSave(t *testing.T) {
	c, persister, publisher := newController(t)
	persister.started = make(chan struct{}, 2)
	persister.release = make(chan struct{})
	touch(c)

	saved := make(chan error, 1)
	go func() { saved <- c.Save(context.Background()) }()
	<-persister.started

	published := make(chan error, 1)
	go func() { published <- c.Publish(context.Background()) }()
	time.Sleep(50 * time.Millisecond)
	if publisher.count() != 0 {
		t.Fatal("expected publish to wait for the running save")
	}
	close(persister.release)

	if err := <-saved; err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := <-published; err != nil {
		t.Fatalf("publish: %v", err)
	}
	if persister.count() != 1 || publisher.count() != 1 {
		t.Fatalf("expected the settled save to be reused, got %d saves and %d publishes", persister.count(), publisher.count())
	}
}

func TestPublishBlockedByIssue(t *testing.T) {
	c, persister, publisher := newController(t)
	disableAll(c)

	err := c.Publish(context.Background())
	if !errors.Is(err, ErrPublishBlocked) {
		t.Fatalf("expected publish blocked, got %v", err)
	}
	var issueErr *IssueError
	if !errors.As(err, &issueErr) || issueErr.Issue.Kind != IssueNoEnabledSections {
		t.Fatalf("expected issue error, got %v", err)
	}
	if persister.count() != 0 || len(publisher.ids) != 0 {
		t.Fatal("expected no side effects for a blocked publish")
	}
	if c.State().Error != "Enable at least one section before publishing." {
		t.Fatalf("unexpected error banner %q", c.State().Error)
	}
}

func TestPublishAbortsWhenImplicitSaveFails(t *testing.T) {
	c, persister, publisher := newController(t)
	persister.err = errors.New("disk full")
	touch(c)

	err := c.Publish(context.Background())
	if !errors.Is(err, ErrUnsavedChanges) {
		t.Fatalf("expected ErrUnsavedChanges, got %v", err)
	}
	state := c.State()
	if state.Error != MessageResolveSaveErrors || state.PublishStatus != editor.PublishError {
		t.Fatalf("unexpected state error=%q status=%s", state.Error, state.PublishStatus)
	}
	if len(publisher.ids) != 0 {
		t.Fatal("expected publisher not to be called")
	}
}

func TestPublishFailureSurfacesCollaboratorMessage(t *testing.T) {
	c, _, publisher := newController(t)
	publisher.err = errors.New("publisher offline")

	if err := c.Publish(context.Background()); err == nil {
		t.Fatal("expected publish error")
	}
	state := c.State()
	if state.PublishStatus != editor.PublishError || state.Error != "publisher offline" {
		t.Fatalf("unexpected state error=%q status=%s", state.Error, state.PublishStatus)
	}
}

func TestAutoPublishOnLoadFixBlockers(t *testing.T) {
	c, _, publisher := newController(t, WithPublishNow(true))
	disableAll(c)
	c.Dispatch(editor.SelectSection{})

	action, err := c.AutoPublishOnLoad(context.Background())
	if err != nil || action != AutoPublishFixBlockers {
		t.Fatalf("expected fix-blockers, got %s (%v)", action, err)
	}
	state := c.State()
	if state.Selection.SelectedSectionID != "sec_1" {
		t.Fatalf("expected first section selected, got %q", state.Selection.SelectedSectionID)
	}
	if len(publisher.ids) != 0 {
		t.Fatal("expected no publish")
	}

	action, _ = c.AutoPublishOnLoad(context.Background())
	if action != AutoPublishSkip {
		t.Fatalf("expected request to be consumed, got %s", action)
	}
}

func TestAutoPublishOnLoadPublishes(t *testing.T) {
	c, _, publisher := newController(t, WithPublishNow(true))
	action, err := c.AutoPublishOnLoad(context.Background())
	if err != nil || action != AutoPublishPublish {
		t.Fatalf("expected publish, got %s (%v)", action, err)
	}
	if len(publisher.ids) != 1 {
		t.Fatalf("expected one publish, got %d", len(publisher.ids))
	}
}

func TestAutoPublishOnLoadSkips(t *testing.T) {
	c, _, _ := newController(t)
	if action, _ := c.AutoPublishOnLoad(context.Background()); action != AutoPublishSkip {
		t.Fatalf("expected skip without a request, got %s", action)
	}

	gated, _, publisher := newController(t, WithPublishNow(true), WithAutoPublish(false))
	if action, _ := gated.AutoPublishOnLoad(context.Background()); action != AutoPublishSkip || len(publisher.ids) != 0 {
		t.Fatalf("expected disabled feature to skip, got %s", action)
	}
}
