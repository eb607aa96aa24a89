package drafts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/layout"
	"github.com/goliatone/go-site-builder/pkg/testsupport"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newProject() *document.Project {
	adapter := layout.NewAdapter(layout.WithClock(clock))
	project := adapter.NewEmptyProject("w1", "")
	project.Pages[0].Sections = []*document.Section{
		adapter.NewSectionFromLibrary(document.SectionHero, "", 0),
		adapter.NewSectionFromLibrary(document.SectionVenue, "", 1),
	}
	return project
}

func repositories(t *testing.T) map[string]Repository {
	t.Helper()
	bunRepo := NewBunRepository(testsupport.NewSQLiteBunDB(t), WithClock(clock))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := bunRepo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return map[string]Repository{
		"memory": NewMemoryRepository(WithClock(clock)),
		"bun":    bunRepo,
	}
}

func assertEvent(t *testing.T, events <-chan ChangeEvent, want ChangeType) ChangeEvent {
	t.Helper()
	select {
	case evt := <-events:
		if evt.Type != want {
			t.Fatalf("expected %s event, got %s", want, evt.Type)
		}
		return evt
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for %s event", want)
	}
	return ChangeEvent{}
}

func TestRepositorySavePublishDelete(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			events, err := repo.Subscribe(ctx)
			if err != nil {
				t.Fatalf("Subscribe() error = %v", err)
			}

			project := newProject()
			data := &document.WeddingData{Version: "1", Venues: []document.Venue{{ID: "v1", Name: "Chapel"}}}
			if err := repo.Save(ctx, project, data); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			assertEvent(t, events, ChangeSaved)

			stored, err := repo.Get(ctx, project.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if stored.WeddingID != "w1" || len(stored.Project.Pages[0].Sections) != 2 {
				t.Fatalf("Get() returned %+v", stored)
			}
			if stored.Project.Pages[0].Sections[1].Type != document.SectionVenue {
				t.Fatalf("expected section order to survive storage, got %s", stored.Project.Pages[0].Sections[1].Type)
			}
			if stored.WeddingData == nil || stored.WeddingData.Venues[0].Name != "Chapel" {
				t.Fatalf("expected content record, got %+v", stored.WeddingData)
			}

			result, err := repo.Publish(ctx, project.ID)
			if err != nil {
				t.Fatalf("Publish() error = %v", err)
			}
			if result.Version != 1 || result.PublishedAt != document.Timestamp(fixedNow) {
				t.Fatalf("Publish() returned %+v", result)
			}
			evt := assertEvent(t, events, ChangePublished)
			if evt.Draft.Published == nil || *evt.Draft.Published.PublishedVersion != 1 {
				t.Fatalf("expected published snapshot in event, got %+v", evt.Draft.Published)
			}

			project.ThemeID = "ocean"
			if err := repo.Save(ctx, project, data); err != nil {
				t.Fatalf("Save() update error = %v", err)
			}
			assertEvent(t, events, ChangeSaved)
			stored, _ = repo.Get(ctx, project.ID)
			if stored.Project.ThemeID != "ocean" || stored.Published.ThemeID == "ocean" {
				t.Fatal("expected saving to leave the published snapshot alone")
			}
			if result, _ := repo.Publish(ctx, project.ID); result.Version != 2 {
				t.Fatalf("expected version 2, got %d", result.Version)
			}
			assertEvent(t, events, ChangePublished)

			list, err := repo.List(ctx)
			if err != nil || len(list) != 1 {
				t.Fatalf("List() returned %d (%v)", len(list), err)
			}

			if err := repo.Delete(ctx, project.ID); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			assertEvent(t, events, ChangeDeleted)
			if _, err := repo.Get(ctx, project.ID); !errors.Is(err, ErrDraftNotFound) {
				t.Fatalf("expected ErrDraftNotFound, got %v", err)
			}
		})
	}
}

func TestRepositoryRequiresProjectID(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := repo.Save(ctx, nil, nil); !errors.Is(err, ErrProjectIDRequired) {
				t.Fatalf("expected ErrProjectIDRequired, got %v", err)
			}
			if _, err := repo.Get(ctx, " "); !errors.Is(err, ErrProjectIDRequired) {
				t.Fatalf("expected ErrProjectIDRequired, got %v", err)
			}
			if _, err := repo.Publish(ctx, "missing"); !errors.Is(err, ErrDraftNotFound) {
				t.Fatalf("expected ErrDraftNotFound, got %v", err)
			}
			if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrDraftNotFound) {
				t.Fatalf("expected ErrDraftNotFound, got %v", err)
			}
		})
	}
}

func TestBunRepositoryWithoutDatabase(t *testing.T) {
	repo := NewBunRepository(nil)
	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("expected error without database")
	}
}
