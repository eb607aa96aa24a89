package revisions

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-site-builder/document"
)

func sequentialIDs() func() string {
	counter := 0
	return func() string {
		counter++
		return fmt.Sprintf("rev_%d", counter)
	}
}

func sampleProject(title string) *document.Project {
	return &document.Project{
		ID:        "proj_1",
		WeddingID: "w1",
		Pages: []*document.Page{{
			ID:    "home",
			Title: title,
			Meta:  document.PageMeta{IsHome: true},
			Sections: []*document.Section{{
				ID:       "s1",
				Type:     document.SectionVenue,
				Enabled:  true,
				Settings: document.SettingsFromMap(document.SectionVenue, map[string]any{"title": "Venue"}),
				Bindings: document.Bindings{VenueIDs: []string{"v1"}},
			}},
		}},
	}
}

func newTestLog(store Store, opts ...LogOption) *Log {
	base := []LogOption{
		WithIDGenerator(sequentialIDs()),
		WithNow(func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }),
	}
	return NewLog(store, append(base, opts...)...)
}

func TestLogListsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	log := newTestLog(NewMemoryStore())

	first, err := log.Record(ctx, RecordInput{WeddingID: "w1", Project: sampleProject("One"), Action: ActionSave})
	if err != nil {
		t.Fatalf("record first: %v", err)
	}
	second, err := log.Record(ctx, RecordInput{WeddingID: "w1", Project: sampleProject("Two"), Action: ActionPublish, Actor: "ana"})
	if err != nil {
		t.Fatalf("record second: %v", err)
	}

	list, err := log.List(ctx, "w1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected [%s %s], got %+v", second.ID, first.ID, list)
	}
	if first.Actor != DefaultActor || second.Actor != "ana" {
		t.Fatalf("unexpected actors %q %q", first.Actor, second.Actor)
	}
	if first.CreatedAt != "2026-03-01T10:00:00.000Z" {
		t.Fatalf("unexpected timestamp %q", first.CreatedAt)
	}
}

func TestLogGetReturnsDeepCopy(t *testing.T) {
	ctx := context.Background()
	log := newTestLog(NewMemoryStore())
	project := sampleProject("Home")

	recorded, err := log.Record(ctx, RecordInput{WeddingID: "w1", Project: project, Action: ActionSave})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	project.Pages[0].Title = "mutated after record"

	got, err := log.Get(ctx, "w1", recorded.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Project.Pages[0].Title != "Home" {
		t.Fatalf("expected stored title Home, got %q", got.Project.Pages[0].Title)
	}

	got.Project.Pages[0].Sections[0].Bindings.VenueIDs[0] = "changed"
	again, err := log.Get(ctx, "w1", recorded.ID)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if again.Project == got.Project {
		t.Fatal("expected distinct project pointers")
	}
	if again.Project.Pages[0].Sections[0].Bindings.VenueIDs[0] != "v1" {
		t.Fatal("expected stored revision to be unaffected by caller mutation")
	}
	if !reflect.DeepEqual(again.Project.Pages[0].Sections[0].Settings.Values(), map[string]any{"title": "Venue"}) {
		t.Fatalf("unexpected settings %v", again.Project.Pages[0].Sections[0].Settings.Values())
	}
}

func TestLogGetMissing(t *testing.T) {
	log := newTestLog(NewMemoryStore())
	_, err := log.Get(context.Background(), "w1", "rev_404")
	if !errors.Is(err, ErrRevisionNotFound) {
		t.Fatalf("expected ErrRevisionNotFound, got %v", err)
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) || notFound.RevisionID != "rev_404" {
		t.Fatalf("expected NotFoundError for rev_404, got %v", err)
	}
}

func TestLogCapsRetainedAndListLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	log := newTestLog(store, WithMaxRetained(4), WithListLimit(2))

	for i := 0; i < 6; i++ {
		if _, err := log.Record(ctx, RecordInput{WeddingID: "w1", Project: sampleProject("p"), Action: ActionSave}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	list, _ := log.List(ctx, "w1")
	if len(list) != 2 || list[0].ID != "rev_6" || list[1].ID != "rev_5" {
		t.Fatalf("unexpected list %+v", list)
	}
	if _, err := log.Get(ctx, "w1", "rev_3"); err != nil {
		t.Fatalf("expected rev_3 retained beyond list limit: %v", err)
	}
	if _, err := log.Get(ctx, "w1", "rev_2"); !errors.Is(err, ErrRevisionNotFound) {
		t.Fatalf("expected rev_2 evicted, got %v", err)
	}
}

func TestLogKeepsWeddingsSeparate(t *testing.T) {
	ctx := context.Background()
	log := newTestLog(NewMemoryStore())
	if _, err := log.Record(ctx, RecordInput{WeddingID: "w1", Project: sampleProject("a"), Action: ActionSave}); err != nil {
		t.Fatalf("record: %v", err)
	}
	list, _ := log.List(ctx, "w2")
	if len(list) != 0 {
		t.Fatalf("expected empty log for w2, got %d", len(list))
	}
}

func TestLogTreatsCorruptDataAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Write(ctx, logKey("w1"), []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	log := newTestLog(store)

	list, err := log.List(ctx, "w1")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list without error, got %v %v", list, err)
	}

	if _, err := log.Record(ctx, RecordInput{WeddingID: "w1", Project: sampleProject("a"), Action: ActionRollback}); err != nil {
		t.Fatalf("record over corrupt data: %v", err)
	}
	list, _ = log.List(ctx, "w1")
	if len(list) != 1 {
		t.Fatalf("expected corrupt log to be replaced, got %d entries", len(list))
	}
}

func TestLogRecordValidation(t *testing.T) {
	ctx := context.Background()
	log := newTestLog(NewMemoryStore())

	cases := []struct {
		name  string
		input RecordInput
		want  error
	}{
		{"missing wedding", RecordInput{Project: sampleProject("a"), Action: ActionSave}, ErrWeddingIDRequired},
		{"missing project", RecordInput{WeddingID: "w1", Action: ActionSave}, ErrProjectRequired},
		{"bad action", RecordInput{WeddingID: "w1", Project: sampleProject("a"), Action: "draft"}, ErrInvalidAction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := log.Record(ctx, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

type failingStore struct{}

func (failingStore) Read(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (failingStore) Write(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func TestLogSurfacesWriteFailures(t *testing.T) {
	log := newTestLog(failingStore{})
	if _, err := log.Record(context.Background(), RecordInput{WeddingID: "w1", Project: sampleProject("a"), Action: ActionSave}); err == nil {
		t.Fatal("expected write failure to surface")
	}
	list, err := log.List(context.Background(), "w1")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected unreadable store to list as empty, got %v %v", list, err)
	}
}

func TestRecordReturnsStoredForm(t *testing.T) {
	ctx := context.Background()
	log := newTestLog(NewMemoryStore())

	project := sampleProject("Countdown")
	project.Pages[0].Sections = append(project.Pages[0].Sections, &document.Section{
		ID:       "s2",
		Type:     document.SectionCountdown,
		Enabled:  true,
		Settings: &document.CustomSettings{Type: document.SectionCountdown, Fields: map[string]any{"days": 3}},
	})

	recorded, err := log.Record(ctx, RecordInput{WeddingID: "w1", Project: project, Action: ActionSave})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	stored, err := log.Get(ctx, "w1", recorded.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(recorded, stored) {
		t.Fatalf("expected recorded revision to match stored one:\n%+v\n%+v", recorded, stored)
	}
	if days := recorded.Project.Pages[0].Sections[1].Settings.Values()["days"]; days != float64(3) {
		t.Fatalf("expected decoded number, got %T %v", days, days)
	}

	project.Pages[0].Title = "Changed"
	if recorded.Project.Pages[0].Title != "Countdown" {
		t.Fatal("expected recorded revision not to alias the input")
	}
}
