package document_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-site-builder/document"
)

func TestSettingsFromMapIsLossless(t *testing.T) {
	cases := []struct {
		name        string
		sectionType document.SectionType
		values      map[string]any
	}{
		{
			name:        "hero typed fields",
			sectionType: document.SectionHero,
			values: map[string]any{
				"title":          "Ana & Ben",
				"overlayOpacity": float64(40),
				"showCountdown":  true,
			},
		},
		{
			name:        "mistyped values are kept",
			sectionType: document.SectionVenue,
			values: map[string]any{
				"title":   "",
				"showMap": "yes",
				"custom":  []any{"a", float64(2)},
			},
		},
		{
			name:        "custom type",
			sectionType: document.SectionCountdown,
			values: map[string]any{
				"targetDate": "2026-06-01",
				"style":      map[string]any{"size": "lg"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := document.SettingsFromMap(tc.sectionType, tc.values)
			if settings.SectionType() != tc.sectionType {
				t.Fatalf("expected section type %s, got %s", tc.sectionType, settings.SectionType())
			}
			if got := settings.Values(); !reflect.DeepEqual(got, tc.values) {
				t.Fatalf("expected values %v, got %v", tc.values, got)
			}
		})
	}
}

func TestSettingsTypedAccess(t *testing.T) {
	settings := document.SettingsFromMap(document.SectionHero, map[string]any{
		"title":          "Welcome",
		"overlayOpacity": float64(25),
	})
	hero, ok := settings.(*document.HeroSettings)
	if !ok {
		t.Fatalf("expected *HeroSettings, got %T", settings)
	}
	if hero.Title != "Welcome" {
		t.Fatalf("expected title Welcome, got %q", hero.Title)
	}
	if hero.OverlayOpacity == nil || *hero.OverlayOpacity != 25 {
		t.Fatalf("expected overlay opacity 25, got %v", hero.OverlayOpacity)
	}
	if hero.Extra != nil {
		t.Fatalf("expected no extra keys, got %v", hero.Extra)
	}
}

func TestSettingsCloneIsIndependent(t *testing.T) {
	original := &document.StorySettings{
		BaseSettings: document.BaseSettings{
			ShowTitle: document.Bool(true),
			Extra:     map[string]any{"nested": map[string]any{"k": "v"}},
		},
		StoryText: "We met in Lisbon",
	}
	cloned := original.Clone().(*document.StorySettings)
	*cloned.ShowTitle = false
	cloned.Extra["nested"].(map[string]any)["k"] = "changed"

	if !*original.ShowTitle {
		t.Fatal("expected original ShowTitle to stay true")
	}
	if original.Extra["nested"].(map[string]any)["k"] != "v" {
		t.Fatal("expected original nested extra to be untouched")
	}
}

func TestSectionJSONRestoresTypedSettings(t *testing.T) {
	section := document.Section{
		ID:       "sec_1",
		Type:     document.SectionFAQ,
		Variant:  "accordion",
		Enabled:  true,
		Settings: &document.FAQSettings{BaseSettings: document.BaseSettings{Title: "Questions"}, ExpandAll: document.Bool(true)},
		Bindings: document.Bindings{FAQIDs: []string{"f1", "f2"}},
		Meta:     document.Timestamps{CreatedAt: "2026-01-01T00:00:00.000Z", UpdatedAt: "2026-01-01T00:00:00.000Z"},
	}

	raw, err := json.Marshal(section)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded document.Section
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	faq, ok := decoded.Settings.(*document.FAQSettings)
	if !ok {
		t.Fatalf("expected *FAQSettings, got %T", decoded.Settings)
	}
	if faq.Title != "Questions" || faq.ExpandAll == nil || !*faq.ExpandAll {
		t.Fatalf("unexpected settings %+v", faq)
	}
	if !reflect.DeepEqual(decoded.Bindings.FAQIDs, []string{"f1", "f2"}) {
		t.Fatalf("unexpected faq bindings %v", decoded.Bindings.FAQIDs)
	}
}

func TestSectionPatchConvertsForeignSettings(t *testing.T) {
	section := &document.Section{ID: "s1", Type: document.SectionVenue, Settings: document.NewSettings(document.SectionVenue)}
	patch := document.SectionPatch{
		Settings: &document.CustomSettings{Type: document.SectionCountdown, Fields: map[string]any{"title": "Where"}},
	}

	updated := patch.ApplyTo(section)
	venue, ok := updated.Settings.(*document.VenueSettings)
	if !ok {
		t.Fatalf("expected venue settings, got %T", updated.Settings)
	}
	if venue.Title != "Where" {
		t.Fatalf("expected converted title, got %q", venue.Title)
	}
	if _, ok := section.Settings.(*document.VenueSettings); !ok || section.Settings.Values()["title"] != nil {
		t.Fatal("expected original section to be untouched")
	}
}

func TestProjectValidate(t *testing.T) {
	newProject := func() *document.Project {
		return &document.Project{
			ID: "p1",
			Pages: []*document.Page{
				{ID: "home", Meta: document.PageMeta{IsHome: true}, Sections: []*document.Section{{ID: "a"}, {ID: "b"}}},
				{ID: "details", Sections: []*document.Section{{ID: "c"}}},
			},
		}
	}

	if err := newProject().Validate(); err != nil {
		t.Fatalf("expected valid project, got %v", err)
	}

	dupSection := newProject()
	dupSection.Pages[1].Sections[0].ID = "a"
	if err := dupSection.Validate(); !errors.Is(err, document.ErrDuplicateSectionID) {
		t.Fatalf("expected ErrDuplicateSectionID, got %v", err)
	}

	dupPage := newProject()
	dupPage.Pages[1].ID = "home"
	if err := dupPage.Validate(); !errors.Is(err, document.ErrDuplicatePageID) {
		t.Fatalf("expected ErrDuplicatePageID, got %v", err)
	}

	twoHomes := newProject()
	twoHomes.Pages[1].Meta.IsHome = true
	if err := twoHomes.Validate(); !errors.Is(err, document.ErrHomePageMissing) {
		t.Fatalf("expected ErrHomePageMissing, got %v", err)
	}
}

func TestProjectCloneIsDeep(t *testing.T) {
	version := 3
	project := &document.Project{
		ID:               "p1",
		PublishedVersion: &version,
		ThemeTokens:      &document.ThemeTokens{ColorPrimary: "#111"},
		Pages: []*document.Page{{
			ID: "home",
			Sections: []*document.Section{{
				ID:             "s1",
				Type:           document.SectionVenue,
				Bindings:       document.Bindings{VenueIDs: []string{"v1"}},
				StyleOverrides: document.StyleOverrides{document.StyleTextColor: "#000"},
			}},
		}},
	}

	cloned := project.Clone()
	cloned.Pages[0].Sections[0].Bindings.VenueIDs[0] = "v2"
	cloned.Pages[0].Sections[0].StyleOverrides[document.StyleTextColor] = "#fff"
	*cloned.PublishedVersion = 4
	cloned.ThemeTokens.ColorPrimary = "#222"

	if project.Pages[0].Sections[0].Bindings.VenueIDs[0] != "v1" {
		t.Fatal("expected bindings to be copied")
	}
	if project.Pages[0].Sections[0].StyleOverrides[document.StyleTextColor] != "#000" {
		t.Fatal("expected style overrides to be copied")
	}
	if *project.PublishedVersion != 3 || project.ThemeTokens.ColorPrimary != "#111" {
		t.Fatal("expected scalar pointers to be copied")
	}
}
