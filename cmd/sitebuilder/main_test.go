package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-site-builder/document"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunRequiresCommand(t *testing.T) {
	if err := run(nil, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := run([]string{"render"}, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error for unknown command, got %v", err)
	}
}

func TestRunUpgrade(t *testing.T) {
	path := writeFile(t, "layout.json", `{"version":"1","templateId":"bold-minimal","pages":[{"id":"home","title":"Home","sections":[
		{"id":"s1","type":"hero","variant":"classic","enabled":true,"bindings":{},"settings":{"title":"Hello"}}
	]}],"meta":{}}`)

	var out bytes.Buffer
	if err := run([]string{"upgrade", "-in", path, "-wedding", "w1"}, &out); err != nil {
		t.Fatalf("upgrade returned error: %v", err)
	}
	var project document.Project
	if err := json.Unmarshal(out.Bytes(), &project); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if project.WeddingID != "w1" || len(project.Pages) != 1 || len(project.Pages[0].Sections) != 1 {
		t.Fatalf("unexpected project %+v", project)
	}
	if project.Pages[0].Sections[0].ID != "s1" {
		t.Fatalf("expected section id to survive upgrade, got %s", project.Pages[0].Sections[0].ID)
	}
}

func TestRunUpgradeRequiresWedding(t *testing.T) {
	path := writeFile(t, "layout.json", `{"version":"1","templateId":"x","pages":[],"meta":{}}`)
	if err := run([]string{"upgrade", "-in", path}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error without wedding id")
	}
}

func TestRunCheck(t *testing.T) {
	disabled := writeFile(t, "project.json", `{"id":"p1","pages":[{"id":"a","meta":{"isHome":true},"sections":[{"id":"s1","type":"hero","enabled":false}]}]}`)

	var out bytes.Buffer
	if err := run([]string{"check", "-in", disabled}, &out); err != nil {
		t.Fatalf("check returned error: %v", err)
	}
	var report checkReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Publishable || report.FirstSectionID != "s1" || report.FirstPageID != "a" {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(report.Hints) != 2 {
		t.Fatalf("expected two hints, got %v", report.Hints)
	}

	enabled := writeFile(t, "enabled.json", `{"id":"p1","pages":[{"id":"a","meta":{"isHome":true},"sections":[{"id":"s1","type":"hero","enabled":true}]}]}`)
	out.Reset()
	if err := run([]string{"check", "-in", enabled}, &out); err != nil {
		t.Fatalf("check returned error: %v", err)
	}
	report = checkReport{}
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !report.Publishable {
		t.Fatalf("expected publishable report, got %+v", report)
	}
}

func TestRunBindAndDowngrade(t *testing.T) {
	project := writeFile(t, "project.json", `{"id":"p1","pages":[{"id":"a","meta":{"isHome":true},"sections":[{"id":"s1","type":"venue","enabled":true}]}]}`)
	data := writeFile(t, "data.json", `{"version":"1","venues":[{"id":"v1","name":"Chapel"},{"id":"v2","name":"Garden"}]}`)

	var out bytes.Buffer
	if err := run([]string{"bind", "-in", project, "-data", data}, &out); err != nil {
		t.Fatalf("bind returned error: %v", err)
	}
	var bound document.Project
	if err := json.Unmarshal(out.Bytes(), &bound); err != nil {
		t.Fatalf("decode bound project: %v", err)
	}
	if got := bound.Pages[0].Sections[0].Bindings.VenueIDs; len(got) != 2 || got[0] != "v1" {
		t.Fatalf("expected venue bindings, got %v", got)
	}

	out.Reset()
	if err := run([]string{"downgrade", "-in", project}, &out); err != nil {
		t.Fatalf("downgrade returned error: %v", err)
	}
	var cfg document.LayoutConfig
	if err := json.Unmarshal(out.Bytes(), &cfg); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if cfg.Version != document.LayoutVersion || len(cfg.Pages[0].Sections) != 1 {
		t.Fatalf("unexpected layout %+v", cfg)
	}
}

func TestRunStory(t *testing.T) {
	story := writeFile(t, "story.md", "---\npartner1: Ana\npartner2: Luis\n---\nWe met in Lisbon.\n")
	data := writeFile(t, "data.json", `{"version":"1","venues":[{"id":"v1","name":"Chapel"}]}`)

	var out bytes.Buffer
	if err := run([]string{"story", "-in", story, "-data", data}, &out); err != nil {
		t.Fatalf("story returned error: %v", err)
	}
	var updated document.WeddingData
	if err := json.Unmarshal(out.Bytes(), &updated); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if updated.Couple.Partner1Name != "Ana" || updated.Couple.Story != "We met in Lisbon." {
		t.Fatalf("unexpected couple %+v", updated.Couple)
	}
	if len(updated.Venues) != 1 {
		t.Fatalf("expected venues to be kept, got %d", len(updated.Venues))
	}
}
