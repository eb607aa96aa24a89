package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-site-builder/document"
)

// Story is a couple story document: YAML front matter describing the couple
// followed by a Markdown body.
type Story struct {
	Partner1Name    string
	Partner2Name    string
	DisplayName     string
	LastNameDisplay string
	WeddingDate     string
	Timezone        string
	Body            string
}

type storyEnvelope struct {
	Partner1        string `yaml:"partner1"`
	Partner2        string `yaml:"partner2"`
	DisplayName     string `yaml:"displayName"`
	LastNameDisplay string `yaml:"lastNameDisplay"`
	WeddingDate     string `yaml:"weddingDate"`
	Timezone        string `yaml:"timezone"`
}

// ParseStory extracts the front matter and Markdown body of source. Documents
// without front matter yield a Story holding only the body.
func ParseStory(source []byte) (Story, error) {
	var meta storyEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Story{}, fmt.Errorf("parse story front matter: %w", err)
	}
	return Story{
		Partner1Name:    strings.TrimSpace(meta.Partner1),
		Partner2Name:    strings.TrimSpace(meta.Partner2),
		DisplayName:     strings.TrimSpace(meta.DisplayName),
		LastNameDisplay: strings.TrimSpace(meta.LastNameDisplay),
		WeddingDate:     strings.TrimSpace(meta.WeddingDate),
		Timezone:        strings.TrimSpace(meta.Timezone),
		Body:            strings.TrimSpace(string(body)),
	}, nil
}

// ApplyTo returns a copy of data with the story's non-empty fields written
// into the couple and event records.
func (s Story) ApplyTo(data *document.WeddingData) *document.WeddingData {
	out := data.Clone()
	if out == nil {
		out = &document.WeddingData{Version: "1"}
	}
	set := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	set(&out.Couple.Partner1Name, s.Partner1Name)
	set(&out.Couple.Partner2Name, s.Partner2Name)
	set(&out.Couple.DisplayName, s.DisplayName)
	set(&out.Couple.LastNameDisplay, s.LastNameDisplay)
	set(&out.Couple.Story, s.Body)
	set(&out.Event.WeddingDate, s.WeddingDate)
	set(&out.Event.Timezone, s.Timezone)
	return out
}
