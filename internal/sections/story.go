package sections

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/markdown"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// NewDefaultRegistry returns a registry holding the built-in components.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(document.SectionStory, document.DefaultVariant, StoryComponent())
	return r
}

// StoryComponent renders the story section. The section's own story text
// wins over the couple story of the content record; both are Markdown.
func StoryComponent() interfaces.SectionComponent {
	return interfaces.SectionComponentFunc(func(_ context.Context, w io.Writer, input interfaces.RenderInput) error {
		var text, title string
		if input.Section != nil {
			if settings, ok := input.Section.Settings.(*document.StorySettings); ok && settings != nil {
				text = settings.StoryText
				if settings.ShowTitle == nil || *settings.ShowTitle {
					title = settings.Title
				}
			}
		}
		if text == "" && input.Data != nil {
			text = input.Data.Couple.Story
		}
		body, err := markdown.RenderHTML(text)
		if err != nil {
			return err
		}
		if title != "" {
			_, err = fmt.Fprintf(w, `<section class="section-story"><h2>%s</h2><div class="story-text">%s</div></section>`, html.EscapeString(title), body)
		} else {
			_, err = fmt.Fprintf(w, `<section class="section-story"><div class="story-text">%s</div></section>`, body)
		}
		return err
	})
}
