package interfaces

import (
	"context"
	"io"

	"github.com/goliatone/go-site-builder/document"
)

// RenderInput is handed to a section component.
type RenderInput struct {
	Section *document.Section
	Data    *document.WeddingData
	Theme   document.ThemeTokens
}

// SectionComponent renders one section variant.
type SectionComponent interface {
	Render(ctx context.Context, w io.Writer, input RenderInput) error
}

// SectionComponentFunc adapts a function to SectionComponent.
type SectionComponentFunc func(ctx context.Context, w io.Writer, input RenderInput) error

func (f SectionComponentFunc) Render(ctx context.Context, w io.Writer, input RenderInput) error {
	return f(ctx, w, input)
}

// ComponentResolver maps a section type and variant to a component. Unknown
// pairs return an error the caller can recover from.
type ComponentResolver interface {
	Resolve(sectionType document.SectionType, variant string) (SectionComponent, error)
}
