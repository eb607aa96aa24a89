package sections

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/pkg/interfaces"
)

// ErrRendererNotFound is wrapped by every lookup miss.
var ErrRendererNotFound = errors.New("sections: renderer not found")

// RendererNotFoundError identifies the type and variant that could not be
// resolved.
type RendererNotFoundError struct {
	Type    document.SectionType
	Variant string
}

func (e *RendererNotFoundError) Error() string {
	return fmt.Sprintf("sections: no renderer for %s", rendererKey(e.Type, e.Variant))
}

func (e *RendererNotFoundError) Unwrap() error {
	return ErrRendererNotFound
}

// Registry maps type::variant keys to section components.
type Registry struct {
	mu         sync.RWMutex
	components map[string]interfaces.SectionComponent
}

var _ interfaces.ComponentResolver = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{components: make(map[string]interfaces.SectionComponent)}
}

// Register stores component under type and variant. An empty variant
// registers the default variant; nil components are ignored.
func (r *Registry) Register(sectionType document.SectionType, variant string, component interfaces.SectionComponent) {
	if component == nil || strings.TrimSpace(string(sectionType)) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.components == nil {
		r.components = make(map[string]interfaces.SectionComponent)
	}
	r.components[rendererKey(sectionType, variant)] = component
}

// Resolve returns the component registered for the exact type and variant.
func (r *Registry) Resolve(sectionType document.SectionType, variant string) (interfaces.SectionComponent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if component, ok := r.components[rendererKey(sectionType, variant)]; ok {
		return component, nil
	}
	return nil, &RendererNotFoundError{Type: sectionType, Variant: normalizeVariantKey(variant)}
}

// Variants lists the registered variants of sectionType.
func (r *Registry) Variants(sectionType document.SectionType) []string {
	prefix := string(sectionType) + "::"
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for key := range r.components {
		if variant, ok := strings.CutPrefix(key, prefix); ok {
			out = append(out, variant)
		}
	}
	return out
}

// ResolveOrPlaceholder never fails: an unknown variant falls back to the
// type's default variant, and an unknown type renders a placeholder.
func (r *Registry) ResolveOrPlaceholder(sectionType document.SectionType, variant string) interfaces.SectionComponent {
	if component, err := r.Resolve(sectionType, variant); err == nil {
		return component
	}
	if component, err := r.Resolve(sectionType, document.DefaultVariant); err == nil {
		return component
	}
	return Placeholder(sectionType, variant)
}

// Placeholder renders a neutral block naming the missing renderer.
func Placeholder(sectionType document.SectionType, variant string) interfaces.SectionComponent {
	key := html.EscapeString(rendererKey(sectionType, variant))
	return interfaces.SectionComponentFunc(func(_ context.Context, w io.Writer, _ interfaces.RenderInput) error {
		_, err := fmt.Fprintf(w, `<section class="section-placeholder" data-renderer=%q></section>`, key)
		return err
	})
}

func rendererKey(sectionType document.SectionType, variant string) string {
	return string(sectionType) + "::" + normalizeVariantKey(variant)
}

func normalizeVariantKey(variant string) string {
	if v := strings.TrimSpace(variant); v != "" {
		return v
	}
	return document.DefaultVariant
}
