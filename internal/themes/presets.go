package themes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-site-builder/document"
	"github.com/goliatone/go-site-builder/internal/templates"
)

// DefaultPresetID is used when a project names no theme or an unknown one.
const DefaultPresetID = "romantic"

const presetVersion = "1.0.0"

var (
	ErrPresetNotFound   = errors.New("themes: preset not found")
	ErrPresetIDRequired = errors.New("themes: preset id required")
)

// Preset is a named palette a project can reference by id. Colorways are
// partial token overrides selected through the template's colorway id.
type Preset struct {
	ID          string                          `json:"id"`
	Name        string                          `json:"name"`
	Description string                          `json:"description"`
	Tokens      document.ThemeTokens            `json:"tokens"`
	Colorways   map[string]document.ThemeTokens `json:"colorways,omitempty"`
}

// Catalog registers presets as go-theme manifests and resolves tokens through
// a go-theme selector.
type Catalog struct {
	registry *gotheme.MemoryRegistry

	mu      sync.RWMutex
	presets map[string]Preset
	order   []string
}

// NewCatalog returns a catalog seeded with the built-in presets.
func NewCatalog() *Catalog {
	c := &Catalog{
		registry: gotheme.NewRegistry(),
		presets:  make(map[string]Preset, len(builtinPresets)),
	}
	for _, preset := range builtinPresets {
		if err := c.Register(preset); err != nil {
			panic(fmt.Sprintf("themes: builtin preset %s: %v", preset.ID, err))
		}
	}
	return c
}

var defaultCatalog = NewCatalog()

// Register adds a preset. Ids are registered once; a second registration of
// the same id is rejected by the registry.
func (c *Catalog) Register(preset Preset) error {
	preset.ID = strings.TrimSpace(preset.ID)
	if preset.ID == "" {
		return ErrPresetIDRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.registry.Register(manifestFor(preset)); err != nil {
		return fmt.Errorf("themes: register %s: %w", preset.ID, err)
	}
	if _, exists := c.presets[preset.ID]; !exists {
		c.order = append(c.order, preset.ID)
	}
	c.presets[preset.ID] = preset
	return nil
}

func manifestFor(preset Preset) *gotheme.Manifest {
	manifest := &gotheme.Manifest{
		Name:    preset.ID,
		Version: presetVersion,
		Tokens:  tokenMap(preset.Tokens),
	}
	if len(preset.Colorways) > 0 {
		manifest.Variants = make(map[string]gotheme.Variant, len(preset.Colorways))
		for id, overrides := range preset.Colorways {
			manifest.Variants[id] = gotheme.Variant{Tokens: tokenMap(overrides)}
		}
	}
	return manifest
}

// Load decodes a JSON array of presets and registers each one.
func (c *Catalog) Load(r io.Reader) error {
	var presets []Preset
	if err := json.NewDecoder(r).Decode(&presets); err != nil {
		return fmt.Errorf("themes: parse presets: %w", err)
	}
	for _, preset := range presets {
		if err := c.Register(preset); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the preset with the tokens its manifest selects to.
func (c *Catalog) Get(id string) (Preset, error) {
	id = strings.TrimSpace(id)
	c.mu.RLock()
	preset, ok := c.presets[id]
	c.mu.RUnlock()
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
	}
	tokens, err := c.selectTokens(id, "")
	if err != nil {
		return Preset{}, err
	}
	preset.Tokens = tokens
	return preset, nil
}

// List returns presets in registration order.
func (c *Catalog) List() []Preset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Preset, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.presets[id])
	}
	return out
}

// IDs returns the registered preset ids.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order)
}

// Resolve returns the tokens a project renders with: the project's preset
// (the default preset for unknown ids) in the colorway of its template, with
// every non-empty explicit project token laid over it.
func (c *Catalog) Resolve(project *document.Project) document.ThemeTokens {
	var themeID, colorway string
	if project != nil {
		themeID = project.ThemeID
		if tpl, err := templates.Get(project.TemplateID); err == nil {
			colorway = tpl.ColorwayID
		}
	}
	return c.ResolveColorway(project, themeID, colorway)
}

// ResolveColorway is Resolve with the preset and colorway chosen by the caller.
// Colorways the preset does not declare are ignored.
func (c *Catalog) ResolveColorway(project *document.Project, themeID, colorway string) document.ThemeTokens {
	themeID = strings.TrimSpace(themeID)
	colorway = strings.TrimSpace(colorway)

	c.mu.RLock()
	preset, ok := c.presets[themeID]
	if !ok {
		themeID = DefaultPresetID
		preset = c.presets[themeID]
	}
	c.mu.RUnlock()
	if _, declared := preset.Colorways[colorway]; !declared {
		colorway = ""
	}

	tokens, err := c.selectTokens(themeID, colorway)
	if err != nil {
		tokens = preset.Tokens
	}
	if project != nil && project.ThemeTokens != nil {
		tokens = overlay(tokens, *project.ThemeTokens)
	}
	return tokens
}

func (c *Catalog) selectTokens(themeID, variant string) (document.ThemeTokens, error) {
	selector := gotheme.Selector{
		Registry:     c.registry,
		DefaultTheme: DefaultPresetID,
	}
	selection, err := selector.Select(themeID, variant)
	if err != nil {
		return document.ThemeTokens{}, fmt.Errorf("themes: select %s: %w", themeID, err)
	}
	return tokensFrom(selection.Tokens()), nil
}

func Get(id string) (Preset, error) {
	return defaultCatalog.Get(id)
}

func List() []Preset {
	return defaultCatalog.List()
}

func Resolve(project *document.Project) document.ThemeTokens {
	return defaultCatalog.Resolve(project)
}

var builtinPresets = []Preset{
	{
		ID:          "romantic",
		Name:        "Romantic Blush",
		Description: "Dusty rose, warm ivory, and champagne gold",
		Tokens: document.ThemeTokens{
			ColorPrimary: "#B5546A", ColorPrimaryHover: "#9E3F57", ColorPrimaryLight: "#FBF0F2",
			ColorAccent: "#D4956A", ColorAccentHover: "#BC7D54", ColorAccentLight: "#FEF5EE",
			ColorSecondary: "#C9A96E", ColorBackground: "#FDF7F4", ColorSurface: "#FFFFFF",
			ColorSurfaceSubtle: "#FEF9F7", ColorBorder: "#EDD8DA",
			ColorTextPrimary: "#2E1519", ColorTextSecondary: "#7A4E55",
		},
	},
	{
		ID:          "elegant",
		Name:        "Modern Luxe",
		Description: "Near-black, warm whites, and brushed gold",
		Tokens: document.ThemeTokens{
			ColorPrimary: "#1C1917", ColorPrimaryHover: "#0C0A09", ColorPrimaryLight: "#F5F5F4",
			ColorAccent: "#C8A96E", ColorAccentHover: "#B39058", ColorAccentLight: "#FAF5E9",
			ColorSecondary: "#78716C", ColorBackground: "#FAF9F7", ColorSurface: "#FFFFFF",
			ColorSurfaceSubtle: "#F5F4F2", ColorBorder: "#E7E5E4",
			ColorTextPrimary: "#1C1917", ColorTextSecondary: "#6B6763",
		},
		Colorways: map[string]document.ThemeTokens{
			"ivory-ink": {ColorAccent: "#1C1917", ColorAccentHover: "#0C0A09", ColorBackground: "#FFFDF8"},
		},
	},
	{
		ID:          "garden",
		Name:        "Botanical Garden",
		Description: "Herb sage, soft ivory, and terracotta warmth",
		Tokens: document.ThemeTokens{
			ColorPrimary: "#4E7C5F", ColorPrimaryHover: "#3C6249", ColorPrimaryLight: "#EBF4EE",
			ColorAccent: "#C47A4A", ColorAccentHover: "#AD6438", ColorAccentLight: "#FEF3EB",
			ColorSecondary: "#9DB89F", ColorBackground: "#F6F8F3", ColorSurface: "#FFFFFF",
			ColorSurfaceSubtle: "#F0F5EE", ColorBorder: "#D0DFCE",
			ColorTextPrimary: "#1A2E1E", ColorTextSecondary: "#4A6650",
		},
		Colorways: map[string]document.ThemeTokens{
			"blush-sage": {ColorAccent: "#D89AA5", ColorAccentHover: "#C4808D", ColorAccentLight: "#FBEFF1"},
		},
	},
	{
		ID:          "ocean",
		Name:        "Coastal Escape",
		Description: "Deep sea teal, crisp white, and driftwood amber",
		Tokens: document.ThemeTokens{
			ColorPrimary: "#1E5F6F", ColorPrimaryHover: "#164F5D", ColorPrimaryLight: "#E4EFF2",
			ColorAccent: "#4BAABC", ColorAccentHover: "#3A96A8", ColorAccentLight: "#E6F6F9",
			ColorSecondary: "#C8A96E", ColorBackground: "#F3F8FA", ColorSurface: "#FFFFFF",
			ColorSurfaceSubtle: "#EEF6F9", ColorBorder: "#BED4DA",
			ColorTextPrimary: "#0A2830", ColorTextSecondary: "#356270",
		},
		Colorways: map[string]document.ThemeTokens{
			"seafoam-sand": {ColorAccent: "#7CC4B4", ColorSecondary: "#D8C3A0", ColorBackground: "#F7F5EF"},
		},
	},
	{
		ID:          "sunset",
		Name:        "Desert Sunset",
		Description: "Burnt sienna, warm cream, and dusty mauve",
		Tokens: document.ThemeTokens{
			ColorPrimary: "#B85C38", ColorPrimaryHover: "#9E4A2A", ColorPrimaryLight: "#FBF0EB",
			ColorAccent: "#D4956A", ColorAccentHover: "#BC7D54", ColorAccentLight: "#FEF5EE",
			ColorSecondary: "#9C7A6A", ColorBackground: "#FBF6F2", ColorSurface: "#FFFFFF",
			ColorSurfaceSubtle: "#FDF8F5", ColorBorder: "#EDD8CC",
			ColorTextPrimary: "#2A140A", ColorTextSecondary: "#7A4A38",
		},
		Colorways: map[string]document.ThemeTokens{
			"terracotta-cream": {ColorPrimary: "#C0643F", ColorBackground: "#FBF3E8", ColorSurfaceSubtle: "#FAF0E2"},
		},
	},
	{
		ID:          "classic",
		Name:        "Timeless Navy",
		Description: "Deep navy, heirloom ivory, and gilded gold",
		Tokens: document.ThemeTokens{
			ColorPrimary: "#1A2B4A", ColorPrimaryHover: "#0F1E36", ColorPrimaryLight: "#E8EDF5",
			ColorAccent: "#C4983C", ColorAccentHover: "#AC8230", ColorAccentLight: "#FAF4E6",
			ColorSecondary: "#6276A0", ColorBackground: "#FDFBF6", ColorSurface: "#FFFFFF",
			ColorSurfaceSubtle: "#F8F5EE", ColorBorder: "#D9D2C3",
			ColorTextPrimary: "#0A1624", ColorTextSecondary: "#53647E",
		},
		Colorways: map[string]document.ThemeTokens{
			"ivory-black-gold": {ColorPrimary: "#111111", ColorPrimaryHover: "#000000", ColorBackground: "#FFFEF7"},
		},
	},
	{
		ID:          "editorial",
		Name:        "Editorial Dark",
		Description: "Warm charcoal, off-white parchment, and bronze",
		Tokens: document.ThemeTokens{
			ColorPrimary: "#2D2926", ColorPrimaryHover: "#1A1714", ColorPrimaryLight: "#F3F1EF",
			ColorAccent: "#B08860", ColorAccentHover: "#9A7248", ColorAccentLight: "#F9F3EC",
			ColorSecondary: "#8C7B6E", ColorBackground: "#F8F5F1", ColorSurface: "#FEFCFA",
			ColorSurfaceSubtle: "#F3EFE9", ColorBorder: "#DDD7CE",
			ColorTextPrimary: "#1C1714", ColorTextSecondary: "#695E55",
		},
		Colorways: map[string]document.ThemeTokens{
			"mono-contrast": {ColorAccent: "#2D2926", ColorAccentHover: "#000000", ColorSecondary: "#595959"},
		},
	},
	{
		ID:          "linen",
		Name:        "Fresh Linen",
		Description: "Natural linen, clean white, and slate blue accents",
		Tokens: document.ThemeTokens{
			ColorPrimary: "#3C5A78", ColorPrimaryHover: "#2C4660", ColorPrimaryLight: "#EAF0F6",
			ColorAccent: "#7FAAC8", ColorAccentHover: "#6B96B4", ColorAccentLight: "#EEF5FA",
			ColorSecondary: "#C2B08A", ColorBackground: "#F8F6F2", ColorSurface: "#FFFFFF",
			ColorSurfaceSubtle: "#F4F2EE", ColorBorder: "#DDD8CE",
			ColorTextPrimary: "#1E2B3A", ColorTextSecondary: "#607084",
		},
	},
}
