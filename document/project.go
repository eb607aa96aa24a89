package document

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrHomePageMissing    = errors.New("document: project requires exactly one home page")
	ErrDuplicatePageID    = errors.New("document: duplicate page id")
	ErrDuplicateSectionID = errors.New("document: duplicate section id")
	ErrSectionIDRequired  = errors.New("document: section id required")
	ErrPageIDRequired     = errors.New("document: page id required")
)

// TimestampLayout matches the millisecond precision ISO-8601 form used by
// persisted documents.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t as an ISO-8601 UTC string.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// PublishStatus tracks the persisted publish state of a project.
type PublishStatus string

const (
	PublishStatusDraft      PublishStatus = "draft"
	PublishStatusPublishing PublishStatus = "publishing"
	PublishStatusPublished  PublishStatus = "published"
	PublishStatusFailed     PublishStatus = "failed"
)

// PageMeta captures page level flags.
type PageMeta struct {
	IsHome   bool `json:"isHome"`
	IsHidden bool `json:"isHidden"`
}

// Page is an ordered sequence of sections.
type Page struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	OrderIndex int        `json:"orderIndex"`
	Sections   []*Section `json:"sections"`
	Meta       PageMeta   `json:"meta"`
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	cloned := *p
	if p.Sections != nil {
		cloned.Sections = make([]*Section, len(p.Sections))
		for i, section := range p.Sections {
			cloned.Sections[i] = section.Clone()
		}
	}
	return &cloned
}

// SectionIndex returns the position of the section with id, or -1.
func (p *Page) SectionIndex(id string) int {
	if p == nil {
		return -1
	}
	for i, section := range p.Sections {
		if section != nil && section.ID == id {
			return i
		}
	}
	return -1
}

// Section returns the section with id, or nil.
func (p *Page) Section(id string) *Section {
	idx := p.SectionIndex(id)
	if idx < 0 {
		return nil
	}
	return p.Sections[idx]
}

// Project is the multi-page editable document.
type Project struct {
	ID                    string        `json:"id"`
	WeddingID             string        `json:"weddingId"`
	TemplateID            string        `json:"templateId"`
	ThemeID               string        `json:"themeId"`
	ThemeTokens           *ThemeTokens  `json:"themeTokens,omitempty"`
	GlobalAnimationPreset string        `json:"globalAnimationPreset,omitempty"`
	Pages                 []*Page       `json:"pages"`
	DraftVersion          int           `json:"draftVersion"`
	PublishedVersion      *int          `json:"publishedVersion"`
	PublishStatus         PublishStatus `json:"publishStatus"`
	LastPublishedAt       string        `json:"lastPublishedAt,omitempty"`
	Meta                  Timestamps    `json:"meta"`
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cloned := *p
	if p.ThemeTokens != nil {
		tokens := *p.ThemeTokens
		cloned.ThemeTokens = &tokens
	}
	if p.PublishedVersion != nil {
		version := *p.PublishedVersion
		cloned.PublishedVersion = &version
	}
	if p.Pages != nil {
		cloned.Pages = make([]*Page, len(p.Pages))
		for i, page := range p.Pages {
			cloned.Pages[i] = page.Clone()
		}
	}
	return &cloned
}

// Page returns the page with id, or nil.
func (p *Project) Page(id string) *Page {
	if p == nil {
		return nil
	}
	for _, page := range p.Pages {
		if page != nil && page.ID == id {
			return page
		}
	}
	return nil
}

// PageIndex returns the position of the page with id, or -1.
func (p *Project) PageIndex(id string) int {
	if p == nil {
		return -1
	}
	for i, page := range p.Pages {
		if page != nil && page.ID == id {
			return i
		}
	}
	return -1
}

// HomePage returns the page flagged as home, falling back to the first page.
func (p *Project) HomePage() *Page {
	if p == nil || len(p.Pages) == 0 {
		return nil
	}
	for _, page := range p.Pages {
		if page != nil && page.Meta.IsHome {
			return page
		}
	}
	return p.Pages[0]
}

// FindSection locates a section anywhere in the project.
func (p *Project) FindSection(sectionID string) (*Page, *Section) {
	if p == nil {
		return nil, nil
	}
	for _, page := range p.Pages {
		if section := page.Section(sectionID); section != nil {
			return page, section
		}
	}
	return nil, nil
}

// SectionIDs returns every section id in document order.
func (p *Project) SectionIDs() []string {
	if p == nil {
		return nil
	}
	var ids []string
	for _, page := range p.Pages {
		if page == nil {
			continue
		}
		for _, section := range page.Sections {
			if section != nil {
				ids = append(ids, section.ID)
			}
		}
	}
	return ids
}

// Validate checks the structural invariants of the project: exactly one home
// page, unique page ids, and section ids unique across the whole project.
func (p *Project) Validate() error {
	if p == nil {
		return nil
	}
	pageIDs := make(map[string]struct{}, len(p.Pages))
	sectionIDs := map[string]struct{}{}
	homes := 0
	for _, page := range p.Pages {
		if page == nil {
			continue
		}
		if page.ID == "" {
			return ErrPageIDRequired
		}
		if _, exists := pageIDs[page.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePageID, page.ID)
		}
		pageIDs[page.ID] = struct{}{}
		if page.Meta.IsHome {
			homes++
		}
		for _, section := range page.Sections {
			if section == nil {
				continue
			}
			if section.ID == "" {
				return fmt.Errorf("%w: page %s", ErrSectionIDRequired, page.ID)
			}
			if _, exists := sectionIDs[section.ID]; exists {
				return fmt.Errorf("%w: %s", ErrDuplicateSectionID, section.ID)
			}
			sectionIDs[section.ID] = struct{}{}
		}
	}
	if len(p.Pages) > 0 && homes != 1 {
		return fmt.Errorf("%w: found %d", ErrHomePageMissing, homes)
	}
	return nil
}

// ThemeTokens is an explicit colour token override for a project. When set it
// takes precedence over the preset referenced by ThemeID.
type ThemeTokens struct {
	ColorPrimary       string `json:"colorPrimary"`
	ColorPrimaryHover  string `json:"colorPrimaryHover"`
	ColorPrimaryLight  string `json:"colorPrimaryLight"`
	ColorAccent        string `json:"colorAccent"`
	ColorAccentHover   string `json:"colorAccentHover"`
	ColorAccentLight   string `json:"colorAccentLight"`
	ColorSecondary     string `json:"colorSecondary"`
	ColorBackground    string `json:"colorBackground"`
	ColorSurface       string `json:"colorSurface"`
	ColorSurfaceSubtle string `json:"colorSurfaceSubtle"`
	ColorBorder        string `json:"colorBorder"`
	ColorTextPrimary   string `json:"colorTextPrimary"`
	ColorTextSecondary string `json:"colorTextSecondary"`
}
