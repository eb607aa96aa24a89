package layout

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-site-builder/document"
)

// Serialize returns a normalised copy of project ready for persistence: page
// titles and slugs filled in, order indices renumbered from array order, nil
// settings and style maps materialised, exactly one home page, and a fresh
// update timestamp.
func (a *Adapter) Serialize(project *document.Project) *document.Project {
	if project == nil {
		return nil
	}
	now := a.timestamp()
	out := project.Clone()
	if out.Meta.CreatedAt == "" {
		out.Meta.CreatedAt = now
	}
	out.Meta.UpdatedAt = now
	if out.PublishStatus == "" {
		out.PublishStatus = document.PublishStatusDraft
	}

	pages := make([]*document.Page, 0, len(out.Pages))
	for _, page := range out.Pages {
		if page != nil {
			pages = append(pages, page)
		}
	}
	out.Pages = pages

	homeSeen := false
	usedSlugs := map[string]int{}
	for i, page := range out.Pages {
		page.OrderIndex = i
		if strings.TrimSpace(page.Title) == "" {
			page.Title = defaultPageTitle(i)
		}
		page.Slug = uniqueSlug(pageSlug(page, i), usedSlugs)

		if page.Meta.IsHome {
			if homeSeen {
				page.Meta.IsHome = false
			}
			homeSeen = true
		}

		sections := make([]*document.Section, 0, len(page.Sections))
		for _, section := range page.Sections {
			if section == nil {
				continue
			}
			section.OrderIndex = len(sections)
			if section.Variant == "" {
				section.Variant = document.DefaultVariant
			}
			if section.Settings == nil {
				section.Settings = document.NewSettings(section.Type)
			}
			if section.StyleOverrides == nil {
				section.StyleOverrides = document.StyleOverrides{}
			}
			if section.Meta.CreatedAt == "" {
				section.Meta.CreatedAt = now
			}
			if section.Meta.UpdatedAt == "" {
				section.Meta.UpdatedAt = section.Meta.CreatedAt
			}
			sections = append(sections, section)
		}
		page.Sections = sections
	}
	if !homeSeen && len(out.Pages) > 0 {
		out.Pages[0].Meta.IsHome = true
	}
	return out
}

// Serialize uses the default adapter.
func Serialize(project *document.Project) *document.Project {
	return defaultAdapter.Serialize(project)
}

func defaultPageTitle(index int) string {
	if index == 0 {
		return HomePageTitle
	}
	return fmt.Sprintf("Page %d", index+1)
}

func defaultPageSlug(index int) string {
	if index == 0 {
		return HomePageSlug
	}
	return fmt.Sprintf("page-%d", index+1)
}

func pageSlug(page *document.Page, index int) string {
	candidate := strings.TrimSpace(page.Slug)
	if candidate == "" {
		candidate = page.Title
	}
	normalized, err := slug.Normalize(candidate)
	if err != nil || normalized == "" {
		return defaultPageSlug(index)
	}
	return normalized
}

func uniqueSlug(candidate string, used map[string]int) string {
	count := used[candidate]
	used[candidate] = count + 1
	if count == 0 {
		return candidate
	}
	next := fmt.Sprintf("%s-%d", candidate, count+1)
	for used[next] > 0 {
		count++
		next = fmt.Sprintf("%s-%d", candidate, count+1)
	}
	used[next] = 1
	return next
}
