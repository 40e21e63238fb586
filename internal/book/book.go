// Package book computes the assembled memory book: a derived,
// ephemeral read model over a project's cover and its non-excluded
// contributions. It is recomputed on every assembly request and never
// persisted.
package book

import (
	"fmt"

	"github.com/google/uuid"

	"memorybook/internal/catalog"
	"memorybook/internal/models"
)

// RenderCase tags the content state of an assembled page. Both render
// adapters branch on this tag, never on their own content inspection,
// so preview and export stay structurally identical.
type RenderCase string

const (
	RenderCaseEmpty      RenderCase = "empty"
	RenderCasePhotosOnly RenderCase = "photos_only"
	RenderCaseTextOnly   RenderCase = "text_only"
	RenderCaseMixed      RenderCase = "mixed"
)

// Page is one numbered content page of the assembled book.
type Page struct {
	PageNumber      int                `json:"pageNumber"`
	ContributorName string             `json:"contributorName"`
	TemplateID      string             `json:"templateId"`
	Layout          catalog.LayoutClass `json:"layout"`
	RenderCase      RenderCase         `json:"renderCase"`
	Components      []models.Component `json:"components"`
}

// Sheet is a print-oriented group of up to two consecutive numbered
// pages. An odd page count closes the final sheet with a single page.
type Sheet struct {
	Number int    `json:"number"`
	Pages  []Page `json:"pages"`
}

// Book is the assembled read model. The cover sits at position zero
// and carries no content page number.
type Book struct {
	ProjectID   uuid.UUID          `json:"projectId"`
	ProjectName string             `json:"projectName"`
	Cover       models.CoverConfig `json:"cover"`
	Pages       []Page             `json:"pages"`
	Sheets      []Sheet            `json:"sheets"`
}

// PageCount returns the number of numbered content pages.
func (b *Book) PageCount() int {
	return len(b.Pages)
}

// Assemble builds the book for a project. Contributions flagged
// excluded contribute no pages; the rest are concatenated in project
// order, each in its internal page order, numbered from 1. Assembly
// fails if any page references a template the catalog cannot resolve,
// since the render adapters could not lay such a page out.
func Assemble(project *models.Project, cat *catalog.Catalog) (*Book, error) {
	b := &Book{
		ProjectID:   project.ID,
		ProjectName: project.ProjectName,
		Cover:       project.Cover,
	}

	pageNumber := 0
	for _, contribution := range project.Contributions {
		if contribution.ExcludedFromBook {
			continue
		}
		for _, page := range contribution.Pages {
			tpl, err := cat.Resolve(page.TemplateID)
			if err != nil {
				return nil, fmt.Errorf("assemble page %s: %w", page.ID, err)
			}
			pageNumber++
			b.Pages = append(b.Pages, Page{
				PageNumber:      pageNumber,
				ContributorName: contribution.ContributorName,
				TemplateID:      page.TemplateID,
				Layout:          tpl.Layout,
				RenderCase:      classify(&page),
				Components:      page.Components,
			})
		}
	}

	b.Sheets = groupSheets(b.Pages)
	return b, nil
}

// classify derives the render case from the page's populated slots.
func classify(page *models.Page) RenderCase {
	photos := page.HasPhotos()
	text := page.HasText()
	switch {
	case photos && text:
		return RenderCaseMixed
	case photos:
		return RenderCasePhotosOnly
	case text:
		return RenderCaseTextOnly
	default:
		return RenderCaseEmpty
	}
}

// groupSheets folds numbered pages into two-page sheets: (1,2), (3,4),
// and so on. A trailing odd page still closes its own sheet rather
// than leaving the group open.
func groupSheets(pages []Page) []Sheet {
	var sheets []Sheet
	for start := 0; start < len(pages); start += 2 {
		end := start + 2
		if end > len(pages) {
			end = len(pages)
		}
		sheet := Sheet{Number: len(sheets) + 1}
		sheet.Pages = append(sheet.Pages, pages[start:end]...)
		sheets = append(sheets, sheet)
	}
	return sheets
}
