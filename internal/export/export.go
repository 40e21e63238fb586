// Package export is the static render adapter: it serializes an
// assembled book into one self-contained, absolutely-styled HTML
// document sized for physical pages. The document is handed to an
// external PDF conversion step; the engine never touches the binary
// output.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"memorybook/internal/book"
	"memorybook/internal/render"
)

//go:embed templates/document.html
var documentFS embed.FS

// Physical page dimensions. The 3:4 canvas maps onto an 8in by
// 10.66in trim size; a spread sheet is two trims wide.
const (
	PageWidthIn  = 8.0
	PageHeightIn = 10.66
)

// Exporter builds export documents from assembled books using the
// shared fragment renderer.
type Exporter struct {
	tmpl     *template.Template
	renderer *render.Renderer
}

// New parses the embedded document shell.
func New(renderer *render.Renderer) (*Exporter, error) {
	tmpl, err := template.New("document.html").ParseFS(documentFS, "templates/document.html")
	if err != nil {
		return nil, fmt.Errorf("parse export template: %w", err)
	}
	return &Exporter{tmpl: tmpl, renderer: renderer}, nil
}

// sheetView is one physical sheet of the document: the cover alone, or
// a spread of up to two numbered pages.
type sheetView struct {
	Number int
	Single bool // single-page final sheet of an odd book
	Cover  bool
	Pages  []template.HTML
}

// documentView is the data handed to the document shell.
type documentView struct {
	Title      string
	PageWidth  string
	PageHeight string
	Sheets     []sheetView
}

// Document renders the complete export document for a book. The cover
// occupies the first sheet by itself; content sheets follow in group
// order, each holding its one or two pre-rendered page fragments.
func (e *Exporter) Document(b *book.Book) (string, error) {
	coverHTML, err := e.renderer.CoverHTML(b.ProjectName, b.Cover)
	if err != nil {
		return "", fmt.Errorf("export cover: %w", err)
	}

	view := documentView{
		Title:      b.ProjectName,
		PageWidth:  fmt.Sprintf("%.2fin", PageWidthIn),
		PageHeight: fmt.Sprintf("%.2fin", PageHeightIn),
		Sheets: []sheetView{
			{Number: 0, Cover: true, Single: true, Pages: []template.HTML{coverHTML}},
		},
	}

	for _, sheet := range b.Sheets {
		sv := sheetView{
			Number: sheet.Number,
			Single: len(sheet.Pages) == 1,
		}
		for _, page := range sheet.Pages {
			fragment, err := e.renderer.PageHTML(page)
			if err != nil {
				return "", fmt.Errorf("export page %d: %w", page.PageNumber, err)
			}
			sv.Pages = append(sv.Pages, fragment)
		}
		view.Sheets = append(view.Sheets, sv)
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("execute export template: %w", err)
	}
	return buf.String(), nil
}
