// Package catalog defines the immutable registry of page layout
// templates. The catalog is built once at process start; templates are
// never mutated afterwards. Each template is a named, ordered list of
// component shapes (components with empty content fields) plus a
// layout class resolved at build time that renderers branch on.
package catalog

import (
	"errors"
	"fmt"

	"memorybook/internal/models"
)

// Canvas dimensions shared by all templates, in canvas units. Pages
// are portrait 3:4; renderers scale the canvas to their output size.
const (
	CanvasWidth  = 800
	CanvasHeight = 1066
)

// Category groups templates that share shape-type counts. All
// templates in one category hold the same number of photo and text
// shapes and differ only in geometry.
type Category string

const (
	CategoryMessageOnly    Category = "message_only"
	CategoryPhotos2        Category = "photos_2"
	CategoryPhotos3        Category = "photos_3"
	CategoryPhotos4        Category = "photos_4"
	CategoryMessagePhotos1 Category = "message_photos_1"
	CategoryMessagePhotos2 Category = "message_photos_2"
	CategoryMessagePhotos3 Category = "message_photos_3"
	CategoryMessagePhotos4 Category = "message_photos_4"
	CategoryCaptionedPair  Category = "captioned_pair"
	CategoryHeadlineTrio   Category = "headline_trio"
)

// LayoutClass is the render-variant tag for a template. Both render
// adapters branch on it; it is resolved once when the catalog is built
// and never recomputed per render call.
type LayoutClass string

const (
	LayoutMessage   LayoutClass = "message"
	LayoutPhotoGrid LayoutClass = "photo-grid"
	LayoutMixed     LayoutClass = "mixed"
	LayoutCaptioned LayoutClass = "captioned"
	LayoutHeadline  LayoutClass = "headline"
)

// layoutByCategory maps each category to its render variant. Kept as
// an enum-keyed table so adding a category without a layout is caught
// at build time.
var layoutByCategory = map[Category]LayoutClass{
	CategoryMessageOnly:    LayoutMessage,
	CategoryPhotos2:        LayoutPhotoGrid,
	CategoryPhotos3:        LayoutPhotoGrid,
	CategoryPhotos4:        LayoutPhotoGrid,
	CategoryMessagePhotos1: LayoutMixed,
	CategoryMessagePhotos2: LayoutMixed,
	CategoryMessagePhotos3: LayoutMixed,
	CategoryMessagePhotos4: LayoutMixed,
	CategoryCaptionedPair:  LayoutCaptioned,
	CategoryHeadlineTrio:   LayoutHeadline,
}

// Template is an immutable layout definition. Shapes are components
// with empty content fields; callers must not mutate them and should
// use NewComponents to derive content-bearing copies.
type Template struct {
	ID          string             `json:"id"`
	DisplayName string             `json:"displayName"`
	Category    Category           `json:"category"`
	Layout      LayoutClass        `json:"layout"`
	Shapes      []models.Component `json:"shapes"`
}

// NewComponents returns a fresh, deep-copied component list derived
// from the template's shapes, ready to be bound to a new page.
func (t Template) NewComponents() []models.Component {
	out := make([]models.Component, len(t.Shapes))
	for i, s := range t.Shapes {
		out[i] = s
		if s.Style != nil {
			style := *s.Style
			out[i].Style = &style
		}
		if s.EditorConfig != nil {
			ec := *s.EditorConfig
			out[i].EditorConfig = &ec
		}
	}
	return out
}

// PhotoShapeCount returns the number of photo shapes in the template.
func (t Template) PhotoShapeCount() int {
	n := 0
	for _, s := range t.Shapes {
		if s.Type == models.ComponentTypePhoto {
			n++
		}
	}
	return n
}

// ErrTemplateNotFound is returned by Resolve for unknown template ids.
var ErrTemplateNotFound = errors.New("template not found")

// Catalog is the built registry. It is safe for concurrent use because
// it is never modified after New returns.
type Catalog struct {
	ordered []Template
	byID    map[string]Template
}

// New builds the catalog from the static template definitions. It
// panics on a malformed definition (empty shape list, duplicate id,
// category without a layout) since that is a programming error, not a
// runtime condition.
func New() *Catalog {
	defs := templateDefinitions()

	c := &Catalog{
		ordered: defs,
		byID:    make(map[string]Template, len(defs)),
	}

	for i, t := range defs {
		if len(t.Shapes) == 0 {
			panic(fmt.Sprintf("catalog: template %q has no shapes", t.ID))
		}
		if _, dup := c.byID[t.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate template id %q", t.ID))
		}
		layout, ok := layoutByCategory[t.Category]
		if !ok {
			panic(fmt.Sprintf("catalog: category %q has no layout class", t.Category))
		}
		c.ordered[i].Layout = layout
		c.byID[t.ID] = c.ordered[i]
	}

	return c
}

// List returns all templates in their catalog order. The returned
// slice is a copy; the templates inside share immutable shape data.
func (c *Catalog) List() []Template {
	out := make([]Template, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Resolve looks up a template by id.
func (c *Catalog) Resolve(id string) (Template, error) {
	t, ok := c.byID[id]
	if !ok {
		return Template{}, fmt.Errorf("resolve %q: %w", id, ErrTemplateNotFound)
	}
	return t, nil
}

// Default returns the template a new page starts with: the first one
// in catalog order.
func (c *Catalog) Default() Template {
	return c.ordered[0]
}
