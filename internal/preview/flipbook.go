// Package preview is the interactive render adapter: it exposes an
// assembled book as a flip-navigable sequence of rendered pages. The
// cover sits at index 0, numbered content pages follow.
package preview

import (
	"fmt"
	"html/template"

	"memorybook/internal/book"
	"memorybook/internal/render"
)

// Size bounds for the stretch fit. A flipbook sized outside these is
// clamped, matching the configured min/max of the preview widget.
type SizeBounds struct {
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
}

// DefaultBounds are the stock preview dimensions.
var DefaultBounds = SizeBounds{
	MinWidth:  280,
	MaxWidth:  640,
	MinHeight: 380,
	MaxHeight: 860,
}

// Flipbook navigates an assembled book one page at a time. Index 0 is
// the cover; indexes 1..PageCount are the numbered content pages.
type Flipbook struct {
	book     *book.Book
	renderer *render.Renderer
	bounds   SizeBounds
	current  int
	onChange func(index int)
}

// NewFlipbook wraps an assembled book for interactive paging. The
// flipbook opens on the cover.
func NewFlipbook(b *book.Book, renderer *render.Renderer, bounds SizeBounds) *Flipbook {
	return &Flipbook{book: b, renderer: renderer, bounds: bounds}
}

// PageCount returns the total flip positions: the cover plus every
// numbered content page.
func (f *Flipbook) PageCount() int {
	return 1 + f.book.PageCount()
}

// Current returns the current flip index.
func (f *Flipbook) Current() int {
	return f.current
}

// OnPageChange registers a notification invoked with the new index
// after every successful flip. A nil handler clears the registration.
func (f *Flipbook) OnPageChange(handler func(index int)) {
	f.onChange = handler
}

// FlipNext advances one page. At the last page it is a no-op and
// reports false.
func (f *Flipbook) FlipNext() bool {
	if f.current >= f.PageCount()-1 {
		return false
	}
	f.current++
	f.notify()
	return true
}

// FlipPrevious goes back one page. At the cover it is a no-op and
// reports false.
func (f *Flipbook) FlipPrevious() bool {
	if f.current <= 0 {
		return false
	}
	f.current--
	f.notify()
	return true
}

// GoTo jumps to an index. Out-of-range targets are rejected without
// moving.
func (f *Flipbook) GoTo(index int) error {
	if index < 0 || index >= f.PageCount() {
		return fmt.Errorf("preview index %d out of range [0,%d)", index, f.PageCount())
	}
	if index != f.current {
		f.current = index
		f.notify()
	}
	return nil
}

func (f *Flipbook) notify() {
	if f.onChange != nil {
		f.onChange(f.current)
	}
}

// FitSize stretches the page aspect ratio into the configured bounds:
// the page fills the available box while both dimensions stay within
// min/max.
func (f *Flipbook) FitSize(availableWidth, availableHeight int) (width, height int) {
	width = clamp(availableWidth, f.bounds.MinWidth, f.bounds.MaxWidth)
	height = clamp(availableHeight, f.bounds.MinHeight, f.bounds.MaxHeight)
	return width, height
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RenderCurrent renders the page at the current index as an HTML
// fragment: the cover fragment at index 0, a numbered page otherwise.
func (f *Flipbook) RenderCurrent() (template.HTML, error) {
	return f.RenderAt(f.current)
}

// RenderAt renders the page at the given flip index without moving the
// current position.
func (f *Flipbook) RenderAt(index int) (template.HTML, error) {
	if index < 0 || index >= f.PageCount() {
		return "", fmt.Errorf("preview index %d out of range [0,%d)", index, f.PageCount())
	}
	if index == 0 {
		return f.renderer.CoverHTML(f.book.ProjectName, f.book.Cover)
	}
	return f.renderer.PageHTML(f.book.Pages[index-1])
}
