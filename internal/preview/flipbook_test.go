package preview

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"memorybook/internal/book"
	"memorybook/internal/catalog"
	"memorybook/internal/models"
	"memorybook/internal/render"
)

func testFlipbook(t *testing.T, contentPages int) *Flipbook {
	t.Helper()

	cat := catalog.New()
	project := &models.Project{
		ID:          uuid.New(),
		ProjectName: "Preview Test",
		Cover:       models.CoverConfig{Title: "Preview Test"},
	}
	contribution := models.Contribution{
		ID:              uuid.New(),
		ContributorName: "Sam",
	}
	for i := 0; i < contentPages; i++ {
		contribution.Pages = append(contribution.Pages, models.Page{
			ID:         uuid.New(),
			TemplateID: cat.Default().ID,
			Position:   i,
			Components: cat.Default().NewComponents(),
		})
	}
	project.Contributions = []models.Contribution{contribution}

	b, err := book.Assemble(project, cat)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	r, err := render.New("https://media.test")
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return NewFlipbook(b, r, DefaultBounds)
}

// TestFlipBounds verifies flips are no-ops at the first and last page.
func TestFlipBounds(t *testing.T) {
	f := testFlipbook(t, 2)

	if f.Current() != 0 {
		t.Fatalf("flipbook opens at %d, want 0 (cover)", f.Current())
	}
	if f.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3 (cover + 2)", f.PageCount())
	}

	if f.FlipPrevious() {
		t.Error("FlipPrevious at cover reported a move")
	}
	if f.Current() != 0 {
		t.Error("FlipPrevious at cover moved the index")
	}

	if !f.FlipNext() || !f.FlipNext() {
		t.Fatal("FlipNext failed mid-book")
	}
	if f.FlipNext() {
		t.Error("FlipNext at last page reported a move")
	}
	if f.Current() != 2 {
		t.Errorf("Current() = %d, want 2", f.Current())
	}
}

// TestOnPageChange verifies the notification fires with the new index
// on every successful flip and stays silent on no-ops.
func TestOnPageChange(t *testing.T) {
	f := testFlipbook(t, 2)

	var seen []int
	f.OnPageChange(func(index int) { seen = append(seen, index) })

	f.FlipPrevious() // no-op at cover
	f.FlipNext()     // -> 1
	f.FlipNext()     // -> 2
	f.FlipNext()     // no-op at end
	f.FlipPrevious() // -> 1
	if err := f.GoTo(1); err != nil { // already there: no notification
		t.Fatalf("GoTo: %v", err)
	}

	want := []int{1, 2, 1}
	if len(seen) != len(want) {
		t.Fatalf("notifications = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notifications = %v, want %v", seen, want)
			break
		}
	}
}

// TestGoToRange verifies out-of-range jumps are rejected in place.
func TestGoToRange(t *testing.T) {
	f := testFlipbook(t, 1)

	if err := f.GoTo(5); err == nil {
		t.Error("GoTo(5) succeeded on a 2-position flipbook")
	}
	if err := f.GoTo(-1); err == nil {
		t.Error("GoTo(-1) succeeded")
	}
	if f.Current() != 0 {
		t.Errorf("failed GoTo moved the index to %d", f.Current())
	}
}

// TestFitSize verifies the stretch fit clamps to the configured bounds.
func TestFitSize(t *testing.T) {
	f := testFlipbook(t, 1)

	tests := []struct {
		name       string
		availW     int
		availH     int
		wantW      int
		wantH      int
	}{
		{name: "inside bounds", availW: 500, availH: 700, wantW: 500, wantH: 700},
		{name: "too small", availW: 100, availH: 100, wantW: DefaultBounds.MinWidth, wantH: DefaultBounds.MinHeight},
		{name: "too large", availW: 5000, availH: 5000, wantW: DefaultBounds.MaxWidth, wantH: DefaultBounds.MaxHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := f.FitSize(tt.availW, tt.availH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitSize(%d,%d) = (%d,%d), want (%d,%d)",
					tt.availW, tt.availH, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

// TestRenderAt verifies index 0 renders the cover and later indexes
// render numbered pages, without moving the current position.
func TestRenderAt(t *testing.T) {
	f := testFlipbook(t, 2)

	cover, err := f.RenderAt(0)
	if err != nil {
		t.Fatalf("RenderAt(0): %v", err)
	}
	if !strings.Contains(string(cover), "book-cover") {
		t.Error("index 0 did not render the cover fragment")
	}

	page, err := f.RenderAt(2)
	if err != nil {
		t.Fatalf("RenderAt(2): %v", err)
	}
	if !strings.Contains(string(page), `<span class="page-number">2</span>`) {
		t.Errorf("index 2 did not render content page 2:\n%s", page)
	}

	if f.Current() != 0 {
		t.Errorf("RenderAt moved the index to %d", f.Current())
	}

	if _, err := f.RenderAt(9); err == nil {
		t.Error("RenderAt(9) succeeded out of range")
	}
}
