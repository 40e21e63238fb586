// Package render turns assembled book pages and covers into HTML
// fragments. Both render adapters (interactive preview and static
// export) consume these fragments, so the per-page content branching
// lives here exactly once: a page renders according to its RenderCase
// tag and never re-derives its content state.
//
// All user-supplied values pass through html/template and are escaped
// before they reach markup.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"memorybook/internal/book"
	"memorybook/internal/catalog"
	"memorybook/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders page and cover fragments. Image keys resolve to
// URLs by plain concatenation with the configured base URL; reads
// need no signing.
type Renderer struct {
	tmpl      *template.Template
	imageBase string
}

// New parses the embedded fragment templates. imageBaseURL may be
// empty when object storage is not configured; photo slots then render
// as placeholders even when a key is bound.
func New(imageBaseURL string) (*Renderer, error) {
	tmpl, err := template.New("render").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse render templates: %w", err)
	}
	return &Renderer{
		tmpl:      tmpl,
		imageBase: strings.TrimRight(imageBaseURL, "/"),
	}, nil
}

// ImageURL resolves an object key to its public read URL.
func (r *Renderer) ImageURL(key string) string {
	if key == "" || r.imageBase == "" {
		return ""
	}
	return r.imageBase + "/" + key
}

// slotView is one component prepared for the page template.
type slotView struct {
	Kind    string // "photo" or "text"
	Filled  bool
	URL     string       // photo: resolved read URL
	Value   string       // text: user value, escaped by the template
	Label   string       // placeholder label for empty slots
	Rect    template.CSS // absolute position as canvas percentages
	TextCSS template.CSS // typography overrides for text slots
}

// pageView is the data handed to page.html.
type pageView struct {
	PageNumber      int
	ContributorName string
	Layout          catalog.LayoutClass
	RenderCase      book.RenderCase
	Slots           []slotView
}

// coverView is the data handed to cover.html.
type coverView struct {
	ProjectName    string
	Title          string
	Description    string
	ImageURL       string
	TitleCSS       template.CSS
	DescriptionCSS template.CSS
}

// PageHTML renders one numbered book page as a self-positioned
// fragment. The caller wraps it in its own sizing container.
func (r *Renderer) PageHTML(p book.Page) (template.HTML, error) {
	view := pageView{
		PageNumber:      p.PageNumber,
		ContributorName: p.ContributorName,
		Layout:          p.Layout,
		RenderCase:      p.RenderCase,
	}

	for i := range p.Components {
		c := &p.Components[i]
		slot := slotView{
			Rect:    rectCSS(c.Position, c.Size),
			TextCSS: textStyleCSS(c.Style),
		}
		if c.Type == models.ComponentTypePhoto {
			slot.Kind = "photo"
			slot.Label = "Photo"
			if c.HasContent() {
				if url := r.ImageURL(c.ImageKey); url != "" {
					slot.Filled = true
					slot.URL = url
				}
			}
		} else {
			slot.Kind = "text"
			slot.Label = "Message"
			if c.EditorConfig != nil && c.EditorConfig.Label != "" {
				slot.Label = c.EditorConfig.Label
			}
			if c.HasContent() {
				slot.Filled = true
				slot.Value = c.Value
			}
		}
		view.Slots = append(view.Slots, slot)
	}

	return r.execute("page.html", view)
}

// CoverHTML renders the cover fragment entirely from the project's
// cover configuration object.
func (r *Renderer) CoverHTML(projectName string, cover models.CoverConfig) (template.HTML, error) {
	view := coverView{
		ProjectName:    projectName,
		Title:          cover.Title,
		Description:    cover.Description,
		ImageURL:       r.ImageURL(cover.ImageKey),
		TitleCSS:       fieldStyleCSS(cover.TitleStyle),
		DescriptionCSS: fieldStyleCSS(cover.DescriptionStyle),
	}
	if view.Title == "" {
		view.Title = projectName
	}
	return r.execute("cover.html", view)
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// rectCSS converts a canvas rectangle to percentage-based absolute
// positioning, so fragments scale with whatever size the adapter
// renders the page at.
func rectCSS(pos models.Position, size models.Size) template.CSS {
	return template.CSS(fmt.Sprintf(
		"left:%.4f%%;top:%.4f%%;width:%.4f%%;height:%.4f%%",
		pct(pos.X, catalog.CanvasWidth),
		pct(pos.Y, catalog.CanvasHeight),
		pct(size.Width, catalog.CanvasWidth),
		pct(size.Height, catalog.CanvasHeight),
	))
}

func pct(value, total int) float64 {
	return float64(value) / float64(total) * 100
}

// textStyleCSS builds typography CSS from an optional slot style.
func textStyleCSS(style *models.TextStyle) template.CSS {
	if style == nil {
		return ""
	}
	var parts []string
	if f := safeFontFamily(style.FontFamily); f != "" {
		parts = append(parts, "font-family:"+f)
	}
	if style.FontSize > 0 {
		parts = append(parts, fmt.Sprintf("font-size:%dpx", style.FontSize))
	}
	if w := safeKeyword(style.FontWeight); w != "" {
		parts = append(parts, "font-weight:"+w)
	}
	return template.CSS(strings.Join(parts, ";"))
}

// fieldStyleCSS builds CSS for a cover field from its style overrides.
func fieldStyleCSS(style models.FieldStyle) template.CSS {
	var parts []string
	if f := safeFontFamily(style.FontFamily); f != "" {
		parts = append(parts, "font-family:"+f)
	}
	if style.FontSize > 0 {
		parts = append(parts, fmt.Sprintf("font-size:%dpx", style.FontSize))
	}
	if w := safeKeyword(style.FontWeight); w != "" {
		parts = append(parts, "font-weight:"+w)
	}
	switch style.Alignment {
	case "left", "center", "right":
		parts = append(parts, "text-align:"+style.Alignment)
	}
	if s := safeShadow(style.Shadow); s != "" {
		parts = append(parts, "text-shadow:"+s)
	}
	return template.CSS(strings.Join(parts, ";"))
}

// safeFontFamily keeps letters, digits, spaces, hyphens and commas so
// a font stack survives while anything CSS-breaking is dropped.
func safeFontFamily(family string) string {
	return keep(family, func(r rune) bool {
		return r == ' ' || r == '-' || r == ',' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	})
}

// safeKeyword permits single CSS keyword or numeric weight values.
func safeKeyword(v string) string {
	return keep(v, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
	})
}

// safeShadow permits the character set of a text-shadow value:
// lengths, colors and commas.
func safeShadow(v string) string {
	return keep(v, func(r rune) bool {
		return r == ' ' || r == '-' || r == ',' || r == '#' || r == '.' || r == '(' || r == ')' || r == '%' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	})
}

func keep(s string, ok func(rune) bool) string {
	var b strings.Builder
	for _, r := range s {
		if ok(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
