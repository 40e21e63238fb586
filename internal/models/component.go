package models

import "strings"

// ComponentType identifies the kind of content a slot holds.
type ComponentType string

const (
	ComponentTypeHeading   ComponentType = "heading"
	ComponentTypeSignature ComponentType = "signature"
	ComponentTypeParagraph ComponentType = "paragraph"
	ComponentTypeCaption   ComponentType = "caption"
	ComponentTypePhoto     ComponentType = "photo"
)

// IsTextual returns true for the text-bearing component types. Photo
// slots carry an image key instead of a value.
func (ct ComponentType) IsTextual() bool {
	switch ct {
	case ComponentTypeHeading, ComponentTypeSignature, ComponentTypeParagraph, ComponentTypeCaption:
		return true
	}
	return false
}

// Position locates a component on the page canvas. Both text and photo
// slots use the same coordinate pair.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is the rendered extent of a component in canvas units.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TextStyle holds optional typography overrides for text components.
type TextStyle struct {
	FontFamily string `json:"fontFamily,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
}

// EditorConfig describes how a text slot presents itself in the editor.
type EditorConfig struct {
	Label         string `json:"label"`
	Placeholder   string `json:"placeholder"`
	MaxCharacters int    `json:"maxCharacters"`
}

// Crop holds optional crop metadata for a bound photo, expressed as a
// sub-rectangle of the source image.
type Crop struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Component is one content-bearing region of a page. Value is
// meaningful only for textual types, ImageKey only for photos.
type Component struct {
	Type         ComponentType `json:"type"`
	Position     Position      `json:"position"`
	Size         Size          `json:"size"`
	Style        *TextStyle    `json:"style,omitempty"`
	EditorConfig *EditorConfig `json:"editorConfig,omitempty"`
	Value        string        `json:"value,omitempty"`
	ImageKey     string        `json:"imageKey,omitempty"`
	Crop         *Crop         `json:"crop,omitempty"`
}

// HasContent reports whether the slot has been populated: a non-blank
// value for textual types, a bound image key for photos.
func (c *Component) HasContent() bool {
	if c.Type == ComponentTypePhoto {
		return c.ImageKey != ""
	}
	return strings.TrimSpace(c.Value) != ""
}

// Clear resets the slot to its empty placeholder state, keeping the
// shape (type, position, size, style, editor config) intact.
func (c *Component) Clear() {
	c.Value = ""
	c.ImageKey = ""
	c.Crop = nil
}
