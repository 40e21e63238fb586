// Package mapping transplants existing slot content into a different
// template's shapes. It is the logic behind a template switch: the
// page keeps its photos and its message wherever the new layout has
// room for them.
package mapping

import (
	"memorybook/internal/catalog"
	"memorybook/internal/models"
)

// Report describes content that could not be carried into the new
// template. A non-zero report is not an error; the switch always
// succeeds and the caller decides whether to surface the loss.
type Report struct {
	DroppedPhotos int `json:"droppedPhotos"`
	DroppedText   bool `json:"droppedText"`
}

// Lossless reports whether the mapping carried every populated slot.
func (r Report) Lossless() bool {
	return r.DroppedPhotos == 0 && !r.DroppedText
}

// Map binds the populated content of old into tpl's shapes and returns
// the resulting component list, matching tpl's shape count and order
// exactly. It is a pure function of its inputs: the template the old
// components came from plays no part.
//
// Photos are extracted in slot order and consumed by photo shapes in
// shape order; once extracted photos run out, remaining photo shapes
// stay empty. At most one text value is extracted (the first populated
// textual slot — a page holds one logical message) and is placed into
// the first textual shape only; later textual shapes always start
// empty so a message is never duplicated. Extracted content with no
// shape left to hold it is dropped and counted in the report.
func Map(old []models.Component, tpl catalog.Template) ([]models.Component, Report) {
	photoKeys, crops := extractPhotos(old)
	text, hasText := extractText(old)

	out := tpl.NewComponents()

	nextPhoto := 0
	textPlaced := false
	for i := range out {
		switch {
		case out[i].Type == models.ComponentTypePhoto:
			if nextPhoto < len(photoKeys) {
				out[i].ImageKey = photoKeys[nextPhoto]
				out[i].Crop = crops[nextPhoto]
				nextPhoto++
			}
		case out[i].Type.IsTextual() && !textPlaced:
			if hasText {
				out[i].Value = text
			}
			textPlaced = true
		}
	}

	rep := Report{
		DroppedPhotos: len(photoKeys) - nextPhoto,
		DroppedText:   hasText && !textPlaced,
	}
	return out, rep
}

// extractPhotos returns the populated photo keys in slot order, with
// their crop metadata aligned by index.
func extractPhotos(components []models.Component) ([]string, []*models.Crop) {
	var keys []string
	var crops []*models.Crop
	for i := range components {
		c := &components[i]
		if c.Type == models.ComponentTypePhoto && c.HasContent() {
			keys = append(keys, c.ImageKey)
			if c.Crop != nil {
				crop := *c.Crop
				crops = append(crops, &crop)
			} else {
				crops = append(crops, nil)
			}
		}
	}
	return keys, crops
}

// extractText returns the first populated textual value, if any.
func extractText(components []models.Component) (string, bool) {
	for i := range components {
		c := &components[i]
		if c.Type.IsTextual() && c.HasContent() {
			return c.Value, true
		}
	}
	return "", false
}
