package catalog

import "memorybook/internal/models"

// Character limits for the text slot kinds.
const (
	maxHeadingChars   = 60
	maxParagraphChars = 600
	maxCaptionChars   = 120
	maxSignatureChars = 40
)

// photoShape builds an empty photo slot at the given canvas rectangle.
func photoShape(x, y, w, h int) models.Component {
	return models.Component{
		Type:     models.ComponentTypePhoto,
		Position: models.Position{X: x, Y: y},
		Size:     models.Size{Width: w, Height: h},
	}
}

// textShape builds an empty text slot of the given kind.
func textShape(kind models.ComponentType, label, placeholder string, maxChars, x, y, w, h int) models.Component {
	return models.Component{
		Type:     kind,
		Position: models.Position{X: x, Y: y},
		Size:     models.Size{Width: w, Height: h},
		EditorConfig: &models.EditorConfig{
			Label:         label,
			Placeholder:   placeholder,
			MaxCharacters: maxChars,
		},
	}
}

func messageShape(x, y, w, h int) models.Component {
	return textShape(models.ComponentTypeParagraph,
		"Your message", "Write a few words...", maxParagraphChars, x, y, w, h)
}

func captionShape(x, y, w, h int) models.Component {
	return textShape(models.ComponentTypeCaption,
		"Caption", "Add a caption", maxCaptionChars, x, y, w, h)
}

// templateDefinitions returns the full catalog in presentation order.
// The message-with-photo layout opens the list and therefore serves as
// the default for newly added pages.
func templateDefinitions() []Template {
	return []Template{
		{
			ID:          "message-photo-top",
			DisplayName: "Message with 1 Photo (Photo on Top)",
			Category:    CategoryMessagePhotos1,
			Shapes: []models.Component{
				photoShape(100, 80, 600, 450),
				messageShape(100, 580, 600, 360),
			},
		},
		{
			ID:          "message-photo-bottom",
			DisplayName: "Message with 1 Photo (Photo Below)",
			Category:    CategoryMessagePhotos1,
			Shapes: []models.Component{
				photoShape(100, 540, 600, 450),
				messageShape(100, 80, 600, 400),
			},
		},
		{
			ID:          "message-2-photos",
			DisplayName: "Message with 2 Photos",
			Category:    CategoryMessagePhotos2,
			Shapes: []models.Component{
				photoShape(60, 80, 330, 330),
				photoShape(410, 80, 330, 330),
				messageShape(60, 470, 680, 480),
			},
		},
		{
			ID:          "message-3-photos",
			DisplayName: "Message with 3 Photos",
			Category:    CategoryMessagePhotos3,
			Shapes: []models.Component{
				photoShape(60, 80, 680, 360),
				photoShape(60, 470, 330, 240),
				photoShape(410, 470, 330, 240),
				messageShape(60, 760, 680, 240),
			},
		},
		{
			ID:          "message-4-photos",
			DisplayName: "Message with 4 Photos",
			Category:    CategoryMessagePhotos4,
			Shapes: []models.Component{
				photoShape(60, 60, 330, 240),
				photoShape(410, 60, 330, 240),
				photoShape(60, 330, 330, 240),
				photoShape(410, 330, 330, 240),
				messageShape(60, 640, 680, 360),
			},
		},
		{
			ID:          "message-centered",
			DisplayName: "Message Only (Centered)",
			Category:    CategoryMessageOnly,
			Shapes: []models.Component{
				messageShape(120, 280, 560, 500),
			},
		},
		{
			ID:          "message-full",
			DisplayName: "Message Only (Full Page)",
			Category:    CategoryMessageOnly,
			Shapes: []models.Component{
				messageShape(80, 100, 640, 860),
			},
		},
		{
			ID:          "photos-2-stacked",
			DisplayName: "Photos Only (2 Photos, Stacked)",
			Category:    CategoryPhotos2,
			Shapes: []models.Component{
				photoShape(80, 70, 640, 440),
				photoShape(80, 550, 640, 440),
			},
		},
		{
			ID:          "photos-2-side",
			DisplayName: "Photos Only (2 Photos, Side by Side)",
			Category:    CategoryPhotos2,
			Shapes: []models.Component{
				photoShape(50, 230, 340, 600),
				photoShape(410, 230, 340, 600),
			},
		},
		{
			ID:          "photos-3-column",
			DisplayName: "Photos Only (3 Photos, Column)",
			Category:    CategoryPhotos3,
			Shapes: []models.Component{
				photoShape(130, 50, 540, 300),
				photoShape(130, 380, 540, 300),
				photoShape(130, 710, 540, 300),
			},
		},
		{
			ID:          "photos-3-feature",
			DisplayName: "Photos Only (3 Photos, Feature)",
			Category:    CategoryPhotos3,
			Shapes: []models.Component{
				photoShape(60, 60, 680, 520),
				photoShape(60, 620, 330, 380),
				photoShape(410, 620, 330, 380),
			},
		},
		{
			ID:          "photos-4-grid",
			DisplayName: "Photos Only (4 Photos)",
			Category:    CategoryPhotos4,
			Shapes: []models.Component{
				photoShape(60, 70, 330, 440),
				photoShape(410, 70, 330, 440),
				photoShape(60, 550, 330, 440),
				photoShape(410, 550, 330, 440),
			},
		},
		{
			ID:          "captioned-pair",
			DisplayName: "Two Photos with Captions",
			Category:    CategoryCaptionedPair,
			Shapes: []models.Component{
				photoShape(80, 70, 640, 380),
				captionShape(80, 460, 640, 60),
				photoShape(80, 560, 640, 380),
				captionShape(80, 950, 640, 60),
			},
		},
		{
			ID:          "headline-trio",
			DisplayName: "Headline with 3 Photos",
			Category:    CategoryHeadlineTrio,
			Shapes: []models.Component{
				textShape(models.ComponentTypeHeading,
					"Headline", "A moment to remember", maxHeadingChars, 80, 60, 640, 100),
				photoShape(80, 200, 640, 400),
				photoShape(80, 630, 310, 370),
				photoShape(410, 630, 310, 370),
			},
		},
	}
}
