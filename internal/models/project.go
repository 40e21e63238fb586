package models

import (
	"time"

	"github.com/google/uuid"
)

// FieldStyle holds per-field style overrides for the cover. Every
// attribute is optional; renderers fall back to their defaults for
// zero values.
type FieldStyle struct {
	FontFamily string `json:"fontFamily,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	Alignment  string `json:"alignment,omitempty"` // "left", "center", "right"
	Shadow     string `json:"shadow,omitempty"`    // CSS text-shadow value
}

// CoverConfig is the style-configuration contract between the book
// data and the renderers: the cover renders entirely from this object,
// never from hard-coded styling.
type CoverConfig struct {
	Title            string     `json:"title"`
	ImageKey         string     `json:"imageKey,omitempty"`
	Description      string     `json:"description,omitempty"`
	TitleStyle       FieldStyle `json:"titleStyle,omitempty"`
	DescriptionStyle FieldStyle `json:"descriptionStyle,omitempty"`
}

// Project is a shared memory book: a cover plus the ordered
// contributions that fill it.
type Project struct {
	ID               uuid.UUID      `json:"id"`
	ProjectName      string         `json:"projectName"`
	EventDescription string         `json:"eventDescription,omitempty"`
	Cover            CoverConfig    `json:"cover"`
	Contributions    []Contribution `json:"contributions,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
