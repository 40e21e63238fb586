package models

import (
	"time"

	"github.com/google/uuid"
)

// Page is an ordered set of components bound to one catalog template.
// ContributionID is nil for project-level pages such as the cover.
type Page struct {
	ID             uuid.UUID   `json:"id"`
	ContributionID *uuid.UUID  `json:"contributionId,omitempty"`
	TemplateID     string      `json:"templateId"`
	Position       int         `json:"position"`
	Components     []Component `json:"components"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// HasPhotos reports whether any photo slot on the page is populated.
func (p *Page) HasPhotos() bool {
	for i := range p.Components {
		if p.Components[i].Type == ComponentTypePhoto && p.Components[i].HasContent() {
			return true
		}
	}
	return false
}

// HasText reports whether any textual slot on the page is populated.
func (p *Page) HasText() bool {
	for i := range p.Components {
		if p.Components[i].Type.IsTextual() && p.Components[i].HasContent() {
			return true
		}
	}
	return false
}
