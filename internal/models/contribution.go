package models

import (
	"time"

	"github.com/google/uuid"
)

// Contribution is one contributor's ordered pages within a project.
// The project owner can flag a contribution as excluded during review;
// exclusion hides it from the assembled book but never deletes pages.
type Contribution struct {
	ID               uuid.UUID  `json:"id"`
	ProjectID        uuid.UUID  `json:"projectId"`
	ContributorName  string     `json:"contributorName"`
	ExcludedFromBook bool       `json:"excludedFromBook"`
	Position         int        `json:"position"`
	ActivePageID     *uuid.UUID `json:"activePageId,omitempty"`
	Pages            []Page     `json:"pages,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
