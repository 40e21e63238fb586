// Package pages maintains the ordered, mutable page list of one
// contribution together with a stable active-page pointer. All
// mutations validate first and apply atomically: a failed operation
// leaves the collection untouched, and no operation ever exposes a
// half-replaced page list.
package pages

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"memorybook/internal/catalog"
	"memorybook/internal/mapping"
	"memorybook/internal/models"
)

// ValidationError is a synchronously rejected operation. State is
// guaranteed unchanged when one is returned.
type ValidationError struct {
	Op     string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Collection is one contribution's pages plus the active pointer. The
// pointer tracks a page id, not an index, so reordering never moves it
// off the page the user is editing.
type Collection struct {
	contributionID uuid.UUID
	pages          []models.Page
	activeID       uuid.UUID
}

// New creates a collection for a fresh contribution with one empty
// page built from the given template. The page becomes active.
func New(contributionID uuid.UUID, tpl catalog.Template) *Collection {
	c := &Collection{contributionID: contributionID}
	c.Add(tpl)
	return c
}

// Load rebuilds a collection from persisted pages. The slice must be
// non-empty; if the stored active pointer no longer resolves (or was
// never set) the first page becomes active.
func Load(contributionID uuid.UUID, persisted []models.Page, activeID *uuid.UUID) (*Collection, error) {
	if len(persisted) == 0 {
		return nil, &ValidationError{Op: "load pages", Reason: "contribution has no pages"}
	}

	c := &Collection{
		contributionID: contributionID,
		pages:          make([]models.Page, len(persisted)),
	}
	copy(c.pages, persisted)
	for i := range c.pages {
		c.pages[i].Position = i
	}

	c.activeID = c.pages[0].ID
	if activeID != nil {
		for i := range c.pages {
			if c.pages[i].ID == *activeID {
				c.activeID = *activeID
				break
			}
		}
	}
	return c, nil
}

// ContributionID returns the owning contribution's id.
func (c *Collection) ContributionID() uuid.UUID {
	return c.contributionID
}

// Len returns the page count.
func (c *Collection) Len() int {
	return len(c.pages)
}

// Pages returns the ordered pages as a copy.
func (c *Collection) Pages() []models.Page {
	out := make([]models.Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// ActiveID returns the id of the active page.
func (c *Collection) ActiveID() uuid.UUID {
	return c.activeID
}

// Active returns the active page. The pointer invariant guarantees it
// resolves as long as the collection was built through New or Load.
func (c *Collection) Active() models.Page {
	p, _ := c.Page(c.activeID)
	return p
}

// Page looks up a page by id.
func (c *Collection) Page(id uuid.UUID) (models.Page, bool) {
	for i := range c.pages {
		if c.pages[i].ID == id {
			return c.pages[i], true
		}
	}
	return models.Page{}, false
}

// Add appends a new empty page built from tpl and makes it active.
func (c *Collection) Add(tpl catalog.Template) models.Page {
	now := time.Now()
	contribID := c.contributionID
	page := models.Page{
		ID:             uuid.New(),
		ContributionID: &contribID,
		TemplateID:     tpl.ID,
		Position:       len(c.pages),
		Components:     tpl.NewComponents(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	c.pages = append(c.pages, page)
	c.activeID = page.ID
	return page
}

// Delete removes a page. Removing the last remaining page is rejected;
// a contribution always keeps at least one page. When the active page
// is deleted, the pointer moves to the page before it, or to the new
// first page when the first one was deleted.
func (c *Collection) Delete(pageID uuid.UUID) error {
	if len(c.pages) == 1 {
		return &ValidationError{Op: "delete page", Reason: "a contribution must keep at least one page"}
	}

	idx := c.indexOf(pageID)
	if idx < 0 {
		return &ValidationError{Op: "delete page", Reason: fmt.Sprintf("page %s not in collection", pageID)}
	}

	c.pages = append(c.pages[:idx], c.pages[idx+1:]...)
	c.renumber()

	if c.activeID == pageID {
		if idx > 0 {
			c.activeID = c.pages[idx-1].ID
		} else {
			c.activeID = c.pages[0].ID
		}
	}
	return nil
}

// Reorder re-applies page ordering. newOrder must be an exact
// permutation of the current page ids; anything else is rejected with
// the collection unchanged. The active pointer keeps referencing the
// same logical page at its new index.
func (c *Collection) Reorder(newOrder []uuid.UUID) error {
	if len(newOrder) != len(c.pages) {
		return &ValidationError{
			Op:     "reorder pages",
			Reason: fmt.Sprintf("order has %d ids, collection has %d pages", len(newOrder), len(c.pages)),
		}
	}

	byID := make(map[uuid.UUID]models.Page, len(c.pages))
	for _, p := range c.pages {
		byID[p.ID] = p
	}

	reordered := make([]models.Page, 0, len(newOrder))
	for _, id := range newOrder {
		p, ok := byID[id]
		if !ok {
			return &ValidationError{Op: "reorder pages", Reason: fmt.Sprintf("unknown or duplicate page id %s", id)}
		}
		delete(byID, id)
		reordered = append(reordered, p)
	}

	// Validation passed; replace the list in one step.
	c.pages = reordered
	c.renumber()
	return nil
}

// SelectActive moves the active pointer. Pure pointer change, no
// content mutation.
func (c *Collection) SelectActive(pageID uuid.UUID) error {
	if c.indexOf(pageID) < 0 {
		return &ValidationError{Op: "select page", Reason: fmt.Sprintf("page %s not in collection", pageID)}
	}
	c.activeID = pageID
	return nil
}

// SwitchTemplate rebinds a page to a different template, remapping its
// existing content into the new shapes. The page's component list is
// replaced in a single step. The returned report counts content the
// new layout had no room for; the switch itself always succeeds.
func (c *Collection) SwitchTemplate(pageID uuid.UUID, tpl catalog.Template) (mapping.Report, error) {
	idx := c.indexOf(pageID)
	if idx < 0 {
		return mapping.Report{}, &ValidationError{Op: "switch template", Reason: fmt.Sprintf("page %s not in collection", pageID)}
	}

	remapped, rep := mapping.Map(c.pages[idx].Components, tpl)
	c.pages[idx].TemplateID = tpl.ID
	c.pages[idx].Components = remapped
	c.pages[idx].UpdatedAt = time.Now()
	return rep, nil
}

// SetText writes a textual slot's value, enforcing the slot's
// character limit.
func (c *Collection) SetText(pageID uuid.UUID, slot int, value string) error {
	comp, err := c.component("edit text", pageID, slot)
	if err != nil {
		return err
	}
	if !comp.Type.IsTextual() {
		return &ValidationError{Op: "edit text", Reason: fmt.Sprintf("slot %d is a %s slot", slot, comp.Type)}
	}
	if comp.EditorConfig != nil && comp.EditorConfig.MaxCharacters > 0 &&
		utf8.RuneCountInString(value) > comp.EditorConfig.MaxCharacters {
		return &ValidationError{
			Op:     "edit text",
			Reason: fmt.Sprintf("value exceeds %d characters", comp.EditorConfig.MaxCharacters),
		}
	}
	comp.Value = value
	c.touch(pageID)
	return nil
}

// BindPhoto binds an uploaded object key into a photo slot. An empty
// key unbinds the slot.
func (c *Collection) BindPhoto(pageID uuid.UUID, slot int, imageKey string, crop *models.Crop) error {
	comp, err := c.component("bind photo", pageID, slot)
	if err != nil {
		return err
	}
	if comp.Type != models.ComponentTypePhoto {
		return &ValidationError{Op: "bind photo", Reason: fmt.Sprintf("slot %d is a %s slot", slot, comp.Type)}
	}
	if imageKey == "" {
		comp.Clear()
	} else {
		comp.ImageKey = imageKey
		comp.Crop = crop
	}
	c.touch(pageID)
	return nil
}

// component resolves a slot for mutation.
func (c *Collection) component(op string, pageID uuid.UUID, slot int) (*models.Component, error) {
	idx := c.indexOf(pageID)
	if idx < 0 {
		return nil, &ValidationError{Op: op, Reason: fmt.Sprintf("page %s not in collection", pageID)}
	}
	if slot < 0 || slot >= len(c.pages[idx].Components) {
		return nil, &ValidationError{Op: op, Reason: fmt.Sprintf("slot %d out of range", slot)}
	}
	return &c.pages[idx].Components[slot], nil
}

func (c *Collection) indexOf(pageID uuid.UUID) int {
	for i := range c.pages {
		if c.pages[i].ID == pageID {
			return i
		}
	}
	return -1
}

func (c *Collection) renumber() {
	for i := range c.pages {
		c.pages[i].Position = i
	}
}

func (c *Collection) touch(pageID uuid.UUID) {
	if idx := c.indexOf(pageID); idx >= 0 {
		c.pages[idx].UpdatedAt = time.Now()
	}
}
