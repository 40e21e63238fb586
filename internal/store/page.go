package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"memorybook/internal/models"
)

// PageStore handles all page-related database operations. Components
// live in a JSONB column; the store owns the (de)serialization
// boundary so callers only ever see typed component lists.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a new PageStore with the given database
// connection.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

const pageColumns = `id, contribution_id, template_id, position, components, created_at, updated_at`

func scanPage(row interface{ Scan(...any) error }) (*models.Page, error) {
	p := &models.Page{}
	var raw []byte
	err := row.Scan(&p.ID, &p.ContributionID, &p.TemplateID, &p.Position, &raw, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &p.Components); err != nil {
		return nil, fmt.Errorf("unmarshal components: %w", err)
	}
	return p, nil
}

// FindByID retrieves a page by its UUID. Returns nil if not found.
func (s *PageStore) FindByID(id uuid.UUID) (*models.Page, error) {
	p, err := scanPage(s.db.QueryRow(`
		SELECT `+pageColumns+` FROM pages WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	return p, nil
}

// ListByContribution returns a contribution's pages in their internal
// order.
func (s *PageStore) ListByContribution(contributionID uuid.UUID) ([]models.Page, error) {
	rows, err := s.db.Query(`
		SELECT `+pageColumns+` FROM pages
		WHERE contribution_id = $1
		ORDER BY position, created_at
	`, contributionID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var items []models.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// SaveCollection persists a collection snapshot in one transaction:
// every page's position and content plus the contribution's active
// pointer. The snapshot is authoritative: rows the collection no
// longer holds are removed. Adds, deletes, reorders and template
// switches all go through here so no intermediate state is ever
// visible to readers.
func (s *PageStore) SaveCollection(contributionID uuid.UUID, pagesList []models.Page, activeID uuid.UUID) error {
	if len(pagesList) == 0 {
		return fmt.Errorf("save collection: empty snapshot for %s", contributionID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save collection begin: %w", err)
	}
	defer tx.Rollback()

	for i := range pagesList {
		p := &pagesList[i]
		componentsJSON, err := json.Marshal(p.Components)
		if err != nil {
			return fmt.Errorf("marshal components: %w", err)
		}
		res, err := tx.Exec(`
			UPDATE pages SET template_id = $1, position = $2, components = $3, updated_at = NOW()
			WHERE id = $4 AND contribution_id = $5
		`, p.TemplateID, p.Position, componentsJSON, p.ID, contributionID)
		if err != nil {
			return fmt.Errorf("save collection page %s: %w", p.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Page is new to persistence (added this request).
			if _, err := tx.Exec(`
				INSERT INTO pages (id, contribution_id, template_id, position, components)
				VALUES ($1, $2, $3, $4, $5)
			`, p.ID, contributionID, p.TemplateID, p.Position, componentsJSON); err != nil {
				return fmt.Errorf("save collection insert %s: %w", p.ID, err)
			}
		}
	}

	keep := make([]string, len(pagesList))
	args := []any{contributionID}
	for i := range pagesList {
		keep[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, pagesList[i].ID)
	}
	if _, err := tx.Exec(`
		DELETE FROM pages WHERE contribution_id = $1 AND id NOT IN (`+strings.Join(keep, ", ")+`)
	`, args...); err != nil {
		return fmt.Errorf("save collection prune: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE contributions SET active_page_id = $1, updated_at = NOW() WHERE id = $2
	`, activeID, contributionID); err != nil {
		return fmt.Errorf("save collection pointer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save collection commit: %w", err)
	}
	return nil
}
