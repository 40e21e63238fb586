package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"memorybook/internal/models"
)

// ContributionStore handles all contribution-related database
// operations.
type ContributionStore struct {
	db *sql.DB
}

// NewContributionStore creates a new ContributionStore with the given
// database connection.
func NewContributionStore(db *sql.DB) *ContributionStore {
	return &ContributionStore{db: db}
}

// Create inserts a new contribution at the end of the project's order.
func (s *ContributionStore) Create(projectID uuid.UUID, contributorName string) (*models.Contribution, error) {
	c := &models.Contribution{}
	err := s.db.QueryRow(`
		INSERT INTO contributions (project_id, contributor_name, position)
		VALUES ($1, $2, (
			SELECT COALESCE(MAX(position) + 1, 0) FROM contributions WHERE project_id = $1
		))
		RETURNING id, project_id, contributor_name, excluded_from_book, position,
		          active_page_id, created_at, updated_at
	`, projectID, contributorName).Scan(
		&c.ID, &c.ProjectID, &c.ContributorName, &c.ExcludedFromBook, &c.Position,
		&c.ActivePageID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create contribution: %w", err)
	}
	return c, nil
}

// FindByID retrieves a contribution by its UUID. Returns nil if not
// found.
func (s *ContributionStore) FindByID(id uuid.UUID) (*models.Contribution, error) {
	c := &models.Contribution{}
	err := s.db.QueryRow(`
		SELECT id, project_id, contributor_name, excluded_from_book, position,
		       active_page_id, created_at, updated_at
		FROM contributions WHERE id = $1
	`, id).Scan(
		&c.ID, &c.ProjectID, &c.ContributorName, &c.ExcludedFromBook, &c.Position,
		&c.ActivePageID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find contribution by id: %w", err)
	}
	return c, nil
}

// ListByProject returns a project's contributions in their project
// order, without pages.
func (s *ContributionStore) ListByProject(projectID uuid.UUID) ([]models.Contribution, error) {
	rows, err := s.db.Query(`
		SELECT id, project_id, contributor_name, excluded_from_book, position,
		       active_page_id, created_at, updated_at
		FROM contributions
		WHERE project_id = $1
		ORDER BY position, created_at
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var items []models.Contribution
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(
			&c.ID, &c.ProjectID, &c.ContributorName, &c.ExcludedFromBook, &c.Position,
			&c.ActivePageID, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// SetExcluded flags or unflags a contribution for the assembled book.
// Flagging never touches the contribution's pages.
func (s *ContributionStore) SetExcluded(id uuid.UUID, excluded bool) error {
	res, err := s.db.Exec(`
		UPDATE contributions SET excluded_from_book = $1, updated_at = NOW() WHERE id = $2
	`, excluded, id)
	if err != nil {
		return fmt.Errorf("set excluded: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetActivePage moves the contribution's active-page pointer.
func (s *ContributionStore) SetActivePage(id, pageID uuid.UUID) error {
	res, err := s.db.Exec(`
		UPDATE contributions SET active_page_id = $1, updated_at = NOW() WHERE id = $2
	`, pageID, id)
	if err != nil {
		return fmt.Errorf("set active page: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
