package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"memorybook/internal/models"
)

// ProjectStore handles all project-related database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database
// connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// Create inserts a new project. The cover starts with the project
// name as its title.
func (s *ProjectStore) Create(name, eventDescription string) (*models.Project, error) {
	cover := models.CoverConfig{Title: name}
	coverJSON, err := json.Marshal(cover)
	if err != nil {
		return nil, fmt.Errorf("marshal cover: %w", err)
	}

	p := &models.Project{}
	var raw []byte
	err = s.db.QueryRow(`
		INSERT INTO projects (project_name, event_description, cover)
		VALUES ($1, $2, $3)
		RETURNING id, project_name, event_description, cover, created_at, updated_at
	`, name, eventDescription, coverJSON).Scan(
		&p.ID, &p.ProjectName, &p.EventDescription, &raw, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if err := json.Unmarshal(raw, &p.Cover); err != nil {
		return nil, fmt.Errorf("unmarshal cover: %w", err)
	}
	return p, nil
}

// FindByID retrieves a project row by its UUID, without contributions.
// Returns nil if not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	p := &models.Project{}
	var raw []byte
	err := s.db.QueryRow(`
		SELECT id, project_name, event_description, cover, created_at, updated_at
		FROM projects WHERE id = $1
	`, id).Scan(&p.ID, &p.ProjectName, &p.EventDescription, &raw, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	if err := json.Unmarshal(raw, &p.Cover); err != nil {
		return nil, fmt.Errorf("unmarshal cover: %w", err)
	}
	return p, nil
}

// LoadFull retrieves a project with its contributions and their pages,
// everything the book assembler needs. Returns nil if the project does
// not exist.
func (s *ProjectStore) LoadFull(id uuid.UUID, contributions *ContributionStore, pages *PageStore) (*models.Project, error) {
	p, err := s.FindByID(id)
	if err != nil || p == nil {
		return p, err
	}

	p.Contributions, err = contributions.ListByProject(id)
	if err != nil {
		return nil, err
	}
	for i := range p.Contributions {
		p.Contributions[i].Pages, err = pages.ListByContribution(p.Contributions[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// UpdateCover replaces the project's cover configuration.
func (s *ProjectStore) UpdateCover(id uuid.UUID, cover models.CoverConfig) error {
	coverJSON, err := json.Marshal(cover)
	if err != nil {
		return fmt.Errorf("marshal cover: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE projects SET cover = $1, updated_at = NOW() WHERE id = $2
	`, coverJSON, id)
	if err != nil {
		return fmt.Errorf("update cover: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a project and, through cascading foreign keys, its
// contributions and pages.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
