package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"pressroom/internal/models"
)

// StaticPageStore handles all static page database operations.
type StaticPageStore struct {
	db *sql.DB
}

// NewStaticPageStore creates a new StaticPageStore with the given database connection.
func NewStaticPageStore(db *sql.DB) *StaticPageStore {
	return &StaticPageStore{db: db}
}

const staticPageColumns = `id, title, slug, content, is_published, created_at, updated_at`

// scanStaticPage scans a row into a StaticPage struct.
func scanStaticPage(scanner interface{ Scan(...any) error }) (*models.StaticPage, error) {
	var p models.StaticPage
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.IsPublished,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns static pages ordered by creation date descending.
// When publishedOnly is set, drafts are excluded.
func (s *StaticPageStore) List(ctx context.Context, publishedOnly bool) ([]models.StaticPage, error) {
	query := `SELECT ` + staticPageColumns + ` FROM static_pages`
	if publishedOnly {
		query += ` WHERE is_published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list static pages: %w", err)
	}
	defer rows.Close()

	var items []models.StaticPage
	for rows.Next() {
		var p models.StaticPage
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Content, &p.IsPublished,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan static page: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// FindByID retrieves a static page by ID. Returns nil if not found.
func (s *StaticPageStore) FindByID(ctx context.Context, id uuid.UUID) (*models.StaticPage, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+staticPageColumns+` FROM static_pages WHERE id = $1`, id)
	p, err := scanStaticPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find static page by id: %w", err)
	}
	return p, nil
}

// Create inserts a new static page and returns it.
func (s *StaticPageStore) Create(ctx context.Context, p *models.StaticPage) (*models.StaticPage, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO static_pages (title, slug, content, is_published)
		VALUES ($1, $2, $3, $4)
		RETURNING `+staticPageColumns,
		p.Title, p.Slug, p.Content, p.IsPublished,
	)
	result, err := scanStaticPage(row)
	if err != nil {
		return nil, fmt.Errorf("create static page: %w", conflictError(err))
	}
	return result, nil
}

// Update persists the mutable fields of p and returns the stored record.
func (s *StaticPageStore) Update(ctx context.Context, p *models.StaticPage) (*models.StaticPage, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE static_pages SET
			title = $1, slug = $2, content = $3, is_published = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+staticPageColumns,
		p.Title, p.Slug, p.Content, p.IsPublished, p.ID,
	)
	updated, err := scanStaticPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update static page: %w", conflictError(err))
	}
	return updated, nil
}

// Delete removes a static page by ID. Returns false if no row existed.
func (s *StaticPageStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM static_pages WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete static page: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete static page: rows affected: %w", err)
	}
	return affected > 0, nil
}
