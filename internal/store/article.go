package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pressroom/internal/models"
)

// ArticleStore handles all article-related database operations.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `id, title, slug, content, excerpt, is_published,
	author_id, category_id, created_at, updated_at, published_at`

// scanArticle scans a row into an Article struct.
func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Content, &a.Excerpt, &a.IsPublished,
		&a.AuthorID, &a.CategoryID, &a.CreatedAt, &a.UpdatedAt, &a.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// scanArticles drains rows into a slice.
func scanArticles(rows *sql.Rows) ([]models.Article, error) {
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Slug, &a.Content, &a.Excerpt, &a.IsPublished,
			&a.AuthorID, &a.CategoryID, &a.CreatedAt, &a.UpdatedAt, &a.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// List returns all articles ordered by creation date descending.
func (s *ArticleStore) List(ctx context.Context) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+` FROM articles ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return scanArticles(rows)
}

// ListPublished returns published articles ordered by publish date descending.
func (s *ArticleStore) ListPublished(ctx context.Context) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+` FROM articles
		WHERE is_published = TRUE
		ORDER BY published_at DESC NULLS LAST
	`)
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	return scanArticles(rows)
}

// ListByCategory returns the articles in a category, newest first.
// When publishedOnly is set, drafts are excluded.
func (s *ArticleStore) ListByCategory(ctx context.Context, categoryID uuid.UUID, publishedOnly bool) ([]models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE category_id = $1`
	if publishedOnly {
		query += ` AND is_published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list articles by category: %w", err)
	}
	return scanArticles(rows)
}

// ListByAuthor returns the articles authored by a user, newest first.
func (s *ArticleStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+` FROM articles
		WHERE author_id = $1
		ORDER BY created_at DESC
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list articles by author: %w", err)
	}
	return scanArticles(rows)
}

// Create inserts a new article and returns it with the generated ID.
// Publishing at creation stamps published_at.
func (s *ArticleStore) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	if a.IsPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO articles (title, slug, content, excerpt, is_published,
		                      author_id, category_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+articleColumns,
		a.Title, a.Slug, a.Content, a.Excerpt, a.IsPublished,
		a.AuthorID, a.CategoryID, a.PublishedAt,
	)
	result, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", conflictError(err))
	}
	return result, nil
}

// Update persists the mutable fields of a and returns the stored record.
// The first transition to published stamps published_at; an already-set
// published_at is written back unchanged, so unpublishing never clears it.
func (s *ArticleStore) Update(ctx context.Context, a *models.Article) (*models.Article, error) {
	if a.IsPublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE articles SET
			title = $1, slug = $2, content = $3, excerpt = $4, is_published = $5,
			category_id = $6, published_at = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+articleColumns,
		a.Title, a.Slug, a.Content, a.Excerpt, a.IsPublished,
		a.CategoryID, a.PublishedAt, a.ID,
	)
	updated, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", conflictError(err))
	}
	return updated, nil
}

// Delete removes an article by ID. Returns false if no row existed.
func (s *ArticleStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete article: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete article: rows affected: %w", err)
	}
	return affected > 0, nil
}
