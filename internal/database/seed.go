package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"pressroom/internal/slug"
)

// Seed populates the database with initial development data: a super
// admin account, a sample category, and a published welcome article and
// about page. It is a no-op if any users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "admin", "admin@pressroom.local", string(hash), "super_admin").Scan(&adminID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	var categoryID string
	categoryName := "General"
	err = db.QueryRow(`
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, categoryName, slug.Generate(categoryName), "Uncategorized articles").Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	articleTitle := "Welcome to Pressroom"
	_, err = db.Exec(`
		INSERT INTO articles (title, slug, content, excerpt, is_published,
		                      author_id, category_id, published_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $6, now())
	`, articleTitle, slug.Generate(articleTitle),
		"This is your first article. Edit or delete it, then start writing.",
		"Your first article.", adminID, categoryID)
	if err != nil {
		return fmt.Errorf("seed insert article: %w", err)
	}

	pageTitle := "About"
	_, err = db.Exec(`
		INSERT INTO static_pages (title, slug, content, is_published)
		VALUES ($1, $2, $3, TRUE)
	`, pageTitle, slug.Generate(pageTitle), "Tell your readers about this site.")
	if err != nil {
		return fmt.Errorf("seed insert static page: %w", err)
	}

	slog.Info("database seeded with default super admin",
		"email", "admin@pressroom.local",
		"password", "admin123",
	)

	return nil
}
