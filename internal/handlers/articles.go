package handlers

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"pressroom/internal/apperr"
	"pressroom/internal/auth"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/slug"
	"pressroom/internal/store"
)

// Articles groups the article management procedures. Creation is open to
// any authenticated writer; updates and deletes are gated on ownership.
type Articles struct {
	articles   *store.ArticleStore
	users      *store.UserStore
	categories *store.CategoryStore
}

// NewArticles creates a new Articles handler group.
func NewArticles(articles *store.ArticleStore, users *store.UserStore, categories *store.CategoryStore) *Articles {
	return &Articles{articles: articles, users: users, categories: categories}
}

// createArticleInput is the createArticle request payload.
type createArticleInput struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Excerpt     *string    `json:"excerpt"`
	IsPublished bool       `json:"is_published"`
	AuthorID    uuid.UUID  `json:"author_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

func (in *createArticleInput) validate() error {
	if in.AuthorID == uuid.Nil {
		return apperr.Validation("author_id", "author_id is required")
	}
	return validationError(validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&in.Slug, validation.Required, validation.RuneLength(1, 200), validation.Match(slug.Pattern)),
		validation.Field(&in.Content, validation.Required),
	))
}

// Create handles createArticle. The author must exist, and the category,
// when given, must exist. Publishing at creation stamps published_at.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	var in createArticleInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}
	if !auth.CanCreateArticle(middleware.ActorFromCtx(r.Context())) {
		writeError(w, apperr.Unauthorized("guests may not create articles"))
		return
	}

	author, err := h.users.FindByID(r.Context(), in.AuthorID)
	if err != nil {
		writeError(w, err)
		return
	}
	if author == nil {
		writeError(w, apperr.NotFound("author", "author not found"))
		return
	}

	if in.CategoryID != nil {
		category, err := h.categories.FindByID(r.Context(), *in.CategoryID)
		if err != nil {
			writeError(w, err)
			return
		}
		if category == nil {
			writeError(w, apperr.NotFound("category", "category not found"))
			return
		}
	}

	article, err := h.articles.Create(r.Context(), &models.Article{
		Title:       in.Title,
		Slug:        in.Slug,
		Content:     in.Content,
		Excerpt:     in.Excerpt,
		IsPublished: in.IsPublished,
		AuthorID:    in.AuthorID,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// updateArticleInput is the updateArticle request payload. Omitted
// fields are left unchanged; excerpt and category_id may be set to null
// explicitly. The author is immutable.
type updateArticleInput struct {
	ID          uuid.UUID           `json:"id"`
	Title       *string             `json:"title"`
	Slug        *string             `json:"slug"`
	Content     *string             `json:"content"`
	Excerpt     Nullable[string]    `json:"excerpt"`
	IsPublished *bool               `json:"is_published"`
	CategoryID  Nullable[uuid.UUID] `json:"category_id"`
}

func (in *updateArticleInput) validate() error {
	if in.ID == uuid.Nil {
		return apperr.Validation("id", "id is required")
	}
	// NilOrNotEmpty: most rules skip empty values, so an explicit ""
	// needs its own guard to hit the length bounds.
	return validationError(validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.NilOrNotEmpty, validation.RuneLength(1, 200)),
		validation.Field(&in.Slug, validation.NilOrNotEmpty, validation.RuneLength(1, 200), validation.Match(slug.Pattern)),
		validation.Field(&in.Content, validation.NilOrNotEmpty),
	))
}

// Update handles updateArticle. Contributors may only touch their own
// articles; super admins may touch any. The first publish stamps
// published_at, and unpublishing later never clears it.
func (h *Articles) Update(w http.ResponseWriter, r *http.Request) {
	var in updateArticleInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	if !auth.Authenticated(actor) {
		writeError(w, apperr.Unauthorized("guests may not modify articles"))
		return
	}

	article, err := h.articles.FindByID(r.Context(), in.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if article == nil {
		writeError(w, apperr.NotFound("", "article not found"))
		return
	}
	if !auth.CanModifyArticle(actor, article.AuthorID) {
		writeError(w, apperr.Unauthorized("contributors may only modify their own articles"))
		return
	}

	if in.Title != nil {
		article.Title = *in.Title
	}
	if in.Slug != nil {
		article.Slug = *in.Slug
	}
	if in.Content != nil {
		article.Content = *in.Content
	}
	if in.Excerpt.Set {
		article.Excerpt = in.Excerpt.Value
	}
	if in.IsPublished != nil {
		article.IsPublished = *in.IsPublished
	}
	if in.CategoryID.Set {
		if in.CategoryID.Value != nil {
			category, err := h.categories.FindByID(r.Context(), *in.CategoryID.Value)
			if err != nil {
				writeError(w, err)
				return
			}
			if category == nil {
				writeError(w, apperr.NotFound("category", "category not found"))
				return
			}
		}
		article.CategoryID = in.CategoryID.Value
	}

	updated, err := h.articles.Update(r.Context(), article)
	if err != nil {
		writeError(w, err)
		return
	}
	if updated == nil {
		writeError(w, apperr.NotFound("", "article not found"))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles deleteArticle with the same ownership gate as Update.
// Deleting an absent article reports success=false rather than an error.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	var in deleteInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.ActorFromCtx(r.Context())
	if !auth.Authenticated(actor) {
		writeError(w, apperr.Unauthorized("guests may not modify articles"))
		return
	}

	article, err := h.articles.FindByID(r.Context(), in.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if article == nil {
		writeJSON(w, http.StatusOK, deleteResult{Success: false})
		return
	}
	if !auth.CanModifyArticle(actor, article.AuthorID) {
		writeError(w, apperr.Unauthorized("contributors may only delete their own articles"))
		return
	}

	deleted, err := h.articles.Delete(r.Context(), article.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResult{Success: deleted})
}

// List handles getArticles. Writers see everything; guests and anonymous
// callers only see published articles.
func (h *Articles) List(w http.ResponseWriter, r *http.Request) {
	var (
		articles []models.Article
		err      error
	)
	if auth.CanSeeUnpublished(middleware.ActorFromCtx(r.Context())) {
		articles, err = h.articles.List(r.Context())
	} else {
		articles, err = h.articles.ListPublished(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

// ListPublic handles getPublicArticles: the published feed, regardless
// of the caller's role.
func (h *Articles) ListPublic(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articles.ListPublished(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

// ListByCategory handles getArticlesByCategory. The same publish gate as
// List applies: drafts are only visible to writer roles.
func (h *Articles) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(r.URL.Query().Get("categoryId"))
	if err != nil {
		writeError(w, apperr.Validation("categoryId", "categoryId must be a valid id"))
		return
	}

	publishedOnly := !auth.CanSeeUnpublished(middleware.ActorFromCtx(r.Context()))
	articles, err := h.articles.ListByCategory(r.Context(), categoryID, publishedOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}
