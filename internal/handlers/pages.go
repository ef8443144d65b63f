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

// StaticPages groups the static page procedures. Management is reserved
// for super admins; listing is open with a publish gate.
type StaticPages struct {
	pages *store.StaticPageStore
}

// NewStaticPages creates a new StaticPages handler group.
func NewStaticPages(pages *store.StaticPageStore) *StaticPages {
	return &StaticPages{pages: pages}
}

type createStaticPageInput struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Content     string `json:"content"`
	IsPublished bool   `json:"is_published"`
}

func (in *createStaticPageInput) validate() error {
	return validationError(validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&in.Slug, validation.Required, validation.RuneLength(1, 200), validation.Match(slug.Pattern)),
		validation.Field(&in.Content, validation.Required),
	))
}

// Create handles createStaticPage.
func (h *StaticPages) Create(w http.ResponseWriter, r *http.Request) {
	var in createStaticPageInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}
	if !auth.CanManageStaticPages(middleware.ActorFromCtx(r.Context())) {
		writeError(w, apperr.Unauthorized("only super admins may manage static pages"))
		return
	}

	page, err := h.pages.Create(r.Context(), &models.StaticPage{
		Title:       in.Title,
		Slug:        in.Slug,
		Content:     in.Content,
		IsPublished: in.IsPublished,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

type updateStaticPageInput struct {
	ID          uuid.UUID `json:"id"`
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Content     *string   `json:"content"`
	IsPublished *bool     `json:"is_published"`
}

func (in *updateStaticPageInput) validate() error {
	if in.ID == uuid.Nil {
		return apperr.Validation("id", "id is required")
	}
	// NilOrNotEmpty: length and pattern rules skip empty values.
	return validationError(validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.NilOrNotEmpty, validation.RuneLength(1, 200)),
		validation.Field(&in.Slug, validation.NilOrNotEmpty, validation.RuneLength(1, 200), validation.Match(slug.Pattern)),
		validation.Field(&in.Content, validation.NilOrNotEmpty),
	))
}

// Update handles updateStaticPage. Omitted fields are left unchanged.
func (h *StaticPages) Update(w http.ResponseWriter, r *http.Request) {
	var in updateStaticPageInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}
	if !auth.CanManageStaticPages(middleware.ActorFromCtx(r.Context())) {
		writeError(w, apperr.Unauthorized("only super admins may manage static pages"))
		return
	}

	page, err := h.pages.FindByID(r.Context(), in.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if page == nil {
		writeError(w, apperr.NotFound("", "static page not found"))
		return
	}

	if in.Title != nil {
		page.Title = *in.Title
	}
	if in.Slug != nil {
		page.Slug = *in.Slug
	}
	if in.Content != nil {
		page.Content = *in.Content
	}
	if in.IsPublished != nil {
		page.IsPublished = *in.IsPublished
	}

	updated, err := h.pages.Update(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	if updated == nil {
		writeError(w, apperr.NotFound("", "static page not found"))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles deleteStaticPage. A missing page reports success=false.
func (h *StaticPages) Delete(w http.ResponseWriter, r *http.Request) {
	var in deleteInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}
	if !auth.CanManageStaticPages(middleware.ActorFromCtx(r.Context())) {
		writeError(w, apperr.Unauthorized("only super admins may manage static pages"))
		return
	}

	deleted, err := h.pages.Delete(r.Context(), in.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResult{Success: deleted})
}

// List handles getStaticPages. Writers see drafts as well; everyone else
// only sees published pages.
func (h *StaticPages) List(w http.ResponseWriter, r *http.Request) {
	publishedOnly := !auth.CanSeeUnpublished(middleware.ActorFromCtx(r.Context()))
	pages, err := h.pages.List(r.Context(), publishedOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	if pages == nil {
		pages = []models.StaticPage{}
	}
	writeJSON(w, http.StatusOK, pages)
}
