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

// Categories groups the category management procedures.
type Categories struct {
	categories *store.CategoryStore
}

// NewCategories creates a new Categories handler group.
func NewCategories(categories *store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

// createCategoryInput is the createCategory request payload.
type createCategoryInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

func (in *createCategoryInput) validate() error {
	return validationError(validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&in.Slug, validation.Required, validation.RuneLength(1, 100), validation.Match(slug.Pattern)),
	))
}

// Create handles createCategory. Super admin only.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var in createCategoryInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}
	if !auth.CanManageCategories(middleware.ActorFromCtx(r.Context())) {
		writeError(w, apperr.Unauthorized("only super admins may manage categories"))
		return
	}

	category, err := h.categories.Create(r.Context(), &models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// updateCategoryInput is the updateCategory request payload. Omitted
// fields are left unchanged; description may be set to null explicitly.
type updateCategoryInput struct {
	ID          uuid.UUID        `json:"id"`
	Name        *string          `json:"name"`
	Slug        *string          `json:"slug"`
	Description Nullable[string] `json:"description"`
}

func (in *updateCategoryInput) validate() error {
	if in.ID == uuid.Nil {
		return apperr.Validation("id", "id is required")
	}
	// NilOrNotEmpty: length and pattern rules skip empty values.
	return validationError(validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 100)),
		validation.Field(&in.Slug, validation.NilOrNotEmpty, validation.RuneLength(1, 100), validation.Match(slug.Pattern)),
	))
}

// Update handles updateCategory. Super admin only.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	var in updateCategoryInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}
	if !auth.CanManageCategories(middleware.ActorFromCtx(r.Context())) {
		writeError(w, apperr.Unauthorized("only super admins may manage categories"))
		return
	}

	category, err := h.categories.FindByID(r.Context(), in.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if category == nil {
		writeError(w, apperr.NotFound("", "category not found"))
		return
	}

	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Slug != nil {
		category.Slug = *in.Slug
	}
	if in.Description.Set {
		category.Description = in.Description.Value
	}

	updated, err := h.categories.Update(r.Context(), category)
	if err != nil {
		writeError(w, err)
		return
	}
	if updated == nil {
		writeError(w, apperr.NotFound("", "category not found"))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles deleteCategory. Articles referencing the category are
// detached, not deleted; they survive with a null category_id. Deleting
// an absent category reports success=false rather than an error.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	var in deleteInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}
	if !auth.CanManageCategories(middleware.ActorFromCtx(r.Context())) {
		writeError(w, apperr.Unauthorized("only super admins may manage categories"))
		return
	}

	deleted, err := h.categories.Delete(r.Context(), in.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResult{Success: deleted})
}

// List handles getCategories. Open to every caller.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}
