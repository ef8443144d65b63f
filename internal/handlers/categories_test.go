package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"pressroom/internal/models"
)

func TestCreateCategory(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "cc-admin", models.RoleSuperAdmin)
	env.cleanupSlug(t, "categories", "cc-tech")

	var created models.Category
	code := doJSON(t, env.CategoryHandlers.Create, "POST", map[string]any{
		"name":        "Tech",
		"slug":        "cc-tech",
		"description": "All things tech",
	}, admin, &created)

	if code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", code)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil category ID")
	}
	if created.Description == nil || *created.Description != "All things tech" {
		t.Errorf("description: got %v, want set", created.Description)
	}
}

func TestCreateCategoryAuthorization(t *testing.T) {
	env := newTestEnv(t)
	contributor := env.createUser(t, "cc-contrib", models.RoleContributor)

	body := map[string]any{"name": "Denied", "slug": "cc-denied"}

	code, kind := doJSONKind(t, env.CategoryHandlers.Create, "POST", body, contributor)
	if code != http.StatusForbidden || kind != "unauthorized" {
		t.Errorf("contributor: got %d/%q, want 403/unauthorized", code, kind)
	}

	code, kind = doJSONKind(t, env.CategoryHandlers.Create, "POST", body, nil)
	if code != http.StatusForbidden || kind != "unauthorized" {
		t.Errorf("anonymous: got %d/%q, want 403/unauthorized", code, kind)
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "cc-val-admin", models.RoleSuperAdmin)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"slug": "cc-val"}},
		{"missing slug", map[string]any{"name": "Val"}},
		{"uppercase slug", map[string]any{"name": "Val", "slug": "CC-Val"}},
		{"spaced slug", map[string]any{"name": "Val", "slug": "cc val"}},
		{"trailing hyphen", map[string]any{"name": "Val", "slug": "cc-val-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, kind := doJSONKind(t, env.CategoryHandlers.Create, "POST", tt.body, admin)
			if code != http.StatusBadRequest || kind != "validation" {
				t.Errorf("got %d/%q, want 400/validation", code, kind)
			}
		})
	}
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "cc-dupe-admin", models.RoleSuperAdmin)
	env.cleanupSlug(t, "categories", "cc-dupe")

	code := doJSON(t, env.CategoryHandlers.Create, "POST",
		map[string]any{"name": "First", "slug": "cc-dupe"}, admin, nil)
	if code != http.StatusOK {
		t.Fatalf("first create: got %d, want 200", code)
	}

	code, kind := doJSONKind(t, env.CategoryHandlers.Create, "POST",
		map[string]any{"name": "Second", "slug": "cc-dupe"}, admin)
	if code != http.StatusConflict || kind != "constraint_violation" {
		t.Errorf("duplicate: got %d/%q, want 409/constraint_violation", code, kind)
	}
}

func TestUpdateCategory(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "uc-admin", models.RoleSuperAdmin)
	env.cleanupSlug(t, "categories", "uc-cat")

	var created models.Category
	doJSON(t, env.CategoryHandlers.Create, "POST",
		map[string]any{"name": "Before", "slug": "uc-cat", "description": "old"}, admin, &created)

	// Rename without touching the description.
	var updated models.Category
	code := doJSON(t, env.CategoryHandlers.Update, "POST",
		map[string]any{"id": created.ID, "name": "After"}, admin, &updated)
	if code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", code)
	}
	if updated.Name != "After" {
		t.Errorf("name: got %q, want After", updated.Name)
	}
	if updated.Description == nil || *updated.Description != "old" {
		t.Errorf("description: got %v, want unchanged %q", updated.Description, "old")
	}

	// An explicit null clears the description.
	code = doJSON(t, env.CategoryHandlers.Update, "POST",
		map[string]any{"id": created.ID, "description": nil}, admin, &updated)
	if code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", code)
	}
	if updated.Description != nil {
		t.Errorf("description: got %v, want nil after explicit null", updated.Description)
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "uc-nf-admin", models.RoleSuperAdmin)

	code, kind := doJSONKind(t, env.CategoryHandlers.Update, "POST",
		map[string]any{"id": uuid.New(), "name": "Ghost"}, admin)
	if code != http.StatusNotFound || kind != "not_found" {
		t.Errorf("got %d/%q, want 404/not_found", code, kind)
	}
}

func TestDeleteCategory(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "dc-admin", models.RoleSuperAdmin)
	env.cleanupSlug(t, "categories", "dc-cat")

	var created models.Category
	doJSON(t, env.CategoryHandlers.Create, "POST",
		map[string]any{"name": "Doomed", "slug": "dc-cat"}, admin, &created)

	var result deleteResult
	code := doJSON(t, env.CategoryHandlers.Delete, "POST", map[string]any{"id": created.ID}, admin, &result)
	if code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", code)
	}
	if !result.Success {
		t.Error("expected success=true")
	}

	code = doJSON(t, env.CategoryHandlers.Delete, "POST", map[string]any{"id": created.ID}, admin, &result)
	if code != http.StatusOK {
		t.Fatalf("repeat status: got %d, want 200", code)
	}
	if result.Success {
		t.Error("expected success=false for already-deleted category")
	}
}

func TestListCategoriesOpenToEveryone(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "lc-admin", models.RoleSuperAdmin)
	env.cleanupSlug(t, "categories", "lc-cat")

	doJSON(t, env.CategoryHandlers.Create, "POST",
		map[string]any{"name": "Visible", "slug": "lc-cat"}, admin, nil)

	// Anonymous callers can list categories.
	r := httptest.NewRequest("GET", "/rpc/getCategories", nil)
	w := httptest.NewRecorder()
	env.CategoryHandlers.List(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous list: got %d, want 200", w.Code)
	}
}
