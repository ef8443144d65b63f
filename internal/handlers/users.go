package handlers

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"pressroom/internal/apperr"
	"pressroom/internal/auth"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/store"
)

// Users groups the user management procedures. Every mutation is
// super_admin only.
type Users struct {
	users *store.UserStore
}

// NewUsers creates a new Users handler group.
func NewUsers(users *store.UserStore) *Users {
	return &Users{users: users}
}

// createUserInput is the createUser request payload.
type createUserInput struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

func (in *createUserInput) validate() error {
	return validationError(validation.ValidateStruct(in,
		validation.Field(&in.Username, validation.Required, validation.RuneLength(3, 50)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required, validation.RuneLength(6, 0)),
		validation.Field(&in.Role, validation.In(models.RoleGuest, models.RoleContributor, models.RoleSuperAdmin)),
	))
}

// Create handles createUser. An omitted role defaults to contributor.
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	var in createUserInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}
	if !auth.CanManageUsers(middleware.ActorFromCtx(r.Context())) {
		writeError(w, apperr.Unauthorized("only super admins may manage users"))
		return
	}

	if in.Role == "" {
		in.Role = models.RoleContributor
	}

	user, err := h.users.Create(r.Context(), in.Username, in.Email, in.Password, in.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// updateUserInput is the updateUser request payload. Omitted fields are
// left unchanged.
type updateUserInput struct {
	ID       uuid.UUID    `json:"id"`
	Username *string      `json:"username"`
	Email    *string      `json:"email"`
	Password *string      `json:"password"`
	Role     *models.Role `json:"role"`
}

func (in *updateUserInput) validate() error {
	if in.ID == uuid.Nil {
		return apperr.Validation("id", "id is required")
	}
	// NilOrNotEmpty: the remaining rules skip empty values, so an
	// explicit "" would otherwise pass (and an empty password would
	// get hashed and stored).
	return validationError(validation.ValidateStruct(in,
		validation.Field(&in.Username, validation.NilOrNotEmpty, validation.RuneLength(3, 50)),
		validation.Field(&in.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&in.Password, validation.NilOrNotEmpty, validation.RuneLength(6, 0)),
		validation.Field(&in.Role, validation.NilOrNotEmpty, validation.In(models.RoleGuest, models.RoleContributor, models.RoleSuperAdmin)),
	))
}

// Update handles updateUser. A new password is re-hashed before storage;
// the plaintext never reaches the store.
func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	var in updateUserInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}
	if !auth.CanManageUsers(middleware.ActorFromCtx(r.Context())) {
		writeError(w, apperr.Unauthorized("only super admins may manage users"))
		return
	}

	user, err := h.users.FindByID(r.Context(), in.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		writeError(w, apperr.NotFound("", "user not found"))
		return
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := store.HashPassword(*in.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		user.PasswordHash = hash
	}

	updated, err := h.users.Update(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}
	if updated == nil {
		writeError(w, apperr.NotFound("", "user not found"))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles deleteUser. All articles authored by the user are
// removed in the same transaction. Deleting an absent user reports
// success=false rather than an error.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	var in deleteInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}
	if !auth.CanManageUsers(middleware.ActorFromCtx(r.Context())) {
		writeError(w, apperr.Unauthorized("only super admins may manage users"))
		return
	}

	deleted, err := h.users.Delete(r.Context(), in.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResult{Success: deleted})
}

// List handles getUsers. Restricted to super admins.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	if !auth.CanListUsers(middleware.ActorFromCtx(r.Context())) {
		writeError(w, apperr.Unauthorized("only super admins may list users"))
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
