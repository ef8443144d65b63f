package handlers

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"

	"pressroom/internal/apperr"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/session"
	"pressroom/internal/store"
)

// Auth groups the authentication procedures.
type Auth struct {
	sessions *session.Store
	users    *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, users *store.UserStore) *Auth {
	return &Auth{sessions: sessions, users: users}
}

// dummyPasswordHash is compared against when the email matches no
// account, so both failure paths cost one bcrypt comparison. Generated
// at bcrypt.DefaultCost to match stored hashes.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// loginInput is the login request payload.
type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *loginInput) validate() error {
	return validationError(validation.ValidateStruct(in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required),
	))
}

// loginResponse pairs the authenticated user with their session token.
type loginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password produce the same generic error so callers cannot
// probe which accounts exist.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, err)
		return
	}

	user, err := a.users.FindByEmail(r.Context(), in.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if user == nil {
		// Burn a comparison anyway so the unknown-email path takes as
		// long as a wrong password, then fail with the generic error.
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(in.Password))
		writeError(w, apperr.InvalidCredentials())
		return
	}
	if !a.users.CheckPassword(user, in.Password) {
		writeError(w, apperr.InvalidCredentials())
		return
	}

	token, err := a.sessions.Issue(r.Context(), &session.Data{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

// Logout revokes the presented session token. Logging out without a
// valid token still succeeds.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if err := a.sessions.Revoke(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResult{Success: token != ""})
}
