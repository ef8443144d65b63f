// Package router sets up the HTTP routes and middleware chain for the
// Pressroom RPC API. Every procedure lives under /rpc; authorization is
// decided per handler from the actor the middleware attaches.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pressroom/internal/handlers"
	"pressroom/internal/middleware"
	"pressroom/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and procedure routes wired up.
func New(sessions *session.Store, auth *handlers.Auth, users *handlers.Users, categories *handlers.Categories, articles *handlers.Articles, pages *handlers.StaticPages) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadActor(sessions))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/rpc", func(r chi.Router) {
		// Login is rate limited to slow down credential guessing.
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewRateLimiter(middleware.DefaultRateLimit, middleware.DefaultRateWindow).Middleware)
			r.Post("/login", auth.Login)
		})
		r.Post("/logout", auth.Logout)

		// Users
		r.Get("/getUsers", users.List)
		r.Post("/createUser", users.Create)
		r.Post("/updateUser", users.Update)
		r.Post("/deleteUser", users.Delete)

		// Categories
		r.Get("/getCategories", categories.List)
		r.Post("/createCategory", categories.Create)
		r.Post("/updateCategory", categories.Update)
		r.Post("/deleteCategory", categories.Delete)

		// Articles
		r.Get("/getArticles", articles.List)
		r.Get("/getPublicArticles", articles.ListPublic)
		r.Get("/getArticlesByCategory", articles.ListByCategory)
		r.Post("/createArticle", articles.Create)
		r.Post("/updateArticle", articles.Update)
		r.Post("/deleteArticle", articles.Delete)

		// Static pages
		r.Get("/getStaticPages", pages.List)
		r.Post("/createStaticPage", pages.Create)
		r.Post("/updateStaticPage", pages.Update)
		r.Post("/deleteStaticPage", pages.Delete)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
