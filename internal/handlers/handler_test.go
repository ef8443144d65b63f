// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable;
// sessions run against an in-process miniredis.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"pressroom/internal/auth"
	"pressroom/internal/database"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/session"
	"pressroom/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "pressroom")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "pressroom")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB          *sql.DB
	Sessions    *session.Store
	Users       *store.UserStore
	Categories  *store.CategoryStore
	Articles    *store.ArticleStore
	StaticPages *store.StaticPageStore

	AuthHandlers     *Auth
	UserHandlers     *Users
	CategoryHandlers *Categories
	ArticleHandlers  *Articles
	PageHandlers     *StaticPages
}

// newTestEnv creates a complete test environment with all handler
// dependencies. Sessions are backed by a miniredis instance.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	sessions := session.NewStore(client)
	users := store.NewUserStore(db)
	categories := store.NewCategoryStore(db)
	articles := store.NewArticleStore(db)
	pages := store.NewStaticPageStore(db)

	return &testEnv{
		DB:          db,
		Sessions:    sessions,
		Users:       users,
		Categories:  categories,
		Articles:    articles,
		StaticPages: pages,

		AuthHandlers:     NewAuth(sessions, users),
		UserHandlers:     NewUsers(users),
		CategoryHandlers: NewCategories(categories),
		ArticleHandlers:  NewArticles(articles, users, categories),
		PageHandlers:     NewStaticPages(pages),
	}
}

// createUser inserts a user directly through the store and registers
// cleanup for it.
func (e *testEnv) createUser(t *testing.T, username string, role models.Role) *models.User {
	t.Helper()
	email := username + "@handler-test.local"
	t.Cleanup(func() { e.DB.Exec("DELETE FROM users WHERE email = $1", email) })
	user, err := e.Users.Create(context.Background(), username, email, "pass-secret", role)
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// cleanupSlug removes a row by slug from the given table after the test.
func (e *testEnv) cleanupSlug(t *testing.T, table, slug string) {
	t.Helper()
	t.Cleanup(func() { e.DB.Exec("DELETE FROM "+table+" WHERE slug = $1", slug) })
}

// asActor wires a role into the request context the way LoadActor does.
func asActor(r *http.Request, user *models.User) *http.Request {
	if user == nil {
		return r
	}
	actor := &auth.Actor{ID: user.ID, Role: user.Role}
	return r.WithContext(middleware.WithActor(r.Context(), actor))
}

// doJSON runs a handler against a JSON body and decodes the response
// into out (when non-nil), returning the status code.
func doJSON(t *testing.T, handler http.HandlerFunc, method string, body any, actor *models.User, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	r := httptest.NewRequest(method, "/rpc/test", &buf)
	r.Header.Set("Content-Type", "application/json")
	r = asActor(r, actor)

	w := httptest.NewRecorder()
	handler(w, r)

	if out != nil && w.Code == http.StatusOK {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return w.Code
}

// decodeBody decodes a recorder body into out.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

// errorKind decodes the error envelope from a recorder body.
func errorKind(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Kind  string `json:"kind"`
			Field string `json:"field"`
		} `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return payload.Error.Kind
}

// doJSONKind is doJSON for expected failures: it returns the status and
// error kind.
func doJSONKind(t *testing.T, handler http.HandlerFunc, method string, body any, actor *models.User) (int, string) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	r := httptest.NewRequest(method, "/rpc/test", &buf)
	r.Header.Set("Content-Type", "application/json")
	r = asActor(r, actor)

	w := httptest.NewRecorder()
	handler(w, r)

	return w.Code, errorKind(t, w)
}
