// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
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

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"memorybook/internal/catalog"
	"memorybook/internal/database"
	"memorybook/internal/export"
	"memorybook/internal/render"
	"memorybook/internal/store"
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
	user := envOr("POSTGRES_USER", "memorybook")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "memorybook")
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

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds the dependencies for handler integration tests. The
// book cache and storage client stay nil: caching and uploads are
// covered by their own package tests.
type testEnv struct {
	DB            *sql.DB
	Projects      *store.ProjectStore
	Contributions *store.ContributionStore
	Pages         *store.PageStore
	Catalog       *catalog.Catalog
	API           *API
}

// newTestEnv creates a complete test environment backed by the test DB.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	renderer, err := render.New("")
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	exporter, err := export.New(renderer)
	if err != nil {
		t.Fatalf("export.New: %v", err)
	}

	cat := catalog.New()
	projects := store.NewProjectStore(db)
	contributions := store.NewContributionStore(db)
	pageStore := store.NewPageStore(db)

	api := New(projects, contributions, pageStore, cat, renderer, exporter, nil, nil)

	return &testEnv{
		DB:            db,
		Projects:      projects,
		Contributions: contributions,
		Pages:         pageStore,
		Catalog:       cat,
		API:           api,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParams adds multiple chi URL parameters to a request.
func withChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(method, target string, body any) *http.Request {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody decodes a recorded JSON response body.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
}

// cleanProjects removes test projects by name.
func cleanProjects(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM projects WHERE project_name = $1", name)
	}
}
