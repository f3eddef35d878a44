package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/lab-catalog/internal/api"
	"github.com/JaimeStill/lab-catalog/internal/config"
	"github.com/JaimeStill/lab-catalog/internal/infrastructure"
	"github.com/JaimeStill/lab-catalog/pkg/database"
	"github.com/JaimeStill/lab-catalog/pkg/module"
	"github.com/JaimeStill/lab-catalog/pkg/openapi"
	"github.com/JaimeStill/lab-catalog/pkg/storage"
)

func newRouter(t *testing.T) *module.Router {
	t.Helper()

	cfg := &config.Config{
		Database: database.Config{Name: "catalog", User: "catalog"},
		Storage:  storage.Config{BasePath: t.TempDir()},
	}
	cfg.Auth.Secret = "0123456789abcdef0123"
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)
	return router
}

func TestNewModule_OpenAPI(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var spec openapi.Spec
	if err := json.NewDecoder(rec.Body).Decode(&spec); err != nil {
		t.Fatalf("decode spec: %v", err)
	}

	paths := []string{
		"/api/articles",
		"/api/articles/{id}",
		"/api/documents",
		"/api/documents/{id}",
		"/api/documents/{id}/import",
		"/api/documents/import",
	}
	for _, p := range paths {
		if spec.Paths[p] == nil {
			t.Errorf("spec missing path %s", p)
		}
	}

	if upload := spec.Paths["/api/documents"].Post; upload == nil || len(upload.Security) == 0 {
		t.Error("upload operation should require bearer auth")
	}
}

func TestNewModule_DocumentsRequireToken(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
