package scalar_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/lab-catalog/pkg/module"
	"github.com/JaimeStill/lab-catalog/web/scalar"
)

func TestNewModule(t *testing.T) {
	m, err := scalar.NewModule("/scalar", "Lab Catalog API", "/api/openapi.json")
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scalar", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `data-url="/api/openapi.json"`) {
		t.Errorf("page does not reference the OpenAPI document: %s", body)
	}
	if !strings.Contains(body, "<title>Lab Catalog API</title>") {
		t.Error("page title not rendered")
	}
}
