package articles_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/lab-catalog/internal/articles"
	"github.com/JaimeStill/lab-catalog/pkg/pagination"
)

type fakeSystem struct {
	items       []articles.Article
	lastPage    pagination.PageRequest
	lastFilters articles.Filters
}

func (f *fakeSystem) List(_ context.Context, page pagination.PageRequest, filters articles.Filters) (*pagination.PageResult[articles.Article], error) {
	f.lastPage = page
	f.lastFilters = filters
	result := pagination.NewPageResult(f.items, len(f.items), page.Page, page.PageSize)
	return &result, nil
}

func (f *fakeSystem) Find(_ context.Context, id uuid.UUID) (*articles.Article, error) {
	for _, a := range f.items {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, articles.ErrNotFound
}

func newMux(sys *fakeSystem) *http.ServeMux {
	h := articles.NewHandler(sys, slog.New(slog.NewTextHandler(io.Discard, nil)), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /articles", h.List)
	mux.HandleFunc("GET /articles/{id}", h.Find)
	return mux
}

func TestHandler_List(t *testing.T) {
	sys := &fakeSystem{items: []articles.Article{{ID: uuid.New(), Title: "One"}}}
	mux := newMux(sys)

	req := httptest.NewRequest(http.MethodGet, "/articles?page=2&page_size=5&search=assay&category=biology&open_access=true", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body pagination.PageResult[articles.Article]
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].Title != "One" {
		t.Errorf("Data = %+v", body.Data)
	}

	if sys.lastPage.Page != 2 || sys.lastPage.PageSize != 5 {
		t.Errorf("page = %d/%d, want 2/5", sys.lastPage.Page, sys.lastPage.PageSize)
	}
	if sys.lastPage.Search == nil || *sys.lastPage.Search != "assay" {
		t.Errorf("search not forwarded")
	}
	if sys.lastFilters.Category == nil || *sys.lastFilters.Category != "biology" {
		t.Errorf("category filter not forwarded")
	}
	if sys.lastFilters.OpenAccess == nil || !*sys.lastFilters.OpenAccess {
		t.Errorf("open_access filter not forwarded")
	}
}

func TestHandler_Find(t *testing.T) {
	id := uuid.New()
	mux := newMux(&fakeSystem{items: []articles.Article{{ID: id, Title: "Found"}}})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"found", "/articles/" + id.String(), http.StatusOK},
		{"missing", "/articles/" + uuid.NewString(), http.StatusNotFound},
		{"bad id", "/articles/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestFiltersFromQuery_Status(t *testing.T) {
	tests := []struct {
		query string
		want  *string
	}{
		{"", ptr(articles.StatusPublished)},
		{"status=all", nil},
		{"status=draft", ptr("draft")},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/articles?"+tt.query, nil)
			f := articles.FiltersFromQuery(req.URL.Query())

			switch {
			case tt.want == nil && f.Status != nil:
				t.Errorf("Status = %q, want nil", *f.Status)
			case tt.want != nil && (f.Status == nil || *f.Status != *tt.want):
				t.Errorf("Status = %v, want %q", f.Status, *tt.want)
			}
		})
	}
}

func TestFiltersFromQuery_InvalidOpenAccess(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/articles?open_access=maybe", nil)
	if f := articles.FiltersFromQuery(req.URL.Query()); f.OpenAccess != nil {
		t.Errorf("OpenAccess = %v, want nil", *f.OpenAccess)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	if got := articles.MapHTTPStatus(articles.ErrNotFound); got != http.StatusNotFound {
		t.Errorf("ErrNotFound -> %d", got)
	}
	if got := articles.MapHTTPStatus(io.EOF); got != http.StatusInternalServerError {
		t.Errorf("other -> %d", got)
	}
}

func ptr(s string) *string { return &s }
