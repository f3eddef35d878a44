package pagination_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/lab-catalog/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_PAGE_SIZE", "50")

	var c pagination.Config
	if err := c.Finalize(&pagination.Env{DefaultPageSize: "TEST_PAGE_SIZE"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if c.DefaultPageSize != 50 {
		t.Errorf("DefaultPageSize = %d, want 50", c.DefaultPageSize)
	}
	if c.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", c.MaxPageSize)
	}
}

func TestConfig_Finalize_DefaultExceedsMax(t *testing.T) {
	c := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := c.Finalize(nil); err == nil {
		t.Error("Finalize() should fail when default exceeds max")
	}
}

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 20},
		{"negative page", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"over max", pagination.PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid", pagination.PageRequest{Page: 4, PageSize: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(cfg)
			if tt.req.Page != tt.wantPage || tt.req.PageSize != tt.wantPageSize {
				t.Errorf("Normalize() = (%d, %d), want (%d, %d)",
					tt.req.Page, tt.req.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
		wantSearch   string
		wantSort     int
	}{
		{"empty", "", 1, 20, "", 0},
		{"page_size", "page=2&page_size=5", 2, 5, "", 0},
		{"limit alias", "page=3&limit=10", 3, 10, "", 0},
		{"search and sort", "search=cell&sort=-createdAt,title", 1, 20, "cell", 2},
		{"garbage", "page=abc&page_size=xyz", 1, 20, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, cfg)

			if req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", req.PageSize, tt.wantPageSize)
			}
			if tt.wantSearch == "" && req.Search != nil {
				t.Errorf("Search = %q, want nil", *req.Search)
			}
			if tt.wantSearch != "" && (req.Search == nil || *req.Search != tt.wantSearch) {
				t.Errorf("Search = %v, want %q", req.Search, tt.wantSearch)
			}
			if len(req.Sort) != tt.wantSort {
				t.Errorf("len(Sort) = %d, want %d", len(req.Sort), tt.wantSort)
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		wantPages int
	}{
		{"empty", 0, 20, 1},
		{"exact", 40, 20, 2},
		{"remainder", 41, 20, 3},
		{"single", 5, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult[int](nil, tt.total, 1, tt.pageSize)

			if result.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantPages)
			}
			if result.Data == nil {
				t.Error("Data should be an empty slice, not nil")
			}
		})
	}
}
