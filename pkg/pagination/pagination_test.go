package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"plenario/pkg/pagination"
	"plenario/pkg/query"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, want 20", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}
}

func TestConfigFinalizeValidation(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := cfg.Finalize(nil); err == nil {
		t.Fatal("expected error for default exceeding max, got nil")
	}
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{
			name:         "zero values get defaults",
			req:          pagination.PageRequest{},
			wantPage:     1,
			wantPageSize: 20,
		},
		{
			name:         "negative page clamped to one",
			req:          pagination.PageRequest{Page: -3, PageSize: 10},
			wantPage:     1,
			wantPageSize: 10,
		},
		{
			name:         "oversized page size clamped to max",
			req:          pagination.PageRequest{Page: 2, PageSize: 500},
			wantPage:     2,
			wantPageSize: 100,
		},
		{
			name:         "valid values unchanged",
			req:          pagination.PageRequest{Page: 3, PageSize: 50},
			wantPage:     3,
			wantPageSize: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(defaultConfig())
			if tt.req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.req.Page, tt.wantPage)
			}
			if tt.req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", tt.req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "30")
	values.Set("search", "recurso")
	values.Set("sort", "Name,-CreatedAt")

	req := pagination.PageRequestFromQuery(values, defaultConfig())

	if req.Page != 2 {
		t.Errorf("Page = %d, want 2", req.Page)
	}
	if req.PageSize != 30 {
		t.Errorf("PageSize = %d, want 30", req.PageSize)
	}
	if req.Search == nil || *req.Search != "recurso" {
		t.Errorf("Search = %v, want recurso", req.Search)
	}
	if len(req.Sort) != 2 {
		t.Fatalf("Sort has %d fields, want 2", len(req.Sort))
	}
	if req.Sort[1].Field != "CreatedAt" || !req.Sort[1].Descending {
		t.Errorf("Sort[1] = %+v, want descending CreatedAt", req.Sort[1])
	}
}

func TestSortFieldsUnmarshalString(t *testing.T) {
	var req pagination.PageRequest
	if err := json.Unmarshal([]byte(`{"page":1,"sort":"Name,-Date"}`), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := pagination.SortFields{
		{Field: "Name"},
		{Field: "Date", Descending: true},
	}
	if len(req.Sort) != len(want) {
		t.Fatalf("Sort has %d fields, want %d", len(req.Sort), len(want))
	}
	for i := range want {
		if req.Sort[i] != want[i] {
			t.Errorf("Sort[%d] = %+v, want %+v", i, req.Sort[i], want[i])
		}
	}
}

func TestSortFieldsUnmarshalArray(t *testing.T) {
	var req pagination.PageRequest
	data := `{"sort":[{"field":"Year","descending":true}]}`
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(req.Sort) != 1 {
		t.Fatalf("Sort has %d fields, want 1", len(req.Sort))
	}
	if req.Sort[0] != (query.SortField{Field: "Year", Descending: true}) {
		t.Errorf("Sort[0] = %+v", req.Sort[0])
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{name: "exact division", total: 100, pageSize: 20, wantTotalPages: 5},
		{name: "remainder adds page", total: 101, pageSize: 20, wantTotalPages: 6},
		{name: "empty result keeps one page", total: 0, pageSize: 20, wantTotalPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
			if result.Data == nil {
				t.Error("Data should never be nil")
			}
		})
	}
}
