package query_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/JaimeStill/lab-catalog/pkg/query"
)

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		input string
		want  []query.SortField
	}{
		{"", nil},
		{"  ", nil},
		{"title", []query.SortField{{Field: "Title"}}},
		{"-createdAt", []query.SortField{{Field: "CreatedAt", Descending: true}}},
		{"authors, -title", []query.SortField{{Field: "Authors"}, {Field: "Title", Descending: true}}},
		{"title,,-", []query.SortField{{Field: "Title"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSortFields_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    query.SortFields
		wantErr bool
	}{
		{"string", `"-title"`, query.SortFields{{Field: "Title", Descending: true}}, false},
		{"array", `[{"field":"Title","descending":true}]`, query.SortFields{{Field: "Title", Descending: true}}, false},
		{"invalid", `42`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got query.SortFields
			err := json.Unmarshal([]byte(tt.input), &got)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal() = %v, want %v", got, tt.want)
			}
		})
	}
}
