package query

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SortField is a single ORDER BY term expressed in view field names.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses a comma-separated list such as "title,-createdAt".
// A leading "-" sorts descending. Field names are normalized to the view
// naming used by projections (first letter upper-cased).
func ParseSortFields(s string) []SortField {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	fields := make([]SortField, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		desc := false
		if strings.HasPrefix(part, "-") {
			desc = true
			part = strings.TrimPrefix(part, "-")
		}
		if part == "" {
			continue
		}

		fields = append(fields, SortField{
			Field:      strings.ToUpper(part[:1]) + part[1:],
			Descending: desc,
		})
	}

	return fields
}

// SortFields accepts either the comma-separated string form or an array of
// SortField objects when decoded from JSON.
type SortFields []SortField

func (s *SortFields) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = ParseSortFields(str)
		return nil
	}

	var fields []SortField
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("sort must be a string or an array of sort fields: %w", err)
	}
	*s = fields
	return nil
}
