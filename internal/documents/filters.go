package documents

import (
	"net/url"

	"github.com/JaimeStill/lab-catalog/pkg/query"
)

// statusAll disables the status filter.
const statusAll = "all"

// Filters contains optional criteria for filtering document queries.
type Filters struct {
	Status *Status
}

// FiltersFromQuery extracts document filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" && s != statusAll {
		status := Status(s)
		f.Status = &status
	}

	return f
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var status any
	if f.Status != nil {
		status = string(*f.Status)
	}
	return b.WhereEquals("Status", status)
}
