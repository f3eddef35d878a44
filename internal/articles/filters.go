package articles

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/lab-catalog/pkg/query"
)

// statusAll disables the status filter.
const statusAll = "all"

// Filters narrows catalog queries.
type Filters struct {
	Category   *string
	Status     *string
	OpenAccess *bool
}

// FiltersFromQuery reads category, status, and open_access. The catalog
// shows published articles unless status is given; status=all lists every
// status.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	switch s := values.Get("status"); s {
	case "":
		published := StatusPublished
		f.Status = &published
	case statusAll:
	default:
		f.Status = &s
	}

	if v := values.Get("open_access"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.OpenAccess = &b
		}
	}

	return f
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Category", f.Category).
		WhereEquals("Status", f.Status).
		WhereEquals("OpenAccess", f.OpenAccess)
}
