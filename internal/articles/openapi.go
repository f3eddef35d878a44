package articles

import "github.com/JaimeStill/lab-catalog/pkg/openapi"

type spec struct {
	List *openapi.Operation
	Find *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List articles",
		Description: "List catalog articles. Only published articles are returned unless status is given.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in title, authors, and journal", false),
			openapi.QueryParam("category", "string", "Filter by category", false),
			openapi.QueryParam("status", "string", "Filter by status (all for every status)", false),
			openapi.QueryParam("open_access", "boolean", "Filter by open access", false),
			openapi.QueryParam("sort", "string", "Sort fields, prefix with - for descending", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Article list", "ArticlePageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find article",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Article ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Article details", "Article"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	nullableString := &openapi.Schema{Type: "string", Nullable: true}

	return map[string]*openapi.Schema{
		"Article": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "string", Format: "uuid"},
				"title":          {Type: "string"},
				"authors":        {Type: "string"},
				"journal":        {Type: "string"},
				"volume":         {Type: "string"},
				"issue":          {Type: "string"},
				"pages":          {Type: "string"},
				"published_date": {Type: "string", Format: "date-time"},
				"doi":            {Type: "string"},
				"abstract":       {Type: "string"},
				"keywords":       {Type: "string"},
				"impact_factor":  {Type: "number", Nullable: true},
				"citation_count": {Type: "integer"},
				"open_access":    {Type: "boolean"},
				"category":       nullableString,
				"status":         {Type: "string"},
				"created_by":     {Type: "string", Format: "uuid", Nullable: true},
				"updated_by":     {Type: "string", Format: "uuid", Nullable: true},
				"created_at":     {Type: "string", Format: "date-time"},
				"updated_at":     {Type: "string", Format: "date-time"},
			},
		},
		"ArticlePageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Article")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
