package documents

import "github.com/JaimeStill/lab-catalog/pkg/openapi"

type spec struct {
	Upload         *openapi.Operation
	List           *openapi.Operation
	Find           *openapi.Operation
	Delete         *openapi.Operation
	ImportDocument *openapi.Operation
	Import         *openapi.Operation
}

var adminResponses = map[int]*openapi.Response{
	401: openapi.ResponseRef("Unauthorized"),
	403: openapi.ResponseRef("Forbidden"),
}

func withAdmin(op *openapi.Operation) *openapi.Operation {
	op.Security = openapi.BearerAuth
	for code, resp := range adminResponses {
		op.Responses[code] = resp
	}
	return op
}

var Spec = spec{
	Upload: withAdmin(&openapi.Operation{
		Summary:     "Upload document",
		Description: "Upload a .doc or .docx file. Parsing runs in the background; poll the document list for status.",
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"file": {Type: "string", Format: "binary", Description: "Word document"},
						},
						Required: []string{"file"},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			202: openapi.ResponseJSON("Document accepted for parsing", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			413: {Description: "File too large"},
		},
	}),
	List: withAdmin(&openapi.Operation{
		Summary:     "List documents",
		Description: "List documents with their parsed articles and creator",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in original and stored filename", false),
			openapi.QueryParam("status", "string", "Filter by status (uploaded, parsing, parsed, failed, all)", false),
			openapi.QueryParam("sort", "string", "Sort fields, prefix with - for descending", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Documents list", "DocumentPageResult"),
		},
	}),
	Find: withAdmin(&openapi.Operation{
		Summary: "Find document",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document details", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}),
	Delete: withAdmin(&openapi.Operation{
		Summary:     "Delete document",
		Description: "Delete a document, its parsed articles, and its stored file",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Document deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	}),
	ImportDocument: withAdmin(&openapi.Operation{
		Summary:     "Import document articles",
		Description: "Promote selected parsed articles into the catalog. Already imported or foreign ids are skipped.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Document ID"),
		},
		RequestBody: openapi.RequestBodyJSON("ImportArticlesCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Import result", "ImportResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	}),
	Import: withAdmin(&openapi.Operation{
		Summary:     "Import articles",
		Description: "Promote selected parsed articles with the document id in the body",
		RequestBody: openapi.RequestBodyJSON("ImportCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Import result", "ImportResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	}),
}

func (spec) Schemas() map[string]*openapi.Schema {
	uuidArray := &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string", Format: "uuid"}}
	optional := func(s string) *openapi.Schema { return &openapi.Schema{Type: s, Nullable: true} }

	return map[string]*openapi.Schema{
		"Document": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string", Format: "uuid"},
				"filename":      {Type: "string", Description: "Stored filename"},
				"original_name": {Type: "string", Description: "Filename as uploaded"},
				"file_size":     {Type: "integer", Format: "int64"},
				"mime_type":     {Type: "string"},
				"storage_key":   {Type: "string"},
				"status":        {Type: "string", Enum: []string{"uploaded", "parsing", "parsed", "failed"}},
				"content":       {Type: "string", Description: "Extracted text"},
				"article_count": {Type: "integer"},
				"parse_error":   optional("string"),
				"created_by":    {Type: "string", Format: "uuid"},
				"creator":       openapi.SchemaRef("Creator"),
				"articles":      {Type: "array", Items: openapi.SchemaRef("DocumentArticle")},
				"created_at":    {Type: "string", Format: "date-time"},
				"updated_at":    {Type: "string", Format: "date-time"},
			},
		},
		"DocumentArticle": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"document_id": {Type: "string", Format: "uuid"},
				"content":     {Type: "string", Description: "Structured record JSON or plain text"},
				"order":       {Type: "integer"},
				"is_imported": {Type: "boolean"},
				"article_id":  {Type: "string", Format: "uuid", Nullable: true},
				"record":      openapi.SchemaRef("BibliographicRecord"),
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
		},
		"BibliographicRecord": {
			Type:     "object",
			Nullable: true,
			Properties: map[string]*openapi.Schema{
				"type":            {Type: "string", Enum: []string{"academic_paper"}},
				"originalContent": {Type: "string"},
				"parsedInfo": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"authors":       {Type: "string"},
						"title":         {Type: "string"},
						"journal":       {Type: "string"},
						"publishedDate": {Type: "string"},
						"volume":        {Type: "string"},
						"issue":         {Type: "string"},
						"pages":         {Type: "string"},
						"doi":           {Type: "string"},
					},
				},
			},
		},
		"Creator": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":       {Type: "string", Format: "uuid"},
				"username": {Type: "string"},
			},
		},
		"ImportArticlesCommand": {
			Type:       "object",
			Required:   []string{"article_ids"},
			Properties: map[string]*openapi.Schema{"article_ids": uuidArray},
		},
		"ImportCommand": {
			Type:     "object",
			Required: []string{"document_id", "article_ids"},
			Properties: map[string]*openapi.Schema{
				"document_id": {Type: "string", Format: "uuid"},
				"article_ids": uuidArray,
			},
		},
		"ImportResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"count":       {Type: "integer"},
				"article_ids": uuidArray,
				"imported_articles": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"document_article_id": {Type: "string", Format: "uuid"},
							"article_id":          {Type: "string", Format: "uuid"},
							"title":               {Type: "string"},
						},
					},
				},
			},
		},
		"DocumentPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Document")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
