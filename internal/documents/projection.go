package documents

import "github.com/JaimeStill/lab-catalog/pkg/query"

var projection = query.NewProjectionMap("public", "documents", "d").
	Project("id", "Id").
	Project("filename", "Filename").
	Project("original_name", "OriginalName").
	Project("file_size", "FileSize").
	Project("mime_type", "MimeType").
	Project("storage_key", "StorageKey").
	Project("status", "Status").
	Project("content", "Content").
	Project("article_count", "ArticleCount").
	Project("parse_error", "ParseError").
	Project("created_by", "CreatedBy").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

var articleProjection = query.NewProjectionMap("public", "document_articles", "da").
	Project("id", "Id").
	Project("document_id", "DocumentId").
	Project("content", "Content").
	Project("ordinal", "Order").
	Project("is_imported", "IsImported").
	Project("article_id", "ArticleId").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var articleSort = []query.SortField{
	{Field: "DocumentId"},
	{Field: "Order"},
}

var creatorProjection = query.NewProjectionMap("public", "users", "u").
	Project("id", "Id").
	Project("username", "Username")
