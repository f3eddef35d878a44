// Package documents manages uploaded Word documents, parses them into
// candidate article blocks in the background, and promotes selected blocks
// into the article catalog.
package documents

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/lab-catalog/internal/bibliography"
)

// Status tracks a document through parsing.
type Status string

const (
	StatusUploaded Status = "uploaded"
	StatusParsing  Status = "parsing"
	StatusParsed   Status = "parsed"
	StatusFailed   Status = "failed"
)

// Document is an uploaded file and its parse outcome.
type Document struct {
	ID           uuid.UUID         `json:"id"`
	Filename     string            `json:"filename"`
	OriginalName string            `json:"original_name"`
	FileSize     int64             `json:"file_size"`
	MimeType     string            `json:"mime_type"`
	StorageKey   string            `json:"storage_key"`
	Status       Status            `json:"status"`
	Content      *string           `json:"content,omitempty"`
	ArticleCount int               `json:"article_count"`
	ParseError   *string           `json:"parse_error"`
	CreatedBy    uuid.UUID         `json:"created_by"`
	Creator      *Creator          `json:"creator,omitempty"`
	Articles     []DocumentArticle `json:"articles"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// DocumentArticle is one candidate block parsed from a document. Content is
// either a structured record in JSON or the plain block text.
type DocumentArticle struct {
	ID         uuid.UUID            `json:"id"`
	DocumentID uuid.UUID            `json:"document_id"`
	Content    string               `json:"content"`
	Order      int                  `json:"order"`
	IsImported bool                 `json:"is_imported"`
	ArticleID  *uuid.UUID           `json:"article_id"`
	Record     *bibliography.Record `json:"record"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// Creator is the admin who uploaded a document.
type Creator struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// UploadCommand carries a received file.
type UploadCommand struct {
	OriginalName string
	MimeType     string
	Data         []byte
}

// NewDocument is the row written when an upload is accepted.
type NewDocument struct {
	ID           uuid.UUID
	Filename     string
	OriginalName string
	FileSize     int64
	MimeType     string
	StorageKey   string
	Creator      Creator
}

// ImportCommand selects blocks of one document for promotion.
type ImportCommand struct {
	DocumentID uuid.UUID   `json:"document_id"`
	ArticleIDs []uuid.UUID `json:"article_ids"`
}

// ImportedArticle links a promoted block to the article created from it.
type ImportedArticle struct {
	DocumentArticleID uuid.UUID `json:"document_article_id"`
	ArticleID         uuid.UUID `json:"article_id"`
	Title             string    `json:"title"`
}

// ImportResult reports the articles created by an import.
type ImportResult struct {
	Count      int               `json:"count"`
	ArticleIDs []uuid.UUID       `json:"article_ids"`
	Imported   []ImportedArticle `json:"imported_articles"`
}
