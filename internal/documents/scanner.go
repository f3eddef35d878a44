package documents

import (
	"github.com/JaimeStill/lab-catalog/internal/bibliography"
	"github.com/JaimeStill/lab-catalog/pkg/repository"
)

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Filename,
		&d.OriginalName,
		&d.FileSize,
		&d.MimeType,
		&d.StorageKey,
		&d.Status,
		&d.Content,
		&d.ArticleCount,
		&d.ParseError,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func scanDocumentArticle(s repository.Scanner) (DocumentArticle, error) {
	var a DocumentArticle
	err := s.Scan(
		&a.ID,
		&a.DocumentID,
		&a.Content,
		&a.Order,
		&a.IsImported,
		&a.ArticleID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}
	if rec, ok := bibliography.DecodeRecord(a.Content); ok {
		a.Record = rec
	}
	return a, nil
}

func scanCreator(s repository.Scanner) (Creator, error) {
	var c Creator
	err := s.Scan(&c.ID, &c.Username)
	return c, err
}
