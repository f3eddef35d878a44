package articles

import (
	"github.com/JaimeStill/lab-catalog/pkg/query"
	"github.com/JaimeStill/lab-catalog/pkg/repository"
)

var projection = query.NewProjectionMap("public", "articles", "a").
	Project("id", "Id").
	Project("title", "Title").
	Project("authors", "Authors").
	Project("journal", "Journal").
	Project("volume", "Volume").
	Project("issue", "Issue").
	Project("pages", "Pages").
	Project("published_date", "PublishedDate").
	Project("doi", "Doi").
	Project("abstract", "Abstract").
	Project("keywords", "Keywords").
	Project("impact_factor", "ImpactFactor").
	Project("citation_count", "CitationCount").
	Project("is_open_access", "OpenAccess").
	Project("category", "Category").
	Project("status", "Status").
	Project("created_by", "CreatedBy").
	Project("updated_by", "UpdatedBy").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "PublishedDate", Descending: true}

const returning = `id, title, authors, journal, volume, issue, pages, published_date, doi,
	abstract, keywords, impact_factor, citation_count, is_open_access, category, status,
	created_by, updated_by, created_at, updated_at`

// scanArticle reads a row in returning order. volume, issue, pages, and doi
// are nullable for entries created outside the import path and read as "".
func scanArticle(s repository.Scanner) (Article, error) {
	var (
		a                         Article
		volume, issue, pages, doi *string
	)
	err := s.Scan(
		&a.ID,
		&a.Title,
		&a.Authors,
		&a.Journal,
		&volume,
		&issue,
		&pages,
		&a.PublishedDate,
		&doi,
		&a.Abstract,
		&a.Keywords,
		&a.ImpactFactor,
		&a.CitationCount,
		&a.OpenAccess,
		&a.Category,
		&a.Status,
		&a.CreatedBy,
		&a.UpdatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}
	a.Volume = value(volume)
	a.Issue = value(issue)
	a.Pages = value(pages)
	a.DOI = value(doi)
	return a, nil
}
