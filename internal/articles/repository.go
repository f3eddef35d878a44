package articles

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/lab-catalog/pkg/pagination"
	"github.com/JaimeStill/lab-catalog/pkg/query"
	"github.com/JaimeStill/lab-catalog/pkg/repository"
)

// System defines catalog read operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Article], error)
	Find(ctx context.Context, id uuid.UUID) (*Article, error)
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the catalog system over db.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "articles"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Article], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Authors", "Journal")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanArticle)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Article, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("Id", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanArticle)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

// Insert creates an article using q, which is typically the transaction
// that also marks the source block imported.
func Insert(ctx context.Context, q repository.Querier, cmd CreateCommand) (*Article, error) {
	stmt := `INSERT INTO articles(id, title, authors, journal, volume, issue, pages, published_date,
		doi, abstract, keywords, impact_factor, citation_count, is_open_access, category, status,
		created_by, updated_by)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)
		RETURNING ` + returning

	a, err := repository.QueryOne(ctx, q, stmt, []any{
		uuid.New(), cmd.Title, cmd.Authors, cmd.Journal, cmd.Volume, cmd.Issue, cmd.Pages,
		cmd.PublishedDate, cmd.DOI, cmd.Abstract, cmd.Keywords, cmd.ImpactFactor,
		cmd.CitationCount, cmd.OpenAccess, cmd.Category, cmd.Status, cmd.CreatedBy,
	}, scanArticle)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}
