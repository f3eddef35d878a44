package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/lab-catalog/internal/articles"
	"github.com/JaimeStill/lab-catalog/pkg/pagination"
	"github.com/JaimeStill/lab-catalog/pkg/query"
	"github.com/JaimeStill/lab-catalog/pkg/repository"
)

// DeriveFunc maps stored block content to a new catalog entry.
type DeriveFunc func(content string) articles.CreateCommand

// Store persists documents and their parsed blocks.
type Store interface {
	Create(ctx context.Context, doc NewDocument) (*Document, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error)
	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// MarkParsing moves an uploaded document to parsing. It returns
	// ErrNotPending when the document is in any other state.
	MarkParsing(ctx context.Context, id uuid.UUID) error

	// SaveParsed records the extracted text and inserts one
	// DocumentArticle per block, numbered from 1, in one transaction.
	SaveParsed(ctx context.Context, id uuid.UUID, content string, blocks []string) error

	SaveFailed(ctx context.Context, id uuid.UUID, message string) error

	// Import creates an article for every eligible block in cmd and marks
	// the block imported, all in one transaction. A block is eligible when
	// it belongs to cmd.DocumentID and is not yet imported.
	Import(ctx context.Context, by Creator, cmd ImportCommand, derive DeriveFunc) (*ImportResult, error)
}

type pgStore struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// NewStore creates a Store backed by PostgreSQL.
func NewStore(db *sql.DB, logger *slog.Logger, pagination pagination.Config) Store {
	return &pgStore{
		db:         db,
		logger:     logger.With("system", "documents.store"),
		pagination: pagination,
	}
}

func (s *pgStore) Create(ctx context.Context, doc NewDocument) (*Document, error) {
	q := `INSERT INTO documents(id, filename, original_name, file_size, mime_type, storage_key, status, created_by)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, filename, original_name, file_size, mime_type, storage_key, status, content,
			article_count, parse_error, created_by, created_at, updated_at`

	created, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Document, error) {
		if err := upsertCreator(ctx, tx, doc.Creator); err != nil {
			return Document{}, err
		}
		return repository.QueryOne(ctx, tx, q, []any{
			doc.ID, doc.Filename, doc.OriginalName, doc.FileSize, doc.MimeType,
			doc.StorageKey, StatusUploaded, doc.Creator.ID,
		}, scanDocument)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	creator := doc.Creator
	created.Creator = &creator
	created.Articles = []DocumentArticle{}
	return &created, nil
}

func (s *pgStore) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error) {
	page.Normalize(s.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "OriginalName", "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, s.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	if err := s.attach(ctx, docs); err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (s *pgStore) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("Id", id)

	doc, err := repository.QueryOne(ctx, s.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	docs := []Document{doc}
	if err := s.attach(ctx, docs); err != nil {
		return nil, err
	}
	return &docs[0], nil
}

func (s *pgStore) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM documents WHERE id = $1`
	_, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (s *pgStore) MarkParsing(ctx context.Context, id uuid.UUID) error {
	q := `UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`
	err := repository.ExecExpectOne(ctx, s.db, q, StatusParsing, id, StatusUploaded)
	if errors.Is(err, repository.ErrNoRowsAffected) {
		return ErrNotPending
	}
	return err
}

func (s *pgStore) SaveParsed(ctx context.Context, id uuid.UUID, content string, blocks []string) error {
	update := `UPDATE documents
		SET status = $1, content = $2, article_count = $3, parse_error = NULL, updated_at = NOW()
		WHERE id = $4 AND status = $5`
	insert := `INSERT INTO document_articles(id, document_id, content, ordinal) VALUES($1, $2, $3, $4)`

	_, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(ctx, tx, update, StatusParsed, content, len(blocks), id, StatusParsing); err != nil {
			return struct{}{}, err
		}
		for i, block := range blocks {
			if _, err := tx.ExecContext(ctx, insert, uuid.New(), id, block, i+1); err != nil {
				return struct{}{}, fmt.Errorf("insert block %d: %w", i+1, err)
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (s *pgStore) SaveFailed(ctx context.Context, id uuid.UUID, message string) error {
	q := `UPDATE documents SET status = $1, parse_error = $2, updated_at = NOW() WHERE id = $3`
	if err := repository.ExecExpectOne(ctx, s.db, q, StatusFailed, message, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (s *pgStore) Import(ctx context.Context, by Creator, cmd ImportCommand, derive DeriveFunc) (*ImportResult, error) {
	ids := make([]any, len(cmd.ArticleIDs))
	for i, id := range cmd.ArticleIDs {
		ids[i] = id
	}

	selectSQL, selectArgs := query.
		NewBuilder(articleProjection, articleSort...).
		WhereEquals("DocumentId", cmd.DocumentID).
		WhereEquals("IsImported", false).
		WhereIn("Id", ids).
		Build()
	selectSQL += " FOR UPDATE"

	mark := `UPDATE document_articles SET is_imported = true, article_id = $1, updated_at = NOW()
		WHERE id = $2 AND is_imported = false`

	return repository.WithTx(ctx, s.db, func(tx *sql.Tx) (*ImportResult, error) {
		eligible, err := repository.QueryMany(ctx, tx, selectSQL, selectArgs, scanDocumentArticle)
		if err != nil {
			return nil, fmt.Errorf("select eligible articles: %w", err)
		}
		if len(eligible) == 0 {
			return nil, ErrNothingToImport
		}

		if err := upsertCreator(ctx, tx, by); err != nil {
			return nil, err
		}

		result := &ImportResult{
			ArticleIDs: make([]uuid.UUID, 0, len(eligible)),
			Imported:   make([]ImportedArticle, 0, len(eligible)),
		}

		for _, da := range eligible {
			article, err := articles.Insert(ctx, tx, derive(da.Content))
			if err != nil {
				return nil, fmt.Errorf("create article from %s: %w", da.ID, err)
			}

			if err := repository.ExecExpectOne(ctx, tx, mark, article.ID, da.ID); err != nil {
				if errors.Is(err, repository.ErrNoRowsAffected) {
					return nil, fmt.Errorf("%w: %s", ErrAlreadyImported, da.ID)
				}
				return nil, err
			}

			result.ArticleIDs = append(result.ArticleIDs, article.ID)
			result.Imported = append(result.Imported, ImportedArticle{
				DocumentArticleID: da.ID,
				ArticleID:         article.ID,
				Title:             article.Title,
			})
		}

		result.Count = len(result.Imported)
		return result, nil
	})
}

// attach loads the blocks and creator of each document in docs.
func (s *pgStore) attach(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	docIDs := make([]any, len(docs))
	creatorIDs := make([]any, 0, len(docs))
	seen := make(map[uuid.UUID]bool, len(docs))
	for i, d := range docs {
		docIDs[i] = d.ID
		if !seen[d.CreatedBy] {
			seen[d.CreatedBy] = true
			creatorIDs = append(creatorIDs, d.CreatedBy)
		}
	}

	articleSQL, articleArgs := query.
		NewBuilder(articleProjection, articleSort...).
		WhereIn("DocumentId", docIDs).
		Build()

	blocks, err := repository.QueryMany(ctx, s.db, articleSQL, articleArgs, scanDocumentArticle)
	if err != nil {
		return fmt.Errorf("query document articles: %w", err)
	}

	creatorSQL, creatorArgs := query.
		NewBuilder(creatorProjection).
		WhereIn("Id", creatorIDs).
		Build()

	creators, err := repository.QueryMany(ctx, s.db, creatorSQL, creatorArgs, scanCreator)
	if err != nil {
		return fmt.Errorf("query creators: %w", err)
	}

	byDoc := make(map[uuid.UUID][]DocumentArticle, len(docs))
	for _, b := range blocks {
		byDoc[b.DocumentID] = append(byDoc[b.DocumentID], b)
	}

	byID := make(map[uuid.UUID]Creator, len(creators))
	for _, c := range creators {
		byID[c.ID] = c
	}

	for i := range docs {
		docs[i].Articles = byDoc[docs[i].ID]
		if docs[i].Articles == nil {
			docs[i].Articles = []DocumentArticle{}
		}
		if c, ok := byID[docs[i].CreatedBy]; ok {
			docs[i].Creator = &c
		}
	}
	return nil
}

func upsertCreator(ctx context.Context, tx *sql.Tx, c Creator) error {
	q := `INSERT INTO users(id, username) VALUES($1, $2)
		ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, updated_at = NOW()`
	if _, err := tx.ExecContext(ctx, q, c.ID, c.Username); err != nil {
		return fmt.Errorf("upsert creator: %w", err)
	}
	return nil
}
