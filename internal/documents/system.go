package documents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/lab-catalog/internal/articles"
	"github.com/JaimeStill/lab-catalog/internal/bibliography"
	"github.com/JaimeStill/lab-catalog/pkg/auth"
	"github.com/JaimeStill/lab-catalog/pkg/pagination"
	"github.com/JaimeStill/lab-catalog/pkg/queue"
	"github.com/JaimeStill/lab-catalog/pkg/storage"
)

// System defines document upload, parsing, and import operations.
type System interface {
	// Upload stores the file, records the document as uploaded, and
	// schedules parsing. It returns before parsing starts.
	Upload(ctx context.Context, by *auth.Principal, cmd UploadCommand) (*Document, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error)
	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Parse runs extraction and segmentation for an uploaded document and
	// records the parsed or failed outcome.
	Parse(ctx context.Context, id uuid.UUID) error

	Import(ctx context.Context, by *auth.Principal, cmd ImportCommand) (*ImportResult, error)
}

type system struct {
	store   Store
	storage storage.System
	queue   queue.Queue
	parser  *bibliography.Parser
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a System.
type Option func(*system)

// WithClock replaces time.Now for stored filenames and import dates.
func WithClock(now func() time.Time) Option {
	return func(s *system) { s.now = now }
}

// New creates the document system. Parse tasks submitted by Upload are
// handled by the same system through q.
func New(store Store, blobs storage.System, q queue.Queue, parser *bibliography.Parser, logger *slog.Logger, opts ...Option) System {
	s := &system{
		store:   store,
		storage: blobs,
		queue:   q,
		parser:  parser,
		logger:  logger.With("system", "documents"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	q.Handle(TaskParse, s.handleParse)
	return s
}

func (s *system) Upload(ctx context.Context, by *auth.Principal, cmd UploadCommand) (*Document, error) {
	if by == nil {
		return nil, ErrMissingPrincipal
	}
	if cmd.OriginalName == "" || len(cmd.Data) == 0 {
		return nil, ErrInvalidFile
	}
	if err := ValidateUpload(cmd.OriginalName, cmd.MimeType); err != nil {
		return nil, err
	}

	id := uuid.New()
	filename := storedFilename(cmd.OriginalName, s.now())
	key := buildStorageKey(id, filename)

	if err := s.storage.Store(ctx, key, cmd.Data); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	doc, err := s.store.Create(ctx, NewDocument{
		ID:           id,
		Filename:     filename,
		OriginalName: cmd.OriginalName,
		FileSize:     int64(len(cmd.Data)),
		MimeType:     cmd.MimeType,
		StorageKey:   key,
		Creator:      Creator{ID: by.ID, Username: by.Username},
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Error("cleanup failed after db error", "storage_key", key, "error", delErr)
		}
		return nil, err
	}

	s.logger.Info("document uploaded", "id", doc.ID, "original_name", doc.OriginalName, "size", doc.FileSize)

	if err := s.schedule(ctx, doc.ID); err != nil {
		s.logger.Error("parse scheduling failed", "id", doc.ID, "error", err)

		msg := fmt.Sprintf("parse could not be scheduled: %v", err)
		if failErr := s.store.SaveFailed(ctx, doc.ID, msg); failErr != nil {
			s.logger.Error("record parse failure", "id", doc.ID, "error", failErr)
		} else {
			doc.Status = StatusFailed
			doc.ParseError = &msg
		}
	}

	return doc, nil
}

func (s *system) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error) {
	return s.store.List(ctx, page, filters)
}

func (s *system) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	return s.store.Find(ctx, id)
}

func (s *system) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.store.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, doc.StorageKey); err != nil {
		s.logger.Error("storage cleanup failed", "storage_key", doc.StorageKey, "error", err)
	}

	s.logger.Info("document deleted", "id", id, "articles", len(doc.Articles))
	return nil
}

func (s *system) Parse(ctx context.Context, id uuid.UUID) error {
	doc, err := s.store.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.MarkParsing(ctx, id); err != nil {
		return err
	}

	start := time.Now()
	s.logger.Info("document parse started", "id", id, "storage_key", doc.StorageKey)

	seg, text, err := s.extract(ctx, doc)
	if err == nil {
		err = s.store.SaveParsed(ctx, id, text, seg.Blocks)
	}

	if err != nil {
		s.logger.Warn("document parse failed", "id", id, "error", err, "duration", time.Since(start))
		if failErr := s.store.SaveFailed(ctx, id, err.Error()); failErr != nil {
			return fmt.Errorf("record parse failure: %w", failErr)
		}
		return nil
	}

	s.logger.Info("document parsed",
		"id", id,
		"blocks", len(seg.Blocks),
		"tier", seg.Tier.String(),
		"duration", time.Since(start),
	)
	return nil
}

func (s *system) extract(ctx context.Context, doc *Document) (bibliography.Segments, string, error) {
	data, err := s.storage.Retrieve(ctx, doc.StorageKey)
	if err != nil {
		return bibliography.Segments{}, "", fmt.Errorf("read stored file: %w", err)
	}

	text, err := extractText(data)
	if err != nil {
		return bibliography.Segments{}, "", err
	}

	return s.parser.Extract(text), text, nil
}

func (s *system) Import(ctx context.Context, by *auth.Principal, cmd ImportCommand) (*ImportResult, error) {
	if by == nil {
		return nil, ErrMissingPrincipal
	}
	if cmd.DocumentID == uuid.Nil {
		return nil, fmt.Errorf("%w: document id required", ErrInvalidImport)
	}
	if len(cmd.ArticleIDs) == 0 {
		return nil, fmt.Errorf("%w: article ids required", ErrInvalidImport)
	}

	now := s.now()
	derive := func(content string) articles.CreateCommand {
		return articles.FromContent(content, by.ID, now)
	}

	result, err := s.store.Import(ctx, Creator{ID: by.ID, Username: by.Username}, cmd, derive)
	if err != nil {
		if !errors.Is(err, ErrNothingToImport) {
			s.logger.Error("import failed", "document_id", cmd.DocumentID, "error", err)
		}
		return nil, err
	}

	s.logger.Info("articles imported",
		"document_id", cmd.DocumentID,
		"requested", len(cmd.ArticleIDs),
		"count", result.Count,
	)
	return result, nil
}
