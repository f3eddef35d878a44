package documents_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/lab-catalog/internal/articles"
	"github.com/JaimeStill/lab-catalog/internal/bibliography"
	"github.com/JaimeStill/lab-catalog/internal/documents"
	"github.com/JaimeStill/lab-catalog/pkg/auth"
	"github.com/JaimeStill/lab-catalog/pkg/lifecycle"
	"github.com/JaimeStill/lab-catalog/pkg/pagination"
	"github.com/JaimeStill/lab-catalog/pkg/queue"
	"github.com/JaimeStill/lab-catalog/pkg/storage"
)

const docxMime = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var (
	admin  = &auth.Principal{ID: uuid.MustParse("0d6f8a8e-5c1b-4f0e-9a57-2b7f4c1d9e01"), Username: "admin", Role: "admin"}
	clock  = time.UnixMilli(1700000000000).UTC()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// fakeStore mirrors the persistence contract in memory.
type fakeStore struct {
	mu        sync.Mutex
	docs      map[uuid.UUID]*documents.Document
	blocks    map[uuid.UUID][]documents.DocumentArticle
	history   map[uuid.UUID][]documents.Status
	created   []articles.CreateCommand
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:    make(map[uuid.UUID]*documents.Document),
		blocks:  make(map[uuid.UUID][]documents.DocumentArticle),
		history: make(map[uuid.UUID][]documents.Status),
	}
}

func (f *fakeStore) setStatus(id uuid.UUID, s documents.Status) {
	f.docs[id].Status = s
	f.history[id] = append(f.history[id], s)
}

func (f *fakeStore) snapshot(id uuid.UUID) documents.Document {
	d := *f.docs[id]
	d.Articles = slices.Clone(f.blocks[id])
	if d.Articles == nil {
		d.Articles = []documents.DocumentArticle{}
	}
	return d
}

func (f *fakeStore) Create(_ context.Context, doc documents.NewDocument) (*documents.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}

	creator := doc.Creator
	f.docs[doc.ID] = &documents.Document{
		ID:           doc.ID,
		Filename:     doc.Filename,
		OriginalName: doc.OriginalName,
		FileSize:     doc.FileSize,
		MimeType:     doc.MimeType,
		StorageKey:   doc.StorageKey,
		CreatedBy:    doc.Creator.ID,
		Creator:      &creator,
		CreatedAt:    clock,
		UpdatedAt:    clock,
	}
	f.setStatus(doc.ID, documents.StatusUploaded)

	d := f.snapshot(doc.ID)
	return &d, nil
}

func (f *fakeStore) List(_ context.Context, page pagination.PageRequest, filters documents.Filters) (*pagination.PageResult[documents.Document], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []documents.Document
	for id, d := range f.docs {
		if filters.Status != nil && d.Status != *filters.Status {
			continue
		}
		out = append(out, f.snapshot(id))
	}
	result := pagination.NewPageResult(out, len(out), page.Page, page.PageSize)
	return &result, nil
}

func (f *fakeStore) Find(_ context.Context, id uuid.UUID) (*documents.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.docs[id]; !ok {
		return nil, documents.ErrNotFound
	}
	d := f.snapshot(id)
	return &d, nil
}

func (f *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.docs[id]; !ok {
		return documents.ErrNotFound
	}
	delete(f.docs, id)
	delete(f.blocks, id)
	return nil
}

func (f *fakeStore) MarkParsing(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, ok := f.docs[id]
	if !ok || d.Status != documents.StatusUploaded {
		return documents.ErrNotPending
	}
	f.setStatus(id, documents.StatusParsing)
	return nil
}

func (f *fakeStore) SaveParsed(_ context.Context, id uuid.UUID, content string, blocks []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, ok := f.docs[id]
	if !ok || d.Status != documents.StatusParsing {
		return documents.ErrNotFound
	}

	d.Content = &content
	d.ArticleCount = len(blocks)
	for i, b := range blocks {
		da := documents.DocumentArticle{
			ID:         uuid.New(),
			DocumentID: id,
			Content:    b,
			Order:      i + 1,
		}
		if rec, ok := bibliography.DecodeRecord(b); ok {
			da.Record = rec
		}
		f.blocks[id] = append(f.blocks[id], da)
	}
	f.setStatus(id, documents.StatusParsed)
	return nil
}

func (f *fakeStore) SaveFailed(_ context.Context, id uuid.UUID, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, ok := f.docs[id]
	if !ok {
		return documents.ErrNotFound
	}
	d.ParseError = &message
	f.setStatus(id, documents.StatusFailed)
	return nil
}

func (f *fakeStore) Import(_ context.Context, _ documents.Creator, cmd documents.ImportCommand, derive documents.DeriveFunc) (*documents.ImportResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var eligible []int
	for i, b := range f.blocks[cmd.DocumentID] {
		if !b.IsImported && slices.Contains(cmd.ArticleIDs, b.ID) {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return nil, documents.ErrNothingToImport
	}

	result := &documents.ImportResult{}
	for _, i := range eligible {
		b := &f.blocks[cmd.DocumentID][i]
		ac := derive(b.Content)
		articleID := uuid.New()

		f.created = append(f.created, ac)
		b.IsImported = true
		b.ArticleID = &articleID

		result.ArticleIDs = append(result.ArticleIDs, articleID)
		result.Imported = append(result.Imported, documents.ImportedArticle{
			DocumentArticleID: b.ID,
			ArticleID:         articleID,
			Title:             ac.Title,
		})
	}
	result.Count = len(result.Imported)
	return result, nil
}

func (f *fakeStore) statusOf(id uuid.UUID) documents.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.docs[id]; ok {
		return d.Status
	}
	return ""
}

// fakeBlobs is an in-memory storage.System.
type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: make(map[string][]byte)}
}

func (b *fakeBlobs) Store(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = slices.Clone(data)
	return nil
}

func (b *fakeBlobs) Retrieve(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (b *fakeBlobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *fakeBlobs) Validate(_ context.Context, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[key]
	return ok, nil
}

func (b *fakeBlobs) Path(_ context.Context, key string) (string, error) {
	return "mem://" + key, nil
}

func (b *fakeBlobs) Start(*lifecycle.Coordinator) error { return nil }

func (b *fakeBlobs) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

// fakeQueue records submissions and runs them on demand.
type fakeQueue struct {
	mu        sync.Mutex
	handlers  map[string]queue.Handler
	tasks     []queue.Task
	submitErr error
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{handlers: make(map[string]queue.Handler)}
}

func (q *fakeQueue) Handle(kind string, h queue.Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[kind] = h
}

func (q *fakeQueue) Submit(_ context.Context, task queue.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.submitErr != nil {
		return q.submitErr
	}
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *fakeQueue) Start(*lifecycle.Coordinator) error { return nil }

// drain runs every pending task and fails the test on handler errors.
func (q *fakeQueue) drain(t *testing.T) {
	t.Helper()

	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, task := range tasks {
		if err := q.run(task); err != nil {
			t.Fatalf("task %s failed: %v", task.Kind, err)
		}
	}
}

func (q *fakeQueue) run(task queue.Task) error {
	q.mu.Lock()
	h := q.handlers[task.Kind]
	q.mu.Unlock()
	return h(context.Background(), task)
}

type env struct {
	store *fakeStore
	blobs *fakeBlobs
	queue *fakeQueue
	sys   documents.System
}

func newEnv(t *testing.T) *env {
	t.Helper()

	parser, err := bibliography.NewParser(nil)
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}

	e := &env{
		store: newFakeStore(),
		blobs: newFakeBlobs(),
		queue: newFakeQueue(),
	}
	e.sys = documents.New(e.store, e.blobs, e.queue, parser, logger, documents.WithClock(func() time.Time { return clock }))
	return e
}

// buildDocx returns a minimal .docx package with one paragraph per entry.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func referenceDocx(t *testing.T) []byte {
	return buildDocx(t,
		"References",
		"1. Smith J, Lee K. A novel assay. Nature Medicine 2021;27(4):512.",
		"2. Doe J. Some short title. Cell 2019.",
	)
}

func legacyDoc() []byte {
	return append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 512)...)
}
