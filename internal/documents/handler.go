package documents

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/lab-catalog/pkg/auth"
	"github.com/JaimeStill/lab-catalog/pkg/handlers"
	"github.com/JaimeStill/lab-catalog/pkg/pagination"
	"github.com/JaimeStill/lab-catalog/pkg/routes"
)

// Handler provides the admin document endpoints. Every route requires a
// principal with the admin role.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
	verifier      auth.Verifier
	adminRole     string
}

// NewHandler creates a document handler with the specified configuration.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
	verifier auth.Verifier,
	adminRole string,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "documents"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
		verifier:      verifier,
		adminRole:     adminRole,
	}
}

// Routes returns the document endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/documents",
		Tags:        []string{"Documents"},
		Description: "Word document upload, parsing, and article import",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.guard(h.Upload), OpenAPI: Spec.Upload},
			{Method: "GET", Pattern: "", Handler: h.guard(h.List), OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.guard(h.Find), OpenAPI: Spec.Find},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.guard(h.Delete), OpenAPI: Spec.Delete},
			{Method: "POST", Pattern: "/{id}/import", Handler: h.guard(h.ImportDocument), OpenAPI: Spec.ImportDocument},
			{Method: "POST", Pattern: "/import", Handler: h.guard(h.Import), OpenAPI: Spec.Import},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) guard(next http.HandlerFunc) http.HandlerFunc {
	return auth.Guard(h.verifier, h.adminRole, h.logger, next)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	principal, _ := auth.PrincipalFrom(r.Context())

	doc, err := h.sys.Upload(r.Context(), principal, UploadCommand{
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Data:         data,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, doc)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	doc, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type importBody struct {
	ArticleIDs []uuid.UUID `json:"article_ids"`
}

// ImportDocument promotes blocks of the document named in the path.
func (h *Handler) ImportDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	body, err := handlers.DecodeJSON[importBody](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.runImport(w, r, ImportCommand{DocumentID: id, ArticleIDs: body.ArticleIDs})
}

// Import promotes blocks with the document id carried in the body.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[ImportCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.runImport(w, r, cmd)
}

func (h *Handler) runImport(w http.ResponseWriter, r *http.Request, cmd ImportCommand) {
	principal, _ := auth.PrincipalFrom(r.Context())

	result, err := h.sys.Import(r.Context(), principal, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
