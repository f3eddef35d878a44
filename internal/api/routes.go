package api

import (
	"net/http"

	"github.com/JaimeStill/lab-catalog/internal/articles"
	"github.com/JaimeStill/lab-catalog/internal/config"
	"github.com/JaimeStill/lab-catalog/internal/documents"
	"github.com/JaimeStill/lab-catalog/pkg/openapi"
	"github.com/JaimeStill/lab-catalog/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	articlesHandler := articles.NewHandler(domain.Articles, runtime.Logger, runtime.Pagination)
	documentsHandler := documents.NewHandler(
		domain.Documents,
		runtime.Logger,
		runtime.Pagination,
		cfg.Storage.MaxUploadSizeBytes(),
		runtime.Verifier,
		cfg.Auth.AdminRole,
	)

	routes.Register(
		mux,
		cfg.API.BasePath,
		spec,
		articlesHandler.Routes(),
		documentsHandler.Routes(),
	)
}
