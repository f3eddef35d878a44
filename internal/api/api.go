// Package api assembles the catalog API module: domain systems, their HTTP
// handlers, and the generated OpenAPI document.
package api

import (
	"net/http"

	"github.com/JaimeStill/lab-catalog/internal/config"
	"github.com/JaimeStill/lab-catalog/internal/infrastructure"
	"github.com/JaimeStill/lab-catalog/pkg/middleware"
	"github.com/JaimeStill/lab-catalog/pkg/module"
	"github.com/JaimeStill/lab-catalog/pkg/openapi"
)

// NewModule builds the API module mounted at cfg.API.BasePath.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime, err := NewRuntime(cfg, infra)
	if err != nil {
		return nil, err
	}
	domain := NewDomain(runtime)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	cfg.API.OpenAPI.Apply(spec, cfg.Domain)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain, cfg)

	if cfg.API.OpenAPI.Serve() {
		specBytes, err := openapi.MarshalJSON(spec)
		if err != nil {
			return nil, err
		}
		mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
