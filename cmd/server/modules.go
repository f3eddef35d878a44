package main

import (
	"context"
	"net/http"
	"time"

	"github.com/JaimeStill/lab-catalog/internal/api"
	"github.com/JaimeStill/lab-catalog/internal/config"
	"github.com/JaimeStill/lab-catalog/internal/infrastructure"
	"github.com/JaimeStill/lab-catalog/pkg/handlers"
	"github.com/JaimeStill/lab-catalog/pkg/module"
	"github.com/JaimeStill/lab-catalog/web/scalar"
)

const readyTimeout = 2 * time.Second

// Modules holds the HTTP modules mounted on the router. Reference is nil
// when the API document is not published.
type Modules struct {
	API       *module.Module
	Reference *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}
	modules := &Modules{API: apiModule}

	if cfg.API.OpenAPI.Serve() {
		modules.Reference, err = scalar.NewModule("/scalar", cfg.API.OpenAPI.Title, cfg.API.BasePath+"/openapi.json")
		if err != nil {
			return nil, err
		}
	}

	return modules, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	if m.Reference != nil {
		router.Mount(m.Reference)
	}
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		status, healthy := infra.Health(ctx)
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		handlers.RespondJSON(w, code, status)
	})

	return router
}
