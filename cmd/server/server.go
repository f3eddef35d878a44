package main

import (
	"time"

	"github.com/JaimeStill/lab-catalog/internal/config"
	"github.com/JaimeStill/lab-catalog/internal/infrastructure"
	"github.com/JaimeStill/lab-catalog/internal/server"
	"github.com/JaimeStill/lab-catalog/pkg/middleware"
)

// Server owns the catalog API process: shared infrastructure, mounted modules,
// and the HTTP listener.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    server.System
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"catalog server initialized",
		"env", cfg.Env(),
		"version", cfg.Version,
		"api", cfg.API.BasePath,
		"reference", modules.Reference != nil,
		"queue", cfg.Queue.Backend,
		"consumers", !cfg.Queue.SubmitOnly,
		"storage", cfg.Storage.Backend,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    server.New(&cfg.Server, middleware.TrimSlash()(router), infra.Logger),
	}, nil
}

// Start brings up infrastructure first so parse workers and the listener
// never run against an unopened pool.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		s.infra.Lifecycle.Shutdown(time.Second)
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("catalog server ready", "addr", s.http.Addr())
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("shutting down", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
