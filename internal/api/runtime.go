package api

import (
	"fmt"

	"github.com/JaimeStill/lab-catalog/internal/bibliography"
	"github.com/JaimeStill/lab-catalog/internal/config"
	"github.com/JaimeStill/lab-catalog/internal/infrastructure"
	"github.com/JaimeStill/lab-catalog/pkg/auth"
	"github.com/JaimeStill/lab-catalog/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Verifier   auth.Verifier
	Parser     *bibliography.Parser
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	parser, err := bibliography.NewParser(cfg.Parsing.JournalSuffixes)
	if err != nil {
		return nil, fmt.Errorf("parser init failed: %w", err)
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Queue:     infra.Queue,
		},
		Pagination: cfg.API.Pagination,
		Verifier:   auth.NewVerifier([]byte(cfg.Auth.Secret), cfg.Auth.Issuer),
		Parser:     parser,
	}, nil
}
