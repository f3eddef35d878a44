package api

import (
	"github.com/JaimeStill/lab-catalog/internal/articles"
	"github.com/JaimeStill/lab-catalog/internal/documents"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Articles  articles.System
	Documents documents.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Articles: articles.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		),
		Documents: documents.New(
			documents.NewStore(runtime.Database.Connection(), runtime.Logger, runtime.Pagination),
			runtime.Storage,
			runtime.Queue,
			runtime.Parser,
			runtime.Logger,
		),
	}
}
