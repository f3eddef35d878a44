// Package scalar serves the interactive API reference rendered by Scalar.
package scalar

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/lab-catalog/pkg/module"
)

//go:embed index.html
var indexHTML string

var page = template.Must(template.New("index").Parse(indexHTML))

// NewModule mounts the reference page at prefix, loading the OpenAPI
// document from specURL.
func NewModule(prefix, title, specURL string) (*module.Module, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, struct{ Title, SpecURL string }{title, specURL}); err != nil {
		return nil, err
	}
	body := buf.Bytes()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})

	return module.New(prefix, mux), nil
}
