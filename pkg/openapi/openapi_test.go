package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/lab-catalog/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Catalog", "1.2.0")
	spec.SetDescription("articles")
	spec.AddServer("")
	spec.AddServer("http://localhost:8080")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("OpenAPI = %q", spec.OpenAPI)
	}
	if spec.Info.Description != "articles" {
		t.Errorf("Description = %q", spec.Info.Description)
	}
	if len(spec.Servers) != 1 {
		t.Errorf("len(Servers) = %d, want 1", len(spec.Servers))
	}
	for _, name := range []string{"BadRequest", "Unauthorized", "Forbidden", "NotFound", "Conflict"} {
		if spec.Components.Responses[name] == nil {
			t.Errorf("missing response %s", name)
		}
	}
	if spec.Components.SecuritySchemes["bearerAuth"] == nil {
		t.Error("missing bearerAuth scheme")
	}
}

func TestSpec_AddOperation(t *testing.T) {
	spec := openapi.NewSpec("Catalog", "1.0.0")

	methods := []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	for _, m := range methods {
		spec.AddOperation("/documents", m, &openapi.Operation{Summary: m})
	}

	item := spec.Paths["/documents"]
	if item == nil {
		t.Fatal("path not added")
	}
	if item.Get.Summary != "GET" || item.Post.Summary != "POST" || item.Put.Summary != "PUT" ||
		item.Patch.Summary != "PATCH" || item.Delete.Summary != "DELETE" {
		t.Error("operation not attached to the right method")
	}
}

func TestComponents_AddSchemas(t *testing.T) {
	c := openapi.NewComponents()
	c.AddSchemas(map[string]*openapi.Schema{"Article": {Type: "object"}})

	if c.Schemas["Article"] == nil {
		t.Error("schema not added")
	}
	if c.Schemas["PageRequest"] == nil {
		t.Error("PageRequest removed")
	}
}

func TestHelpers(t *testing.T) {
	if ref := openapi.SchemaRef("Article"); ref.Ref != "#/components/schemas/Article" {
		t.Errorf("SchemaRef = %q", ref.Ref)
	}
	if ref := openapi.ResponseRef("NotFound"); ref.Ref != "#/components/responses/NotFound" {
		t.Errorf("ResponseRef = %q", ref.Ref)
	}

	p := openapi.PathParam("id", "Document ID")
	if p.In != "path" || !p.Required || p.Schema.Format != "uuid" {
		t.Errorf("PathParam = %+v", p)
	}

	q := openapi.QueryParam("status", "string", "Status filter", false)
	if q.In != "query" || q.Required || q.Schema.Type != "string" {
		t.Errorf("QueryParam = %+v", q)
	}

	body := openapi.RequestBodyJSON("ImportCommand", true)
	if body.Content["application/json"].Schema.Ref != "#/components/schemas/ImportCommand" {
		t.Error("RequestBodyJSON schema ref mismatch")
	}
}

func TestMarshalAndServe(t *testing.T) {
	spec := openapi.NewSpec("Catalog", "1.0.0")
	spec.AddOperation("/articles", http.MethodGet, &openapi.Operation{
		Summary:   "List articles",
		Responses: map[int]*openapi.Response{200: {Description: "ok"}},
	})

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	rec := httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("served body is not JSON: %v", err)
	}
	if decoded["openapi"] != "3.1.0" {
		t.Errorf("openapi = %v", decoded["openapi"])
	}
}
