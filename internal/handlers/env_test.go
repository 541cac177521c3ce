// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// env_test.go provides shared test infrastructure for the handler tests.
// Handlers run against the in-memory catalog and lead fakes, so no
// database or Valkey is needed.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"elvcatalog/internal/catalog"
	"elvcatalog/internal/catalog/catalogtest"
	"elvcatalog/internal/leads/leadstest"
	"elvcatalog/internal/models"
	"elvcatalog/internal/render"
)

// testEnv holds the handler groups and the fakes behind them.
type testEnv struct {
	Catalog *catalogtest.Catalog
	Assets  *catalogtest.Assets
	Leads   *leadstest.Leads

	CatalogSvc *catalog.Service
	CatalogAPI *CatalogAPI
	LeadsAPI   *LeadsAPI
	Site       *Site

	mux chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cat := catalogtest.New()
	assets := &catalogtest.Assets{}
	lds := leadstest.New()

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	svc := cat.Service(assets)
	resolver := cat.Resolver()
	leadsSvc := lds.Service(cat.Products())

	env := &testEnv{
		Catalog:    cat,
		Assets:     assets,
		Leads:      lds,
		CatalogSvc: svc,
		CatalogAPI: NewCatalogAPI(svc, resolver),
		LeadsAPI:   NewLeadsAPI(leadsSvc),
		Site:       NewSite(renderer, resolver, leadsSvc),
	}
	env.mux = env.routes()
	return env
}

// routes mounts the handlers on the same paths the router uses, without
// the auth and rate limit middleware.
func (e *testEnv) routes() chi.Router {
	r := chi.NewRouter()
	a, l, s := e.CatalogAPI, e.LeadsAPI, e.Site

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", a.ListCategories)
		r.Post("/categories", a.CreateCategory)
		r.Get("/categories/{id}", a.GetCategory)
		r.Put("/categories/{id}", a.UpdateCategory)
		r.Delete("/categories/{id}", a.DeleteCategory)

		r.Get("/subcategories", a.ListSubCategories)
		r.Post("/subcategories", a.CreateSubCategory)
		r.Get("/subcategories/{id}", a.GetSubCategory)
		r.Put("/subcategories/{id}", a.UpdateSubCategory)
		r.Delete("/subcategories/{id}", a.DeleteSubCategory)

		r.Get("/products", a.ListProducts)
		r.Post("/products", a.CreateProduct)
		r.Get("/products/{id}", a.GetProduct)
		r.Put("/products/{id}", a.UpdateProduct)
		r.Delete("/products/{id}", a.DeleteProduct)

		r.Get("/catalog/{category}", a.Resolve)
		r.Get("/catalog/{category}/*", a.Resolve)

		r.Post("/contacts", l.SubmitContact)
		r.Get("/contacts", l.ListContacts)
		r.Get("/contacts/{id}", l.GetContact)
		r.Patch("/contacts/{id}", l.PatchContact)
		r.Delete("/contacts/{id}", l.DeleteContact)

		r.Post("/product-inquiries", l.SubmitInquiry)
		r.Get("/product-inquiries", l.ListInquiries)
		r.Get("/product-inquiries/{id}", l.GetInquiry)
		r.Patch("/product-inquiries/{id}", l.PatchInquiry)
		r.Delete("/product-inquiries/{id}", l.DeleteInquiry)

		r.Post("/subscriptions", l.Subscribe)
		r.Get("/subscriptions", l.ListSubscriptions)
		r.Patch("/subscriptions/{id}", l.PatchSubscription)
		r.Delete("/subscriptions/{id}", l.DeleteSubscription)
	})

	r.Get("/", s.Page("home", "home", "Home"))
	r.Get("/contact", s.Page("contact", "contact", "Contact"))
	r.Get("/products", s.Products)
	r.Get("/products/{category}", s.Catalog)
	r.Get("/products/{category}/*", s.Catalog)
	r.Post("/contact", s.ContactSubmit)
	r.Post("/inquiry", s.InquirySubmit)
	r.Post("/subscribe", s.Subscribe)
	r.NotFound(s.NotFound)
	return r
}

// do sends a request through the test mux.
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

// doJSON sends body encoded as JSON. A nil body sends no payload.
func (e *testEnv) doJSON(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(jsonRequest(t, method, target, body))
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// doForm sends an url-encoded form.
func (e *testEnv) doForm(method, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

// doMultipart sends fields and files (field name to file name) as
// multipart/form-data. File contents are a fixed placeholder; the fake
// assets do not inspect them.
func (e *testEnv) doMultipart(t *testing.T, method, target string, fields map[string]string, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for field, name := range files {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write([]byte("file-bytes"))
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(req)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

// --- Fixtures ---

func (e *testEnv) category(t *testing.T, name string, dt models.DisplayType) *models.Category {
	t.Helper()
	c, err := e.CatalogSvc.CreateCategory(context.Background(), catalog.CategoryInput{Name: &name, DisplayType: &dt})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

func (e *testEnv) subcategory(t *testing.T, categoryID uuid.UUID, name string) *models.SubCategory {
	t.Helper()
	sc, err := e.CatalogSvc.CreateSubCategory(context.Background(), catalog.SubCategoryInput{Name: &name, CategoryID: &categoryID})
	if err != nil {
		t.Fatalf("create subcategory %q: %v", name, err)
	}
	return sc
}

func (e *testEnv) product(t *testing.T, categoryID uuid.UUID, subID *uuid.UUID, name string) *models.Product {
	t.Helper()
	in := catalog.ProductInput{
		Name:          &name,
		Description:   strPtr("**Rugged** outdoor unit"),
		KeyFeatures:   []string{"4K sensor", "IP67"},
		CategoryID:    &categoryID,
		SubCategoryID: subID,
	}
	in.Images[0] = &catalog.Upload{Filename: "main.jpg", Data: []byte("img")}
	p, err := e.CatalogSvc.CreateProduct(context.Background(), in)
	if err != nil {
		t.Fatalf("create product %q: %v", name, err)
	}
	return p
}

func newGet(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}
