// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public
// storefront: marketing pages, the catalog and the lead forms.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"elvcatalog/internal/markdown"
	"elvcatalog/internal/models"
)

//go:embed templates/site/*.html
var siteFS embed.FS

// PageData holds all data passed to storefront templates.
type PageData struct {
	Title       string            // Page title for <title> tag
	Description string            // meta description
	Section     string            // Active nav section (e.g., "products", "contact")
	Categories  []models.Category // nav menu
	Data        map[string]any    // Page-specific data
	Flash       *Flash            // One-time notification message
	Errors      map[string]string // form field errors
	Form        map[string]string // echoed form values after a failed submit
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error"
	Message string
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	templates map[string]*template.Template
}

// funcMap returns the helpers available to every storefront template.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"markdown": markdown.HTML,
		"year":     func() int { return time.Now().Year() },
		"active": func(current, target string) string {
			if current == target {
				return "active"
			}
			return ""
		},
		"categoryURL":    CategoryURL,
		"subcategoryURL": SubCategoryURL,
		"productURL":     ProductURL,
		"categoryProductURL": func(c *models.Category, p *models.Product) string {
			return ProductURL(c, nil, p)
		},
	}
}

// New parses every page template in the embedded set, each paired with
// the base layout.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	pages, err := fs.Glob(siteFS, "templates/site/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(funcMap()).ParseFS(
			siteFS, "templates/site/base.html", page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Page renders name inside the base layout with the given status. The
// output is buffered so a template error still produces a clean 500.
func (rn *Renderer) Page(w http.ResponseWriter, status int, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		slog.Error("template not found", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Has reports whether a page template with this name exists.
func (rn *Renderer) Has(name string) bool {
	_, ok := rn.templates[name]
	return ok
}

// CategoryURL is the storefront path of a category landing page.
func CategoryURL(c *models.Category) string {
	return "/products/" + c.Slug
}

// SubCategoryURL is the storefront path of a subcategory page.
func SubCategoryURL(c *models.Category, sc *models.SubCategory) string {
	return "/products/" + c.Slug + "/" + sc.Slug
}

// ProductURL is the storefront path of a product. Products under a
// subcategory get the three-segment form.
func ProductURL(c *models.Category, sc *models.SubCategory, p *models.Product) string {
	if sc != nil {
		return "/products/" + c.Slug + "/" + sc.Slug + "/" + p.Slug
	}
	return "/products/" + c.Slug + "/" + p.Slug
}
