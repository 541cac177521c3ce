// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalogtest provides in-memory catalog repositories and assets
// for tests. They mirror the PostgreSQL constraints the store relies on:
// unique slugs and restricting foreign keys.
package catalogtest

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"elvcatalog/internal/catalog"
	"elvcatalog/internal/models"
)

// Catalog holds all three tables behind one lock so foreign keys can be
// checked across them.
type Catalog struct {
	mu            sync.Mutex
	categories    map[uuid.UUID]models.Category
	subcategories map[uuid.UUID]models.SubCategory
	products      map[uuid.UUID]models.Product

	// Err, when set, is returned by every repository call.
	Err error
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		categories:    make(map[uuid.UUID]models.Category),
		subcategories: make(map[uuid.UUID]models.SubCategory),
		products:      make(map[uuid.UUID]models.Product),
	}
}

// Categories returns the category repository.
func (c *Catalog) Categories() catalog.CategoryRepository { return categoryRepo{c} }

// SubCategories returns the subcategory repository.
func (c *Catalog) SubCategories() catalog.SubCategoryRepository { return subCategoryRepo{c} }

// Products returns the product repository.
func (c *Catalog) Products() catalog.ProductRepository { return productRepo{c} }

// Service wires a catalog.Service over c and assets.
func (c *Catalog) Service(assets catalog.Assets) *catalog.Service {
	return catalog.NewService(c.Categories(), c.SubCategories(), c.Products(), assets)
}

// Resolver wires a catalog.Resolver over c.
func (c *Catalog) Resolver() *catalog.Resolver {
	return catalog.NewResolver(c.Categories(), c.SubCategories(), c.Products())
}

// --- categories ---

type categoryRepo struct{ c *Catalog }

func (r categoryRepo) List(activeOnly bool) ([]models.Category, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	var out []models.Category
	for _, cat := range r.c.categories {
		if activeOnly && !cat.IsActive {
			continue
		}
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r categoryRepo) FindByID(id uuid.UUID) (*models.Category, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	cat, ok := r.c.categories[id]
	if !ok {
		return nil, nil
	}
	return &cat, nil
}

func (r categoryRepo) FindBySlug(slug string) (*models.Category, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	for _, cat := range r.c.categories {
		if cat.Slug == slug {
			return &cat, nil
		}
	}
	return nil, nil
}

func (r categoryRepo) Create(cat *models.Category) (*models.Category, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	for _, other := range r.c.categories {
		if other.Slug == cat.Slug {
			return nil, fmt.Errorf("create category: %w", models.ErrDuplicateSlug)
		}
	}
	out := *cat
	out.ID = uuid.New()
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	r.c.categories[out.ID] = out
	return &out, nil
}

func (r categoryRepo) Update(cat *models.Category) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return r.c.Err
	}
	if _, ok := r.c.categories[cat.ID]; !ok {
		return models.ErrNotFound
	}
	for id, other := range r.c.categories {
		if id != cat.ID && other.Slug == cat.Slug {
			return fmt.Errorf("update category: %w", models.ErrDuplicateSlug)
		}
	}
	cat.UpdatedAt = time.Now()
	r.c.categories[cat.ID] = *cat
	return nil
}

func (r categoryRepo) Delete(id uuid.UUID) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return r.c.Err
	}
	if _, ok := r.c.categories[id]; !ok {
		return models.ErrNotFound
	}
	for _, sc := range r.c.subcategories {
		if sc.CategoryID == id {
			return fmt.Errorf("delete category: %w", models.ErrInUse)
		}
	}
	for _, p := range r.c.products {
		if p.CategoryID == id {
			return fmt.Errorf("delete category: %w", models.ErrInUse)
		}
	}
	delete(r.c.categories, id)
	return nil
}

// --- subcategories ---

type subCategoryRepo struct{ c *Catalog }

func (r subCategoryRepo) List(categoryID *uuid.UUID, activeOnly bool) ([]models.SubCategory, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	var out []models.SubCategory
	for _, sc := range r.c.subcategories {
		if categoryID != nil && sc.CategoryID != *categoryID {
			continue
		}
		if activeOnly && !sc.IsActive {
			continue
		}
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r subCategoryRepo) FindByID(id uuid.UUID) (*models.SubCategory, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	sc, ok := r.c.subcategories[id]
	if !ok {
		return nil, nil
	}
	return &sc, nil
}

func (r subCategoryRepo) FindBySlug(categoryID uuid.UUID, slug string) (*models.SubCategory, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	for _, sc := range r.c.subcategories {
		if sc.CategoryID == categoryID && sc.Slug == slug {
			return &sc, nil
		}
	}
	return nil, nil
}

func (r subCategoryRepo) Create(sc *models.SubCategory) (*models.SubCategory, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	if _, ok := r.c.categories[sc.CategoryID]; !ok {
		return nil, fmt.Errorf("create subcategory: missing category %s", sc.CategoryID)
	}
	for _, other := range r.c.subcategories {
		if other.Slug == sc.Slug {
			return nil, fmt.Errorf("create subcategory: %w", models.ErrDuplicateSlug)
		}
	}
	out := *sc
	out.ID = uuid.New()
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	r.c.subcategories[out.ID] = out
	return &out, nil
}

func (r subCategoryRepo) Update(sc *models.SubCategory) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return r.c.Err
	}
	if _, ok := r.c.subcategories[sc.ID]; !ok {
		return models.ErrNotFound
	}
	for id, other := range r.c.subcategories {
		if id != sc.ID && other.Slug == sc.Slug {
			return fmt.Errorf("update subcategory: %w", models.ErrDuplicateSlug)
		}
	}
	sc.UpdatedAt = time.Now()
	r.c.subcategories[sc.ID] = *sc
	return nil
}

func (r subCategoryRepo) Delete(id uuid.UUID) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return r.c.Err
	}
	if _, ok := r.c.subcategories[id]; !ok {
		return models.ErrNotFound
	}
	for _, p := range r.c.products {
		if p.InSubCategory(id) {
			return fmt.Errorf("delete subcategory: %w", models.ErrInUse)
		}
	}
	delete(r.c.subcategories, id)
	return nil
}

func (r subCategoryRepo) CountByCategory(categoryID uuid.UUID) (int, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return 0, r.c.Err
	}
	n := 0
	for _, sc := range r.c.subcategories {
		if sc.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// --- products ---

type productRepo struct{ c *Catalog }

func (r productRepo) List(f catalog.ProductFilter) ([]models.Product, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	var out []models.Product
	for _, p := range r.c.products {
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		if f.SubCategoryID != nil && !p.InSubCategory(*f.SubCategoryID) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r productRepo) FindByID(id uuid.UUID) (*models.Product, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	p, ok := r.c.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) FindBySlug(slug string) (*models.Product, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	for _, p := range r.c.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, nil
}

func (r productRepo) Create(p *models.Product) (*models.Product, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return nil, r.c.Err
	}
	for _, other := range r.c.products {
		if other.Slug == p.Slug {
			return nil, fmt.Errorf("create product: %w", models.ErrDuplicateSlug)
		}
	}
	out := *p
	out.ID = uuid.New()
	out.KeyFeatures = append([]string{}, p.KeyFeatures...)
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	r.c.products[out.ID] = out
	return &out, nil
}

func (r productRepo) Update(p *models.Product) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return r.c.Err
	}
	if _, ok := r.c.products[p.ID]; !ok {
		return models.ErrNotFound
	}
	for id, other := range r.c.products {
		if id != p.ID && other.Slug == p.Slug {
			return fmt.Errorf("update product: %w", models.ErrDuplicateSlug)
		}
	}
	p.UpdatedAt = time.Now()
	r.c.products[p.ID] = *p
	return nil
}

func (r productRepo) Delete(id uuid.UUID) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return r.c.Err
	}
	if _, ok := r.c.products[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.c.products, id)
	return nil
}

func (r productRepo) CountByCategory(categoryID uuid.UUID) (int, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return 0, r.c.Err
	}
	n := 0
	for _, p := range r.c.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r productRepo) CountBySubCategory(subCategoryID uuid.UUID) (int, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if r.c.Err != nil {
		return 0, r.c.Err
	}
	n := 0
	for _, p := range r.c.products {
		if p.InSubCategory(subCategoryID) {
			n++
		}
	}
	return n, nil
}

// --- assets ---

// ErrAssets is a generic storage failure for tests.
var ErrAssets = errors.New("storage unavailable")

// Assets records uploads and deletes in memory.
type Assets struct {
	mu      sync.Mutex
	seq     int
	Uploads []string
	Deleted []string

	// FailUpload and FailDelete, when set, are returned by the matching call.
	FailUpload error
	FailDelete error
}

func (a *Assets) UploadImage(ctx context.Context, f *catalog.Upload, folder string) (string, error) {
	return a.store(f, folder)
}

func (a *Assets) UploadPDF(ctx context.Context, f *catalog.Upload, folder string) (string, error) {
	return a.store(f, folder)
}

func (a *Assets) store(f *catalog.Upload, folder string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.FailUpload != nil {
		return "", a.FailUpload
	}
	a.seq++
	url := fmt.Sprintf("https://assets.test/%s/%d-%s", folder, a.seq, path.Base(f.Filename))
	a.Uploads = append(a.Uploads, url)
	return url, nil
}

func (a *Assets) Delete(ctx context.Context, url string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.FailDelete != nil {
		return a.FailDelete
	}
	a.Deleted = append(a.Deleted, url)
	return nil
}

// DeletedURLs returns a copy of the deleted URLs.
func (a *Assets) DeletedURLs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.Deleted...)
}
