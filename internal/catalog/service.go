// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"elvcatalog/internal/models"
	"elvcatalog/internal/slug"
)

// Service runs the admin workflows over the catalog hierarchy.
type Service struct {
	categories    CategoryRepository
	subcategories SubCategoryRepository
	products      ProductRepository
	assets        Assets
	guard         *Guard
}

// NewService creates a new Service. assets may be nil when no storage
// backend is configured; uploads are then rejected.
func NewService(categories CategoryRepository, subcategories SubCategoryRepository, products ProductRepository, assets Assets) *Service {
	return &Service{
		categories:    categories,
		subcategories: subcategories,
		products:      products,
		assets:        assets,
		guard:         NewGuard(subcategories, products),
	}
}

// CategoryInput carries admin fields for a category. Nil fields are left
// unchanged on update.
type CategoryInput struct {
	Name        *string
	Description *string
	DisplayType *models.DisplayType
	IsActive    *bool
	Image       *Upload
	RemoveImage bool
}

// SubCategoryInput carries admin fields for a subcategory.
type SubCategoryInput struct {
	Name        *string
	Description *string
	CategoryID  *uuid.UUID
	IsActive    *bool
	SEO         *models.SEO
	Image       *Upload
	RemoveImage bool
}

// ProductInput carries admin fields for a product. KeyFeatures replaces
// the stored list whenever it is non-nil. Images and RemoveImages are
// indexed by slot, image1 first.
type ProductInput struct {
	Name             *string
	Description      *string
	KeyFeatures      []string
	CategoryID       *uuid.UUID
	SubCategoryID    *uuid.UUID
	ClearSubCategory bool
	SEO              *models.SEO
	Images           [models.MaxProductImages]*Upload
	RemoveImages     [models.MaxProductImages]bool
	PDF              *Upload
	RemovePDF        bool
}

// --- Reads ---

// ListCategories returns all categories, or only active ones.
func (s *Service) ListCategories(activeOnly bool) ([]models.Category, error) {
	return s.categories.List(activeOnly)
}

// Category returns a category by ID or models.ErrNotFound.
func (s *Service) Category(id uuid.UUID) (*models.Category, error) {
	c, err := s.categories.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, models.ErrNotFound
	}
	return c, nil
}

// CategoryBySlug returns a category by slug or models.ErrNotFound.
func (s *Service) CategoryBySlug(categorySlug string) (*models.Category, error) {
	c, err := s.categories.FindBySlug(categorySlug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, models.ErrNotFound
	}
	return c, nil
}

// ListSubCategories returns subcategories, optionally of one category.
func (s *Service) ListSubCategories(categoryID *uuid.UUID, activeOnly bool) ([]models.SubCategory, error) {
	return s.subcategories.List(categoryID, activeOnly)
}

// SubCategory returns a subcategory by ID or models.ErrNotFound.
func (s *Service) SubCategory(id uuid.UUID) (*models.SubCategory, error) {
	sc, err := s.subcategories.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, models.ErrNotFound
	}
	return sc, nil
}

// ListProducts returns products matching f.
func (s *Service) ListProducts(f ProductFilter) ([]models.Product, error) {
	return s.products.List(f)
}

// Product returns a product by ID or models.ErrNotFound.
func (s *Service) Product(id uuid.UUID) (*models.Product, error) {
	p, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, models.ErrNotFound
	}
	return p, nil
}

// ProductBySlug returns a product by its global slug or models.ErrNotFound.
func (s *Service) ProductBySlug(productSlug string) (*models.Product, error) {
	p, err := s.products.FindBySlug(productSlug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, models.ErrNotFound
	}
	return p, nil
}

// Parents loads the category and, if set, the subcategory of p. Either may
// be nil if the row vanished concurrently.
func (s *Service) Parents(p *models.Product) (*models.Category, *models.SubCategory, error) {
	cat, err := s.categories.FindByID(p.CategoryID)
	if err != nil {
		return nil, nil, fmt.Errorf("load product category: %w", err)
	}
	if p.SubCategoryID == nil {
		return cat, nil, nil
	}
	sub, err := s.subcategories.FindByID(*p.SubCategoryID)
	if err != nil {
		return nil, nil, fmt.Errorf("load product subcategory: %w", err)
	}
	return cat, sub, nil
}

// --- Categories ---

// CreateCategory validates in, uploads the image and inserts the row.
// DisplayType defaults to subcategories and IsActive to true.
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	c := &models.Category{
		Name:        name,
		Slug:        slug.Generate(name),
		Description: deref(in.Description),
		DisplayType: models.DisplayTypeSubcategories,
		IsActive:    true,
	}
	if in.DisplayType != nil {
		if !in.DisplayType.Valid() {
			return nil, errInvalidDisplayType
		}
		c.DisplayType = *in.DisplayType
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}

	if in.Image != nil {
		if c.Image, err = s.uploadImage(ctx, in.Image, "image", FolderCategories); err != nil {
			return nil, err
		}
	}

	created, err := s.categories.Create(c)
	if err != nil {
		orphaned(err, c.Image)
		return nil, err
	}
	return created, nil
}

// UpdateCategory applies in to an existing category. A rename regenerates
// the slug. Switching to products mode is refused while subcategories
// still exist.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	c, err := s.Category(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := requiredName(in.Name)
		if err != nil {
			return nil, err
		}
		rename(&c.Name, &c.Slug, name)
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.DisplayType != nil && *in.DisplayType != c.DisplayType {
		if !in.DisplayType.Valid() {
			return nil, errInvalidDisplayType
		}
		if *in.DisplayType == models.DisplayTypeProducts {
			n, err := s.subcategories.CountByCategory(c.ID)
			if err != nil {
				return nil, fmt.Errorf("count subcategories: %w", err)
			}
			if n > 0 {
				return nil, models.Invalid("displayType", fmt.Sprintf("Category still has %d subcategories", n))
			}
		}
		c.DisplayType = *in.DisplayType
	}

	var uploaded, stale []string
	if in.Image != nil {
		url, err := s.uploadImage(ctx, in.Image, "image", FolderCategories)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, url)
		stale = append(stale, c.Image)
		c.Image = url
	} else if in.RemoveImage {
		stale = append(stale, c.Image)
		c.Image = ""
	}

	if err := s.categories.Update(c); err != nil {
		orphaned(err, uploaded...)
		return nil, err
	}
	s.cleanup(ctx, stale...)
	return c, nil
}

// DeleteCategory removes a category that has no subcategories and no
// products, then drops its image from storage.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	c, err := s.Category(id)
	if err != nil {
		return err
	}
	check, err := s.guard.CheckCategory(id)
	if err != nil {
		return err
	}
	if err := check.Err(models.EntityCategory); err != nil {
		return err
	}

	if err := s.categories.Delete(id); err != nil {
		if errors.Is(err, models.ErrInUse) {
			return s.recount(err, models.EntityCategory, s.guard.CheckCategory, id)
		}
		return err
	}
	s.cleanup(ctx, c.Image)
	return nil
}

// --- Subcategories ---

// CreateSubCategory inserts a subcategory under a category that lists
// subcategories.
func (s *Service) CreateSubCategory(ctx context.Context, in SubCategoryInput) (*models.SubCategory, error) {
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	if in.CategoryID == nil {
		return nil, models.Invalid("category", "Category is required")
	}
	if err := s.checkParent(*in.CategoryID); err != nil {
		return nil, err
	}

	sc := &models.SubCategory{
		Name:        name,
		Slug:        slug.Generate(name),
		Description: deref(in.Description),
		CategoryID:  *in.CategoryID,
		IsActive:    true,
	}
	if in.IsActive != nil {
		sc.IsActive = *in.IsActive
	}
	if in.SEO != nil {
		sc.SEO = *in.SEO
	}

	if in.Image != nil {
		if sc.Image, err = s.uploadImage(ctx, in.Image, "image", FolderSubCategories); err != nil {
			return nil, err
		}
	}

	created, err := s.subcategories.Create(sc)
	if err != nil {
		orphaned(err, sc.Image)
		return nil, err
	}
	return created, nil
}

// UpdateSubCategory applies in to an existing subcategory. Moving it to
// another category is refused while it still holds products, since those
// reference the old category.
func (s *Service) UpdateSubCategory(ctx context.Context, id uuid.UUID, in SubCategoryInput) (*models.SubCategory, error) {
	sc, err := s.SubCategory(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := requiredName(in.Name)
		if err != nil {
			return nil, err
		}
		rename(&sc.Name, &sc.Slug, name)
	}
	if in.Description != nil {
		sc.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsActive != nil {
		sc.IsActive = *in.IsActive
	}
	if in.SEO != nil {
		sc.SEO = *in.SEO
	}
	if in.CategoryID != nil && *in.CategoryID != sc.CategoryID {
		if err := s.checkParent(*in.CategoryID); err != nil {
			return nil, err
		}
		n, err := s.products.CountBySubCategory(sc.ID)
		if err != nil {
			return nil, fmt.Errorf("count products: %w", err)
		}
		if n > 0 {
			return nil, models.Invalid("category", fmt.Sprintf("Move or delete its %d products first", n))
		}
		sc.CategoryID = *in.CategoryID
	}

	var uploaded, stale []string
	if in.Image != nil {
		url, err := s.uploadImage(ctx, in.Image, "image", FolderSubCategories)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, url)
		stale = append(stale, sc.Image)
		sc.Image = url
	} else if in.RemoveImage {
		stale = append(stale, sc.Image)
		sc.Image = ""
	}

	if err := s.subcategories.Update(sc); err != nil {
		orphaned(err, uploaded...)
		return nil, err
	}
	s.cleanup(ctx, stale...)
	return sc, nil
}

// DeleteSubCategory removes a subcategory with no products.
func (s *Service) DeleteSubCategory(ctx context.Context, id uuid.UUID) error {
	sc, err := s.SubCategory(id)
	if err != nil {
		return err
	}
	check, err := s.guard.CheckSubCategory(id)
	if err != nil {
		return err
	}
	if err := check.Err(models.EntitySubCategory); err != nil {
		return err
	}

	if err := s.subcategories.Delete(id); err != nil {
		if errors.Is(err, models.ErrInUse) {
			return s.recount(err, models.EntitySubCategory, s.guard.CheckSubCategory, id)
		}
		return err
	}
	s.cleanup(ctx, sc.Image)
	return nil
}

// checkParent verifies a subcategory may live under categoryID.
func (s *Service) checkParent(categoryID uuid.UUID) error {
	cat, err := s.categories.FindByID(categoryID)
	if err != nil {
		return fmt.Errorf("load parent category: %w", err)
	}
	if cat == nil {
		return models.Invalid("category", "Category does not exist")
	}
	if !cat.ShowsSubcategories() {
		return models.Invalid("category", "Category displays products directly")
	}
	return nil
}

// --- Products ---

// CreateProduct validates in, uploads its images and PDF, then inserts the
// row. image1 is required.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	name, err := requiredName(in.Name)
	if err != nil {
		return nil, err
	}
	if in.CategoryID == nil {
		return nil, models.Invalid("category", "Category is required")
	}
	if err := s.checkPlacement(*in.CategoryID, in.SubCategoryID); err != nil {
		return nil, err
	}
	if in.Images[0] == nil {
		return nil, models.Invalid("image1", "Main image is required")
	}

	p := &models.Product{
		Name:          name,
		Slug:          slug.Generate(name),
		Description:   deref(in.Description),
		KeyFeatures:   in.KeyFeatures,
		CategoryID:    *in.CategoryID,
		SubCategoryID: in.SubCategoryID,
	}
	if p.KeyFeatures == nil {
		p.KeyFeatures = []string{}
	}
	if in.SEO != nil {
		p.SEO = *in.SEO
	}

	uploaded, _, err := s.productAssets(ctx, p, in)
	if err != nil {
		orphaned(err, uploaded...)
		return nil, err
	}

	created, err := s.products.Create(p)
	if err != nil {
		orphaned(err, uploaded...)
		return nil, err
	}
	return created, nil
}

// UpdateProduct applies in to an existing product. Changing the category
// without naming a subcategory detaches the product from its old one.
// Replaced and removed assets are deleted after the row is written.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*models.Product, error) {
	p, err := s.Product(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := requiredName(in.Name)
		if err != nil {
			return nil, err
		}
		rename(&p.Name, &p.Slug, name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.KeyFeatures != nil {
		p.KeyFeatures = in.KeyFeatures
	}
	if in.SEO != nil {
		p.SEO = *in.SEO
	}
	if in.RemoveImages[0] && in.Images[0] == nil {
		return nil, models.Invalid("image1", "Main image cannot be removed")
	}

	if in.CategoryID != nil || in.SubCategoryID != nil || in.ClearSubCategory {
		categoryID, subID := p.CategoryID, p.SubCategoryID
		if in.CategoryID != nil && *in.CategoryID != categoryID {
			categoryID, subID = *in.CategoryID, nil
		}
		if in.ClearSubCategory {
			subID = nil
		}
		if in.SubCategoryID != nil {
			subID = in.SubCategoryID
		}
		if err := s.checkPlacement(categoryID, subID); err != nil {
			return nil, err
		}
		p.CategoryID, p.SubCategoryID = categoryID, subID
	}

	uploaded, stale, err := s.productAssets(ctx, p, in)
	if err != nil {
		orphaned(err, uploaded...)
		return nil, err
	}

	if err := s.products.Update(p); err != nil {
		orphaned(err, uploaded...)
		return nil, err
	}
	s.cleanup(ctx, stale...)
	return p, nil
}

// DeleteProduct removes a product and then its images and PDF.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	p, err := s.Product(id)
	if err != nil {
		return err
	}
	check, err := s.guard.CheckProduct(id)
	if err != nil {
		return err
	}
	if err := check.Err(models.EntityProduct); err != nil {
		return err
	}
	if err := s.products.Delete(id); err != nil {
		return err
	}
	s.cleanup(ctx, append(p.Images(), p.PDF)...)
	return nil
}

// checkPlacement verifies the category exists and the subcategory, if
// any, sits under it.
func (s *Service) checkPlacement(categoryID uuid.UUID, subID *uuid.UUID) error {
	cat, err := s.categories.FindByID(categoryID)
	if err != nil {
		return fmt.Errorf("load product category: %w", err)
	}
	if cat == nil {
		return models.Invalid("category", "Category does not exist")
	}
	if subID == nil {
		return nil
	}
	sub, err := s.subcategories.FindByID(*subID)
	if err != nil {
		return fmt.Errorf("load product subcategory: %w", err)
	}
	if sub == nil {
		return models.Invalid("subcategory", "Subcategory does not exist")
	}
	if sub.CategoryID != cat.ID {
		return models.Invalid("subcategory", "Subcategory does not belong to the selected category")
	}
	return nil
}

// productAssets uploads the files in `in` into p's slots. It returns the
// new URLs and the URLs they replaced or that were removed.
func (s *Service) productAssets(ctx context.Context, p *models.Product, in ProductInput) (uploaded, stale []string, err error) {
	slots := p.ImageSlots()
	for i, f := range in.Images {
		field := fmt.Sprintf("image%d", i+1)
		switch {
		case f != nil:
			url, err := s.uploadImage(ctx, f, field, FolderProducts)
			if err != nil {
				return uploaded, nil, err
			}
			uploaded = append(uploaded, url)
			stale = append(stale, slots[i])
			p.SetImageSlot(i+1, url)
		case in.RemoveImages[i]:
			stale = append(stale, slots[i])
			p.SetImageSlot(i+1, "")
		}
	}

	switch {
	case in.PDF != nil:
		url, err := s.upload(ctx, in.PDF, "pdf", FolderProductPDFs, true)
		if err != nil {
			return uploaded, nil, err
		}
		uploaded = append(uploaded, url)
		stale = append(stale, p.PDF)
		p.PDF = url
	case in.RemovePDF:
		stale = append(stale, p.PDF)
		p.PDF = ""
	}
	return uploaded, stale, nil
}

// --- Helpers ---

var errInvalidDisplayType = models.Invalid("displayType", "Display type must be subcategories or products")

func (s *Service) uploadImage(ctx context.Context, f *Upload, field, folder string) (string, error) {
	return s.upload(ctx, f, field, folder, false)
}

// upload stores f and reports content rejections against field.
func (s *Service) upload(ctx context.Context, f *Upload, field, folder string, pdf bool) (string, error) {
	if s.assets == nil {
		return "", models.Invalid(field, "File uploads are not configured")
	}
	var (
		url string
		err error
	)
	if pdf {
		url, err = s.assets.UploadPDF(ctx, f, folder)
	} else {
		url, err = s.assets.UploadImage(ctx, f, folder)
	}
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return "", models.Invalid(field, ve.Message)
		}
		return "", fmt.Errorf("upload %s: %w", field, err)
	}
	return url, nil
}

// cleanup deletes assets that are no longer referenced. Failures are
// logged and never fail the request.
func (s *Service) cleanup(ctx context.Context, urls ...string) {
	if s.assets == nil {
		return
	}
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.assets.Delete(ctx, url); err != nil {
			slog.Warn("asset cleanup failed", "url", url, "error", err)
		}
	}
}

// recount turns a foreign-key refusal into the same DependencyError the
// guard reports.
func (s *Service) recount(cause error, entity string, check func(uuid.UUID) (Check, error), id uuid.UUID) error {
	c, err := check(id)
	if err != nil {
		return err
	}
	if c.Allowed {
		return cause
	}
	return c.Err(entity)
}

// orphaned logs uploads whose row write failed. They stay in storage.
func orphaned(cause error, urls ...string) {
	var kept []string
	for _, u := range urls {
		if u != "" {
			kept = append(kept, u)
		}
	}
	if len(kept) > 0 {
		slog.Warn("uploaded assets orphaned", "urls", kept, "error", cause)
	}
}

func requiredName(name *string) (string, error) {
	if name == nil || strings.TrimSpace(*name) == "" {
		return "", models.Invalid("name", "Name is required")
	}
	return strings.TrimSpace(*name), nil
}

// rename sets name and regenerates the slug when the name changed.
func rename(name, slugField *string, newName string) {
	if *name == newName {
		return
	}
	*name = newName
	*slugField = slug.Generate(newName)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
