// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the category → subcategory → product hierarchy
// rules: storefront route resolution, the delete dependency guard, and the
// admin create/update/delete workflows with their upload side effects.
//
// Persistence is reached through the repository interfaces below, which
// the store package implements against PostgreSQL.
package catalog

import (
	"context"

	"github.com/google/uuid"

	"elvcatalog/internal/models"
)

// CategoryRepository persists categories. Find methods return (nil, nil)
// when no row matches.
type CategoryRepository interface {
	List(activeOnly bool) ([]models.Category, error)
	FindByID(id uuid.UUID) (*models.Category, error)
	FindBySlug(slug string) (*models.Category, error)
	Create(c *models.Category) (*models.Category, error)
	Update(c *models.Category) error
	Delete(id uuid.UUID) error
}

// SubCategoryRepository persists subcategories.
type SubCategoryRepository interface {
	// List returns subcategories, restricted to one category when
	// categoryID is non-nil.
	List(categoryID *uuid.UUID, activeOnly bool) ([]models.SubCategory, error)
	FindByID(id uuid.UUID) (*models.SubCategory, error)
	// FindBySlug looks up a slug among the subcategories of one category.
	FindBySlug(categoryID uuid.UUID, slug string) (*models.SubCategory, error)
	Create(s *models.SubCategory) (*models.SubCategory, error)
	Update(s *models.SubCategory) error
	Delete(id uuid.UUID) error
	CountByCategory(categoryID uuid.UUID) (int, error)
}

// ProductFilter narrows a product listing. Zero value lists everything.
type ProductFilter struct {
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
}

// ProductRepository persists products. Product slugs are unique across
// the whole catalog, so FindBySlug is a global lookup.
type ProductRepository interface {
	List(f ProductFilter) ([]models.Product, error)
	FindByID(id uuid.UUID) (*models.Product, error)
	FindBySlug(slug string) (*models.Product, error)
	Create(p *models.Product) (*models.Product, error)
	Update(p *models.Product) error
	Delete(id uuid.UUID) error
	CountByCategory(categoryID uuid.UUID) (int, error)
	CountBySubCategory(subCategoryID uuid.UUID) (int, error)
}

// Upload is a file received from an admin form, held in memory.
type Upload struct {
	Filename string
	Data     []byte
}

// Assets stores uploaded binaries and returns their public URLs.
type Assets interface {
	UploadImage(ctx context.Context, f *Upload, folder string) (string, error)
	UploadPDF(ctx context.Context, f *Upload, folder string) (string, error)
	Delete(ctx context.Context, url string) error
}

// Storage folders for each kind of asset.
const (
	FolderCategories    = "categories"
	FolderSubCategories = "subcategories"
	FolderProducts      = "products"
	FolderProductPDFs   = "products/pdfs"
)
