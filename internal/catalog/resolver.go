// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"fmt"

	"elvcatalog/internal/models"
)

// Kind tells the storefront what a catalog route resolved to.
type Kind int

const (
	KindNotFound Kind = iota
	KindCategoryNotFound
	KindSubcategoryListing
	KindProductListing
	KindSubcategoryDetail
	KindProductDetail
)

var kindNames = map[Kind]string{
	KindNotFound:           "not_found",
	KindCategoryNotFound:   "category_not_found",
	KindSubcategoryListing: "subcategory_listing",
	KindProductListing:     "product_listing",
	KindSubcategoryDetail:  "subcategory_detail",
	KindProductDetail:      "product_detail",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Found reports whether the outcome renders a page rather than a 404.
func (k Kind) Found() bool {
	return k != KindNotFound && k != KindCategoryNotFound
}

// Resolution is the outcome of walking a catalog route. Which fields are
// set depends on Kind.
type Resolution struct {
	Kind          Kind
	Category      *models.Category
	SubCategory   *models.SubCategory
	SubCategories []models.SubCategory
	Products      []models.Product
	Product       *models.Product
}

// Resolver maps storefront catalog routes onto the hierarchy.
type Resolver struct {
	categories    CategoryRepository
	subcategories SubCategoryRepository
	products      ProductRepository
}

// NewResolver creates a new Resolver.
func NewResolver(categories CategoryRepository, subcategories SubCategoryRepository, products ProductRepository) *Resolver {
	return &Resolver{categories: categories, subcategories: subcategories, products: products}
}

// Resolve walks /products/{categorySlug}/{rest...}. At most two further
// segments are accepted. A missing entity is reported through Kind; the
// error is only non-nil when the store fails.
func (r *Resolver) Resolve(categorySlug string, rest ...string) (*Resolution, error) {
	if len(rest) > 2 {
		return &Resolution{Kind: KindNotFound}, nil
	}

	cat, err := r.categories.FindBySlug(categorySlug)
	if err != nil {
		return nil, fmt.Errorf("resolve category %q: %w", categorySlug, err)
	}
	if cat == nil || !cat.IsActive {
		return &Resolution{Kind: KindCategoryNotFound}, nil
	}

	switch len(rest) {
	case 0:
		return r.landing(cat)
	case 1:
		if !cat.ShowsSubcategories() {
			return r.productIn(cat, rest[0])
		}
		return r.subcategoryOrProduct(cat, rest[0])
	default:
		// The middle segment is informational; the product carries its own
		// subcategory.
		return r.productIn(cat, rest[1])
	}
}

func (r *Resolver) landing(cat *models.Category) (*Resolution, error) {
	if cat.ShowsSubcategories() {
		subs, err := r.subcategories.List(&cat.ID, true)
		if err != nil {
			return nil, fmt.Errorf("list subcategories of %s: %w", cat.Slug, err)
		}
		return &Resolution{Kind: KindSubcategoryListing, Category: cat, SubCategories: subs}, nil
	}

	products, err := r.products.List(ProductFilter{CategoryID: &cat.ID})
	if err != nil {
		return nil, fmt.Errorf("list products of %s: %w", cat.Slug, err)
	}
	return &Resolution{Kind: KindProductListing, Category: cat, Products: products}, nil
}

// subcategoryOrProduct tries the segment as a subcategory first and only
// then as a product. The order never changes.
func (r *Resolver) subcategoryOrProduct(cat *models.Category, segment string) (*Resolution, error) {
	sub, err := r.subcategories.FindBySlug(cat.ID, segment)
	if err != nil {
		return nil, fmt.Errorf("resolve subcategory %q: %w", segment, err)
	}
	if sub == nil || !sub.IsActive {
		return r.productIn(cat, segment)
	}

	products, err := r.products.List(ProductFilter{SubCategoryID: &sub.ID})
	if err != nil {
		return nil, fmt.Errorf("list products of %s: %w", sub.Slug, err)
	}
	return &Resolution{Kind: KindSubcategoryDetail, Category: cat, SubCategory: sub, Products: products}, nil
}

// productIn looks the slug up globally and accepts it only when the
// product belongs to cat.
func (r *Resolver) productIn(cat *models.Category, productSlug string) (*Resolution, error) {
	p, err := r.products.FindBySlug(productSlug)
	if err != nil {
		return nil, fmt.Errorf("resolve product %q: %w", productSlug, err)
	}
	if p == nil || p.CategoryID != cat.ID {
		return &Resolution{Kind: KindNotFound}, nil
	}

	res := &Resolution{Kind: KindProductDetail, Category: cat, Product: p}
	if p.SubCategoryID != nil {
		sub, err := r.subcategories.FindByID(*p.SubCategoryID)
		if err != nil {
			return nil, fmt.Errorf("load subcategory of %s: %w", p.Slug, err)
		}
		res.SubCategory = sub
	}
	return res, nil
}

// Categories returns the active categories for the storefront index.
func (r *Resolver) Categories() ([]models.Category, error) {
	cats, err := r.categories.List(true)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}
