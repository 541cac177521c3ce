// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"fmt"

	"github.com/google/uuid"

	"elvcatalog/internal/models"
)

// Check is the outcome of a dependency check before a delete.
type Check struct {
	Allowed       bool
	SubCategories int
	Products      int
}

// Err returns the refusal for entity, or nil when the delete is allowed.
func (c Check) Err(entity string) error {
	if c.Allowed {
		return nil
	}
	return &models.DependencyError{Entity: entity, SubCategories: c.SubCategories, Products: c.Products}
}

// Guard counts the children that still reference a row. The check and the
// following delete are separate statements, so a child inserted between
// them is caught only by the foreign key.
type Guard struct {
	subcategories SubCategoryRepository
	products      ProductRepository
}

// NewGuard creates a new Guard.
func NewGuard(subcategories SubCategoryRepository, products ProductRepository) *Guard {
	return &Guard{subcategories: subcategories, products: products}
}

// CheckCategory counts subcategories and products under a category.
func (g *Guard) CheckCategory(id uuid.UUID) (Check, error) {
	subs, err := g.subcategories.CountByCategory(id)
	if err != nil {
		return Check{}, fmt.Errorf("count subcategories: %w", err)
	}
	products, err := g.products.CountByCategory(id)
	if err != nil {
		return Check{}, fmt.Errorf("count products: %w", err)
	}
	return Check{Allowed: subs == 0 && products == 0, SubCategories: subs, Products: products}, nil
}

// CheckSubCategory counts products under a subcategory.
func (g *Guard) CheckSubCategory(id uuid.UUID) (Check, error) {
	products, err := g.products.CountBySubCategory(id)
	if err != nil {
		return Check{}, fmt.Errorf("count products: %w", err)
	}
	return Check{Allowed: products == 0, Products: products}, nil
}

// CheckProduct always allows the delete; products are leaves.
func (g *Guard) CheckProduct(uuid.UUID) (Check, error) {
	return Check{Allowed: true}, nil
}
