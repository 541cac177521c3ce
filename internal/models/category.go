// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DisplayType controls what a category's landing page lists.
type DisplayType string

const (
	// DisplayTypeSubcategories lists the category's subcategories.
	DisplayTypeSubcategories DisplayType = "subcategories"
	// DisplayTypeProducts lists products placed directly in the category.
	DisplayTypeProducts DisplayType = "products"
)

// Valid reports whether d is one of the known display types.
func (d DisplayType) Valid() bool {
	return d == DisplayTypeSubcategories || d == DisplayTypeProducts
}

// Category is a top-level catalog node.
type Category struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	DisplayType DisplayType `json:"display_type"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ShowsSubcategories reports whether the landing page lists subcategories.
func (c *Category) ShowsSubcategories() bool {
	return c.DisplayType == DisplayTypeSubcategories
}
