// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxProductImages is the number of image slots on a product.
const MaxProductImages = 4

// Product is a catalog leaf. It always references a Category and, when the
// category lists subcategories, usually a SubCategory of that category.
type Product struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	KeyFeatures   []string   `json:"key_features"`
	Image1        string     `json:"image1"`
	Image2        string     `json:"image2"`
	Image3        string     `json:"image3"`
	Image4        string     `json:"image4"`
	PDF           string     `json:"pdf"`
	CategoryID    uuid.UUID  `json:"category_id"`
	SubCategoryID *uuid.UUID `json:"subcategory_id"`
	SEO           SEO        `json:"seo"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Images returns the non-empty image URLs in slot order.
func (p *Product) Images() []string {
	out := make([]string, 0, MaxProductImages)
	for _, u := range p.ImageSlots() {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

// ImageSlots returns all four slots, empty ones included.
func (p *Product) ImageSlots() [MaxProductImages]string {
	return [MaxProductImages]string{p.Image1, p.Image2, p.Image3, p.Image4}
}

// SetImageSlot stores url in the 1-based slot n. Out-of-range slots are ignored.
func (p *Product) SetImageSlot(n int, url string) {
	switch n {
	case 1:
		p.Image1 = url
	case 2:
		p.Image2 = url
	case 3:
		p.Image3 = url
	case 4:
		p.Image4 = url
	}
}

// InSubCategory reports whether the product is placed under the given subcategory.
func (p *Product) InSubCategory(id uuid.UUID) bool {
	return p.SubCategoryID != nil && *p.SubCategoryID == id
}
