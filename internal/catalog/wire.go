// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"time"

	"github.com/google/uuid"

	"elvcatalog/internal/models"
)

// API response shapes. Keys are camelCase to match the admin frontend.

type SEOJSON struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// RefJSON is the short form of a parent embedded in a child response.
type RefJSON struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type CategoryJSON struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	DisplayType string    `json:"displayType"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SubCategoryJSON struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CategoryID  uuid.UUID `json:"categoryId"`
	Category    *RefJSON  `json:"category,omitempty"`
	IsActive    bool      `json:"isActive"`
	SEO         SEOJSON   `json:"seo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProductJSON struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	KeyFeatures   []string   `json:"keyFeatures"`
	Images        []string   `json:"images"`
	Image1        string     `json:"image1"`
	Image2        string     `json:"image2"`
	Image3        string     `json:"image3"`
	Image4        string     `json:"image4"`
	PDF           string     `json:"pdf"`
	CategoryID    uuid.UUID  `json:"categoryId"`
	SubCategoryID *uuid.UUID `json:"subcategoryId"`
	Category      *RefJSON   `json:"category,omitempty"`
	SubCategory   *RefJSON   `json:"subcategory,omitempty"`
	SEO           SEOJSON    `json:"seo"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ResolutionJSON is a Resolution as returned by /api/catalog.
type ResolutionJSON struct {
	Kind          string            `json:"kind"`
	Category      *CategoryJSON     `json:"category,omitempty"`
	SubCategory   *SubCategoryJSON  `json:"subcategory,omitempty"`
	SubCategories []SubCategoryJSON `json:"subcategories,omitempty"`
	Products      []ProductJSON     `json:"products,omitempty"`
	Product       *ProductJSON      `json:"product,omitempty"`
}

func seoResponse(s models.SEO) SEOJSON {
	return SEOJSON{Title: s.Title, Description: s.Description, Keywords: s.Keywords}
}

func CategoryResponse(c models.Category) CategoryJSON {
	return CategoryJSON{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		DisplayType: string(c.DisplayType),
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// SubCategoryResponse maps sc; cat is embedded as a reference when given.
func SubCategoryResponse(sc models.SubCategory, cat *models.Category) SubCategoryJSON {
	out := SubCategoryJSON{
		ID:          sc.ID,
		Name:        sc.Name,
		Slug:        sc.Slug,
		Description: sc.Description,
		Image:       sc.Image,
		CategoryID:  sc.CategoryID,
		IsActive:    sc.IsActive,
		SEO:         seoResponse(sc.SEO),
		CreatedAt:   sc.CreatedAt,
		UpdatedAt:   sc.UpdatedAt,
	}
	if cat != nil {
		out.Category = &RefJSON{ID: cat.ID, Name: cat.Name, Slug: cat.Slug}
	}
	return out
}

// ProductResponse maps p; parents are embedded as references when given.
func ProductResponse(p models.Product, cat *models.Category, sub *models.SubCategory) ProductJSON {
	features := p.KeyFeatures
	if features == nil {
		features = []string{}
	}
	out := ProductJSON{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		KeyFeatures:   features,
		Images:        p.Images(),
		Image1:        p.Image1,
		Image2:        p.Image2,
		Image3:        p.Image3,
		Image4:        p.Image4,
		PDF:           p.PDF,
		CategoryID:    p.CategoryID,
		SubCategoryID: p.SubCategoryID,
		SEO:           seoResponse(p.SEO),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if cat != nil {
		out.Category = &RefJSON{ID: cat.ID, Name: cat.Name, Slug: cat.Slug}
	}
	if sub != nil {
		out.SubCategory = &RefJSON{ID: sub.ID, Name: sub.Name, Slug: sub.Slug}
	}
	return out
}

func CategoryResponses(cats []models.Category) []CategoryJSON {
	out := make([]CategoryJSON, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryResponse(c))
	}
	return out
}

func SubCategoryResponses(subs []models.SubCategory) []SubCategoryJSON {
	out := make([]SubCategoryJSON, 0, len(subs))
	for _, sc := range subs {
		out = append(out, SubCategoryResponse(sc, nil))
	}
	return out
}

func ProductResponses(products []models.Product) []ProductJSON {
	out := make([]ProductJSON, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse(p, nil, nil))
	}
	return out
}

// ResolutionResponse maps a resolver outcome.
func ResolutionResponse(r *Resolution) ResolutionJSON {
	out := ResolutionJSON{Kind: r.Kind.String()}
	if r.Category != nil {
		c := CategoryResponse(*r.Category)
		out.Category = &c
	}
	if r.SubCategory != nil {
		sc := SubCategoryResponse(*r.SubCategory, r.Category)
		out.SubCategory = &sc
	}
	if r.Product != nil {
		p := ProductResponse(*r.Product, r.Category, r.SubCategory)
		out.Product = &p
	}
	switch r.Kind {
	case KindSubcategoryListing:
		out.SubCategories = SubCategoryResponses(r.SubCategories)
	case KindProductListing, KindSubcategoryDetail:
		out.Products = ProductResponses(r.Products)
	}
	return out
}
