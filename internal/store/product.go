// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"elvcatalog/internal/catalog"
	"elvcatalog/internal/models"
)

// ProductStore manages products in the database. Slugs are unique across
// the whole table.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, slug, description, key_features,
	image1, image2, image3, image4, pdf, category_id, subcategory_id,
	meta_title, meta_description, meta_keywords, created_at, updated_at`

func scanProduct(row scanner) (*models.Product, error) {
	var (
		p        models.Product
		features []byte
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &features,
		&p.Image1, &p.Image2, &p.Image3, &p.Image4, &p.PDF, &p.CategoryID, &p.SubCategoryID,
		&p.SEO.Title, &p.SEO.Description, &p.SEO.Keywords, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &p.KeyFeatures); err != nil {
		return nil, fmt.Errorf("decode key features: %w", err)
	}
	if p.KeyFeatures == nil {
		p.KeyFeatures = []string{}
	}
	return &p, nil
}

func encodeFeatures(features []string) ([]byte, error) {
	if features == nil {
		features = []string{}
	}
	b, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("encode key features: %w", err)
	}
	return b, nil
}

// List returns products ordered by name, narrowed by f.
func (s *ProductStore) List(f catalog.ProductFilter) ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT `+productColumns+` FROM products
		WHERE ($1::uuid IS NULL OR category_id = $1)
		  AND ($2::uuid IS NULL OR subcategory_id = $2)
		ORDER BY name
	`, f.CategoryID, f.SubCategoryID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID returns a product by ID. Returns nil if not found.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// FindBySlug returns a product by its global slug. Returns nil if not found.
func (s *ProductStore) FindBySlug(slug string) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new product and returns it.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	features, err := encodeFeatures(p.KeyFeatures)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`
		INSERT INTO products (name, slug, description, key_features,
			image1, image2, image3, image4, pdf, category_id, subcategory_id,
			meta_title, meta_description, meta_keywords)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+productColumns,
		p.Name, p.Slug, p.Description, features,
		p.Image1, p.Image2, p.Image3, p.Image4, p.PDF, p.CategoryID, p.SubCategoryID,
		p.SEO.Title, p.SEO.Description, p.SEO.Keywords,
	)
	result, err := scanProduct(row)
	if err != nil {
		return nil, writeErr("create product", err, models.ErrDuplicateSlug)
	}
	return result, nil
}

// Update modifies an existing product.
func (s *ProductStore) Update(p *models.Product) error {
	features, err := encodeFeatures(p.KeyFeatures)
	if err != nil {
		return err
	}
	result, err := s.db.Exec(`
		UPDATE products SET
			name = $1, slug = $2, description = $3, key_features = $4,
			image1 = $5, image2 = $6, image3 = $7, image4 = $8, pdf = $9,
			category_id = $10, subcategory_id = $11,
			meta_title = $12, meta_description = $13, meta_keywords = $14,
			updated_at = NOW()
		WHERE id = $15
	`, p.Name, p.Slug, p.Description, features,
		p.Image1, p.Image2, p.Image3, p.Image4, p.PDF,
		p.CategoryID, p.SubCategoryID,
		p.SEO.Title, p.SEO.Description, p.SEO.Keywords, p.ID)
	if err != nil {
		return writeErr("update product", err, models.ErrDuplicateSlug)
	}
	return affectedOne("update product", result)
}

// Delete removes a product by ID. Inquiries keep their product name.
func (s *ProductStore) Delete(id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return deleteErr("delete product", err)
	}
	return affectedOne("delete product", result)
}

// CountByCategory returns how many products reference a category.
func (s *ProductStore) CountByCategory(categoryID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// CountBySubCategory returns how many products reference a subcategory.
func (s *ProductStore) CountBySubCategory(subCategoryID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM products WHERE subcategory_id = $1`, subCategoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by subcategory: %w", err)
	}
	return n, nil
}
