// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"elvcatalog/internal/models"
)

// SubCategoryStore manages subcategories in the database.
type SubCategoryStore struct {
	db *sql.DB
}

// NewSubCategoryStore returns a new SubCategoryStore.
func NewSubCategoryStore(db *sql.DB) *SubCategoryStore {
	return &SubCategoryStore{db: db}
}

const subCategoryColumns = `id, name, slug, description, image, category_id, is_active,
	meta_title, meta_description, meta_keywords, created_at, updated_at`

func scanSubCategory(row scanner) (*models.SubCategory, error) {
	var sc models.SubCategory
	err := row.Scan(
		&sc.ID, &sc.Name, &sc.Slug, &sc.Description, &sc.Image, &sc.CategoryID, &sc.IsActive,
		&sc.SEO.Title, &sc.SEO.Description, &sc.SEO.Keywords, &sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// List returns subcategories ordered by name. A nil categoryID lists all.
func (s *SubCategoryStore) List(categoryID *uuid.UUID, activeOnly bool) ([]models.SubCategory, error) {
	rows, err := s.db.Query(`
		SELECT `+subCategoryColumns+` FROM subcategories
		WHERE ($1::uuid IS NULL OR category_id = $1)
		  AND ($2 = FALSE OR is_active)
		ORDER BY name
	`, categoryID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var items []models.SubCategory
	for rows.Next() {
		sc, err := scanSubCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		items = append(items, *sc)
	}
	return items, rows.Err()
}

// FindByID returns a subcategory by ID. Returns nil if not found.
func (s *SubCategoryStore) FindByID(id uuid.UUID) (*models.SubCategory, error) {
	sc, err := scanSubCategory(s.db.QueryRow(`SELECT `+subCategoryColumns+` FROM subcategories WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subcategory by id: %w", err)
	}
	return sc, nil
}

// FindBySlug returns the subcategory with slug under categoryID. Returns
// nil if not found.
func (s *SubCategoryStore) FindBySlug(categoryID uuid.UUID, slug string) (*models.SubCategory, error) {
	sc, err := scanSubCategory(s.db.QueryRow(`
		SELECT `+subCategoryColumns+` FROM subcategories
		WHERE category_id = $1 AND slug = $2
	`, categoryID, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subcategory by slug: %w", err)
	}
	return sc, nil
}

// Create inserts a new subcategory and returns it.
func (s *SubCategoryStore) Create(sc *models.SubCategory) (*models.SubCategory, error) {
	row := s.db.QueryRow(`
		INSERT INTO subcategories (name, slug, description, image, category_id, is_active,
			meta_title, meta_description, meta_keywords)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+subCategoryColumns,
		sc.Name, sc.Slug, sc.Description, sc.Image, sc.CategoryID, sc.IsActive,
		sc.SEO.Title, sc.SEO.Description, sc.SEO.Keywords,
	)
	result, err := scanSubCategory(row)
	if err != nil {
		return nil, writeErr("create subcategory", err, models.ErrDuplicateSlug)
	}
	return result, nil
}

// Update modifies an existing subcategory.
func (s *SubCategoryStore) Update(sc *models.SubCategory) error {
	result, err := s.db.Exec(`
		UPDATE subcategories SET
			name = $1, slug = $2, description = $3, image = $4, category_id = $5,
			is_active = $6, meta_title = $7, meta_description = $8, meta_keywords = $9,
			updated_at = NOW()
		WHERE id = $10
	`, sc.Name, sc.Slug, sc.Description, sc.Image, sc.CategoryID, sc.IsActive,
		sc.SEO.Title, sc.SEO.Description, sc.SEO.Keywords, sc.ID)
	if err != nil {
		return writeErr("update subcategory", err, models.ErrDuplicateSlug)
	}
	return affectedOne("update subcategory", result)
}

// Delete removes a subcategory by ID.
func (s *SubCategoryStore) Delete(id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return deleteErr("delete subcategory", err)
	}
	return affectedOne("delete subcategory", result)
}

// CountByCategory returns how many subcategories belong to a category.
func (s *SubCategoryStore) CountByCategory(categoryID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM subcategories WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count subcategories: %w", err)
	}
	return n, nil
}
