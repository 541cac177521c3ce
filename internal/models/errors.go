// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSlug is returned when a create or rename collides with an
	// existing slug.
	ErrDuplicateSlug = errors.New("slug already exists")

	// ErrDuplicateEmail is returned when a subscription e-mail is taken.
	ErrDuplicateEmail = errors.New("email already subscribed")

	// ErrInUse is returned by the store when a delete is blocked by a
	// foreign key that still references the row.
	ErrInUse = errors.New("row is still referenced")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Invalid builds a ValidationError for field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Entity names used in DependencyError.
const (
	EntityCategory    = "category"
	EntitySubCategory = "subcategory"
	EntityProduct     = "product"
)

// DependencyError reports that a delete was refused because children
// still reference the row.
type DependencyError struct {
	Entity        string
	SubCategories int
	Products      int
}

// Error returns the message shown to admins, naming the blocking counts.
func (e *DependencyError) Error() string {
	if e.Entity == EntitySubCategory {
		return fmt.Sprintf("Contains %d products", e.Products)
	}
	return fmt.Sprintf("Contains %d subcategories and %d products", e.SubCategories, e.Products)
}
