// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestDisplayTypeValid(t *testing.T) {
	tests := []struct {
		in   DisplayType
		want bool
	}{
		{DisplayTypeSubcategories, true},
		{DisplayTypeProducts, true},
		{DisplayType(""), false},
		{DisplayType("Products"), false},
		{DisplayType("grid"), false},
	}
	for _, tt := range tests {
		if got := tt.in.Valid(); got != tt.want {
			t.Errorf("DisplayType(%q).Valid() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestProductImages(t *testing.T) {
	p := &Product{Image1: "a.jpg", Image3: "c.jpg"}

	got := p.Images()
	if len(got) != 2 || got[0] != "a.jpg" || got[1] != "c.jpg" {
		t.Errorf("Images() = %v, want [a.jpg c.jpg]", got)
	}

	p.SetImageSlot(2, "b.jpg")
	p.SetImageSlot(5, "ignored.jpg")
	slots := p.ImageSlots()
	want := [MaxProductImages]string{"a.jpg", "b.jpg", "c.jpg", ""}
	if slots != want {
		t.Errorf("ImageSlots() = %v, want %v", slots, want)
	}
}

func TestProductInSubCategory(t *testing.T) {
	sub := uuid.New()
	p := &Product{}
	if p.InSubCategory(sub) {
		t.Error("product without subcategory reported as inside one")
	}
	p.SubCategoryID = &sub
	if !p.InSubCategory(sub) {
		t.Error("product not reported inside its own subcategory")
	}
	if p.InSubCategory(uuid.New()) {
		t.Error("product reported inside an unrelated subcategory")
	}
}

func TestLeadStatusValid(t *testing.T) {
	for _, s := range []ContactStatus{ContactStatusNew, ContactStatusRead, ContactStatusReplied} {
		if !s.Valid() {
			t.Errorf("ContactStatus(%q) should be valid", s)
		}
	}
	if ContactStatus("closed").Valid() {
		t.Error("closed is an inquiry status, not a contact status")
	}

	for _, s := range []InquiryStatus{InquiryStatusNew, InquiryStatusContacted, InquiryStatusClosed} {
		if !s.Valid() {
			t.Errorf("InquiryStatus(%q) should be valid", s)
		}
	}
	if InquiryStatus("read").Valid() {
		t.Error("read is a contact status, not an inquiry status")
	}
}

func TestDependencyErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *DependencyError
		want string
	}{
		{
			name: "category",
			err:  &DependencyError{Entity: EntityCategory, SubCategories: 3, Products: 7},
			want: "Contains 3 subcategories and 7 products",
		},
		{
			name: "category with only subcategories",
			err:  &DependencyError{Entity: EntityCategory, SubCategories: 1},
			want: "Contains 1 subcategories and 0 products",
		},
		{
			name: "subcategory",
			err:  &DependencyError{Entity: EntitySubCategory, Products: 2},
			want: "Contains 2 products",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := Invalid("name", "Name is required.")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Invalid() did not return a *ValidationError: %T", err)
	}
	if ve.Field != "name" {
		t.Errorf("Field = %q, want name", ve.Field)
	}
	if err.Error() != "name: Name is required." {
		t.Errorf("Error() = %q", err.Error())
	}
}
