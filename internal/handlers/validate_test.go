package handlers

import (
	"errors"
	"strings"
	"testing"

	"elvcatalog/internal/models"
)

func strPtr(s string) *string { return &s }

func TestCheckLimits(t *testing.T) {
	tests := []struct {
		name      string
		limits    []limit
		wantField string
	}{
		{"nil values skipped", []limit{{"name", nil, 3}}, ""},
		{"within limit", []limit{{"name", strPtr("abc"), 3}}, ""},
		{"runes not bytes", []limit{{"name", strPtr("ăîș"), 3}}, ""},
		{"too long", []limit{{"name", strPtr("abcd"), 3}}, "name"},
		{"first failure wins", []limit{
			{"name", strPtr("ok"), 3},
			{"description", strPtr("toolong"), 3},
			{"email", strPtr("toolong"), 3},
		}, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkLimits(tt.limits...)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			var valErr *models.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("field: got %q, want %q", valErr.Field, tt.wantField)
			}
		})
	}
}

func TestCheckSEO(t *testing.T) {
	tests := []struct {
		name      string
		seo       *models.SEO
		wantError bool
	}{
		{"nil", nil, false},
		{"all empty", &models.SEO{}, false},
		{"all valid", &models.SEO{Title: "Title", Description: "desc", Keywords: "cctv, ip"}, false},
		{"title too long", &models.SEO{Title: strings.Repeat("a", maxMetaTitleLen+1)}, true},
		{"description too long", &models.SEO{Description: strings.Repeat("a", maxMetaDescLen+1)}, true},
		{"keywords too long", &models.SEO{Keywords: strings.Repeat("a", maxMetaKeywordLen+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSEO(tt.seo)
			if tt.wantError && err == nil {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckKeyFeatures(t *testing.T) {
	many := make([]string, maxKeyFeatures+1)
	for i := range many {
		many[i] = "feature"
	}

	tests := []struct {
		name      string
		features  []string
		wantError bool
	}{
		{"none", nil, false},
		{"a few", []string{"4K sensor", "PoE"}, false},
		{"too many", many, true},
		{"one too long", []string{strings.Repeat("a", maxKeyFeatureLen+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkKeyFeatures(tt.features)
			if tt.wantError && err == nil {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
