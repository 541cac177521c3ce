package handlers

import (
	"fmt"
	"unicode/utf8"

	"elvcatalog/internal/models"
)

// Length limits for admin and visitor input. Required-field checks live
// in the services; these only keep oversized input out of the database.
const (
	maxNameLen        = 200
	maxDescriptionLen = 20_000
	maxMetaTitleLen   = 300
	maxMetaDescLen    = 500
	maxMetaKeywordLen = 500
	maxKeyFeatures    = 50
	maxKeyFeatureLen  = 300
	maxLeadFieldLen   = 300
	maxMessageLen     = 5_000
)

// limit pairs a field with its value and maximum rune count.
type limit struct {
	field string
	value *string
	max   int
}

// checkLimits returns a ValidationError for the first over-long field.
// Nil values are skipped.
func checkLimits(limits ...limit) error {
	for _, l := range limits {
		if l.value == nil {
			continue
		}
		if utf8.RuneCountInString(*l.value) > l.max {
			return models.Invalid(l.field, fmt.Sprintf("Must be at most %d characters", l.max))
		}
	}
	return nil
}

// checkSEO validates optional SEO metadata fields.
func checkSEO(seo *models.SEO) error {
	if seo == nil {
		return nil
	}
	return checkLimits(
		limit{"seo.title", &seo.Title, maxMetaTitleLen},
		limit{"seo.description", &seo.Description, maxMetaDescLen},
		limit{"seo.keywords", &seo.Keywords, maxMetaKeywordLen},
	)
}

// checkKeyFeatures bounds the feature list of a product.
func checkKeyFeatures(features []string) error {
	if len(features) > maxKeyFeatures {
		return models.Invalid("keyFeatures", fmt.Sprintf("At most %d key features are allowed", maxKeyFeatures))
	}
	for _, f := range features {
		if utf8.RuneCountInString(f) > maxKeyFeatureLen {
			return models.Invalid("keyFeatures", fmt.Sprintf("Each key feature must be at most %d characters", maxKeyFeatureLen))
		}
	}
	return nil
}
