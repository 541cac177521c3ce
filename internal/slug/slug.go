// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL identifiers for catalog entities from the names
// admins type in.
package slug

import (
	"regexp"
	"strings"
)

// nonAlphanumericRun matches one or more characters outside [a-z0-9].
var nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)

// Generate lowercases s and replaces every run of characters outside
// [a-z0-9] with a single hyphen. Leading and trailing hyphens are kept,
// so "CCTV Brackets!" becomes "cctv-brackets-".
func Generate(s string) string {
	return nonAlphanumericRun.ReplaceAllString(strings.ToLower(s), "-")
}
