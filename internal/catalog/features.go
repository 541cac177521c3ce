package catalog

import "strings"

// ParseKeyFeatures splits admin textarea input into one feature per
// non-blank line.
func ParseKeyFeatures(input string) []string {
	features := []string{}
	for _, line := range strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			features = append(features, line)
		}
	}
	return features
}

// JoinKeyFeatures is the inverse of ParseKeyFeatures for edit forms.
func JoinKeyFeatures(features []string) string {
	return strings.Join(features, "\n")
}
