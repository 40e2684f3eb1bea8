// Package strings provides string slice utilities shared across the
// verification core, mainly for flag and recommendation lists.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice, trimming
// whitespace from each element. First-seen order is preserved, which matters
// for flag lists: the earliest raise of a flag keeps its position in the
// explainability output.
//
// Example:
//
//	DedupeAndTrim([]string{" FACE_MISMATCH ", "PAN_INVALID", "FACE_MISMATCH", ""})
//	// Returns: []string{"FACE_MISMATCH", "PAN_INVALID"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// ContainsFold reports whether any element of values contains substr,
// case-insensitively. Used for keyword-bucketing flags into categories.
func ContainsFold(values []string, substr string) bool {
	needle := strings.ToUpper(substr)
	for _, v := range values {
		if strings.Contains(strings.ToUpper(v), needle) {
			return true
		}
	}
	return false
}
