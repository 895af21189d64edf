package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the Unicode case-folded form of the trimmed input,
// suitable as a case-insensitive comparison key.
func Fold(value string) string {
	return cases.Fold().String(strings.TrimSpace(value))
}

// EqualFold reports whether two strings are equal under case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// FoldSet builds a lookup set of case-folded keys from the provided values.
// Empty values are skipped.
func FoldSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		folded := Fold(value)
		if folded == "" {
			continue
		}
		set[folded] = struct{}{}
	}
	return set
}

// SplitList splits a comma-separated list, trimming whitespace and
// dropping empty elements. A blank input yields an empty slice.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// JoinList renders values as a comma-separated list with single spaces
// stripped from each element.
func JoinList(values []string) string {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		if v := strings.TrimSpace(value); v != "" {
			trimmed = append(trimmed, v)
		}
	}
	return strings.Join(trimmed, ",")
}
