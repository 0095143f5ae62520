package normalization

import (
	"strings"
)

// ParseInputString trims and lower-cases free-form input. It is the single
// normalization used for emails and preference subject keys, so equality on
// the stored value is casing- and whitespace-insensitive.
func ParseInputString(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	return normalized
}

// FilterSubjects trims every subject and drops the ones that are empty after
// trimming. Order and duplicates are preserved.
func FilterSubjects(subjects []string) []string {
	out := make([]string, 0, len(subjects))
	for _, s := range subjects {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
