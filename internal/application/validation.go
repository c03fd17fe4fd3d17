package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "indexerID" -> "indexer ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"indexerID":    "indexer ID",
		"name":         "name",
		"links":        "mirror links",
		"primaryLinks": "primary links",
		"legacyLinks":  "legacy links",
		"globalIndex":  "mirror index",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// NormalizeLinks trims every link and drops blank entries, keeping order.
// Mirror URLs are not validated here; labels degrade to the raw string.
func NormalizeLinks(links []string) []string {
	out := make([]string, 0, len(links))
	for _, link := range links {
		if link = strings.TrimSpace(link); link != "" {
			out = append(out, link)
		}
	}
	return out
}

// ValidateLinks checks that at least one mirror link is present across
// both pools. Returns a ValidationError otherwise.
func ValidateLinks(primary, legacy []string) error {
	if len(NormalizeLinks(primary))+len(NormalizeLinks(legacy)) == 0 {
		return &ValidationError{
			Field:   "links",
			Message: fmt.Sprintf("at least one of %s or %s is required", formatFieldName("primaryLinks"), formatFieldName("legacyLinks")),
		}
	}
	return nil
}
