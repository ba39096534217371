package utils

import "strings"

// SplitList splits a comma separated value, trimming blanks and dropping empty items.
func SplitList(value string) []string {
	items := make([]string, 0)
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			items = append(items, v)
		}
	}
	return items
}

// FirstNonEmpty returns the first non blank value, or "" when every value is blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
