package domain

import "strings"

// ResolvePrefix returns the first prefix that content starts with, in the given order.
// Content that is nothing but the prefix does not match.
func ResolvePrefix(content string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if p == "" || !strings.HasPrefix(content, p) {
			continue
		}
		if len(content) == len(p) {
			return "", false
		}

		return p, true
	}

	return "", false
}
