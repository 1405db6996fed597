package domain

import "strings"

// Identity is the caller resolved from a verified bearer token.
// It lives for a single request and is never persisted.
type Identity struct {
	Subject string
	Roles   []string
}

// HasRole reports whether the identity carries the given role tag.
// Comparison is case-insensitive.
func (i *Identity) HasRole(tag string) bool {
	for _, r := range i.Roles {
		if strings.EqualFold(r, tag) {
			return true
		}
	}
	return false
}
