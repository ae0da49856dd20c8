// Package search filters tasks and todos by a free-text query.
package search

import "strings"

// Searchable is anything with a title and a description to match against.
type Searchable interface {
	SearchFields() (title, description string)
}

// Matches reports whether query occurs, ignoring case, in the title or the
// description of item. A blank query matches everything.
func Matches(item Searchable, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	q := strings.ToLower(query)
	title, description := item.SearchFields()
	return strings.Contains(strings.ToLower(title), q) ||
		strings.Contains(strings.ToLower(description), q)
}

// Filter returns the items matching query in their original order. A blank
// query returns items unchanged.
func Filter[T Searchable](items []T, query string) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}
	var out []T
	for _, item := range items {
		if Matches(item, query) {
			out = append(out, item)
		}
	}
	return out
}
