// Package normalize provides the canonical form of the duplicate key used to
// detect potential duplicate books.
package normalize

import "strings"

// Key normalizes one half of the (title, author_last_name) duplicate key:
// surrounding whitespace is trimmed and the value lowercased. Matching is
// whole-string equality on the normalized values, never substring.
func Key(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// KeysEqual reports whether two raw field values normalize to the same key.
// Empty values never match anything, including each other: a record with a
// missing title or author has no duplicate key at all.
func KeysEqual(a, b string) bool {
	na, nb := Key(a), Key(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb
}

// HasKey reports whether a record with the given title and author last name
// participates in duplicate detection. Both halves must be non-blank.
func HasKey(title, authorLastName string) bool {
	return Key(title) != "" && Key(authorLastName) != ""
}
