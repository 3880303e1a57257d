// Package wordutil parses and composes RouterOS API attribute and query
// words: the "=key=value", "?=key=value", "?<key=value", "?>key=value"
// shapes shared by Session's attribute words and Query's predicate words.
//
// Grounded on the original project's routeros/tests/test_api.py, which
// exercises a Parser.parse_word/compose_word pair that the kept api.py
// module doesn't itself define (a documented inconsistency between
// duplicated source files) — this is the richer, tested variant.
package wordutil

import "strings"

// ParseWord splits a sigil-prefixed word into its key and value. sigilLen
// is the number of leading bytes to strip before looking for the
// separating '=' (1 for a plain "=key=value" attribute word, 2 for a
// "?=key=value" / "?<key=value" / "?>key=value" query word). The first '='
// found after the sigil separates key from value; any further '=' bytes
// belong to the value, so "=comment=a=b" parses as ("comment", "a=b").
func ParseWord(word string, sigilLen int) (key, value string, ok bool) {
	if len(word) < sigilLen {
		return "", "", false
	}
	rest := word[sigilLen:]
	idx := strings.IndexByte(rest, '=')
	if idx < 0 {
		return "", "", false
	}
	return rest[:idx], rest[idx+1:], true
}

// ComposeWord builds a sigil-prefixed word from a key/value pair, the
// inverse of ParseWord. sigil is the literal prefix ("=", "?=", "?<", "?>").
func ComposeWord(sigil, key, value string) string {
	var b strings.Builder
	b.Grow(len(sigil) + len(key) + 1 + len(value))
	b.WriteString(sigil)
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
	return b.String()
}
