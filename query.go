package routeros

import "github.com/rtician/routeros/internal/wordutil"

// KV is an ordered key/value pair, used by Query's equal/lower/greater
// predicates so callers control word emission order without relying on Go
// map iteration order (spec's guidance for target languages without
// keyword arguments).
type KV struct {
	Key   string
	Value string
}

// Query is bound to a (Session, command) pair. Each predicate method
// composes one or more query words and performs one protocol round-trip
// via Session.CallWords. Query is an immutable value; building a new
// predicate call never mutates a prior one.
type Query struct {
	session *Session
	command string
}

// Has emits a "?name" word per name: rows must have that attribute.
func (q Query) Has(names ...string) ([]Reply, error) {
	words := make([]string, len(names))
	for i, name := range names {
		words[i] = "?" + name
	}
	return q.session.CallWords(q.command, words...)
}

// HasNot emits a "?-name" word per name: rows must not have that attribute.
func (q Query) HasNot(names ...string) ([]Reply, error) {
	words := make([]string, len(names))
	for i, name := range names {
		words[i] = "?-" + name
	}
	return q.session.CallWords(q.command, words...)
}

// Equal emits a "?=key=value" word per pair.
func (q Query) Equal(pairs ...KV) ([]Reply, error) {
	return q.session.CallWords(q.command, composeAll("?=", pairs)...)
}

// Lower emits a "?<key=value" word per pair.
func (q Query) Lower(pairs ...KV) ([]Reply, error) {
	return q.session.CallWords(q.command, composeAll("?<", pairs)...)
}

// Greater emits a "?>key=value" word per pair.
func (q Query) Greater(pairs ...KV) ([]Reply, error) {
	return q.session.CallWords(q.command, composeAll("?>", pairs)...)
}

func composeAll(sigil string, pairs []KV) []string {
	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = wordutil.ComposeWord(sigil, p.Key, p.Value)
	}
	return words
}
