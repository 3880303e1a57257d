package routeros

import "github.com/rtician/routeros/internal/wordutil"

// Reply is an attribute map returned for one !re row: an unordered mapping
// from attribute key to value. If the same key appears twice within a
// sentence, the later value wins.
type Reply map[string]string

// parseAttributes builds a Reply from a sentence's parameter words, each
// of the form "=key=value" (or the RouterOS ".id"-style API attribute
// words, which parse the same way: the leading sigil is always a single
// '=' byte). Words that aren't well-formed attribute words are skipped.
func parseAttributes(words []string) Reply {
	attrs := make(Reply, len(words))
	for _, w := range words {
		if len(w) == 0 || w[0] != '=' {
			continue
		}
		key, value, ok := wordutil.ParseWord(w, 1)
		if !ok {
			continue
		}
		attrs[key] = value
	}
	return attrs
}
