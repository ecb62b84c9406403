// Package tags turns the free-text tag field of a question into canonical
// tag names.
package tags

import "strings"

// Normalize splits raw on commas and returns one token per non-blank entry,
// trimmed, with inner whitespace runs replaced by a single hyphen:
//
//	Normalize("python 3.x, javascript, ruby on rails ") // ["python-3.x" "javascript" "ruby-on-rails"]
//
// Order follows the input and duplicates are kept. Case is left alone.
func Normalize(raw string) []string {
	var out []string
	for _, entry := range strings.Split(raw, ",") {
		words := strings.Fields(entry)
		if len(words) == 0 {
			continue
		}
		out = append(out, strings.Join(words, "-"))
	}
	return out
}
