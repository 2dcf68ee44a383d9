// Package knowledge contains the pure matching logic for knowledge entries:
// question normalization, tokenization, and lexical scoring. Nothing in this
// package touches a store or suspends.
package knowledge

import "strings"

// Normalize returns the canonical dedup key for a question: trimmed,
// whitespace-collapsed, lower-cased. This is the only place the key
// derivation lives; every dedup decision goes through it.
func Normalize(question string) string {
	return strings.ToLower(strings.Join(strings.Fields(question), " "))
}
