package normalize

import "strings"

// Email returns the canonical form of an email address used for the
// unique email index and for lookups: surrounding whitespace trimmed
// and the address lower-cased. Applying it on both the write and the
// query path keeps mixed-case input from defeating uniqueness.
func Email(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
