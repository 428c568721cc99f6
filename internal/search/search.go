// Package search builds the word-match predicate used by message queries.
package search

import (
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var wordRx = regexp.MustCompile(`\w+`)

// Tokenize splits a words parameter into its word tokens, discarding
// whitespace and punctuation. Tokenize("hello, day!") = ["hello" "day"].
func Tokenize(words string) []string {
	return wordRx.FindAllString(words, -1)
}

// WordsClause returns a MongoDB filter clause over the given field which
// matches documents containing at least one of the tokens as a whole
// word, case-insensitively. A token must match at a word boundary:
// "ello" does not match "Hello". Returns nil when words yields no
// tokens; callers should then treat the filter as unsatisfiable rather
// than matching everything.
func WordsClause(field, words string) bson.M {
	tokens := Tokenize(words)
	if len(tokens) == 0 {
		return nil
	}
	ors := make(bson.A, len(tokens))
	for i, tok := range tokens {
		ors[i] = bson.M{field: bson.M{
			"$regex":   `\b` + regexp.QuoteMeta(tok) + `\b`,
			"$options": "i",
		}}
	}
	return bson.M{"$or": ors}
}
