package search

import (
	"reflect"
	"regexp"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"hello", []string{"hello"}},
		{"hello day", []string{"hello", "day"}},
		{"  hello,   day! ", []string{"hello", "day"}},
		{"c'est la vie", []string{"c", "est", "la", "vie"}},
		{"!!!", nil},
		{"", nil},
	}
	for _, c := range cases {
		if got := Tokenize(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWordsClauseShape(t *testing.T) {
	clause := WordsClause("msg", "hello day")
	ors, ok := clause["$or"].(bson.A)
	if !ok {
		t.Fatalf("expected $or clause, got %v", clause)
	}
	if len(ors) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(ors))
	}

	first := ors[0].(bson.M)["msg"].(bson.M)
	if first["$regex"] != `\bhello\b` {
		t.Errorf("first regex = %q, want %q", first["$regex"], `\bhello\b`)
	}
	if first["$options"] != "i" {
		t.Errorf("expected case-insensitive option, got %q", first["$options"])
	}
}

func TestWordsClauseEmpty(t *testing.T) {
	if c := WordsClause("msg", "?!"); c != nil {
		t.Fatalf("expected nil clause for token-free words, got %v", c)
	}
}

// The regexes sent to MongoDB use word-boundary anchors; exercise the
// intended semantics locally with Go's regexp engine.
func TestWordBoundarySemantics(t *testing.T) {
	clause := WordsClause("msg", "hello")
	rx := clause["$or"].(bson.A)[0].(bson.M)["msg"].(bson.M)["$regex"].(string)
	re := regexp.MustCompile(`(?i)` + rx)

	if !re.MatchString("Hello there") {
		t.Errorf("expected %q to match %q", rx, "Hello there")
	}
	if re.MatchString("Othello is a play") {
		t.Errorf("did not expect %q to match inside another word", rx)
	}
}

func TestWordsClauseEscapesMeta(t *testing.T) {
	// tokens never contain regex metacharacters after Tokenize, but the
	// clause builder escapes anyway in case tokenization rules change
	clause := WordsClause("msg", "day")
	rx := clause["$or"].(bson.A)[0].(bson.M)["msg"].(bson.M)["$regex"].(string)
	if rx != `\bday\b` {
		t.Fatalf("regex = %q, want %q", rx, `\bday\b`)
	}
}
