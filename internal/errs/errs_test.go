package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	err := New(NotFound, "user %q not found", "joe")
	if got := CodeOf(err); got != NotFound {
		t.Fatalf("CodeOf = %s, want %s", got, NotFound)
	}

	// wrapped further up the call chain the code must still be visible
	wrapped := fmt.Errorf("getUser: %w", err)
	if got := CodeOf(wrapped); got != NotFound {
		t.Fatalf("CodeOf(wrapped) = %s, want %s", got, NotFound)
	}

	// an arbitrary error classifies as a storage failure
	if got := CodeOf(errors.New("socket closed")); got != DB {
		t.Fatalf("CodeOf(plain) = %s, want %s", got, DB)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(Exists, cause, "chatName already in use")
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable via errors.Is")
	}
	if got := CodeOf(err); got != Exists {
		t.Fatalf("CodeOf = %s, want %s", got, Exists)
	}
}

func TestListAggregates(t *testing.T) {
	list := List{
		New(Missing, "chatName is required"),
		New(BadVal, "email is not a valid address"),
	}
	if !HasCode(list, Missing) || !HasCode(list, BadVal) {
		t.Fatalf("expected both codes present in %v", list)
	}
	if HasCode(list, Exists) {
		t.Fatalf("did not expect %s in %v", Exists, list)
	}
	if got := CodeOf(list); got != Missing {
		t.Fatalf("CodeOf(list) = %s, want first member's code %s", got, Missing)
	}
}
