package normalize

import "testing"

func TestEmail(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  John.DOE@Example.COM  ", "john.doe@example.com"},
		{"sue@x.com", "sue@x.com"},
	}
	for _, c := range cases {
		if got := Email(c.in); got != c.want {
			t.Errorf("Email(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
