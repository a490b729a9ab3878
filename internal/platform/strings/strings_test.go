package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	def := []string{"*"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "*" {
		t.Fatalf("nil input should fall back, got %v", got)
	}
	if got := IfEmpty([]string{}, def); len(got) != 1 {
		t.Fatalf("empty input should fall back, got %v", got)
	}
	in := []string{"https://editor.local"}
	if got := IfEmpty(in, def); got[0] != in[0] {
		t.Fatalf("non empty input should win, got %v", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"", "  "}, ""},
		{[]string{"", " clip-a.mp4 ", "b"}, "clip-a.mp4"},
		{[]string{"first", "second"}, "first"},
	}
	for _, c := range cases {
		if got := FirstNonEmpty(c.in...); got != c.want {
			t.Fatalf("FirstNonEmpty(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
