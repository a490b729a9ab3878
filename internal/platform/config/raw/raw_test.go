package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("RAWT_LOG_LEVEL", " info ")
	c := New().Prefix("RAWT_").Prefix("LOG_")
	if got := c.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get = %q", got)
	}
	if got := c.Get("FORMAT", "console"); got != "console" {
		t.Fatalf("Get default = %q", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("RAWB_")
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"TRUE", false, true},
		{" yes ", false, true},
		{"on", false, true},
		{"0", true, false},
		{"off", true, false},
		{"garbage", true, false},
		{"", true, true},
	}
	for _, tc := range cases {
		t.Setenv("RAWB_V", tc.val)
		if got := c.GetBool("V", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", tc.val, tc.def, got, tc.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("RAWI_")
	cases := []struct {
		val       string
		def, want int
	}{
		{"42", 0, 42},
		{"  7 ", 1, 7},
		{"12x", 9, 9},
		{"-5", 3, 3},
		{"", 11, 11},
	}
	for _, tc := range cases {
		t.Setenv("RAWI_V", tc.val)
		if got := c.GetInt("V", tc.def); got != tc.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tc.val, got, tc.want)
		}
	}
}
