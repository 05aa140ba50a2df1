package repository

import "testing"

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"barista", "barista"},
		{"100%", `100\%`},
		{"night_shift", `night\_shift`},
		{`C:\temp`, `C:\\temp`},
		{"%_", `\%\_`},
	}
	for _, tc := range cases {
		if got := escapeLike(tc.in); got != tc.want {
			t.Fatalf("escapeLike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
