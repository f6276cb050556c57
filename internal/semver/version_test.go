package semver

import "testing"

func TestParseCanonical(t *testing.T) {
	cases := []struct {
		in   string
		want Version
	}{
		{"0.2.2", Version{0, 2, 2}},
		{"0.14.0", Version{0, 14, 0}},
		{"0.2.02", Version{0, 2, 2}},
		{"0.14.00", Version{0, 14, 0}},
		{"1.2.3", Version{1, 2, 3}},
		{"1.2", Version{1, 2, 0}},
		{"5", Version{5, 0, 0}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "a.b.c", "1.2.3.4", "1..2"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, v := range []Version{{0, 0, 0}, {1, 2, 3}, {0, 14, 0}, {99, 0, 7}} {
		got, err := Parse(v.String())
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", v.String(), err)
		}
		if got != v {
			t.Errorf("Parse(%q) = %v, want %v", v.String(), got, v)
		}
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b Version
		want int
	}{
		{Version{1, 0, 0}, Version{1, 0, 0}, 0},
		{Version{1, 0, 0}, Version{1, 0, 1}, -1},
		{Version{1, 1, 0}, Version{1, 0, 9}, 1},
		{Version{0, 2, 2}, Version{0, 14, 0}, -1},
	}
	for _, c := range cases {
		if got := c.a.Compare(c.b); got != c.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestMatches(t *testing.T) {
	v := func(s string) Version {
		ver, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		return ver
	}
	cases := []struct {
		req  string
		v    string
		want bool
	}{
		{"", "1.0.0", true},
		{">=0.14.0", "0.14.0", true},
		{">=0.14.0", "0.13.9", false},
		{">0.14.0", "0.14.0", false},
		{"<2.0.0", "1.9.9", true},
		{"<=2.0.0", "2.0.0", true},
		{"=2.0.0", "2.0.1", false},
	}
	for _, c := range cases {
		req, err := ParseReq(c.req)
		if err != nil {
			t.Fatalf("ParseReq(%q): %v", c.req, err)
		}
		if got := req.Matches(v(c.v)); got != c.want {
			t.Errorf("ParseReq(%q).Matches(%s) = %v, want %v", c.req, c.v, got, c.want)
		}
	}
}
