package dep

import (
	"testing"

	"github.com/outpost-tools/fac-resolve/internal/semver"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in       string
		name     string
		req      string
		required bool
	}{
		{"base", "base", "", true},
		{"? base", "base", "", false},
		{"?base", "base", "", false},
		{"base >= 0.14.0", "base", ">=0.14.0", true},
		{"base >= 0.14.00", "base", ">=0.14.0", true},
		{"some name with spaces >= 1.2.3", "some name with spaces", ">=1.2.3", true},
		{"? some name with spaces >= 1.2.3", "some name with spaces", ">=1.2.3", false},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", c.in, err)
			continue
		}
		wantReq := semver.Any
		if c.req != "" {
			var err error
			wantReq, err = semver.ParseReq(c.req)
			if err != nil {
				t.Fatalf("ParseReq(%q): %v", c.req, err)
			}
		}
		want := Dependency{Name: ModName(c.name), Req: wantReq, Required: c.required}
		if got != want {
			t.Errorf("Parse(%q) = %+v, want %+v", c.in, got, want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", ">=1.2.3", "name >= "} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}
