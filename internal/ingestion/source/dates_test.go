package source

import "testing"

func TestParseISODate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-03-26", "2025-03-26"},
		{"2025-03-26T00:00:00", "2025-03-26"},
		{"0001-01-01T00:00:00", ""},
		{"26/03/2025", ""},
		{"", ""},
	}
	for _, tc := range cases {
		got := ParseISODate(tc.in)
		if tc.want == "" {
			if got != nil {
				t.Fatalf("ParseISODate(%q): want nil got=%v", tc.in, got)
			}
			continue
		}
		if got == nil || got.Format("2006-01-02") != tc.want {
			t.Fatalf("ParseISODate(%q): want=%s got=%v", tc.in, tc.want, got)
		}
	}
}

func TestParseDMYDate(t *testing.T) {
	got := ParseDMYDate("03/06/2025")
	if got == nil || got.Format("2006-01-02") != "2025-06-03" {
		t.Fatalf("want 2025-06-03 got=%v", got)
	}
	if ParseDMYDate("2025-06-03") != nil {
		t.Fatalf("ISO input must not parse as DMY")
	}
}
