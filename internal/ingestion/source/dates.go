package source

import (
	"strings"
	"time"
)

// ParseISODate reads "2025-03-26" or "2025-03-26T00:00:00". Year 0001 is the
// exports' placeholder for "unknown" and yields nil like any unparsable value.
func ParseISODate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	if strings.HasPrefix(s, "0001") {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// ParseDMYDate reads the agenda export's DD/MM/YYYY dates.
func ParseDMYDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return nil
	}
	return &t
}
