package linkage

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeCommittee canonicalizes a committee label for substring matching:
// NFC, collapsed whitespace, Unicode case folding.
func NormalizeCommittee(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	// Casers carry state; one per call.
	return cases.Fold().String(s)
}

// CommitteeLabelsFor returns the agenda committee labels that contain the
// body's name after normalization, in input order.
func CommitteeLabelsFor(name string, labels []string) []string {
	needle := NormalizeCommittee(name)
	if needle == "" {
		return nil
	}
	var out []string
	for _, l := range labels {
		if strings.Contains(NormalizeCommittee(l), needle) {
			out = append(out, l)
		}
	}
	return out
}
