package linkage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
)

var bidTokenPattern = regexp.MustCompile(`^BID=(\d+)$`)

// PersistedLink is a stored agenda link joined with the evidence needed to re-check it.
type PersistedLink struct {
	LinkID        uint
	AgendaEventID int64
	IniID         string
	LinkType      string
	Confidence    float64
	ExtractedText string
	Description   string
}

type LinkIssue struct {
	LinkID  uint   `json:"link_id"`
	Problem string `json:"problem"`
}

type ValidationReport struct {
	Checked       int         `json:"checked"`
	BIDDirect     int         `json:"bid_direct"`
	CommitteeDate int         `json:"committee_date"`
	Issues        []LinkIssue `json:"issues,omitempty"`
}

func (r ValidationReport) OK() bool { return len(r.Issues) == 0 }

// ValidateLinks re-checks stored links: a bid_direct token must appear in the
// decoded description and name the linked initiative with confidence 1.00; a
// committee_date confidence must sit inside the committee/date band whatever
// the linker was configured with.
func ValidateLinks(links []PersistedLink) ValidationReport {
	var rep ValidationReport
	issue := func(id uint, format string, args ...interface{}) {
		rep.Issues = append(rep.Issues, LinkIssue{LinkID: id, Problem: fmt.Sprintf(format, args...)})
	}
	for _, lk := range links {
		rep.Checked++
		switch lk.LinkType {
		case parliament.LinkTypeBIDDirect:
			rep.BIDDirect++
			m := bidTokenPattern.FindStringSubmatch(lk.ExtractedText)
			if m == nil {
				issue(lk.LinkID, "malformed evidence %q", lk.ExtractedText)
				continue
			}
			if !strings.Contains(DecodeDescription(lk.Description), lk.ExtractedText) {
				issue(lk.LinkID, "%s not found in agenda event %d description", lk.ExtractedText, lk.AgendaEventID)
			}
			if m[1] != lk.IniID {
				issue(lk.LinkID, "%s linked to initiative %s", lk.ExtractedText, lk.IniID)
			}
			if lk.Confidence != BIDDirectConfidence {
				issue(lk.LinkID, "bid_direct confidence %.2f", lk.Confidence)
			}
		case parliament.LinkTypeCommitteeDate:
			rep.CommitteeDate++
			if lk.Confidence < CommitteeDateMinConfidence || lk.Confidence > CommitteeDateMaxConfidence {
				issue(lk.LinkID, "committee_date confidence %.2f outside [%.2f, %.2f]", lk.Confidence, CommitteeDateMinConfidence, CommitteeDateMaxConfidence)
			}
		default:
			issue(lk.LinkID, "unknown link type %q", lk.LinkType)
		}
	}
	return rep
}
