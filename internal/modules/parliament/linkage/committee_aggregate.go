package linkage

import (
	"sort"
	"strings"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
)

const noPartyLabel = "Sem partido"

var (
	approvedFragments = []string{"Publicação", "Aprovad"}
	rejectedFragments = []string{"Rejeit", "Retirad", "Caduc"}
)

type MemberFact struct {
	OrgaoID uint
	Party   string
}

// LinkFact is one committee link joined with its initiative's final state.
type LinkFact struct {
	OrgaoID       *uint
	CommitteeName string
	LinkType      string
	IniciativaID  uint
	IsCompleted   bool
	CurrentStatus string
}

type CommitteeSummary struct {
	OrgaoID      uint           `json:"orgao_id"`
	PartyCounts  map[string]int `json:"party_breakdown"`
	MemberCount  int            `json:"member_count"`
	Authored     int            `json:"authored_initiatives"`
	LeadPending  int            `json:"lead_pending"`
	LeadApproved int            `json:"lead_approved"`
	LeadRejected int            `json:"lead_rejected"`
}

// PartyLabel trims a member's party, naming blanks noPartyLabel.
func PartyLabel(party string) string {
	if party = strings.TrimSpace(party); party == "" {
		return noPartyLabel
	}
	return party
}

// PartyBreakdown counts members per party label.
func PartyBreakdown(parties []string) map[string]int {
	out := make(map[string]int, len(parties))
	for _, p := range parties {
		out[PartyLabel(p)]++
	}
	return out
}

type linkPredicate func(LinkFact) bool

// fold counts distinct initiatives per committee among the links matching pred.
func fold(links []LinkFact, names map[string]uint, pred linkPredicate) map[uint]int {
	seen := map[uint]map[uint]struct{}{}
	for _, lk := range links {
		if !pred(lk) {
			continue
		}
		orgaoID, ok := committeeOf(lk, names)
		if !ok {
			continue
		}
		if seen[orgaoID] == nil {
			seen[orgaoID] = map[uint]struct{}{}
		}
		seen[orgaoID][lk.IniciativaID] = struct{}{}
	}
	out := make(map[uint]int, len(seen))
	for id, inis := range seen {
		out[id] = len(inis)
	}
	return out
}

// committeeOf prefers the resolved orgao id; author links only carry a name.
func committeeOf(lk LinkFact, names map[string]uint) (uint, bool) {
	if lk.OrgaoID != nil {
		return *lk.OrgaoID, true
	}
	id, ok := names[strings.TrimSpace(lk.CommitteeName)]
	return id, ok
}

func containsAny(s string, frags []string) bool {
	for _, f := range frags {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

// BuildCommitteeAggregates runs each count as its own fold over the same facts
// and merges the results into one summary per committee.
func BuildCommitteeAggregates(members []MemberFact, links []LinkFact, names map[string]uint) []CommitteeSummary {
	parties := map[uint]map[string]int{}
	for _, m := range members {
		party := PartyLabel(m.Party)
		if parties[m.OrgaoID] == nil {
			parties[m.OrgaoID] = map[string]int{}
		}
		parties[m.OrgaoID][party]++
	}

	isLead := func(lk LinkFact) bool { return lk.LinkType == parliament.LinkTypeLead }
	authored := fold(links, names, func(lk LinkFact) bool { return lk.LinkType == parliament.LinkTypeAuthor })
	pending := fold(links, names, func(lk LinkFact) bool { return isLead(lk) && !lk.IsCompleted })
	approved := fold(links, names, func(lk LinkFact) bool {
		return isLead(lk) && lk.IsCompleted && containsAny(lk.CurrentStatus, approvedFragments)
	})
	rejected := fold(links, names, func(lk LinkFact) bool {
		return isLead(lk) && lk.IsCompleted && containsAny(lk.CurrentStatus, rejectedFragments)
	})

	ids := map[uint]struct{}{}
	for _, m := range []map[uint]int{authored, pending, approved, rejected} {
		for id := range m {
			ids[id] = struct{}{}
		}
	}
	for id := range parties {
		ids[id] = struct{}{}
	}

	out := make([]CommitteeSummary, 0, len(ids))
	for id := range ids {
		s := CommitteeSummary{
			OrgaoID:      id,
			PartyCounts:  parties[id],
			Authored:     authored[id],
			LeadPending:  pending[id],
			LeadApproved: approved[id],
			LeadRejected: rejected[id],
		}
		if s.PartyCounts == nil {
			s.PartyCounts = map[string]int{}
		}
		for _, n := range s.PartyCounts {
			s.MemberCount += n
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrgaoID < out[j].OrgaoID })
	return out
}
