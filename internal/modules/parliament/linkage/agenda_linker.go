package linkage

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

var bidPattern = regexp.MustCompile(`BID=(\d+)`)

// Committee/date links live inside a fixed window and confidence band. A
// config may narrow them but never widen them.
const (
	MaxToleranceDays           = 7
	CommitteeDateMinConfidence = 0.50
	CommitteeDateMaxConfidence = 0.75
	BIDDirectConfidence        = 1.00
)

// LinkerConfig holds the committee/date heuristic constants.
type LinkerConfig struct {
	ToleranceDays int     `yaml:"date_tolerance_days" json:"date_tolerance_days"`
	MinConfidence float64 `yaml:"confidence_min" json:"confidence_min"`
	MaxConfidence float64 `yaml:"confidence_max" json:"confidence_max"`
}

func DefaultLinkerConfig() LinkerConfig {
	return LinkerConfig{
		ToleranceDays: MaxToleranceDays,
		MinConfidence: CommitteeDateMinConfidence,
		MaxConfidence: CommitteeDateMaxConfidence,
	}
}

// Normalized fills zero values with the defaults and clamps the window to
// [1, MaxToleranceDays] and the band to the committee/date band.
func (c LinkerConfig) Normalized() LinkerConfig {
	def := DefaultLinkerConfig()
	if c.ToleranceDays <= 0 || c.ToleranceDays > MaxToleranceDays {
		c.ToleranceDays = def.ToleranceDays
	}
	c.MinConfidence = clampConfidence(c.MinConfidence, def.MinConfidence)
	c.MaxConfidence = clampConfidence(c.MaxConfidence, def.MaxConfidence)
	if c.MinConfidence > c.MaxConfidence {
		c.MinConfidence, c.MaxConfidence = def.MinConfidence, def.MaxConfidence
	}
	return c
}

func clampConfidence(v, def float64) float64 {
	switch {
	case v <= 0:
		return def
	case v < CommitteeDateMinConfidence:
		return CommitteeDateMinConfidence
	case v > CommitteeDateMaxConfidence:
		return CommitteeDateMaxConfidence
	}
	return v
}

// Confidence scales linearly from MaxConfidence on the same day down to
// MinConfidence at the edge of the window, rounded to two decimals.
func (c LinkerConfig) Confidence(days int) float64 {
	c = c.Normalized()
	if days < 0 {
		days = -days
	}
	if days > c.ToleranceDays {
		days = c.ToleranceDays
	}
	span := c.MaxConfidence - c.MinConfidence
	v := c.MaxConfidence - span*float64(days)/float64(c.ToleranceDays)
	return math.Round(v*100) / 100
}

// AgendaInput is the linker's view of one agenda event.
type AgendaInput struct {
	ID          uint
	EventID     int64
	Committee   string
	StartDate   *time.Time
	Description string
}

// InitiativeEventInput is the linker's view of one initiative event.
type InitiativeEventInput struct {
	IniciativaID uint
	Committee    string
	PhaseName    string
	EventDate    *time.Time
	OrderIndex   int
}

type Link struct {
	AgendaEventID uint
	IniciativaID  uint
	LinkType      string
	Confidence    float64
	ExtractedText string
}

type pairKey struct {
	agendaID     uint
	iniciativaID uint
}

// LinkStats is the linker's slice of the end-of-run report.
type LinkStats struct {
	Events             int `json:"events"`
	BIDTokens          int `json:"bid_tokens"`
	BIDLinks           int `json:"bid_links"`
	UnresolvedBIDs     int `json:"unresolved_bids"`
	CommitteeDateLinks int `json:"committee_date_links"`
	SupersededByBID    int `json:"superseded_by_bid"`
	AmbiguousCommittee int `json:"ambiguous_committee_match"`
	EventsWithoutLinks int `json:"events_without_links"`
}

func (s LinkStats) Record(t *Tally) {
	t.Written("agenda_links.bid_direct", s.BIDLinks)
	t.Written("agenda_links.committee_date", s.CommitteeDateLinks)
	t.Unresolved("agenda_bid_reference", s.UnresolvedBIDs)
	t.Ambiguous("agenda_committee_match", s.AmbiguousCommittee)
	t.Skipped("committee_date_superseded_by_bid", s.SupersededByBID)
	t.Skipped("agenda_events_without_links", s.EventsWithoutLinks)
}

type LinkResult struct {
	Links []Link
	Stats LinkStats
}

// ForEvent returns the links of one agenda event.
func (r LinkResult) ForEvent(agendaID uint) []Link {
	var out []Link
	for _, l := range r.Links {
		if l.AgendaEventID == agendaID {
			out = append(out, l)
		}
	}
	return out
}

type Linker struct {
	cfg LinkerConfig
	log *logger.Logger
}

func NewLinker(cfg LinkerConfig, log *logger.Logger) *Linker {
	if log == nil {
		log = logger.Nop()
	}
	return &Linker{cfg: cfg.Normalized(), log: log.With("component", "AgendaLinker")}
}

// Link runs the direct-reference strategy to completion, records the resolved
// pairs, then runs the committee/date strategy against that exclusion set.
// At most one link per (agenda event, initiative) pair is returned.
func (l *Linker) Link(events []AgendaInput, iniEvents []InitiativeEventInput, refs *RefMaps) LinkResult {
	var res LinkResult
	res.Stats.Events = len(events)

	direct := l.linkByReference(events, refs, &res.Stats)
	claimed := make(map[pairKey]struct{}, len(direct))
	for _, lk := range direct {
		claimed[pairKey{lk.AgendaEventID, lk.IniciativaID}] = struct{}{}
	}
	heuristic := l.linkByCommitteeDate(events, iniEvents, claimed, &res.Stats)

	res.Links = append(direct, heuristic...)
	sort.SliceStable(res.Links, func(i, j int) bool {
		a, b := res.Links[i], res.Links[j]
		if a.AgendaEventID != b.AgendaEventID {
			return a.AgendaEventID < b.AgendaEventID
		}
		if a.LinkType != b.LinkType {
			return a.LinkType == parliament.LinkTypeBIDDirect
		}
		return a.IniciativaID < b.IniciativaID
	})

	linked := map[uint]bool{}
	for _, lk := range res.Links {
		linked[lk.AgendaEventID] = true
	}
	for _, ev := range events {
		if !linked[ev.ID] {
			res.Stats.EventsWithoutLinks++
		}
	}
	return res
}

func (l *Linker) linkByReference(events []AgendaInput, refs *RefMaps, stats *LinkStats) []Link {
	var out []Link
	for _, ev := range events {
		seen := map[uint]bool{}
		for _, bid := range ExtractBIDs(ev.Description) {
			stats.BIDTokens++
			iniID, ok := refs.Iniciativa(bid)
			if !ok {
				stats.UnresolvedBIDs++
				l.log.Debug("BID reference not in store", "agenda_event_id", ev.EventID, "bid", bid)
				continue
			}
			if seen[iniID] {
				continue
			}
			seen[iniID] = true
			out = append(out, Link{
				AgendaEventID: ev.ID,
				IniciativaID:  iniID,
				LinkType:      parliament.LinkTypeBIDDirect,
				Confidence:    BIDDirectConfidence,
				ExtractedText: "BID=" + bid,
			})
			stats.BIDLinks++
		}
	}
	return out
}

type committeeGroup struct {
	label  string
	events []InitiativeEventInput
}

type dateCandidate struct {
	ev   InitiativeEventInput
	days int
}

func (l *Linker) linkByCommitteeDate(events []AgendaInput, iniEvents []InitiativeEventInput, claimed map[pairKey]struct{}, stats *LinkStats) []Link {
	groups := map[string]*committeeGroup{}
	var names []string
	for _, ie := range iniEvents {
		if ie.EventDate == nil {
			continue
		}
		n := NormalizeCommittee(ie.Committee)
		if n == "" {
			continue
		}
		g, ok := groups[n]
		if !ok {
			g = &committeeGroup{label: strings.TrimSpace(ie.Committee)}
			groups[n] = g
			names = append(names, n)
		}
		g.events = append(g.events, ie)
	}
	sort.Strings(names)

	var out []Link
	for _, ev := range events {
		if ev.StartDate == nil {
			continue
		}
		needle := NormalizeCommittee(ev.Committee)
		if needle == "" {
			continue
		}
		var matched []string
		for _, n := range names {
			if strings.Contains(n, needle) {
				matched = append(matched, n)
			}
		}
		if len(matched) > 1 {
			stats.AmbiguousCommittee++
			l.log.Warn("Agenda committee matches several committees",
				"agenda_event_id", ev.EventID,
				"committee", ev.Committee,
				"matches", len(matched),
			)
		}

		best := map[uint]dateCandidate{}
		for _, n := range matched {
			for _, ie := range groups[n].events {
				days := dayDistance(*ev.StartDate, *ie.EventDate)
				if days > l.cfg.ToleranceDays {
					continue
				}
				cur, ok := best[ie.IniciativaID]
				if !ok || days < cur.days || (days == cur.days && ie.OrderIndex < cur.ev.OrderIndex) {
					best[ie.IniciativaID] = dateCandidate{ev: ie, days: days}
				}
			}
		}

		ids := make([]uint, 0, len(best))
		for id := range best {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			if _, done := claimed[pairKey{ev.ID, id}]; done {
				stats.SupersededByBID++
				continue
			}
			c := best[id]
			out = append(out, Link{
				AgendaEventID: ev.ID,
				IniciativaID:  id,
				LinkType:      parliament.LinkTypeCommitteeDate,
				Confidence:    l.cfg.Confidence(c.days),
				ExtractedText: fmt.Sprintf("%s | %s | %d days", strings.TrimSpace(c.ev.Committee), c.ev.PhaseName, c.days),
			})
			stats.CommitteeDateLinks++
		}
	}
	return out
}

// ExtractBIDs decodes the HTML-escaped description and returns the distinct
// BID=<digits> references in order of first appearance.
func ExtractBIDs(description string) []string {
	decoded := DecodeDescription(description)
	var out []string
	seen := map[string]bool{}
	for _, m := range bidPattern.FindAllStringSubmatch(decoded, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		out = append(out, m[1])
	}
	return out
}

func dayDistance(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	d := int(math.Round(db.Sub(da).Hours() / 24))
	if d < 0 {
		d = -d
	}
	return d
}
