package query

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/steps"
	"github.com/yungbote/viriato-backend/internal/pkg/errors"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

// Service answers the read API from committed rows. It never writes.
type Service struct {
	log    *logger.Logger
	repos  repos.Set
	policy *bluemonday.Policy
}

func NewService(log *logger.Logger, set repos.Set) *Service {
	return &Service{
		log:    log.With("service", "ParliamentQuery"),
		repos:  set,
		policy: bluemonday.UGCPolicy(),
	}
}

type AgendaDetail struct {
	Event           *parliament.AgendaEvent  `json:"event"`
	DescriptionHTML string                   `json:"description_html"`
	DescriptionText string                   `json:"description_text"`
	Initiatives     []repos.LinkedIniciativa `json:"initiatives"`
}

// AgendaDetail returns one calendar entry with its sanitized description and
// linked initiatives, bid_direct first.
func (s *Service) AgendaDetail(ctx context.Context, eventID int64) (*AgendaDetail, error) {
	dbc := dbctx.Context{Ctx: ctx}
	ev, err := s.repos.AgendaEvent.GetByEventID(dbc, eventID)
	if err != nil {
		return nil, fmt.Errorf("agenda detail: %w", err)
	}
	if ev == nil {
		return nil, errors.ErrNotFound
	}
	links, err := s.repos.AgendaLink.ListForEvent(dbc, ev.ID)
	if err != nil {
		return nil, fmt.Errorf("agenda detail: links: %w", err)
	}
	if links == nil {
		links = []repos.LinkedIniciativa{}
	}
	return &AgendaDetail{
		Event:           ev,
		DescriptionHTML: s.policy.Sanitize(linkage.DecodeDescription(ev.Description)),
		DescriptionText: linkage.DescriptionText(ev.Description),
		Initiatives:     links,
	}, nil
}

// IniciativaComissoes lists an initiative's committee links in display order.
func (s *Service) IniciativaComissoes(ctx context.Context, iniID string) ([]linkage.CommitteeLinkRow, error) {
	dbc := dbctx.Context{Ctx: ctx}
	iniID = strings.TrimSpace(iniID)
	if iniID == "" {
		return nil, errors.ErrInvalidArgument
	}
	ini, err := s.repos.Iniciativa.GetByIniID(dbc, iniID)
	if err != nil {
		return nil, fmt.Errorf("iniciativa comissoes: %w", err)
	}
	if ini == nil {
		return nil, errors.ErrNotFound
	}
	rows, err := s.repos.IniciativaComissao.ListByIniciativa(dbc, ini.ID)
	if err != nil {
		return nil, fmt.Errorf("iniciativa comissoes: %w", err)
	}
	return displayRows(rows), nil
}

func displayRows(rows []repos.LinkWithIniciativa) []linkage.CommitteeLinkRow {
	out := make([]linkage.CommitteeLinkRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, linkage.CommitteeLinkRow{
			Link:                r.IniciativaComissao,
			IniID:               r.IniID,
			Title:               r.IniTitle,
			CurrentStatus:       r.CurrentStatus,
			IniciativaCompleted: r.IsCompleted,
		})
	}
	linkage.SortForDisplay(out)
	return out
}

func (s *Service) ListOrgaos(ctx context.Context, orgType string) ([]*parliament.Orgao, error) {
	rows, err := s.repos.Orgao.List(dbctx.Context{Ctx: ctx}, strings.TrimSpace(orgType))
	if err != nil {
		return nil, fmt.Errorf("list orgaos: %w", err)
	}
	if rows == nil {
		rows = []*parliament.Orgao{}
	}
	return rows, nil
}

// committeeAgendaLimit caps the agenda events returned with a body's detail.
const committeeAgendaLimit = 20

type OrgaoDetail struct {
	Orgao          *parliament.Orgao          `json:"orgao"`
	Members        []*parliament.OrgaoMembro  `json:"members"`
	PartyBreakdown map[string]int             `json:"party_breakdown"`
	MemberCount    int                        `json:"member_count"`
	Initiatives    []linkage.CommitteeLinkRow `json:"initiatives"`
	AgendaEvents   []CommitteeAgendaEvent     `json:"agenda_events"`
}

type CommitteeAgendaEvent struct {
	EventID       int64      `json:"event_id"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Date          *time.Time `json:"date"`
	Time          string     `json:"time"`
	Location      string     `json:"location"`
	Committee     string     `json:"committee"`
	Description   string     `json:"description"`
	MeetingNumber *int       `json:"meeting_number"`
}

func (s *Service) OrgaoDetail(ctx context.Context, orgID int64) (*OrgaoDetail, error) {
	dbc := dbctx.Context{Ctx: ctx}
	org, err := s.repos.Orgao.GetByOrgID(dbc, orgID)
	if err != nil {
		return nil, fmt.Errorf("orgao detail: %w", err)
	}
	if org == nil {
		return nil, errors.ErrNotFound
	}
	members, err := s.repos.OrgaoMembro.ListByOrgao(dbc, org.ID)
	if err != nil {
		return nil, fmt.Errorf("orgao detail: members: %w", err)
	}
	if members == nil {
		members = []*parliament.OrgaoMembro{}
	}
	parties := make([]string, 0, len(members))
	for _, m := range members {
		parties = append(parties, m.Party)
	}
	links, err := s.repos.IniciativaComissao.ListByOrgao(dbc, org.ID)
	if err != nil {
		return nil, fmt.Errorf("orgao detail: links: %w", err)
	}
	events, err := s.committeeAgenda(dbc, org.Name)
	if err != nil {
		return nil, fmt.Errorf("orgao detail: agenda: %w", err)
	}
	return &OrgaoDetail{
		Orgao:          org,
		Members:        members,
		PartyBreakdown: linkage.PartyBreakdown(parties),
		MemberCount:    len(members),
		Initiatives:    displayRows(links),
		AgendaEvents:   events,
	}, nil
}

// committeeAgenda finds the body's newest agenda events by normalized
// substring match of its name against the free-text agenda committee.
func (s *Service) committeeAgenda(dbc dbctx.Context, name string) ([]CommitteeAgendaEvent, error) {
	out := []CommitteeAgendaEvent{}
	all, err := s.repos.AgendaEvent.ListCommitteeLabels(dbc)
	if err != nil {
		return nil, err
	}
	labels := linkage.CommitteeLabelsFor(name, all)
	if len(labels) == 0 {
		return out, nil
	}
	rows, err := s.repos.AgendaEvent.ListByCommittees(dbc, labels, committeeAgendaLimit)
	if err != nil {
		return nil, err
	}
	for _, ev := range rows {
		v := CommitteeAgendaEvent{
			EventID:       ev.EventID,
			Title:         ev.Title,
			Subtitle:      ev.Subtitle,
			Date:          ev.StartDate,
			Time:          ev.StartTime,
			Location:      ev.Location,
			Description:   ev.Description,
			MeetingNumber: ev.MeetingNumber,
		}
		if ev.Committee != nil {
			v.Committee = *ev.Committee
		}
		out = append(out, v)
	}
	return out, nil
}

// CommitteeSummaries folds membership and committee-link facts into one
// summary per committee, ordered by orgao id. Other body types are left out.
func (s *Service) CommitteeSummaries(ctx context.Context) ([]linkage.CommitteeSummary, error) {
	dbc := dbctx.Context{Ctx: ctx}
	refs, err := steps.LoadRefMaps(dbc, nil, s.repos.Orgao)
	if err != nil {
		return nil, fmt.Errorf("committee summaries: %w", err)
	}
	memberRows, err := s.repos.OrgaoMembro.ListMemberFacts(dbc)
	if err != nil {
		return nil, fmt.Errorf("committee summaries: members: %w", err)
	}
	linkRows, err := s.repos.IniciativaComissao.ListLinkFacts(dbc)
	if err != nil {
		return nil, fmt.Errorf("committee summaries: links: %w", err)
	}
	members := make([]linkage.MemberFact, 0, len(memberRows))
	for _, m := range memberRows {
		members = append(members, linkage.MemberFact{OrgaoID: m.OrgaoID, Party: m.Party})
	}
	links := make([]linkage.LinkFact, 0, len(linkRows))
	for _, l := range linkRows {
		links = append(links, linkage.LinkFact{
			OrgaoID:       l.OrgaoID,
			CommitteeName: l.CommitteeName,
			LinkType:      l.LinkType,
			IniciativaID:  l.IniciativaID,
			IsCompleted:   l.IsCompleted,
			CurrentStatus: l.CurrentStatus,
		})
	}
	comissoes, err := s.repos.Orgao.List(dbc, parliament.OrgTypeComissao)
	if err != nil {
		return nil, fmt.Errorf("committee summaries: orgaos: %w", err)
	}
	isComissao := make(map[uint]struct{}, len(comissoes))
	for _, o := range comissoes {
		isComissao[o.ID] = struct{}{}
	}
	out := []linkage.CommitteeSummary{}
	for _, sum := range linkage.BuildCommitteeAggregates(members, links, refs.OrgaoNames()) {
		if _, ok := isComissao[sum.OrgaoID]; ok {
			out = append(out, sum)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrgaoID < out[j].OrgaoID })
	return out, nil
}

// DeputadoView is a deputy row plus, for temporary deputies, who they replace.
type DeputadoView struct {
	parliament.Deputado
	Replaces *linkage.Replaces `json:"replaces,omitempty"`
}

// Deputados lists deputies of a legislature ("" for all) with replacements
// resolved within that set.
func (s *Service) Deputados(ctx context.Context, legislature string) ([]DeputadoView, error) {
	rows, err := s.repos.Deputado.ListByLegislature(dbctx.Context{Ctx: ctx}, strings.TrimSpace(legislature))
	if err != nil {
		return nil, fmt.Errorf("deputados: %w", err)
	}
	repl, stats := linkage.ResolveReplacements(rows)
	if stats.Ambiguous > 0 || stats.Unresolved > 0 {
		s.log.Debug("Replacement resolution", "temporary", stats.Temporary, "resolved", stats.Resolved, "ambiguous", stats.Ambiguous, "unresolved", stats.Unresolved)
	}
	out := make([]DeputadoView, 0, len(rows))
	for _, d := range rows {
		v := DeputadoView{Deputado: d}
		if r, ok := repl[d.ID]; ok {
			r := r
			v.Replaces = &r
		}
		out = append(out, v)
	}
	return out, nil
}

// LatestRun returns the newest pipeline run, optionally for one command.
func (s *Service) LatestRun(ctx context.Context, command string) (*parliament.PipelineRun, error) {
	run, err := s.repos.PipelineRun.GetLatest(dbctx.Context{Ctx: ctx}, strings.TrimSpace(command))
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	if run == nil {
		return nil, errors.ErrNotFound
	}
	return run, nil
}
