package steps

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type LinkAgendaDeps struct {
	DB          *gorm.DB
	Log         *logger.Logger
	Iniciativas repos.IniciativaRepo
	Events      repos.IniciativaEventRepo
	Orgaos      repos.OrgaoRepo
	Agenda      repos.AgendaEventRepo
	Links       repos.AgendaLinkRepo
}

type LinkAgendaInput struct {
	Config linkage.LinkerConfig
	Tally  *linkage.Tally
}

type LinkAgendaOutput struct {
	Stats   linkage.LinkStats `json:"stats"`
	Written int               `json:"written"`
	Pruned  int64             `json:"pruned"`
}

// LinkAgenda recomputes agenda-initiative links from committed agenda events
// and initiative events. Every link is upserted under its own savepoint and
// each event's stale links are then pruned, so a rerun converges to the same set.
func LinkAgenda(ctx context.Context, deps LinkAgendaDeps, in LinkAgendaInput) (LinkAgendaOutput, error) {
	out := LinkAgendaOutput{}
	if deps.DB == nil || deps.Log == nil || deps.Iniciativas == nil || deps.Events == nil ||
		deps.Orgaos == nil || deps.Agenda == nil || deps.Links == nil {
		return out, fmt.Errorf("link_agenda: missing deps")
	}
	log := deps.Log.With("step", "link_agenda")
	tally := in.Tally
	dbc := dbctx.Context{Ctx: ctx}

	refs, err := LoadRefMaps(dbc, deps.Iniciativas, deps.Orgaos)
	if err != nil {
		return out, fmt.Errorf("link_agenda: %w", err)
	}
	agenda, err := deps.Agenda.ListLinkable(dbc)
	if err != nil {
		return out, fmt.Errorf("link_agenda: list agenda: %w", err)
	}
	iniEvents, err := deps.Events.ListLinkable(dbc)
	if err != nil {
		return out, fmt.Errorf("link_agenda: list initiative events: %w", err)
	}

	res := linkage.NewLinker(in.Config, deps.Log).Link(agendaInputs(agenda), initiativeEventInputs(iniEvents), refs)
	out.Stats = res.Stats
	byEvent := make(map[uint][]linkage.Link, len(agenda))
	for _, lk := range res.Links {
		byEvent[lk.AgendaEventID] = append(byEvent[lk.AgendaEventID], lk)
	}

	err = forEachBatch(ctx, deps.DB, len(agenda), defaultBatchSize, func(tx *gorm.DB, i int) {
		ev := agenda[i]
		links := byEvent[ev.ID]
		keep := make([]uint, 0, len(links))
		written := 0
		for _, lk := range links {
			lk := lk
			// A failed pair stays in keep so its previous row survives the prune.
			keep = append(keep, lk.IniciativaID)
			if writeRow(ctx, tx, tally, log, "agenda_initiative_links", func(sp dbctx.Context) error {
				return deps.Links.Upsert(sp, &parliament.AgendaInitiativeLink{
					AgendaEventID:  lk.AgendaEventID,
					IniciativaID:   lk.IniciativaID,
					LinkType:       lk.LinkType,
					LinkConfidence: lk.Confidence,
					ExtractedText:  lk.ExtractedText,
				})
			}) {
				written++
			}
		}
		out.Written += written
		tally.Written("agenda_initiative_links", written)

		var pruned int64
		if writeRow(ctx, tx, tally, log, "agenda_initiative_links.prune", func(sp dbctx.Context) error {
			n, err := deps.Links.PruneStale(sp, ev.ID, keep)
			pruned = n
			return err
		}) {
			out.Pruned += pruned
		}
	})
	if err != nil {
		return out, fmt.Errorf("link_agenda: %w", err)
	}

	res.Stats.Record(tally)
	log.Info("Agenda linked",
		"events", res.Stats.Events,
		"bid_links", res.Stats.BIDLinks,
		"committee_date_links", res.Stats.CommitteeDateLinks,
		"unresolved_bids", res.Stats.UnresolvedBIDs,
		"ambiguous", res.Stats.AmbiguousCommittee,
		"events_without_links", res.Stats.EventsWithoutLinks,
		"written", out.Written,
		"pruned", out.Pruned,
	)
	return out, nil
}

func agendaInputs(rows []*parliament.AgendaEvent) []linkage.AgendaInput {
	out := make([]linkage.AgendaInput, 0, len(rows))
	for _, r := range rows {
		in := linkage.AgendaInput{
			ID:          r.ID,
			EventID:     r.EventID,
			StartDate:   r.StartDate,
			Description: r.Description,
		}
		if r.Committee != nil {
			in.Committee = *r.Committee
		}
		out = append(out, in)
	}
	return out
}

func initiativeEventInputs(rows []*parliament.IniciativaEvent) []linkage.InitiativeEventInput {
	out := make([]linkage.InitiativeEventInput, 0, len(rows))
	for _, r := range rows {
		in := linkage.InitiativeEventInput{
			IniciativaID: r.IniciativaID,
			PhaseName:    r.PhaseName,
			EventDate:    r.EventDate,
			OrderIndex:   r.OrderIndex,
		}
		if r.Committee != nil {
			in.Committee = *r.Committee
		}
		out = append(out, in)
	}
	return out
}
