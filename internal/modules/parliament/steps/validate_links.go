package steps

import (
	"context"
	"fmt"

	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type ValidateLinksDeps struct {
	Log   *logger.Logger
	Links repos.AgendaLinkRepo
}

// ValidateLinks re-checks persisted links against their agenda evidence.
func ValidateLinks(ctx context.Context, deps ValidateLinksDeps) (linkage.ValidationReport, error) {
	if deps.Log == nil || deps.Links == nil {
		return linkage.ValidationReport{}, fmt.Errorf("validate_links: missing deps")
	}
	log := deps.Log.With("step", "validate_links")
	rows, err := deps.Links.ListEvidence(dbctx.Context{Ctx: ctx})
	if err != nil {
		return linkage.ValidationReport{}, fmt.Errorf("validate_links: %w", err)
	}
	links := make([]linkage.PersistedLink, 0, len(rows))
	for _, r := range rows {
		links = append(links, linkage.PersistedLink{
			LinkID:        r.LinkID,
			AgendaEventID: r.EventID,
			IniID:         r.IniID,
			LinkType:      r.LinkType,
			Confidence:    r.LinkConfidence,
			ExtractedText: r.ExtractedText,
			Description:   r.Description,
		})
	}
	rep := linkage.ValidateLinks(links)
	for _, issue := range rep.Issues {
		log.Warn("Link failed validation", "link_id", issue.LinkID, "problem", issue.Problem)
	}
	log.Info("Links validated", "checked", rep.Checked, "bid_direct", rep.BIDDirect, "committee_date", rep.CommitteeDate, "issues", len(rep.Issues))
	return rep, nil
}
