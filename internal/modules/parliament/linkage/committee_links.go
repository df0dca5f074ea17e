package linkage

import (
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
)

// competentSentinel marks the lead committee of an event.
const competentSentinel = "S"

type committeeLinkKey struct {
	name      string
	linkType  string
	phaseCode string
}

// ExtractCommitteeLinks emits the (initiative, committee, phase, role) rows of
// one initiative. Committees resolve only through their embedded IdComissao;
// a missing or unknown id leaves orgao_id NULL.
func ExtractCommitteeLinks(ini *source.Iniciativa, iniciativaID uint, refs *RefMaps, tally *Tally) []*parliament.IniciativaComissao {
	if ini == nil {
		return nil
	}
	var out []*parliament.IniciativaComissao
	index := map[committeeLinkKey]int{}
	put := func(row *parliament.IniciativaComissao) {
		k := committeeLinkKey{name: row.CommitteeName, linkType: row.LinkType, phaseCode: row.PhaseCode}
		if i, ok := index[k]; ok {
			out[i] = row
			return
		}
		index[k] = len(out)
		out = append(out, row)
	}

	if name, ok := AuthorCommittee(ini); ok {
		put(&parliament.IniciativaComissao{
			IniciativaID:  iniciativaID,
			CommitteeName: name,
			LinkType:      parliament.LinkTypeAuthor,
		})
	}

	for _, ev := range ini.Eventos {
		eventDate := source.ParseISODate(string(ev.DataFase))
		for _, com := range ev.Comissao {
			name := strings.TrimSpace(string(com.Nome))
			if name == "" {
				tally.Malformed("committee_link_missing_name", 1)
				continue
			}
			row := &parliament.IniciativaComissao{
				IniciativaID:     iniciativaID,
				CommitteeName:    name,
				LinkType:         parliament.LinkTypeSecondary,
				PhaseCode:        string(ev.Codigo),
				PhaseName:        string(ev.Fase),
				DistributionDate: source.ParseISODate(string(com.DataDistribuicao)),
				EventDate:        eventDate,
				HasRapporteur:    len(com.Relatores) > 0,
				HasVote:          len(com.Votacao) > 0,
				HasDocuments:     len(com.Documentos) > 0,
				DocumentCount:    len(com.Documentos),
				RawData:          datatypes.JSON(com.Raw),
			}
			if string(com.Competente) == competentSentinel {
				row.LinkType = parliament.LinkTypeLead
			}
			if apiID := string(com.IDComissao); apiID != "" {
				row.CommitteeAPIID = &apiID
				if id, ok := refs.OrgaoByAPIID(apiID); ok {
					orgaoID := id
					row.OrgaoID = &orgaoID
				} else {
					tally.Unresolved("committee_link_orgao", 1)
				}
			} else {
				tally.Unresolved("committee_link_no_api_id", 1)
			}
			if vote, ok := com.Votacao.First(); ok {
				if vote.Resultado != "" {
					result := string(vote.Resultado)
					row.VoteResult = &result
				}
				row.VoteDate = source.ParseISODate(string(vote.Data))
			}
			put(row)
		}
	}
	return out
}

// CommitteeLinkRow is a committee link joined with its initiative for display.
type CommitteeLinkRow struct {
	Link                parliament.IniciativaComissao `json:"link"`
	IniID               string                        `json:"ini_id"`
	Title               string                        `json:"title"`
	CurrentStatus       string                        `json:"current_status"`
	IniciativaCompleted bool                          `json:"is_completed"`
}

var linkTypeRank = map[string]int{
	parliament.LinkTypeLead:      0,
	parliament.LinkTypeSecondary: 1,
	parliament.LinkTypeAuthor:    2,
}

// SortForDisplay orders lead < secondary < author, then incomplete initiatives
// first, then distribution date descending with NULLs last.
func SortForDisplay(rows []CommitteeLinkRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		ra, rb := rankOf(a.Link.LinkType), rankOf(b.Link.LinkType)
		if ra != rb {
			return ra < rb
		}
		if a.IniciativaCompleted != b.IniciativaCompleted {
			return !a.IniciativaCompleted
		}
		return dateDescNullsLast(a.Link.DistributionDate, b.Link.DistributionDate)
	})
}

func rankOf(linkType string) int {
	if r, ok := linkTypeRank[linkType]; ok {
		return r
	}
	return len(linkTypeRank)
}

func dateDescNullsLast(a, b *time.Time) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}
