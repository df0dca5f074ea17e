package linkage

import (
	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
)

type jointKey struct {
	relatedID string
	phaseCode string
}

// ExtractJointInitiatives emits the sibling initiatives declared inside events.
// The sibling's row id is filled when it is already loaded.
func ExtractJointInitiatives(ini *source.Iniciativa, iniciativaID uint, refs *RefMaps, tally *Tally) []*parliament.IniciativaConjunta {
	if ini == nil {
		return nil
	}
	var out []*parliament.IniciativaConjunta
	seen := map[jointKey]bool{}
	for _, ev := range ini.Eventos {
		eventDate := source.ParseISODate(string(ev.DataFase))
		for _, c := range ev.Conjuntas {
			if c.ID == "" {
				tally.Malformed("joint_missing_id", 1)
				continue
			}
			k := jointKey{relatedID: string(c.ID), phaseCode: string(ev.Codigo)}
			if seen[k] {
				continue
			}
			seen[k] = true
			row := &parliament.IniciativaConjunta{
				IniciativaID:       iniciativaID,
				RelatedIniID:       string(c.ID),
				PhaseCode:          string(ev.Codigo),
				RelatedIniNr:       string(c.Nr),
				RelatedIniLeg:      string(c.Leg),
				RelatedIniTipo:     string(c.Tipo),
				RelatedIniDescTipo: string(c.DescTipo),
				RelatedIniTitulo:   string(c.Titulo),
				PhaseName:          string(ev.Fase),
				EventDate:          eventDate,
			}
			if id, ok := refs.Iniciativa(string(c.ID)); ok {
				relatedID := id
				row.RelatedIniciativaID = &relatedID
			} else {
				tally.Unresolved("joint_related_iniciativa", 1)
			}
			out = append(out, row)
		}
	}
	return out
}
