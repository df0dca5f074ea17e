package linkage

import (
	"errors"

	"gorm.io/datatypes"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
)

var ErrMissingExternalID = errors.New("initiative without IniId")

// BuildIniciativa maps one raw initiative to its row. Status, phase code and
// completion come from the last event in source order.
func BuildIniciativa(ini *source.Iniciativa) (*parliament.Iniciativa, error) {
	if ini == nil || ini.IniID == "" {
		return nil, ErrMissingExternalID
	}
	authorType, authorName := ClassifyAuthor(ini).Columns()
	row := &parliament.Iniciativa{
		IniID:           string(ini.IniID),
		Legislature:     string(ini.IniLeg),
		Number:          string(ini.IniNr),
		Type:            string(ini.IniTipo),
		TypeDescription: string(ini.IniDescTipo),
		Title:           string(ini.IniTitulo),
		AuthorType:      authorType,
		AuthorName:      authorName,
		StartDate:       source.ParseISODate(string(ini.DataInicio)),
		EndDate:         source.ParseISODate(string(ini.DataFim)),
		TextLink:        string(ini.IniLinkTexto),
		RawData:         datatypes.JSON(ini.Raw),
	}
	if n := len(ini.Eventos); n > 0 {
		last := ini.Eventos[n-1]
		row.CurrentStatus = string(last.Fase)
		row.CurrentPhaseCode = string(last.Codigo)
	}
	row.IsCompleted = parliament.IsTerminalPhase(row.CurrentStatus)
	return row, nil
}

// BuildEvents emits the event rows with their source order index. When an
// event carries several committees, the competent one labels the row.
func BuildEvents(ini *source.Iniciativa, iniciativaID uint) []*parliament.IniciativaEvent {
	if ini == nil {
		return nil
	}
	out := make([]*parliament.IniciativaEvent, 0, len(ini.Eventos))
	for idx, ev := range ini.Eventos {
		row := &parliament.IniciativaEvent{
			IniciativaID: iniciativaID,
			EvtID:        string(ev.EvtID),
			OevID:        string(ev.OevID),
			PhaseCode:    string(ev.Codigo),
			PhaseName:    string(ev.Fase),
			EventDate:    source.ParseISODate(string(ev.DataFase)),
			Observations: string(ev.ObsFase),
			OrderIndex:   idx,
			RawData:      datatypes.JSON(ev.Raw),
		}
		if label := eventCommitteeLabel(ev.Comissao); label != "" {
			row.Committee = &label
		}
		out = append(out, row)
	}
	return out
}

func eventCommitteeLabel(coms source.List[source.Comissao]) string {
	for _, c := range coms {
		if c.Competente == "S" {
			if name := c.DisplayName(); name != "" {
				return name
			}
		}
	}
	for _, c := range coms {
		if name := c.DisplayName(); name != "" {
			return name
		}
	}
	return ""
}
