package linkage

import (
	"testing"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
)

func TestExtractCommitteeLinks(t *testing.T) {
	refs := NewRefMaps(nil, []OrgaoKey{{ID: 3, OrgID: 1200, Name: "Comissão de Saúde"}})
	ini := mustIniciativa(t, `{
		"IniId": "1",
		"IniAutorOutros": {"sigla": "C", "iniAutorComissao": "Comissão de Saúde"},
		"IniEventos": [
			{"CodigoFase": "180", "Fase": "Baixa comissão", "DataFase": "2024-05-02", "Comissao": [
				{"Nome": "Comissão de Saúde", "IdComissao": "1200", "Competente": "S", "DataDistribuicao": "2024-05-03",
				 "Votacao": [{"resultado": "Aprovado", "data": "2024-06-01"}, {"resultado": "Rejeitado", "data": "2024-06-09"}],
				 "Documentos": [{"a": 1}, {"b": 2}]},
				{"Nome": "Comissão de Trabalho", "IdComissao": "9999"},
				{"Nome": "Comissão de Economia"},
				{"Competente": "S"}
			]}
		]
	}`)
	tally := NewTally()
	rows := ExtractCommitteeLinks(ini, 5, refs, tally)
	if len(rows) != 4 {
		t.Fatalf("rows: want=4 got=%d", len(rows))
	}

	author := rows[0]
	if author.LinkType != parliament.LinkTypeAuthor || author.PhaseCode != "" || author.OrgaoID != nil {
		t.Fatalf("author link: got=%+v", author)
	}

	lead := rows[1]
	if lead.LinkType != parliament.LinkTypeLead || lead.OrgaoID == nil || *lead.OrgaoID != 3 {
		t.Fatalf("lead link: got=%+v", lead)
	}
	if lead.VoteResult == nil || *lead.VoteResult != "Aprovado" || lead.VoteDate.Format("2006-01-02") != "2024-06-01" {
		t.Fatalf("vote: want first entry got=%v %v", lead.VoteResult, lead.VoteDate)
	}
	if !lead.HasDocuments || lead.DocumentCount != 2 || !lead.HasVote || lead.HasRapporteur {
		t.Fatalf("flags: got=%+v", lead)
	}

	if rows[2].LinkType != parliament.LinkTypeSecondary || rows[2].OrgaoID != nil || rows[2].CommitteeAPIID == nil {
		t.Fatalf("unknown api id: got=%+v", rows[2])
	}
	if rows[3].OrgaoID != nil || rows[3].CommitteeAPIID != nil {
		t.Fatalf("no api id: got=%+v", rows[3])
	}

	rep := tally.Report()
	if rep.Malformed["committee_link_missing_name"] != 1 || rep.Unresolved["committee_link_orgao"] != 1 || rep.Unresolved["committee_link_no_api_id"] != 1 {
		t.Fatalf("tally: got=%+v", rep)
	}
}

func TestExtractCommitteeLinksNeverResolvesByName(t *testing.T) {
	refs := NewRefMaps(nil, []OrgaoKey{{ID: 3, OrgID: 1200, Name: "Comissão de Saúde"}})
	ini := mustIniciativa(t, `{"IniId": "1", "IniEventos": [{"CodigoFase": "1", "Comissao": {"Nome": "Comissão de Saúde"}}]}`)
	rows := ExtractCommitteeLinks(ini, 1, refs, nil)
	if len(rows) != 1 || rows[0].OrgaoID != nil {
		t.Fatalf("want unresolved link got=%+v", rows)
	}
}

func TestExtractCommitteeLinksDuplicateKeyLastWins(t *testing.T) {
	ini := mustIniciativa(t, `{"IniId": "1", "IniEventos": [
		{"CodigoFase": "1", "Fase": "primeira", "Comissao": {"Nome": "Comissão de Saúde"}},
		{"CodigoFase": "1", "Fase": "segunda", "Comissao": {"Nome": "Comissão de Saúde"}}
	]}`)
	rows := ExtractCommitteeLinks(ini, 1, nil, nil)
	if len(rows) != 1 || rows[0].PhaseName != "segunda" {
		t.Fatalf("want single row from last event got=%+v", rows)
	}
}

func TestSortForDisplay(t *testing.T) {
	rows := []CommitteeLinkRow{
		{IniID: "author", Link: parliament.IniciativaComissao{LinkType: parliament.LinkTypeAuthor}},
		{IniID: "lead-done", IniciativaCompleted: true, Link: parliament.IniciativaComissao{LinkType: parliament.LinkTypeLead, DistributionDate: day("2024-06-01")}},
		{IniID: "lead-nodate", Link: parliament.IniciativaComissao{LinkType: parliament.LinkTypeLead}},
		{IniID: "lead-old", Link: parliament.IniciativaComissao{LinkType: parliament.LinkTypeLead, DistributionDate: day("2024-01-01")}},
		{IniID: "lead-new", Link: parliament.IniciativaComissao{LinkType: parliament.LinkTypeLead, DistributionDate: day("2024-05-01")}},
		{IniID: "secondary", Link: parliament.IniciativaComissao{LinkType: parliament.LinkTypeSecondary}},
	}
	SortForDisplay(rows)
	want := []string{"lead-new", "lead-old", "lead-nodate", "lead-done", "secondary", "author"}
	for i, w := range want {
		if rows[i].IniID != w {
			t.Fatalf("position %d: want=%q got=%q", i, w, rows[i].IniID)
		}
	}
}

func TestExtractJointInitiatives(t *testing.T) {
	refs := NewRefMaps([]IniciativaKey{{ID: 8, IniID: "200"}}, nil)
	ini := mustIniciativa(t, `{"IniId": "100", "IniEventos": [
		{"CodigoFase": "20", "Fase": "Discussão", "IniciativasConjuntas": [
			{"id": "200", "nr": "3", "titulo": "Irmã"},
			{"id": "200"},
			{"id": "300"},
			{"nr": "9"}
		]},
		{"CodigoFase": "30", "IniciativasConjuntas": {"id": "200"}}
	]}`)
	tally := NewTally()
	rows := ExtractJointInitiatives(ini, 1, refs, tally)
	if len(rows) != 3 {
		t.Fatalf("rows: want=3 got=%d", len(rows))
	}
	if rows[0].RelatedIniciativaID == nil || *rows[0].RelatedIniciativaID != 8 || rows[0].RelatedIniTitulo != "Irmã" {
		t.Fatalf("resolved sibling: got=%+v", rows[0])
	}
	if rows[1].RelatedIniciativaID != nil {
		t.Fatalf("unknown sibling: got=%+v", rows[1])
	}
	if rows[2].PhaseCode != "30" {
		t.Fatalf("second phase: got=%+v", rows[2])
	}
	rep := tally.Report()
	if rep.Malformed["joint_missing_id"] != 1 || rep.Unresolved["joint_related_iniciativa"] != 1 {
		t.Fatalf("tally: got=%+v", rep)
	}
}
