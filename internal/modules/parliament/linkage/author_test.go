package linkage

import (
	"testing"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
)

func TestClassifyAuthorGovernmentWinsOverDeputies(t *testing.T) {
	ini := mustIniciativa(t, `{
		"IniId": "1",
		"IniAutorOutros": {"sigla": "V", "nome": "Governo"},
		"IniAutorDeputados": [{"idCadastro": 10, "nome": "Ana"}, {"idCadastro": 11, "nome": "Rui"}],
		"IniAutorGruposParlamentares": {"GP": "PS"}
	}`)
	got := ClassifyAuthor(ini)
	if got.Kind != AuthorGovernment || got.Name != "Governo" {
		t.Fatalf("want=Government/Governo got=%s/%s", got.Kind, got.Name)
	}
}

func TestClassifyAuthorRules(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		wantKind AuthorKind
		wantName string
	}{
		{
			name:     "group placeholder uses first group",
			raw:      `{"IniId":"1","IniAutorOutros":{"sigla":"G","nome":"Grupos Parlamentares"},"IniAutorGruposParlamentares":[{"GP":"BE"},{"GP":"L"}]}`,
			wantKind: AuthorParliamentaryGroup,
			wantName: "BE",
		},
		{
			name:     "group placeholder without groups keeps label",
			raw:      `{"IniId":"1","IniAutorOutros":{"sigla":"G","nome":"Grupos Parlamentares"}}`,
			wantKind: AuthorParliamentaryGroup,
			wantName: "Grupos Parlamentares",
		},
		{
			name:     "other label",
			raw:      `{"IniId":"1","IniAutorOutros":{"sigla":"M","nome":"ALRAM"},"IniAutorGruposParlamentares":[{"GP":"PSD"}]}`,
			wantKind: AuthorOther,
			wantName: "ALRAM",
		},
		{
			name:     "group list",
			raw:      `{"IniId":"1","IniAutorGruposParlamentares":[{"GP":"PCP"},{"GP":""},{"GP":"PEV"}]}`,
			wantKind: AuthorParliamentaryGroup,
			wantName: "PCP, PEV",
		},
		{
			name:     "single deputy",
			raw:      `{"IniId":"1","IniAutorDeputados":{"idCadastro":5,"nome":"Joana Mortágua"}}`,
			wantKind: AuthorDeputy,
			wantName: "Joana Mortágua",
		},
		{
			name:     "several deputies",
			raw:      `{"IniId":"1","IniAutorDeputados":[{"idCadastro":5,"nome":"Ana"},{"idCadastro":6,"nome":"Rui"},{"idCadastro":7,"nome":"Eva"}]}`,
			wantKind: AuthorDeputies,
			wantName: "Ana + 2 outros",
		},
		{
			name:     "none",
			raw:      `{"IniId":"1"}`,
			wantKind: AuthorUnknown,
		},
	}
	for _, tc := range cases {
		got := ClassifyAuthor(mustIniciativa(t, tc.raw))
		if got.Kind != tc.wantKind || got.Name != tc.wantName {
			t.Fatalf("%s: want=%s/%q got=%s/%q", tc.name, tc.wantKind, tc.wantName, got.Kind, got.Name)
		}
	}
}

func TestAuthorSummaryColumnsNullWhenUnknown(t *testing.T) {
	typ, name := AuthorSummary{}.Columns()
	if typ != nil || name != nil {
		t.Fatalf("want nil columns got=%v %v", typ, name)
	}
	typ, name = AuthorSummary{Kind: AuthorDeputy, Name: "Ana"}.Columns()
	if typ == nil || *typ != "Deputy" || name == nil || *name != "Ana" {
		t.Fatalf("columns: got=%v %v", typ, name)
	}
}

func identityColumns(a *parliament.IniciativaAutor) int {
	n := 0
	if a.DepCadID != 0 {
		n++
	}
	if a.Party != "" {
		n++
	}
	if a.OrgaoID != nil {
		n++
	}
	if a.EntityCode != "" {
		n++
	}
	return n
}

func TestExtractAuthorsOneIdentityPerRow(t *testing.T) {
	ini := mustIniciativa(t, `{
		"IniId": "1",
		"IniAutorDeputados": [{"idCadastro": 10, "nome": "Ana"}, {"idCadastro": 10, "nome": "Ana"}, {"nome": "Sem id"}],
		"IniAutorGruposParlamentares": [{"GP": "PS"}, {"GP": "PS"}, {"GP": "CH"}],
		"IniAutorOutros": {"sigla": "Z", "nome": "Cidadãos"}
	}`)
	tally := NewTally()
	rows := ExtractAuthors(ini, 7, nil, tally)
	if len(rows) != 4 {
		t.Fatalf("rows: want=4 got=%d", len(rows))
	}
	for _, r := range rows {
		if r.IniciativaID != 7 {
			t.Fatalf("iniciativa id: want=7 got=%d", r.IniciativaID)
		}
		if identityColumns(r) != 1 {
			t.Fatalf("row %+v: want exactly one identity column", r)
		}
	}
	if rows[3].AuthorType != parliament.AuthorTypeCitizen || rows[3].EntityCode != "Z" {
		t.Fatalf("citizen row: got=%+v", rows[3])
	}
	if got := tally.Report().Malformed["author_deputy_missing_cad_id"]; got != 1 {
		t.Fatalf("malformed: want=1 got=%d", got)
	}
}

func TestExtractAuthorsSiglaTable(t *testing.T) {
	cases := []struct {
		sigla    string
		wantType string
		wantRow  bool
	}{
		{"V", parliament.AuthorTypeGovernment, true},
		{"G", "", false},
		{"D", "", false},
		{"M", parliament.AuthorTypeRegional, true},
		{"A", parliament.AuthorTypeRegional, true},
		{"R", parliament.AuthorTypeParliament, true},
		{"Z", parliament.AuthorTypeCitizen, true},
		{"X", parliament.AuthorTypeOther, true},
	}
	for _, tc := range cases {
		ini := mustIniciativa(t, `{"IniId":"1","IniAutorOutros":{"sigla":"`+tc.sigla+`","nome":"Entidade"}}`)
		rows := ExtractAuthors(ini, 1, nil, nil)
		if !tc.wantRow {
			if len(rows) != 0 {
				t.Fatalf("sigla %s: want no row got=%+v", tc.sigla, rows)
			}
			continue
		}
		if len(rows) != 1 || rows[0].AuthorType != tc.wantType {
			t.Fatalf("sigla %s: want=%s got=%+v", tc.sigla, tc.wantType, rows)
		}
	}
}

func TestExtractAuthorsCommittee(t *testing.T) {
	refs := NewRefMaps(nil, []OrgaoKey{{ID: 4, OrgID: 1500, Name: "Comissão de Saúde"}})
	ini := mustIniciativa(t, `{"IniId":"1","IniAutorOutros":{"sigla":"C","nome":"Comissão","iniAutorComissao":" Comissão de Saúde "}}`)
	rows := ExtractAuthors(ini, 1, refs, nil)
	if len(rows) != 1 || rows[0].OrgaoID == nil || *rows[0].OrgaoID != 4 || rows[0].EntityCode != "" {
		t.Fatalf("resolved committee: got=%+v", rows)
	}

	tally := NewTally()
	ini = mustIniciativa(t, `{"IniId":"1","IniAutorOutros":{"sigla":"C","iniAutorComissao":"Comissão Extinta"}}`)
	rows = ExtractAuthors(ini, 1, refs, tally)
	if len(rows) != 1 || rows[0].OrgaoID != nil || rows[0].EntityCode != "C" || rows[0].EntityName != "Comissão Extinta" {
		t.Fatalf("unresolved committee: got=%+v", rows)
	}
	if got := tally.Report().Unresolved["author_committee"]; got != 1 {
		t.Fatalf("unresolved: want=1 got=%d", got)
	}
}
