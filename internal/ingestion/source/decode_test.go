package source

import (
	"strings"
	"testing"
)

func TestDecodeIniciativasSkipsMalformed(t *testing.T) {
	raw := `[
		{"IniId": "315636", "IniLeg": "XVII", "IniTipo": "J", "IniTitulo": "Projeto",
		 "IniAutorOutros": {"sigla": "V", "nome": "Governo"},
		 "IniEventos": [
			{"EvtId": "1", "CodigoFase": "10", "Fase": "Entrada", "DataFase": "2025-06-01",
			 "Comissao": {"Nome": "Comissão de Orçamento", "IdComissao": "2001", "Competente": "S",
			              "Votacao": [{"resultado": "Aprovado", "data": "2025-06-05T00:00:00"}]}}
		 ]},
		"not an object",
		null
	]`
	inis, stats, err := DecodeIniciativas(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Records != 1 || stats.Malformed != 2 {
		t.Fatalf("stats: got=%+v", stats)
	}
	ini := inis[0]
	if ini.IniID != "315636" || ini.AutorOutros == nil || ini.AutorOutros.Sigla != "V" {
		t.Fatalf("ini: got=%+v", ini)
	}
	if len(ini.Raw) == 0 {
		t.Fatalf("raw: want retained source bytes")
	}
	if len(ini.Eventos) != 1 || len(ini.Eventos[0].Comissao) != 1 {
		t.Fatalf("eventos: got=%+v", ini.Eventos)
	}
	com := ini.Eventos[0].Comissao[0]
	if com.Competente != "S" || len(com.Votacao) != 1 || com.Votacao[0].Resultado != "Aprovado" {
		t.Fatalf("comissao: got=%+v", com)
	}
	if len(ini.Eventos[0].Raw) == 0 || len(com.Raw) == 0 {
		t.Fatalf("nested raw: want retained")
	}
}

func TestDecodeAgenda(t *testing.T) {
	raw := `[{"Id": 12345, "Title": "Reunião", "EventStartDate": "03/06/2025", "AllDayEvent": false,
	          "InternetText": "&lt;a href=&quot;?BID=315636&quot;&gt;", "OrgDes": "Comissão de Orçamento "}]`
	evs, stats, err := DecodeAgenda(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Records != 1 || evs[0].ID != 12345 {
		t.Fatalf("got=%+v stats=%+v", evs, stats)
	}
	if evs[0].OrgDes != "Comissão de Orçamento" {
		t.Fatalf("OrgDes is trimmed on decode: got=%q", evs[0].OrgDes)
	}
}

func TestDecodeOrgaoComposicaoSections(t *testing.T) {
	raw := `{
		"Comissoes": [{"DetalheOrgao": {"idOrgao": 2001.0, "nomeSigla": "Comissão de Orçamento", "siglaOrgao": "COFAP"},
		               "HistoricoComposicao": {"depId": 10, "depNomeParlamentar": "Ana", "depGP": [{"gpSigla": "PS"}]}}],
		"Plenario": {"DetalheOrgao": {"idOrgao": 1}}
	}`
	c, err := DecodeOrgaoComposicao(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	secs := c.Sections()
	if len(secs) != 9 {
		t.Fatalf("sections: want=9 got=%d", len(secs))
	}
	if len(secs[0].Items) != 1 || secs[0].Items[0].Detalhe.IDOrgao != 2001 {
		t.Fatalf("comissoes: got=%+v", secs[0].Items)
	}
	if len(secs[0].Items[0].Historico) != 1 || secs[0].Items[0].Historico[0].DepGP[0].GPSigla != "PS" {
		t.Fatalf("historico single-object: got=%+v", secs[0].Items[0].Historico)
	}
	if secs[8].OrgType != "plenario" || len(secs[8].Items) != 1 {
		t.Fatalf("plenario: got=%+v", secs[8])
	}
}
