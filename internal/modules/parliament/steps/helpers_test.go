package steps

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/data/repos/testutil"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

const (
	orgaosFile      = "OrgaoComposicaoXVII_json.txt"
	deputadosFile   = "InformacaoBaseXVII_json.txt"
	biografiasFile  = "RegistoBiograficoXVII_json.txt"
	iniciativasFile = "IniciativasXVII_json.txt"
	agendaFile      = "AgendaParlamentar_json.txt"
)

const orgaosJSON = `{
  "Comissoes": [
    {
      "DetalheOrgao": {"idOrgao": 1200, "siglaLegislatura": "XVII", "nomeSigla": "Comissão de Saúde", "siglaOrgao": "CS", "numeroOrgao": 9},
      "HistoricoComposicao": [
        {"depId": 1, "depCadId": 10, "depNomeParlamentar": "Ana",
         "depGP": [{"gpSigla": "PSD", "gpDtInicio": "2024-03-26", "gpDtFim": "2025-01-01"}, {"gpSigla": "PS", "gpDtInicio": "2025-01-02"}],
         "depSituacao": {"sioDes": "Efetivo", "sioTipMem": "Efetivo", "sioDtInicio": "2025-06-03"},
         "depCargo": "Presidente"},
        {"depId": 0, "depNomeParlamentar": "Sem id"}
      ]
    },
    {"DetalheOrgao": {"idOrgao": 0, "nomeSigla": "Sem id"}}
  ],
  "Plenario": {"DetalheOrgao": {"idOrgao": 1, "nomeSigla": "Plenário"}}
}`

const deputadosJSON = `{
  "Deputados": [
    {"DepId": 1, "DepCadId": 10, "LegDes": "XVII", "DepNomeParlamentar": "Ana", "DepNomeCompleto": "Ana Silva",
     "DepGP": {"gpSigla": "PS", "gpDtInicio": "2025-06-03"}, "DepCPId": 11, "DepCPDes": "Lisboa",
     "DepSituacao": {"sioDes": "Efetivo", "sioDtInicio": "2025-06-03"}},
    {"DepId": 2, "DepCadId": 20, "DepNomeParlamentar": "Bruno", "DepGP": {"gpSigla": "PS"}, "DepCPDes": "Lisboa",
     "DepSituacao": {"sioDes": "Suspenso(Eleito)", "sioDtInicio": "2025-06-03"}},
    {"DepId": 3, "DepCadId": 30, "DepNomeParlamentar": "Carla", "DepGP": {"gpSigla": "PS"}, "DepCPDes": "Lisboa",
     "DepSituacao": {"sioDes": "Efetivo Temporário", "sioDtInicio": "2025-06-10"}},
    {"DepId": 0, "DepNomeParlamentar": "Sem id"}
  ]
}`

const biografiasJSON = `[
  {"CadId": 10, "CadNomeCompleto": "Ana Silva", "CadSexo": "F", "CadDtNascimento": "1980-01-02", "CadProfissao": ["Médica"]},
  {"CadId": 0, "CadNomeCompleto": "Sem id"}
]`

const iniciativasJSON = `[
  {"IniId": "315636", "IniLeg": "XVII", "IniNr": "12", "IniTipo": "P", "IniDescTipo": "Projeto de Lei", "IniTitulo": "Saúde mental",
   "DataInicioleg": "2025-06-03",
   "IniAutorGruposParlamentares": {"GP": "PS"},
   "IniAutorDeputados": [{"idCadastro": 10, "nome": "Ana", "GP": "PS"}],
   "IniEventos": [
     {"EvtId": "1", "OevId": "11", "CodigoFase": "10", "Fase": "Entrada", "DataFase": "2025-06-03"},
     {"EvtId": "2", "OevId": "12", "CodigoFase": "180", "Fase": "Baixa comissão para discussão", "DataFase": "2025-07-01",
      "Comissao": {"Nome": "Comissão de Saúde", "IdComissao": "1200", "Competente": "S", "DataDistribuicao": "2025-06-05",
                   "Votacao": {"resultado": "Aprovado", "data": "2025-07-10"}},
      "IniciativasConjuntas": {"id": "315700", "nr": "13", "leg": "XVII", "tipo": "P", "descTipo": "Projeto de Lei", "titulo": "Outro"}}
   ]},
  {"IniId": "315700", "IniLeg": "XVII", "IniNr": "13", "IniTitulo": "Outro",
   "IniAutorOutros": {"sigla": "V", "nome": "Governo"},
   "IniEventos": {"EvtId": "3", "CodigoFase": "500", "Fase": "Lei (Publicação DR)", "DataFase": "2025-08-01"}},
  {"IniLeg": "XVII", "IniTitulo": "Sem id"},
  null
]`

const agendaJSON = `[
  {"Id": 9001, "LegDes": "XVII", "Title": "Reunião", "EventStartDate": "02/07/2025", "EventStartTime": "10:00",
   "InternetText": "&lt;p&gt;Audição BID=315700&lt;/p&gt;", "OrgDes": "Comissão de Saúde", "ReuNumero": "4"},
  {"Id": 9002, "LegDes": "XVII", "Title": "Reunião", "EventStartDate": "2025-07-03", "OrgDes": "Comissão de Saúde"},
  {"Id": 0, "Title": "Sem id"}
]`

// writeExports writes a small consistent export set and returns its source.
func writeExports(tb testing.TB) source.BlobSource {
	tb.Helper()
	dir := tb.TempDir()
	files := map[string]string{
		orgaosFile:      orgaosJSON,
		deputadosFile:   deputadosJSON,
		biografiasFile:  biografiasJSON,
		iniciativasFile: iniciativasJSON,
		agendaFile:      agendaJSON,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			tb.Fatalf("write %s: %v", name, err)
		}
	}
	return source.NewDirSource(dir)
}

func files(names ...string) []SourceFile {
	out := make([]SourceFile, 0, len(names))
	for _, n := range names {
		out = append(out, SourceFile{Legislature: "XVII", Name: n})
	}
	return out
}

type env struct {
	tx  *gorm.DB
	log *logger.Logger
	set repos.Set
	src source.BlobSource
}

func newEnv(tb testing.TB) env {
	tb.Helper()
	db := testutil.DB(tb)
	tx := testutil.Tx(tb, db)
	log := testutil.Logger(tb)
	return env{tx: tx, log: log, set: repos.NewSet(tx, log), src: writeExports(tb)}
}
