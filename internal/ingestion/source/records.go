package source

import "encoding/json"

// Iniciativa mirrors one element of Iniciativas<LEG>_json.txt.
type Iniciativa struct {
	IniID        Text                        `json:"IniId"`
	IniLeg       Text                        `json:"IniLeg"`
	IniNr        Text                        `json:"IniNr"`
	IniTipo      Text                        `json:"IniTipo"`
	IniDescTipo  Text                        `json:"IniDescTipo"`
	IniTitulo    Text                        `json:"IniTitulo"`
	DataInicio   Text                        `json:"DataInicioleg"`
	DataFim      Text                        `json:"DataFimleg"`
	IniLinkTexto Text                        `json:"IniLinkTexto"`
	AutorOutros  *AutorOutros                `json:"IniAutorOutros"`
	AutorGrupos  List[AutorGrupoParlamentar] `json:"IniAutorGruposParlamentares"`
	AutorDeps    List[AutorDeputado]         `json:"IniAutorDeputados"`
	Eventos      List[Evento]                `json:"IniEventos"`

	Raw json.RawMessage `json:"-"`
}

type AutorOutros struct {
	Sigla    Text `json:"sigla"`
	Nome     Text `json:"nome"`
	Comissao Text `json:"iniAutorComissao"`
}

type AutorGrupoParlamentar struct {
	GP Text `json:"GP"`
}

type AutorDeputado struct {
	IDCadastro Int  `json:"idCadastro"`
	Nome       Text `json:"nome"`
	GP         Text `json:"GP"`
}

type Evento struct {
	EvtID     Text                     `json:"EvtId"`
	OevID     Text                     `json:"OevId"`
	Codigo    Text                     `json:"CodigoFase"`
	Fase      Text                     `json:"Fase"`
	DataFase  Text                     `json:"DataFase"`
	ObsFase   Text                     `json:"ObsFase"`
	Comissao  List[Comissao]           `json:"Comissao"`
	Conjuntas List[IniciativaConjunta] `json:"IniciativasConjuntas"`

	Raw json.RawMessage `json:"-"`
}

func (e *Evento) UnmarshalJSON(b []byte) error {
	type alias Evento
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*e = Evento(a)
	e.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// Comissao is a committee reference attached to an event. Older records carry
// a bare string instead of an object; that string lands in Label.
type Comissao struct {
	Nome             Text                  `json:"Nome"`
	IDComissao       Text                  `json:"IdComissao"`
	Competente       Text                  `json:"Competente"`
	OrgDes           Text                  `json:"OrgDes"`
	Sigla            Text                  `json:"sigla"`
	DataDistribuicao Text                  `json:"DataDistribuicao"`
	Relatores        List[json.RawMessage] `json:"Relatores"`
	Votacao          List[Votacao]         `json:"Votacao"`
	Documentos       List[json.RawMessage] `json:"Documentos"`

	Label string          `json:"-"`
	Raw   json.RawMessage `json:"-"`
}

func (c *Comissao) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Comissao{Label: s}
		return nil
	}
	type alias Comissao
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*c = Comissao(a)
	c.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// DisplayName is the label used for an event's free-text committee column.
func (c Comissao) DisplayName() string {
	for _, v := range []string{string(c.OrgDes), string(c.Sigla), string(c.Nome), c.Label} {
		if v != "" {
			return v
		}
	}
	return ""
}

type Votacao struct {
	Resultado Text `json:"resultado"`
	Data      Text `json:"data"`
}

type IniciativaConjunta struct {
	ID       Text `json:"id"`
	Nr       Text `json:"nr"`
	Leg      Text `json:"leg"`
	Tipo     Text `json:"tipo"`
	DescTipo Text `json:"descTipo"`
	Titulo   Text `json:"titulo"`
}

// AgendaEvent mirrors one element of AgendaParlamentar_json.txt.
type AgendaEvent struct {
	ID             Int  `json:"Id"`
	LegDes         Text `json:"LegDes"`
	Title          Text `json:"Title"`
	Subtitle       Text `json:"Subtitle"`
	Section        Text `json:"Section"`
	Theme          Text `json:"Theme"`
	Local          Text `json:"Local"`
	EventStartDate Text `json:"EventStartDate"`
	EventStartTime Text `json:"EventStartTime"`
	EventEndDate   Text `json:"EventEndDate"`
	EventEndTime   Text `json:"EventEndTime"`
	AllDayEvent    Flag `json:"AllDayEvent"`
	InternetText   Text `json:"InternetText"`
	OrgDes         Text `json:"OrgDes"`
	ReuNumero      Int  `json:"ReuNumero"`
	SelNumero      Int  `json:"SelNumero"`

	Raw json.RawMessage `json:"-"`
}

// OrgaoComposicao mirrors OrgaoComposicao<LEG>_json.txt: one section per body type.
type OrgaoComposicao struct {
	Comissoes                       List[OrgaoItem] `json:"Comissoes"`
	GruposTrabalho                  List[OrgaoItem] `json:"GruposTrabalho"`
	SubComissoes                    List[OrgaoItem] `json:"SubComissoes"`
	ComissaoPermanente              List[OrgaoItem] `json:"ComissaoPermanente"`
	ConferenciaLideres              List[OrgaoItem] `json:"ConferenciaLideres"`
	ConferenciaPresidentesComissoes List[OrgaoItem] `json:"ConferenciaPresidentesComissoes"`
	ConselhoAdministracao           List[OrgaoItem] `json:"ConselhoAdministracao"`
	MesaAR                          List[OrgaoItem] `json:"MesaAR"`
	Plenario                        List[OrgaoItem] `json:"Plenario"`
}

type OrgaoItem struct {
	Detalhe   *DetalheOrgao     `json:"DetalheOrgao"`
	Historico List[MembroOrgao] `json:"HistoricoComposicao"`
}

type DetalheOrgao struct {
	IDOrgao          Int  `json:"idOrgao"`
	SiglaLegislatura Text `json:"siglaLegislatura"`
	NomeSigla        Text `json:"nomeSigla"`
	SiglaOrgao       Text `json:"siglaOrgao"`
	NumeroOrgao      Int  `json:"numeroOrgao"`

	Raw json.RawMessage `json:"-"`
}

func (d *DetalheOrgao) UnmarshalJSON(b []byte) error {
	type alias DetalheOrgao
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*d = DetalheOrgao(a)
	d.Raw = append(json.RawMessage(nil), b...)
	return nil
}

type MembroOrgao struct {
	DepID              Int                    `json:"depId"`
	DepCadID           Int                    `json:"depCadId"`
	DepNomeParlamentar Text                   `json:"depNomeParlamentar"`
	DepGP              List[GrupoParlamentar] `json:"depGP"`
	DepSituacao        List[Situacao]         `json:"depSituacao"`
	DepCargo           Text                   `json:"depCargo"`

	Raw json.RawMessage `json:"-"`
}

func (m *MembroOrgao) UnmarshalJSON(b []byte) error {
	type alias MembroOrgao
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*m = MembroOrgao(a)
	m.Raw = append(json.RawMessage(nil), b...)
	return nil
}

type GrupoParlamentar struct {
	GPSigla Text `json:"gpSigla"`
	GPDtIni Text `json:"gpDtInicio"`
	GPDtFim Text `json:"gpDtFim"`
}

type Situacao struct {
	SioDes      Text `json:"sioDes"`
	SioTipMem   Text `json:"sioTipMem"`
	SioDtInicio Text `json:"sioDtInicio"`
	SioDtFim    Text `json:"sioDtFim"`
}

// InformacaoBase mirrors InformacaoBase<LEG>_json.txt.
type InformacaoBase struct {
	Deputados List[Deputado] `json:"Deputados"`
}

type Deputado struct {
	DepID              Int                    `json:"DepId"`
	DepCadID           Int                    `json:"DepCadId"`
	LegDes             Text                   `json:"LegDes"`
	DepNomeParlamentar Text                   `json:"DepNomeParlamentar"`
	DepNomeCompleto    Text                   `json:"DepNomeCompleto"`
	DepGP              List[GrupoParlamentar] `json:"DepGP"`
	DepCPID            Int                    `json:"DepCPId"`
	DepCPDes           Text                   `json:"DepCPDes"`
	DepSituacao        List[Situacao]         `json:"DepSituacao"`

	Raw json.RawMessage `json:"-"`
}

func (d *Deputado) UnmarshalJSON(b []byte) error {
	type alias Deputado
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*d = Deputado(a)
	d.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// CurrentParty is the first open-ended group entry, else the last one.
func (d Deputado) CurrentParty() string { return currentParty(d.DepGP) }

// CurrentSituation is the first open-ended situation entry, else the last one.
func (d Deputado) CurrentSituation() (Situacao, bool) { return currentSituation(d.DepSituacao) }

func (m MembroOrgao) CurrentParty() string { return currentParty(m.DepGP) }

func (m MembroOrgao) CurrentSituation() (Situacao, bool) { return currentSituation(m.DepSituacao) }

func currentParty(gps List[GrupoParlamentar]) string {
	for _, gp := range gps {
		if gp.GPDtFim == "" {
			return string(gp.GPSigla)
		}
	}
	if n := len(gps); n > 0 {
		return string(gps[n-1].GPSigla)
	}
	return ""
}

func currentSituation(sits List[Situacao]) (Situacao, bool) {
	for _, s := range sits {
		if s.SioDtFim == "" {
			return s, true
		}
	}
	if n := len(sits); n > 0 {
		return sits[n-1], true
	}
	return Situacao{}, false
}

// RegistoBiografico mirrors one element of RegistoBiografico<LEG>_json.txt.
type RegistoBiografico struct {
	CadID              Int                   `json:"CadId"`
	CadNomeCompleto    Text                  `json:"CadNomeCompleto"`
	CadSexo            Text                  `json:"CadSexo"`
	CadDtNascimento    Text                  `json:"CadDtNascimento"`
	CadProfissao       List[json.RawMessage] `json:"CadProfissao"`
	CadHabilitacoes    List[json.RawMessage] `json:"CadHabilitacoes"`
	CadObrasPublicadas List[json.RawMessage] `json:"CadObrasPublicadas"`
	CadCondecoracoes   List[json.RawMessage] `json:"CadCondecoracoes"`
	CadTitulos         List[json.RawMessage] `json:"CadTitulos"`

	Raw json.RawMessage `json:"-"`
}
