package linkage

import (
	"fmt"
	"strings"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/ingestion/source"
)

// AuthorKind is the coarse author classification stored on the initiative row.
type AuthorKind int

const (
	AuthorUnknown AuthorKind = iota
	AuthorGovernment
	AuthorParliamentaryGroup
	AuthorOther
	AuthorDeputy
	AuthorDeputies
)

func (k AuthorKind) String() string {
	switch k {
	case AuthorGovernment:
		return "Government"
	case AuthorParliamentaryGroup:
		return "Parliamentary Group"
	case AuthorOther:
		return "Other"
	case AuthorDeputy:
		return "Deputy"
	case AuthorDeputies:
		return "Deputies"
	default:
		return ""
	}
}

const (
	governmentLabel       = "Governo"
	groupPlaceholderLabel = "Grupos Parlamentares"
)

type AuthorSummary struct {
	Kind AuthorKind
	Name string
}

// Columns returns the nullable (author_type, author_name) pair.
func (s AuthorSummary) Columns() (*string, *string) {
	if s.Kind == AuthorUnknown {
		return nil, nil
	}
	kind, name := s.Kind.String(), s.Name
	return &kind, &name
}

type summaryRule struct {
	name  string
	apply func(ini *source.Iniciativa) (AuthorSummary, bool)
}

// summaryRules is evaluated in order and the first match wins. Government and
// explicit other-author labels must short-circuit before the group and deputy
// lists: government bills can still carry an irrelevant group list.
var summaryRules = []summaryRule{
	{name: "government", apply: func(ini *source.Iniciativa) (AuthorSummary, bool) {
		o := ini.AutorOutros
		if !hasOtherAuthor(o) || (o.Sigla != "V" && o.Nome != governmentLabel) {
			return AuthorSummary{}, false
		}
		return AuthorSummary{Kind: AuthorGovernment, Name: governmentLabel}, true
	}},
	{name: "group_placeholder", apply: func(ini *source.Iniciativa) (AuthorSummary, bool) {
		o := ini.AutorOutros
		if !hasOtherAuthor(o) || (o.Sigla != "G" && o.Nome != groupPlaceholderLabel) {
			return AuthorSummary{}, false
		}
		if gp, ok := ini.AutorGrupos.First(); ok && gp.GP != "" {
			return AuthorSummary{Kind: AuthorParliamentaryGroup, Name: string(gp.GP)}, true
		}
		label := string(o.Nome)
		if label == "" {
			label = groupPlaceholderLabel
		}
		return AuthorSummary{Kind: AuthorParliamentaryGroup, Name: label}, true
	}},
	{name: "other_label", apply: func(ini *source.Iniciativa) (AuthorSummary, bool) {
		if !hasOtherAuthor(ini.AutorOutros) {
			return AuthorSummary{}, false
		}
		return AuthorSummary{Kind: AuthorOther, Name: string(ini.AutorOutros.Nome)}, true
	}},
	{name: "group_list", apply: func(ini *source.Iniciativa) (AuthorSummary, bool) {
		parties := make([]string, 0, len(ini.AutorGrupos))
		for _, gp := range ini.AutorGrupos {
			if gp.GP != "" {
				parties = append(parties, string(gp.GP))
			}
		}
		if len(parties) == 0 {
			return AuthorSummary{}, false
		}
		return AuthorSummary{Kind: AuthorParliamentaryGroup, Name: strings.Join(parties, ", ")}, true
	}},
	{name: "deputy_list", apply: func(ini *source.Iniciativa) (AuthorSummary, bool) {
		names := make([]string, 0, len(ini.AutorDeps))
		for _, d := range ini.AutorDeps {
			if d.Nome != "" {
				names = append(names, string(d.Nome))
			}
		}
		switch len(names) {
		case 0:
			return AuthorSummary{}, false
		case 1:
			return AuthorSummary{Kind: AuthorDeputy, Name: names[0]}, true
		default:
			return AuthorSummary{Kind: AuthorDeputies, Name: fmt.Sprintf("%s + %d outros", names[0], len(names)-1)}, true
		}
	}},
}

func hasOtherAuthor(o *source.AutorOutros) bool {
	return o != nil && (o.Sigla != "" || o.Nome != "" || o.Comissao != "")
}

// ClassifyAuthor picks the display author of an initiative.
func ClassifyAuthor(ini *source.Iniciativa) AuthorSummary {
	if ini == nil {
		return AuthorSummary{}
	}
	for _, rule := range summaryRules {
		if s, ok := rule.apply(ini); ok {
			return s
		}
	}
	return AuthorSummary{}
}

// siglaKind is the fine classification of the other-author sigla.
type siglaKind int

const (
	siglaNone siglaKind = iota
	siglaGovernment
	siglaDuplicate
	siglaCommittee
	siglaRegional
	siglaParliament
	siglaCitizen
	siglaOther
)

var siglaTable = []struct {
	codes []string
	kind  siglaKind
}{
	{codes: []string{"V"}, kind: siglaGovernment},
	{codes: []string{"G", "D"}, kind: siglaDuplicate},
	{codes: []string{"C"}, kind: siglaCommittee},
	{codes: []string{"M", "A"}, kind: siglaRegional},
	{codes: []string{"R"}, kind: siglaParliament},
	{codes: []string{"Z"}, kind: siglaCitizen},
}

func classifySigla(sigla string) siglaKind {
	if sigla == "" {
		return siglaNone
	}
	for _, row := range siglaTable {
		for _, c := range row.codes {
			if c == sigla {
				return row.kind
			}
		}
	}
	return siglaOther
}

// ExtractAuthors emits one row per deputy author, one per group author and at
// most one for the other-author block. Each row populates exactly one identity
// column.
func ExtractAuthors(ini *source.Iniciativa, iniciativaID uint, refs *RefMaps, tally *Tally) []*parliament.IniciativaAutor {
	if ini == nil {
		return nil
	}
	var out []*parliament.IniciativaAutor
	seenDeps := map[int64]bool{}
	for _, d := range ini.AutorDeps {
		if d.IDCadastro == 0 {
			tally.Malformed("author_deputy_missing_cad_id", 1)
			continue
		}
		if seenDeps[int64(d.IDCadastro)] {
			continue
		}
		seenDeps[int64(d.IDCadastro)] = true
		out = append(out, &parliament.IniciativaAutor{
			IniciativaID: iniciativaID,
			AuthorType:   parliament.AuthorTypeDeputy,
			DepCadID:     int64(d.IDCadastro),
			DisplayName:  string(d.Nome),
		})
	}

	seenParties := map[string]bool{}
	for _, gp := range ini.AutorGrupos {
		if gp.GP == "" {
			tally.Malformed("author_group_missing_party", 1)
			continue
		}
		if seenParties[string(gp.GP)] {
			continue
		}
		seenParties[string(gp.GP)] = true
		out = append(out, &parliament.IniciativaAutor{
			IniciativaID: iniciativaID,
			AuthorType:   parliament.AuthorTypeGroup,
			Party:        string(gp.GP),
			DisplayName:  string(gp.GP),
		})
	}

	if row := otherAuthorRow(ini.AutorOutros, iniciativaID, refs, tally); row != nil {
		out = append(out, row)
	}
	return out
}

func otherAuthorRow(o *source.AutorOutros, iniciativaID uint, refs *RefMaps, tally *Tally) *parliament.IniciativaAutor {
	if o == nil {
		return nil
	}
	sigla := string(o.Sigla)
	nome := string(o.Nome)
	entity := func(authorType, name string) *parliament.IniciativaAutor {
		return &parliament.IniciativaAutor{
			IniciativaID: iniciativaID,
			AuthorType:   authorType,
			EntityCode:   sigla,
			EntityName:   name,
			DisplayName:  name,
		}
	}

	switch classifySigla(sigla) {
	case siglaNone:
		return nil
	case siglaDuplicate:
		tally.Skipped("author_sigla_duplicate", 1)
		return nil
	case siglaGovernment:
		name := nome
		if name == "" {
			name = governmentLabel
		}
		return entity(parliament.AuthorTypeGovernment, name)
	case siglaCommittee:
		name := strings.TrimSpace(string(o.Comissao))
		if name != "" {
			if id, ok := refs.OrgaoByName(name); ok {
				orgaoID := id
				return &parliament.IniciativaAutor{
					IniciativaID: iniciativaID,
					AuthorType:   parliament.AuthorTypeCommittee,
					OrgaoID:      &orgaoID,
					DisplayName:  name,
				}
			}
		}
		tally.Unresolved("author_committee", 1)
		if name == "" {
			name = nome
		}
		return entity(parliament.AuthorTypeCommittee, name)
	case siglaRegional:
		return entity(parliament.AuthorTypeRegional, nome)
	case siglaParliament:
		return entity(parliament.AuthorTypeParliament, nome)
	case siglaCitizen:
		return entity(parliament.AuthorTypeCitizen, nome)
	default:
		return entity(parliament.AuthorTypeOther, nome)
	}
}

// AuthorCommittee returns the authoring committee's name when the other-author
// block is tagged as a committee.
func AuthorCommittee(ini *source.Iniciativa) (string, bool) {
	if ini == nil || ini.AutorOutros == nil || classifySigla(string(ini.AutorOutros.Sigla)) != siglaCommittee {
		return "", false
	}
	name := strings.TrimSpace(string(ini.AutorOutros.Comissao))
	return name, name != ""
}
