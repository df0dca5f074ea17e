package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeStats counts array elements that could not be decoded into a record.
type DecodeStats struct {
	Records   int `json:"records"`
	Malformed int `json:"malformed"`
}

// decodeArray decodes a top-level JSON array element by element, so a single
// malformed element is skipped and counted instead of failing the file.
func decodeArray[T any](r io.Reader, setRaw func(*T, json.RawMessage)) ([]T, DecodeStats, error) {
	var stats DecodeStats
	var items []json.RawMessage
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, stats, fmt.Errorf("decode array: %w", err)
	}
	out := make([]T, 0, len(items))
	for _, raw := range items {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			stats.Malformed++
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			stats.Malformed++
			continue
		}
		if setRaw != nil {
			setRaw(&v, raw)
		}
		out = append(out, v)
	}
	stats.Records = len(out)
	return out, stats, nil
}

func DecodeIniciativas(r io.Reader) ([]Iniciativa, DecodeStats, error) {
	return decodeArray(r, func(v *Iniciativa, raw json.RawMessage) { v.Raw = raw })
}

func DecodeAgenda(r io.Reader) ([]AgendaEvent, DecodeStats, error) {
	return decodeArray(r, func(v *AgendaEvent, raw json.RawMessage) { v.Raw = raw })
}

func DecodeBiografias(r io.Reader) ([]RegistoBiografico, DecodeStats, error) {
	return decodeArray(r, func(v *RegistoBiografico, raw json.RawMessage) { v.Raw = raw })
}

func DecodeOrgaoComposicao(r io.Reader) (*OrgaoComposicao, error) {
	var out OrgaoComposicao
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode orgao composicao: %w", err)
	}
	return &out, nil
}

func DecodeInformacaoBase(r io.Reader) (*InformacaoBase, error) {
	var out InformacaoBase
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode informacao base: %w", err)
	}
	return &out, nil
}

// OrgaoSection pairs a body-type section of the composition file with its org_type.
type OrgaoSection struct {
	OrgType string
	Items   List[OrgaoItem]
}

func (c *OrgaoComposicao) Sections() []OrgaoSection {
	if c == nil {
		return nil
	}
	return []OrgaoSection{
		{OrgType: "comissao", Items: c.Comissoes},
		{OrgType: "grupo_trabalho", Items: c.GruposTrabalho},
		{OrgType: "subcomissao", Items: c.SubComissoes},
		{OrgType: "comissao_permanente", Items: c.ComissaoPermanente},
		{OrgType: "conferencia_lideres", Items: c.ConferenciaLideres},
		{OrgType: "conferencia_presidentes", Items: c.ConferenciaPresidentesComissoes},
		{OrgType: "conselho_administracao", Items: c.ConselhoAdministracao},
		{OrgType: "mesa_ar", Items: c.MesaAR},
		{OrgType: "plenario", Items: c.Plenario},
	}
}
