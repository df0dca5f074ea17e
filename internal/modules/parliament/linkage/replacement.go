package linkage

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
)

// Replaces is the outcome of resolving which suspended deputy a temporary
// deputy stands in for: none, exactly one, or several (ambiguous).
type Replaces struct {
	Names []string
}

func (r Replaces) Ambiguous() bool { return len(r.Names) > 1 }

// MarshalJSON encodes null, a single name, or the list of candidate names.
func (r Replaces) MarshalJSON() ([]byte, error) {
	switch len(r.Names) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(r.Names[0])
	default:
		return json.Marshal(r.Names)
	}
}

func (r *Replaces) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		r.Names = nil
	case string:
		r.Names = []string{t}
	case []interface{}:
		r.Names = make([]string, 0, len(t))
		for _, x := range t {
			if s, ok := x.(string); ok {
				r.Names = append(r.Names, s)
			}
		}
	}
	return nil
}

type seatKey struct {
	legislature string
	circulo     string
	party       string
}

type ReplacementStats struct {
	Temporary  int `json:"temporary"`
	Resolved   int `json:"resolved"`
	Ambiguous  int `json:"ambiguous"`
	Unresolved int `json:"unresolved"`
}

// ResolveReplacements maps each temporarily-effective deputy (by row id) to the
// suspended-elected deputies of the same legislature, district and party.
func ResolveReplacements(deps []parliament.Deputado) (map[uint]Replaces, ReplacementStats) {
	suspended := map[seatKey][]string{}
	for _, d := range deps {
		if d.Situation == parliament.SituationSuspensoEleito {
			k := seatOf(d)
			suspended[k] = append(suspended[k], d.Name)
		}
	}
	for k := range suspended {
		sort.Strings(suspended[k])
	}

	var stats ReplacementStats
	out := map[uint]Replaces{}
	for _, d := range deps {
		if d.Situation != parliament.SituationEfetivoTemporario {
			continue
		}
		stats.Temporary++
		names := append([]string(nil), suspended[seatOf(d)]...)
		out[d.ID] = Replaces{Names: names}
		switch {
		case len(names) == 0:
			stats.Unresolved++
		case len(names) == 1:
			stats.Resolved++
		default:
			stats.Ambiguous++
		}
	}
	return out, stats
}

func seatOf(d parliament.Deputado) seatKey {
	return seatKey{
		legislature: strings.TrimSpace(d.Legislature),
		circulo:     strings.TrimSpace(d.Circulo),
		party:       strings.TrimSpace(d.Party),
	}
}
