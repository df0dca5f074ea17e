package linkage

import (
	"sort"
	"strconv"
	"strings"
)

type IniciativaKey struct {
	ID    uint
	IniID string
}

type OrgaoKey struct {
	ID    uint
	OrgID int64
	Name  string
}

// RefMaps are the in-memory lookups built from committed rows. They are
// rebuilt between pipeline stages and never mutated by the extractors.
type RefMaps struct {
	iniciativas    map[string]uint
	orgaosByAPIID  map[string]uint
	orgaosByName   map[string]uint
	NameCollisions int
}

func NewRefMaps(inis []IniciativaKey, orgs []OrgaoKey) *RefMaps {
	r := &RefMaps{
		iniciativas:   make(map[string]uint, len(inis)),
		orgaosByAPIID: make(map[string]uint, len(orgs)),
		orgaosByName:  make(map[string]uint, len(orgs)),
	}
	for _, ini := range inis {
		if id := strings.TrimSpace(ini.IniID); id != "" {
			r.iniciativas[id] = ini.ID
		}
	}
	sorted := append([]OrgaoKey(nil), orgs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, o := range sorted {
		if o.OrgID != 0 {
			r.orgaosByAPIID[strconv.FormatInt(o.OrgID, 10)] = o.ID
		}
		name := strings.TrimSpace(o.Name)
		if name == "" {
			continue
		}
		if prev, ok := r.orgaosByName[name]; ok && prev != o.ID {
			r.NameCollisions++
		}
		r.orgaosByName[name] = o.ID
	}
	return r
}

func (r *RefMaps) Iniciativa(extID string) (uint, bool) {
	if r == nil {
		return 0, false
	}
	id, ok := r.iniciativas[strings.TrimSpace(extID)]
	return id, ok
}

// OrgaoByAPIID resolves the committee id embedded in initiative events.
func (r *RefMaps) OrgaoByAPIID(apiID string) (uint, bool) {
	if r == nil {
		return 0, false
	}
	id, ok := r.orgaosByAPIID[strings.TrimSpace(apiID)]
	return id, ok
}

// OrgaoByName tolerates leading and trailing whitespace on either side.
func (r *RefMaps) OrgaoByName(name string) (uint, bool) {
	if r == nil {
		return 0, false
	}
	id, ok := r.orgaosByName[strings.TrimSpace(name)]
	return id, ok
}

// OrgaoNames exposes the trimmed name index, e.g. for the aggregate builder.
func (r *RefMaps) OrgaoNames() map[string]uint {
	if r == nil {
		return nil
	}
	out := make(map[string]uint, len(r.orgaosByName))
	for k, v := range r.orgaosByName {
		out[k] = v
	}
	return out
}

func (r *RefMaps) Sizes() (iniciativas, orgaosByAPIID, orgaosByName int) {
	if r == nil {
		return 0, 0, 0
	}
	return len(r.iniciativas), len(r.orgaosByAPIID), len(r.orgaosByName)
}
