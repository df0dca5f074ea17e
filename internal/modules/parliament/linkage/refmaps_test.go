package linkage

import "testing"

func TestRefMapsOrgaoNameLastWins(t *testing.T) {
	refs := NewRefMaps(
		[]IniciativaKey{{ID: 1, IniID: " 42 "}},
		[]OrgaoKey{
			{ID: 9, OrgID: 900, Name: "Comissão de Saúde"},
			{ID: 2, OrgID: 200, Name: "Comissão de Saúde "},
		},
	)
	if id, ok := refs.OrgaoByName("  Comissão de Saúde"); !ok || id != 9 {
		t.Fatalf("by name: want=9 got=%d ok=%v", id, ok)
	}
	if refs.NameCollisions != 1 {
		t.Fatalf("collisions: want=1 got=%d", refs.NameCollisions)
	}
	if id, ok := refs.OrgaoByAPIID("200"); !ok || id != 2 {
		t.Fatalf("by api id: want=2 got=%d ok=%v", id, ok)
	}
	if id, ok := refs.Iniciativa("42"); !ok || id != 1 {
		t.Fatalf("iniciativa: want=1 got=%d ok=%v", id, ok)
	}
	var nilRefs *RefMaps
	if _, ok := nilRefs.Iniciativa("42"); ok {
		t.Fatalf("nil refs must not resolve")
	}
}

func TestNormalizeCommittee(t *testing.T) {
	a := NormalizeCommittee("  Comissão   de  SAÚDE ")
	b := NormalizeCommittee("comissão de saúde")
	if a != b || a != "comissão de saúde" {
		t.Fatalf("want equal normalized forms got=%q %q", a, b)
	}
}

func TestDescriptionText(t *testing.T) {
	in := "&lt;p&gt;Audição&lt;/p&gt;&lt;script&gt;x()&lt;/script&gt;&lt;p&gt;BID=1&lt;/p&gt;"
	if got := DescriptionText(in); got != "Audição BID=1" {
		t.Fatalf("want=%q got=%q", "Audição BID=1", got)
	}
}
