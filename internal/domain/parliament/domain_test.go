package parliament

import "testing"

func TestIsTerminalPhaseIsExact(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{"Lei (Publicação DR)", true},
		{"Resolução da AR (Publicação DR)", true},
		{"Rejeitado", true},
		{"Retirada da iniciativa", true},
		{"Caducado", true},
		{"Caducado ", false},
		{"rejeitado", false},
		{"Votação na generalidade", false},
		{"Aprovado em votação final global", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsTerminalPhase(tc.status); got != tc.want {
			t.Fatalf("IsTerminalPhase(%q): want=%v got=%v", tc.status, tc.want, got)
		}
	}
}

func TestIsServing(t *testing.T) {
	for _, s := range []string{SituationEfetivo, SituationEfetivoTemporario, SituationEfetivoDefinitivo} {
		if !IsServing(s) {
			t.Fatalf("IsServing(%q): want=true", s)
		}
	}
	if IsServing(SituationSuspensoEleito) {
		t.Fatalf("IsServing(%q): want=false", SituationSuspensoEleito)
	}
}
