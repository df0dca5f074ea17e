package parliament

import (
	"context"
	"testing"

	"github.com/yungbote/viriato-backend/internal/data/repos/testutil"
	"github.com/yungbote/viriato-backend/internal/domain/parliament"
)

func TestIniciativaRepoUpsertIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := testutil.Ctx(tx)
	repo := NewIniciativaRepo(db, testutil.Logger(t))

	first, err := repo.Upsert(dbc, &parliament.Iniciativa{IniID: "315636", Legislature: "XVII", Title: "v1", TypeDescription: "Projeto de Lei"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("Upsert: want id")
	}
	second, err := repo.Upsert(dbc, &parliament.Iniciativa{IniID: "315636", Legislature: "XVII", Title: "v2", CurrentStatus: "Caducado", IsCompleted: true, TypeDescription: "Projeto de Lei"})
	if err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("Upsert: want same id=%d got=%d", first.ID, second.ID)
	}

	got, err := repo.GetByIniID(dbc, "315636")
	if err != nil || got == nil {
		t.Fatalf("GetByIniID: err=%v row=%v", err, got)
	}
	if got.Title != "v2" || !got.IsCompleted {
		t.Fatalf("GetByIniID: want refreshed row got=%+v", got)
	}
	if missing, err := repo.GetByIniID(dbc, "nope"); err != nil || missing != nil {
		t.Fatalf("GetByIniID missing: err=%v row=%v", err, missing)
	}

	keys, err := repo.ListRefKeys(dbc)
	if err != nil || len(keys) != 1 || keys[0].IniID != "315636" {
		t.Fatalf("ListRefKeys: err=%v keys=%v", err, keys)
	}
	summaries, err := repo.ListSummaries(dbc)
	if err != nil || len(summaries) != 1 || summaries[0].Title != "v2" || len(summaries[0].RawData) != 0 {
		t.Fatalf("ListSummaries: err=%v rows=%v", err, summaries)
	}
	counts, err := repo.CountByType(dbc)
	if err != nil || len(counts) != 1 || counts[0].N != 1 || counts[0].Label != "Projeto de Lei" {
		t.Fatalf("CountByType: err=%v got=%+v", err, counts)
	}
}

func TestIniciativaEventRepoReplace(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.Ctx(tx)
	ini := testutil.SeedIniciativa(t, ctx, tx, "1", "")
	repo := NewIniciativaEventRepo(db, testutil.Logger(t))

	committee := "Comissão de Saúde"
	rows := []*parliament.IniciativaEvent{
		{PhaseName: "Entrada", OrderIndex: 0},
		{PhaseName: "Baixa comissão", OrderIndex: 1, Committee: &committee, EventDate: testutil.PtrTime(testutil.Day("2025-01-10"))},
	}
	if err := repo.ReplaceForIniciativa(dbc, ini.ID, rows); err != nil {
		t.Fatalf("ReplaceForIniciativa: %v", err)
	}
	if err := repo.ReplaceForIniciativa(dbc, ini.ID, rows); err != nil {
		t.Fatalf("ReplaceForIniciativa again: %v", err)
	}
	got, err := repo.ListByIniciativa(dbc, ini.ID)
	if err != nil || len(got) != 2 {
		t.Fatalf("ListByIniciativa: err=%v len=%d", err, len(got))
	}
	if got[0].PhaseName != "Entrada" || got[1].OrderIndex != 1 {
		t.Fatalf("ListByIniciativa order: got=%+v", got)
	}
	linkable, err := repo.ListLinkable(dbc)
	if err != nil || len(linkable) != 1 || linkable[0].Committee == nil || *linkable[0].Committee != committee {
		t.Fatalf("ListLinkable: err=%v got=%+v", err, linkable)
	}
}

func TestIniciativaAutorRepoPrune(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.Ctx(tx)
	ini := testutil.SeedIniciativa(t, ctx, tx, "1", "")
	repo := NewIniciativaAutorRepo(db, testutil.Logger(t))

	a, err := repo.Upsert(dbc, &parliament.IniciativaAutor{IniciativaID: ini.ID, AuthorType: parliament.AuthorTypeGroup, Party: "PS", DisplayName: "PS"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if _, err := repo.Upsert(dbc, &parliament.IniciativaAutor{IniciativaID: ini.ID, AuthorType: parliament.AuthorTypeDeputy, DepCadID: 77, DisplayName: "Ana"}); err != nil {
		t.Fatalf("Upsert deputy: %v", err)
	}
	again, err := repo.Upsert(dbc, &parliament.IniciativaAutor{IniciativaID: ini.ID, AuthorType: parliament.AuthorTypeGroup, Party: "PS", DisplayName: "Partido Socialista"})
	if err != nil || again.ID != a.ID {
		t.Fatalf("Upsert same key: err=%v id=%d want=%d", err, again.ID, a.ID)
	}

	n, err := repo.PruneStale(dbc, ini.ID, []uint{a.ID})
	if err != nil || n != 1 {
		t.Fatalf("PruneStale: err=%v n=%d", err, n)
	}
	rows, err := repo.ListByIniciativa(dbc, ini.ID)
	if err != nil || len(rows) != 1 || rows[0].DisplayName != "Partido Socialista" {
		t.Fatalf("ListByIniciativa: err=%v rows=%+v", err, rows)
	}
	if n, err := repo.PruneStale(dbc, ini.ID, nil); err != nil || n != 1 {
		t.Fatalf("PruneStale all: err=%v n=%d", err, n)
	}
}

func TestIniciativaComissaoRepoJoins(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := testutil.Ctx(tx)
	ini := testutil.SeedIniciativa(t, ctx, tx, "1", "Rejeitado")
	org := testutil.SeedOrgao(t, ctx, tx, 1200, "Comissão de Saúde")
	repo := NewIniciativaComissaoRepo(db, testutil.Logger(t))

	lead := &parliament.IniciativaComissao{IniciativaID: ini.ID, CommitteeName: "Comissão de Saúde", LinkType: parliament.LinkTypeLead, PhaseCode: "180", OrgaoID: testutil.PtrUint(org.ID)}
	if err := repo.Upsert(dbc, lead); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	lead2 := *lead
	lead2.DocumentCount = 3
	if err := repo.Upsert(dbc, &lead2); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	if err := repo.Upsert(dbc, &parliament.IniciativaComissao{IniciativaID: ini.ID, CommitteeName: "Comissão de Saúde", LinkType: parliament.LinkTypeAuthor}); err != nil {
		t.Fatalf("Upsert author: %v", err)
	}

	rows, err := repo.ListByIniciativa(dbc, ini.ID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("ListByIniciativa: err=%v len=%d", err, len(rows))
	}
	if rows[0].IniID != "1" || !rows[0].IsCompleted || rows[0].DocumentCount != 3 {
		t.Fatalf("ListByIniciativa join: got=%+v", rows[0])
	}
	byOrg, err := repo.ListByOrgao(dbc, org.ID)
	if err != nil || len(byOrg) != 1 {
		t.Fatalf("ListByOrgao: err=%v len=%d", err, len(byOrg))
	}
	facts, err := repo.ListLinkFacts(dbc)
	if err != nil || len(facts) != 2 {
		t.Fatalf("ListLinkFacts: err=%v len=%d", err, len(facts))
	}
	top, err := repo.TopCommittees(dbc, 5)
	if err != nil || len(top) != 1 || top[0].N != 1 {
		t.Fatalf("TopCommittees: err=%v got=%+v", err, top)
	}
}
