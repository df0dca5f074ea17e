package query

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/data/repos/testutil"
	"github.com/yungbote/viriato-backend/internal/domain/parliament"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	if !testutil.Isolated() {
		t.Skip("query service reads committed rows; needs a private database")
	}
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return NewService(log, repos.NewSet(db, log)), db
}

func seedMember(t *testing.T, db *gorm.DB, orgaoID uint, depID int64, name, party string, role *string) {
	t.Helper()
	m := &parliament.OrgaoMembro{OrgaoID: orgaoID, DepID: depID, DeputyName: name, Party: party, Role: role}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
}

func TestOrgaoDetailIncludesCommitteeAgenda(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	org := testutil.SeedOrgao(t, ctx, db, 1200, "Comissão de Saúde ")
	seedMember(t, db, org.ID, 1, "Bruno", "PSD", nil)
	seedMember(t, db, org.ID, 2, "Ana", "PS", testutil.PtrString("Presidente"))
	seedMember(t, db, org.ID, 3, "Carla", "", nil)

	for i := 0; i < 21; i++ {
		testutil.SeedAgendaEvent(t, ctx, db, int64(100+i), "Comissão de Saúde", testutil.Day(fmt.Sprintf("2025-06-%02d", i+1)), "")
	}
	testutil.SeedAgendaEvent(t, ctx, db, 500, "  COMISSÃO DE SAÚDE e Desporto", testutil.Day("2025-07-05"), "")
	testutil.SeedAgendaEvent(t, ctx, db, 600, "Comissão de Economia", testutil.Day("2025-07-06"), "")
	testutil.SeedAgendaEvent(t, ctx, db, 700, "", testutil.Day("2025-07-07"), "")

	got, err := svc.OrgaoDetail(ctx, 1200)
	if err != nil {
		t.Fatalf("OrgaoDetail: %v", err)
	}
	if got.MemberCount != 3 || len(got.Members) != 3 {
		t.Fatalf("members: want=3 got=%d (%d rows)", got.MemberCount, len(got.Members))
	}
	if got.Members[0].DeputyName != "Ana" {
		t.Fatalf("members: want role holder first got=%q", got.Members[0].DeputyName)
	}
	if got.PartyBreakdown["PS"] != 1 || got.PartyBreakdown["PSD"] != 1 || got.PartyBreakdown["Sem partido"] != 1 {
		t.Fatalf("party_breakdown: got=%v", got.PartyBreakdown)
	}

	if len(got.AgendaEvents) != committeeAgendaLimit {
		t.Fatalf("agenda_events: want=%d got=%d", committeeAgendaLimit, len(got.AgendaEvents))
	}
	if got.AgendaEvents[0].EventID != 500 || got.AgendaEvents[1].EventID != 120 {
		t.Fatalf("agenda order: got first=%d second=%d", got.AgendaEvents[0].EventID, got.AgendaEvents[1].EventID)
	}
	for _, ev := range got.AgendaEvents {
		if ev.EventID == 600 || ev.EventID == 700 || ev.EventID == 100 {
			t.Fatalf("agenda_events: unexpected event %d", ev.EventID)
		}
	}
}

func TestOrgaoDetailWithoutAgenda(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	testutil.SeedOrgao(t, ctx, db, 1300, "Comissão de Cultura")

	got, err := svc.OrgaoDetail(ctx, 1300)
	if err != nil {
		t.Fatalf("OrgaoDetail: %v", err)
	}
	if got.AgendaEvents == nil || len(got.AgendaEvents) != 0 || got.MemberCount != 0 {
		t.Fatalf("detail: got=%+v", got)
	}
	if _, err := svc.OrgaoDetail(ctx, 9999); err == nil {
		t.Fatalf("OrgaoDetail(9999): want not found")
	}
}

func TestCommitteeSummariesOnlyCommittees(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	com := testutil.SeedOrgao(t, ctx, db, 1200, "Comissão de Saúde")
	plen := testutil.SeedOrgao(t, ctx, db, 1, "Plenário")
	if err := db.Model(plen).Update("org_type", parliament.OrgTypePlenario).Error; err != nil {
		t.Fatalf("update org_type: %v", err)
	}
	seedMember(t, db, com.ID, 1, "Ana", "PS", nil)
	seedMember(t, db, plen.ID, 1, "Ana", "PS", nil)
	seedMember(t, db, plen.ID, 2, "Bruno", "PSD", nil)

	got, err := svc.CommitteeSummaries(ctx)
	if err != nil {
		t.Fatalf("CommitteeSummaries: %v", err)
	}
	if len(got) != 1 || got[0].OrgaoID != com.ID || got[0].MemberCount != 1 {
		t.Fatalf("summaries: got=%+v", got)
	}
}
