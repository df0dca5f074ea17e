package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
)

func SeedIniciativa(tb testing.TB, ctx context.Context, tx *gorm.DB, iniID, status string) *parliament.Iniciativa {
	tb.Helper()
	ini := &parliament.Iniciativa{
		IniID:         iniID,
		Legislature:   "XVII",
		Title:         "Iniciativa " + iniID,
		CurrentStatus: status,
		IsCompleted:   parliament.IsTerminalPhase(status),
	}
	if err := tx.WithContext(ctx).Create(ini).Error; err != nil {
		tb.Fatalf("seed iniciativa: %v", err)
	}
	return ini
}

func SeedOrgao(tb testing.TB, ctx context.Context, tx *gorm.DB, orgID int64, name string) *parliament.Orgao {
	tb.Helper()
	o := &parliament.Orgao{
		OrgID:       orgID,
		Legislature: "XVII",
		Name:        name,
		OrgType:     parliament.OrgTypeComissao,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed orgao: %v", err)
	}
	return o
}

func SeedAgendaEvent(tb testing.TB, ctx context.Context, tx *gorm.DB, eventID int64, committee string, start time.Time, description string) *parliament.AgendaEvent {
	tb.Helper()
	ev := &parliament.AgendaEvent{
		EventID:     eventID,
		Legislature: "XVII",
		Title:       "Reunião",
		StartDate:   PtrTime(start),
		Description: description,
	}
	if committee != "" {
		ev.Committee = &committee
	}
	if err := tx.WithContext(ctx).Create(ev).Error; err != nil {
		tb.Fatalf("seed agenda event: %v", err)
	}
	return ev
}

func SeedDeputado(tb testing.TB, ctx context.Context, tx *gorm.DB, depID int64, name, party, circulo, situation string) *parliament.Deputado {
	tb.Helper()
	d := &parliament.Deputado{
		DepID:       depID,
		DepCadID:    depID * 10,
		Legislature: "XVII",
		Name:        name,
		Party:       party,
		Circulo:     circulo,
		Situation:   situation,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed deputado: %v", err)
	}
	return d
}

func Day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func PtrTime(v time.Time) *time.Time { return &v }

func PtrUint(v uint) *uint { return &v }

func PtrString(v string) *string { return &v }
