package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/viriato-backend/internal/data/repos"
	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/http/response"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/query"
	apperrors "github.com/yungbote/viriato-backend/internal/pkg/errors"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type fakeReader struct {
	agenda   map[int64]*query.AgendaDetail
	failWith error
}

func (f *fakeReader) AgendaDetail(_ context.Context, eventID int64) (*query.AgendaDetail, error) {
	if d, ok := f.agenda[eventID]; ok {
		return d, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeReader) IniciativaComissoes(_ context.Context, iniID string) ([]linkage.CommitteeLinkRow, error) {
	if iniID == "" {
		return nil, apperrors.ErrInvalidArgument
	}
	return []linkage.CommitteeLinkRow{{IniID: iniID, Link: parliament.IniciativaComissao{LinkType: parliament.LinkTypeLead}}}, nil
}

func (f *fakeReader) ListOrgaos(context.Context, string) ([]*parliament.Orgao, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return []*parliament.Orgao{{OrgID: 1200, Name: "Comissão de Saúde"}}, nil
}

func (f *fakeReader) OrgaoDetail(_ context.Context, orgID int64) (*query.OrgaoDetail, error) {
	return &query.OrgaoDetail{
		Orgao:          &parliament.Orgao{OrgID: orgID, Name: "Comissão de Saúde"},
		Members:        []*parliament.OrgaoMembro{{DeputyName: "Ana", Party: "PS"}},
		PartyBreakdown: map[string]int{"PS": 1},
		MemberCount:    1,
		AgendaEvents:   []query.CommitteeAgendaEvent{{EventID: 9001, Title: "Reunião", Committee: "Comissão de Saúde"}},
	}, nil
}

func (f *fakeReader) CommitteeSummaries(context.Context) ([]linkage.CommitteeSummary, error) {
	return []linkage.CommitteeSummary{{OrgaoID: 1, PartyCounts: map[string]int{"PS": 2}, MemberCount: 2}}, nil
}

func (f *fakeReader) Deputados(context.Context, string) ([]query.DeputadoView, error) {
	return []query.DeputadoView{
		{Deputado: parliament.Deputado{Name: "Carla"}, Replaces: &linkage.Replaces{Names: []string{"Bruno"}}},
		{Deputado: parliament.Deputado{Name: "Ana"}},
	}, nil
}

func (f *fakeReader) LatestRun(context.Context, string) (*parliament.PipelineRun, error) {
	return nil, apperrors.ErrNotFound
}

func newRouter(reader ParliamentReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewParliamentHandler(logger.Nop(), reader)
	r := gin.New()
	r.GET("/api/agenda/:event_id/initiatives", h.GetAgendaInitiatives)
	r.GET("/api/iniciativas/:ini_id/comissoes", h.GetIniciativaComissoes)
	r.GET("/api/orgaos", h.ListOrgaos)
	r.GET("/api/orgaos/summary", h.GetOrgaoSummary)
	r.GET("/api/orgaos/:org_id", h.GetOrgao)
	r.GET("/api/deputados", h.ListDeputados)
	r.GET("/api/runs/latest", h.GetLatestRun)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAgendaInitiatives(t *testing.T) {
	r := newRouter(&fakeReader{agenda: map[int64]*query.AgendaDetail{
		9001: {
			Event:           &parliament.AgendaEvent{EventID: 9001},
			DescriptionHTML: "<p>Audição BID=315700</p>",
			Initiatives:     []repos.LinkedIniciativa{{IniID: "315700"}},
		},
	}})

	rec := get(r, "/api/agenda/9001/initiatives")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d body=%s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var body struct {
		Total           int    `json:"total"`
		DescriptionHTML string `json:"description_html"`
		Initiatives     []struct {
			IniID string `json:"ini_id"`
		} `json:"initiatives"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || len(body.Initiatives) != 1 || body.DescriptionHTML == "" {
		t.Fatalf("body: got=%+v", body)
	}

	for path, want := range map[string]int{
		"/api/agenda/42/initiatives":  http.StatusNotFound,
		"/api/agenda/abc/initiatives": http.StatusBadRequest,
		"/api/agenda/-1/initiatives":  http.StatusBadRequest,
	} {
		rec := get(r, path)
		if rec.Code != want {
			t.Fatalf("%s: want=%d got=%d", path, want, rec.Code)
		}
		var env response.ErrorEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env.Error.Code == "" {
			t.Fatalf("%s: error envelope: err=%v body=%s", path, err, rec.Body.String())
		}
	}
}

func TestDeputadosReplacesShape(t *testing.T) {
	r := newRouter(&fakeReader{})
	rec := get(r, "/api/deputados?legislature=XVII")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d", rec.Code)
	}
	var body struct {
		Deputados []map[string]any `json:"deputados"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Deputados) != 2 {
		t.Fatalf("deputados: got=%d", len(body.Deputados))
	}
	if got := body.Deputados[0]["replaces"]; got != "Bruno" {
		t.Fatalf("replaces: want=%q got=%v", "Bruno", got)
	}
	if _, ok := body.Deputados[1]["replaces"]; ok {
		t.Fatalf("replaces: want absent for non-temporary deputy")
	}
	if body.Deputados[0]["name"] != "Carla" {
		t.Fatalf("embedded fields: got=%v", body.Deputados[0])
	}
}

func TestOrgaoRoutesAndErrors(t *testing.T) {
	r := newRouter(&fakeReader{})
	if rec := get(r, "/api/orgaos/summary"); rec.Code != http.StatusOK {
		t.Fatalf("summary: got=%d", rec.Code)
	}
	rec := get(r, "/api/orgaos/1200")
	if rec.Code != http.StatusOK {
		t.Fatalf("detail: got=%d", rec.Code)
	}
	var detail struct {
		PartyBreakdown map[string]int           `json:"party_breakdown"`
		MemberCount    int                      `json:"member_count"`
		AgendaEvents   []map[string]interface{} `json:"agenda_events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.MemberCount != 1 || detail.PartyBreakdown["PS"] != 1 {
		t.Fatalf("detail members: got=%+v", detail)
	}
	if len(detail.AgendaEvents) != 1 || detail.AgendaEvents[0]["event_id"] != float64(9001) {
		t.Fatalf("detail agenda_events: got=%v", detail.AgendaEvents)
	}
	if rec := get(r, "/api/iniciativas/315636/comissoes"); rec.Code != http.StatusOK {
		t.Fatalf("comissoes: got=%d", rec.Code)
	}
	if rec := get(r, "/api/runs/latest"); rec.Code != http.StatusNotFound {
		t.Fatalf("runs/latest: want=404 got=%d", rec.Code)
	}

	failing := newRouter(&fakeReader{failWith: fmt.Errorf("list orgaos: %w", context.DeadlineExceeded)})
	rec = get(failing, "/api/orgaos")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("failure: want=500 got=%d", rec.Code)
	}
	var env response.ErrorEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Error.Code != "list_orgaos_failed" || env.Error.Message != "internal error" {
		t.Fatalf("failure envelope: got=%+v", env)
	}
}
