package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/http/response"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/linkage"
	"github.com/yungbote/viriato-backend/internal/modules/parliament/query"
	apperrors "github.com/yungbote/viriato-backend/internal/pkg/errors"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

// ParliamentReader is the read side the API serves from.
type ParliamentReader interface {
	AgendaDetail(ctx context.Context, eventID int64) (*query.AgendaDetail, error)
	IniciativaComissoes(ctx context.Context, iniID string) ([]linkage.CommitteeLinkRow, error)
	ListOrgaos(ctx context.Context, orgType string) ([]*parliament.Orgao, error)
	OrgaoDetail(ctx context.Context, orgID int64) (*query.OrgaoDetail, error)
	CommitteeSummaries(ctx context.Context) ([]linkage.CommitteeSummary, error)
	Deputados(ctx context.Context, legislature string) ([]query.DeputadoView, error)
	LatestRun(ctx context.Context, command string) (*parliament.PipelineRun, error)
}

type ParliamentHandler struct {
	log    *logger.Logger
	reader ParliamentReader
}

func NewParliamentHandler(log *logger.Logger, reader ParliamentReader) *ParliamentHandler {
	return &ParliamentHandler{log: log.With("handler", "ParliamentHandler"), reader: reader}
}

// GET /api/agenda/:event_id/initiatives
func (h *ParliamentHandler) GetAgendaInitiatives(c *gin.Context) {
	eventID, ok := int64Param(c, "event_id")
	if !ok {
		return
	}
	detail, err := h.reader.AgendaDetail(c.Request.Context(), eventID)
	if err != nil {
		h.fail(c, "agenda_lookup_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"event":            detail.Event,
		"description_html": detail.DescriptionHTML,
		"description_text": detail.DescriptionText,
		"initiatives":      detail.Initiatives,
		"total":            len(detail.Initiatives),
	})
}

// GET /api/iniciativas/:ini_id/comissoes
func (h *ParliamentHandler) GetIniciativaComissoes(c *gin.Context) {
	rows, err := h.reader.IniciativaComissoes(c.Request.Context(), c.Param("ini_id"))
	if err != nil {
		h.fail(c, "iniciativa_lookup_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"comissoes": rows, "total": len(rows)})
}

// GET /api/orgaos?type=
func (h *ParliamentHandler) ListOrgaos(c *gin.Context) {
	rows, err := h.reader.ListOrgaos(c.Request.Context(), c.Query("type"))
	if err != nil {
		h.fail(c, "list_orgaos_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"orgaos": rows, "total": len(rows)})
}

// GET /api/orgaos/:org_id
func (h *ParliamentHandler) GetOrgao(c *gin.Context) {
	orgID, ok := int64Param(c, "org_id")
	if !ok {
		return
	}
	detail, err := h.reader.OrgaoDetail(c.Request.Context(), orgID)
	if err != nil {
		h.fail(c, "orgao_lookup_failed", err)
		return
	}
	response.RespondOK(c, detail)
}

// GET /api/orgaos/summary
func (h *ParliamentHandler) GetOrgaoSummary(c *gin.Context) {
	rows, err := h.reader.CommitteeSummaries(c.Request.Context())
	if err != nil {
		h.fail(c, "orgao_summary_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"committees": rows, "total": len(rows)})
}

// GET /api/deputados?legislature=
func (h *ParliamentHandler) ListDeputados(c *gin.Context) {
	rows, err := h.reader.Deputados(c.Request.Context(), c.Query("legislature"))
	if err != nil {
		h.fail(c, "list_deputados_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"deputados": rows, "total": len(rows)})
}

// GET /api/runs/latest?command=
func (h *ParliamentHandler) GetLatestRun(c *gin.Context) {
	run, err := h.reader.LatestRun(c.Request.Context(), c.Query("command"))
	if err != nil {
		h.fail(c, "run_lookup_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"run": run})
}

func (h *ParliamentHandler) fail(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperrors.ErrInvalidArgument):
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	default:
		h.log.Error("Request failed", "path", c.FullPath(), "code", code, "error", err)
		response.RespondError(c, http.StatusInternalServerError, code, errors.New("internal error"))
	}
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || v <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, apperrors.ErrInvalidArgument)
		return 0, false
	}
	return v, true
}
