package parliament

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/viriato-backend/internal/domain/parliament"
	"github.com/yungbote/viriato-backend/internal/platform/dbctx"
	"github.com/yungbote/viriato-backend/internal/platform/logger"
)

type PipelineRunRepo interface {
	Create(dbc dbctx.Context, run *parliament.PipelineRun) (*parliament.PipelineRun, error)
	Finish(dbc dbctx.Context, id uuid.UUID, status string, report datatypes.JSON, errMsg string) error
	GetLatest(dbc dbctx.Context, command string) (*parliament.PipelineRun, error)
}

type pipelineRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPipelineRunRepo(db *gorm.DB, baseLog *logger.Logger) PipelineRunRepo {
	return &pipelineRunRepo{db: db, log: baseLog.With("repo", "PipelineRunRepo")}
}

func (r *pipelineRunRepo) Create(dbc dbctx.Context, run *parliament.PipelineRun) (*parliament.PipelineRun, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.Status == "" {
		run.Status = parliament.RunStatusRunning
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if len(run.Report) == 0 {
		run.Report = datatypes.JSON([]byte("{}"))
	}
	if err := dbc.DB(r.db).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

func (r *pipelineRunRepo) Finish(dbc dbctx.Context, id uuid.UUID, status string, report datatypes.JSON, errMsg string) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":      status,
		"finished_at": now,
		"error":       errMsg,
		"updated_at":  now,
	}
	if len(report) > 0 {
		updates["report"] = report
	}
	return dbc.DB(r.db).Model(&parliament.PipelineRun{}).Where("id = ?", id).Updates(updates).Error
}

// GetLatest returns the most recent run, optionally filtered by command.
func (r *pipelineRunRepo) GetLatest(dbc dbctx.Context, command string) (*parliament.PipelineRun, error) {
	q := dbc.DB(r.db)
	if command != "" {
		q = q.Where("command = ?", command)
	}
	var out parliament.PipelineRun
	if err := q.Order("started_at DESC").Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}
