package parliament

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusPartial   = "partial"
	RunStatusFailed    = "failed"
)

// PipelineRun persists the end-of-run data-quality report.
type PipelineRun struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Command    string         `gorm:"column:command;not null;index" json:"command"`
	Status     string         `gorm:"column:status;not null;index" json:"status"`
	StartedAt  time.Time      `gorm:"column:started_at;not null;index" json:"started_at"`
	FinishedAt *time.Time     `gorm:"column:finished_at" json:"finished_at,omitempty"`
	Error      string         `gorm:"column:error" json:"error,omitempty"`
	Report     datatypes.JSON `gorm:"column:report" json:"report"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PipelineRun) TableName() string { return "pipeline_runs" }
