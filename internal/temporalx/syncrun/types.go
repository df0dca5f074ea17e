package syncrun

const (
	WorkflowName    = "parliament_sync"
	ActivityRun     = "parliament_sync_run"
	CronWorkflowID  = "parliament-sync-cron"
	DefaultCommand  = "sync"
	maxStageAttempt = 3
)

// Input selects the stages of one run. Empty Stages means the full sync.
type Input struct {
	Command string   `json:"command"`
	Stages  []string `json:"stages,omitempty"`
}

type Result struct {
	RunID  string   `json:"run_id"`
	Status string   `json:"status"`
	Failed []string `json:"failed_stages,omitempty"`
}
