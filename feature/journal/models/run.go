package models

import "time"

// Result values stored on Outcome.
const (
	ResultCreated = "created"
	ResultUpdated = "updated"
	ResultFailed  = "failed"
	ResultPlanned = "planned"
)

// Run is one reconciliation pass.
type Run struct {
	ID            string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Backend       string    `gorm:"column:backend;type:varchar(16);index" json:"backend"`
	AppID         string    `gorm:"column:app_id;type:varchar(255);index" json:"appId"`
	DryRun        bool      `gorm:"column:dry_run;default:false" json:"dryRun"`
	Committed     bool      `gorm:"column:committed;default:false" json:"committed"`
	RolledBack    bool      `gorm:"column:rolled_back;default:false" json:"rolledBack"`
	CommitUnknown bool      `gorm:"column:commit_unknown;default:false" json:"commitUnknown,omitempty"`
	Error         string    `gorm:"column:error;type:text" json:"error,omitempty"`
	StartedAt     time.Time `gorm:"column:started_at;index" json:"startedAt"`
	FinishedAt    time.Time `gorm:"column:finished_at" json:"finishedAt"`
	Outcomes      []Outcome `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"outcomes"`
}

func (Run) TableName() string {
	return "journal_runs"
}

// Outcome is one locale change within a run.
type Outcome struct {
	ID         uint   `gorm:"primaryKey;column:id;autoIncrement" json:"-"`
	RunID      string `gorm:"column:run_id;type:varchar(36);index" json:"-"`
	Collection string `gorm:"column:collection;type:varchar(64)" json:"collection"`
	Locale     string `gorm:"column:locale;type:varchar(35)" json:"locale"`
	Result     string `gorm:"column:result;type:varchar(16)" json:"result"`
	Recovered  bool   `gorm:"column:recovered;default:false" json:"recovered,omitempty"`
	Error      string `gorm:"column:error;type:text" json:"error,omitempty"`
}

func (Outcome) TableName() string {
	return "journal_outcomes"
}
