package model

import (
	"fmt"
	"time"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/types"
)

// Remark markers. The pull watermark is read from successful runs whose remark
// matches PullRemarkPattern, so pull remarks must always contain PullMarker.
const (
	PullMarker        = "remote->primary"
	PushMarker        = "primary->remote"
	PullRemarkPattern = "%" + PullMarker + "%"
)

// DefaultWatermark is used when no successful pull has ever been recorded.
var DefaultWatermark = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// SyncRun is the audit row written once per reconciliation run.
type SyncRun struct {
	ID        int64               `gorm:"column:id;primaryKey"`
	RunID     string              `gorm:"column:run_id;size:36;uniqueIndex"`
	RunAt     time.Time           `gorm:"column:run_at;not null;index"`
	Direction types.SyncDirection `gorm:"column:direction;size:16;not null"`
	Success   bool                `gorm:"column:success;not null"`
	Remark    string              `gorm:"column:remark"`
	Counts    map[string]int      `gorm:"column:counts;type:text;serializer:json"`
}

func (SyncRun) TableName() string { return "sync_runs" }

// PullRemark builds the remark of a successful pull
func PullRemark(total, kinds int) string {
	return fmt.Sprintf("pull %s: %d records in %d kinds", PullMarker, total, kinds)
}

// PushRemark builds the remark of a successful push
func PushRemark(total, collections int) string {
	return fmt.Sprintf("rebuild %s: %d documents in %d collections", PushMarker, total, collections)
}

// FailedRemark builds the remark of a failed run. The marker is kept so the
// run can be found by direction, but the watermark query also requires success.
func FailedRemark(direction types.SyncDirection, err error) string {
	marker := PullMarker
	if direction == types.SyncDirectionPush {
		marker = PushMarker
	}
	return fmt.Sprintf("failed %s: %s", marker, err.Error())
}

// SyncResult is the outcome returned to whoever triggered a run.
type SyncResult struct {
	RunID     string
	Direction types.SyncDirection
	Success   bool
	RunAt     time.Time
	Message   string
	Counts    map[string]int
	Error     string
}

// Total returns the sum of per-kind counts
func (r *SyncResult) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// FullSyncResult is the outcome of a pull followed by a push. Push is nil
// when the pull failed and the push was not attempted.
type FullSyncResult struct {
	Success bool
	Pull    *SyncResult
	Push    *SyncResult
}
