package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Enterprise is a contractor that can be assigned to reports
type Enterprise struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	Email      string    `gorm:"column:email"`
	LastUpdate time.Time `gorm:"column:last_update;not null"`
}

func (Enterprise) TableName() string { return "enterprises" }

// AssignmentStatusCode is a row of the assignment status lookup table
type AssignmentStatusCode struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Label      string    `gorm:"column:label;not null"`
	LastUpdate time.Time `gorm:"column:last_update;not null"`
}

func (AssignmentStatusCode) TableName() string { return "assignment_status_codes" }

// Assignment links a report to the enterprise doing the work. StatusID
// mirrors the latest AssignmentStatusHistoryEntry.
type Assignment struct {
	ID           int64           `gorm:"column:id;primaryKey"`
	ReportID     int64           `gorm:"column:id_report;not null;index"`
	EnterpriseID int64           `gorm:"column:id_enterprise;not null;index"`
	StatusID     *int64          `gorm:"column:id_assignment_status"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(15,2)"`
	StartDate    time.Time       `gorm:"column:start_date"`
	EndDate      time.Time       `gorm:"column:end_date"`
	CreatedOn    time.Time       `gorm:"column:created_on"`
	LastUpdate   time.Time       `gorm:"column:last_update;not null"`
}

func (Assignment) TableName() string { return "assignments" }

// AssignmentStatusHistoryEntry is one immutable entry of an assignment's status log
type AssignmentStatusHistoryEntry struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	AssignmentID int64     `gorm:"column:id_assignment;not null;index:idx_assignment_history,priority:1"`
	StatusID     int64     `gorm:"column:id_status;not null"`
	ChangedAt    time.Time `gorm:"column:changed_at;not null;index:idx_assignment_history,priority:2"`
	LastUpdate   time.Time `gorm:"column:last_update;not null"`
}

func (AssignmentStatusHistoryEntry) TableName() string { return "assignment_status_history" }

func (x *Enterprise) RecordID() int64 { return x.ID }
func (x *Enterprise) SetRecordID(id int64) { x.ID = id }
func (x *Enterprise) LastUpdated() time.Time { return x.LastUpdate }
func (x *Enterprise) SetLastUpdated(t time.Time) { x.LastUpdate = t }
func (x *AssignmentStatusCode) RecordID() int64 { return x.ID }
func (x *AssignmentStatusCode) SetRecordID(id int64) { x.ID = id }
func (x *AssignmentStatusCode) LastUpdated() time.Time { return x.LastUpdate }
func (x *AssignmentStatusCode) SetLastUpdated(t time.Time) { x.LastUpdate = t }
func (x *Assignment) RecordID() int64 { return x.ID }
func (x *Assignment) SetRecordID(id int64) { x.ID = id }
func (x *Assignment) LastUpdated() time.Time { return x.LastUpdate }
func (x *Assignment) SetLastUpdated(t time.Time) { x.LastUpdate = t }
func (x *AssignmentStatusHistoryEntry) RecordID() int64 { return x.ID }
func (x *AssignmentStatusHistoryEntry) SetRecordID(id int64) { x.ID = id }
func (x *AssignmentStatusHistoryEntry) LastUpdated() time.Time { return x.LastUpdate }
func (x *AssignmentStatusHistoryEntry) SetLastUpdated(t time.Time) { x.LastUpdate = t }
