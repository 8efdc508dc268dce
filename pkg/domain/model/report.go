package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportStatusCode is a row of the report status lookup table
type ReportStatusCode struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Label      string    `gorm:"column:label;not null"`
	LastUpdate time.Time `gorm:"column:last_update;not null"`
}

func (ReportStatusCode) TableName() string { return "report_status_codes" }

// WorkType classifies the work a report asks for (road, lighting, ...)
type WorkType struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Label      string    `gorm:"column:label;not null"`
	LastUpdate time.Time `gorm:"column:last_update;not null"`
}

func (WorkType) TableName() string { return "work_types" }

// Report is a citizen-submitted civic-works report. It carries no status
// column: the current status is the latest StatusHistoryEntry.
type Report struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	Title       string          `gorm:"column:title"`
	Description string          `gorm:"column:description"`
	Latitude    decimal.Decimal `gorm:"column:latitude;type:decimal(10,7)"`
	Longitude   decimal.Decimal `gorm:"column:longitude;type:decimal(10,7)"`
	AreaM2      decimal.Decimal `gorm:"column:area_m2;type:decimal(15,2)"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime:false"`
	WorkTypeID  *int64          `gorm:"column:id_work_type;index"`
	UserID      int64           `gorm:"column:id_user;not null;index"`
	LastUpdate  time.Time       `gorm:"column:last_update;not null"`
}

func (Report) TableName() string { return "reports" }

// StatusHistoryEntry is one immutable entry of a report's status log
type StatusHistoryEntry struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	ReportID   int64     `gorm:"column:id_report;not null;index:idx_report_history,priority:1"`
	StatusID   int64     `gorm:"column:id_status;not null"`
	ChangedAt  time.Time `gorm:"column:changed_at;not null;index:idx_report_history,priority:2"`
	LastUpdate time.Time `gorm:"column:last_update;not null"`
}

func (StatusHistoryEntry) TableName() string { return "report_status_history" }

func (x *ReportStatusCode) RecordID() int64 { return x.ID }
func (x *ReportStatusCode) SetRecordID(id int64) { x.ID = id }
func (x *ReportStatusCode) LastUpdated() time.Time { return x.LastUpdate }
func (x *ReportStatusCode) SetLastUpdated(t time.Time) { x.LastUpdate = t }
func (x *WorkType) RecordID() int64 { return x.ID }
func (x *WorkType) SetRecordID(id int64) { x.ID = id }
func (x *WorkType) LastUpdated() time.Time { return x.LastUpdate }
func (x *WorkType) SetLastUpdated(t time.Time) { x.LastUpdate = t }
func (x *Report) RecordID() int64 { return x.ID }
func (x *Report) SetRecordID(id int64) { x.ID = id }
func (x *Report) LastUpdated() time.Time { return x.LastUpdate }
func (x *Report) SetLastUpdated(t time.Time) { x.LastUpdate = t }
func (x *StatusHistoryEntry) RecordID() int64 { return x.ID }
func (x *StatusHistoryEntry) SetRecordID(id int64) { x.ID = id }
func (x *StatusHistoryEntry) LastUpdated() time.Time { return x.LastUpdate }
func (x *StatusHistoryEntry) SetLastUpdated(t time.Time) { x.LastUpdate = t }
