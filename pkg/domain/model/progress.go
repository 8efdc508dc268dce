package model

import (
	"time"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/types"
)

// ReportProgress is the status of a report at a given instant
type ReportProgress struct {
	ReportID int64
	At       time.Time
	StatusID int64
	Status   types.ReportStatus
	Percent  int
}
