package types

import "fmt"

// ReportStatus is the semantic name of a report status code. Numeric ids are
// configured separately and resolved through config.StatusCodes.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusResolved   ReportStatus = "resolved"
	ReportStatusRejected   ReportStatus = "rejected"
	ReportStatusUnknown    ReportStatus = "unknown"
)

// AllReportStatuses returns all valid report statuses
func AllReportStatuses() []ReportStatus {
	return []ReportStatus{
		ReportStatusPending,
		ReportStatusInProgress,
		ReportStatusResolved,
		ReportStatusRejected,
	}
}

// IsValid checks if the report status is valid
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending,
		ReportStatusInProgress,
		ReportStatusResolved,
		ReportStatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is expected
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusResolved || s == ReportStatusRejected
}

// Progress returns the completion percentage shown for the status
func (s ReportStatus) Progress() int {
	switch s {
	case ReportStatusInProgress:
		return 50
	case ReportStatusResolved:
		return 100
	default:
		return 0
	}
}

func (s ReportStatus) String() string {
	return string(s)
}

// ParseReportStatus parses a string into a ReportStatus
func ParseReportStatus(s string) (ReportStatus, error) {
	status := ReportStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid report status: %s", s)
	}
	return status, nil
}
