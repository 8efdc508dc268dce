package types

import "fmt"

// AssignmentStatus is the semantic name of an assignment status code
type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "pending"
	AssignmentStatusAccepted   AssignmentStatus = "accepted"
	AssignmentStatusRefused    AssignmentStatus = "refused"
	AssignmentStatusInProgress AssignmentStatus = "in_progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
	AssignmentStatusUnknown    AssignmentStatus = "unknown"
)

// AllAssignmentStatuses returns all valid assignment statuses
func AllAssignmentStatuses() []AssignmentStatus {
	return []AssignmentStatus{
		AssignmentStatusPending,
		AssignmentStatusAccepted,
		AssignmentStatusRefused,
		AssignmentStatusInProgress,
		AssignmentStatusCompleted,
	}
}

// IsValid checks if the assignment status is valid
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusPending,
		AssignmentStatusAccepted,
		AssignmentStatusRefused,
		AssignmentStatusInProgress,
		AssignmentStatusCompleted:
		return true
	default:
		return false
	}
}

func (s AssignmentStatus) String() string {
	return string(s)
}

// ParseAssignmentStatus parses a string into an AssignmentStatus
func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	status := AssignmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid assignment status: %s", s)
	}
	return status, nil
}
