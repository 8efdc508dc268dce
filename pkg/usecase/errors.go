package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrReportNotFound     = errors.New("report not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrEnterpriseNotFound = errors.New("enterprise not found")
	ErrStatusCodeNotFound = errors.New("status code not found")

	// Validation errors
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrHistoryOutOfOrder    = errors.New("status change precedes the latest history entry")
	ErrInvalidDateRange     = errors.New("start date is after end date")

	// Authentication errors
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("manager role required")
)

// Context keys for error values
const (
	ReportIDKey     = "report_id"
	AssignmentIDKey = "assignment_id"
	EnterpriseIDKey = "enterprise_id"
	StatusIDKey     = "status_id"
	RunIDKey        = "run_id"
	KindKey         = "kind"
	CollectionKey   = "collection"
	UserIDKey       = "user_id"
)

// IsValidationError reports whether err is a caller mistake that must not be
// retried as-is.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrTransitionNotAllowed) ||
		errors.Is(err, ErrHistoryOutOfOrder) ||
		errors.Is(err, ErrInvalidDateRange)
}

// IsNotFoundError reports whether err names a missing entity or status code
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrReportNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrEnterpriseNotFound) ||
		errors.Is(err, ErrStatusCodeNotFound)
}
