package interfaces

import (
	"context"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
)

// Repository is the primary relational store.
type Repository interface {
	UserType() EntityRepository[model.UserType]
	ReportStatusCode() EntityRepository[model.ReportStatusCode]
	WorkType() EntityRepository[model.WorkType]
	Enterprise() EntityRepository[model.Enterprise]
	AssignmentStatusCode() EntityRepository[model.AssignmentStatusCode]
	User() EntityRepository[model.User]
	Session() SessionRepository
	LoginAttempt() EntityRepository[model.LoginAttempt]
	Report() EntityRepository[model.Report]
	Assignment() AssignmentRepository
	ReportStatusHistory() ReportStatusHistoryRepository
	AssignmentStatusHistory() AssignmentStatusHistoryRepository
	SyncRun() SyncRunRepository

	// WithTx runs fn in one transaction. Returning an error rolls back every
	// write fn made through the context it received; nil commits. Nested
	// calls join the outer transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	Close() error
}

// EntityRepository is the access every synchronized kind supports.
type EntityRepository[T any] interface {
	// Get returns ErrNotFound when no row has id
	Get(ctx context.Context, id int64) (*T, error)

	// List returns every row ordered by id
	List(ctx context.Context) ([]*T, error)

	// Save inserts the row, or replaces the row with the same id. A zero id
	// is assigned by the store and written back into v.
	Save(ctx context.Context, v *T) error
}

// SessionRepository adds token lookup to sessions
type SessionRepository interface {
	EntityRepository[model.Session]

	// GetByToken returns ErrNotFound when no session carries token
	GetByToken(ctx context.Context, token string) (*model.Session, error)
}

// AssignmentRepository adds per-report lookup to assignments
type AssignmentRepository interface {
	EntityRepository[model.Assignment]

	// ListByReport returns the assignments of a report ordered by id
	ListByReport(ctx context.Context, reportID int64) ([]*model.Assignment, error)
}

// ReportStatusHistoryRepository is the append-only status log of reports.
// Entries are never updated by the status engine; Save is used for appends
// and by reconciliation.
type ReportStatusHistoryRepository interface {
	EntityRepository[model.StatusHistoryEntry]

	// ListByReport returns the log of a report, newest first (ChangedAt desc, id desc)
	ListByReport(ctx context.Context, reportID int64) ([]*model.StatusHistoryEntry, error)
}

// AssignmentStatusHistoryRepository is the append-only status log of assignments.
type AssignmentStatusHistoryRepository interface {
	EntityRepository[model.AssignmentStatusHistoryEntry]

	// ListByAssignment returns the log of an assignment, newest first
	ListByAssignment(ctx context.Context, assignmentID int64) ([]*model.AssignmentStatusHistoryEntry, error)
}

// SyncRunRepository stores reconciliation audit rows
type SyncRunRepository interface {
	// Create appends run, assigning its id
	Create(ctx context.Context, run *model.SyncRun) error

	// LatestSuccess returns the most recent successful run whose remark
	// matches the SQL LIKE pattern, or ErrNotFound
	LatestSuccess(ctx context.Context, remarkPattern string) (*model.SyncRun, error)

	// ListRecent returns up to limit runs, newest first
	ListRecent(ctx context.Context, limit int) ([]*model.SyncRun, error)
}
