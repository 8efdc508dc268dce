package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
)

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyReport(r *model.Report) model.Report {
	copied := *r
	copied.WorkTypeID = cloneInt64(r.WorkTypeID)
	return copied
}

func copyAssignment(a *model.Assignment) model.Assignment {
	copied := *a
	copied.StatusID = cloneInt64(a.StatusID)
	return copied
}

type sessionRepository struct {
	*table[model.Session, *model.Session]
}

var _ interfaces.SessionRepository = &sessionRepository{}

func newSessionRepository() *sessionRepository {
	return &sessionRepository{table: newTable[model.Session]("session")}
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	matches := r.filter(func(s *model.Session) bool { return s.Token == token })
	if len(matches) == 0 {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "session not found")
	}
	return matches[0], nil
}

type assignmentRepository struct {
	*table[model.Assignment, *model.Assignment]
}

var _ interfaces.AssignmentRepository = &assignmentRepository{}

func newAssignmentRepository() *assignmentRepository {
	return &assignmentRepository{
		table: newTable[model.Assignment]("assignment").withClone(copyAssignment),
	}
}

func (r *assignmentRepository) ListByReport(ctx context.Context, reportID int64) ([]*model.Assignment, error) {
	return r.filter(func(a *model.Assignment) bool { return a.ReportID == reportID }), nil
}

type reportStatusHistoryRepository struct {
	*table[model.StatusHistoryEntry, *model.StatusHistoryEntry]
}

var _ interfaces.ReportStatusHistoryRepository = &reportStatusHistoryRepository{}

func newReportStatusHistoryRepository() *reportStatusHistoryRepository {
	return &reportStatusHistoryRepository{table: newTable[model.StatusHistoryEntry]("report status history")}
}

func (r *reportStatusHistoryRepository) ListByReport(ctx context.Context, reportID int64) ([]*model.StatusHistoryEntry, error) {
	entries := r.filter(func(e *model.StatusHistoryEntry) bool { return e.ReportID == reportID })
	slices.SortStableFunc(entries, func(a, b *model.StatusHistoryEntry) int {
		if c := b.ChangedAt.Compare(a.ChangedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return entries, nil
}

type assignmentStatusHistoryRepository struct {
	*table[model.AssignmentStatusHistoryEntry, *model.AssignmentStatusHistoryEntry]
}

var _ interfaces.AssignmentStatusHistoryRepository = &assignmentStatusHistoryRepository{}

func newAssignmentStatusHistoryRepository() *assignmentStatusHistoryRepository {
	return &assignmentStatusHistoryRepository{table: newTable[model.AssignmentStatusHistoryEntry]("assignment status history")}
}

func (r *assignmentStatusHistoryRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]*model.AssignmentStatusHistoryEntry, error) {
	entries := r.filter(func(e *model.AssignmentStatusHistoryEntry) bool { return e.AssignmentID == assignmentID })
	slices.SortStableFunc(entries, func(a, b *model.AssignmentStatusHistoryEntry) int {
		if c := b.ChangedAt.Compare(a.ChangedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return entries, nil
}
