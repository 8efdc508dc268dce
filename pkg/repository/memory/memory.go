package memory

import (
	"context"
	"sync"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type snapshotter interface {
	snapshot() func()
}

// Memory is the in-memory primary store used for development and tests.
// Transactions snapshot every table and restore them on error; writes made
// concurrently by callers outside the transaction are lost on rollback.
type Memory struct {
	userType                *table[model.UserType, *model.UserType]
	reportStatusCode        *table[model.ReportStatusCode, *model.ReportStatusCode]
	workType                *table[model.WorkType, *model.WorkType]
	enterprise              *table[model.Enterprise, *model.Enterprise]
	assignmentStatusCode    *table[model.AssignmentStatusCode, *model.AssignmentStatusCode]
	user                    *table[model.User, *model.User]
	session                 *sessionRepository
	loginAttempt            *table[model.LoginAttempt, *model.LoginAttempt]
	report                  *table[model.Report, *model.Report]
	assignment              *assignmentRepository
	reportStatusHistory     *reportStatusHistoryRepository
	assignmentStatusHistory *assignmentStatusHistoryRepository
	syncRun                 *syncRunRepository

	txMu sync.Mutex
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		userType:                newTable[model.UserType]("user type"),
		reportStatusCode:        newTable[model.ReportStatusCode]("report status code"),
		workType:                newTable[model.WorkType]("work type"),
		enterprise:              newTable[model.Enterprise]("enterprise"),
		assignmentStatusCode:    newTable[model.AssignmentStatusCode]("assignment status code"),
		user:                    newTable[model.User]("user"),
		session:                 newSessionRepository(),
		loginAttempt:            newTable[model.LoginAttempt]("login attempt"),
		report:                  newTable[model.Report]("report").withClone(copyReport),
		assignment:              newAssignmentRepository(),
		reportStatusHistory:     newReportStatusHistoryRepository(),
		assignmentStatusHistory: newAssignmentStatusHistoryRepository(),
		syncRun:                 newSyncRunRepository(),
	}
}

func (m *Memory) UserType() interfaces.EntityRepository[model.UserType] {
	return m.userType
}

func (m *Memory) ReportStatusCode() interfaces.EntityRepository[model.ReportStatusCode] {
	return m.reportStatusCode
}

func (m *Memory) WorkType() interfaces.EntityRepository[model.WorkType] {
	return m.workType
}

func (m *Memory) Enterprise() interfaces.EntityRepository[model.Enterprise] {
	return m.enterprise
}

func (m *Memory) AssignmentStatusCode() interfaces.EntityRepository[model.AssignmentStatusCode] {
	return m.assignmentStatusCode
}

func (m *Memory) User() interfaces.EntityRepository[model.User] {
	return m.user
}

func (m *Memory) Session() interfaces.SessionRepository {
	return m.session
}

func (m *Memory) LoginAttempt() interfaces.EntityRepository[model.LoginAttempt] {
	return m.loginAttempt
}

func (m *Memory) Report() interfaces.EntityRepository[model.Report] {
	return m.report
}

func (m *Memory) Assignment() interfaces.AssignmentRepository {
	return m.assignment
}

func (m *Memory) ReportStatusHistory() interfaces.ReportStatusHistoryRepository {
	return m.reportStatusHistory
}

func (m *Memory) AssignmentStatusHistory() interfaces.AssignmentStatusHistoryRepository {
	return m.assignmentStatusHistory
}

func (m *Memory) SyncRun() interfaces.SyncRunRepository {
	return m.syncRun
}

type txCtxKey struct{}

func (m *Memory) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txCtxKey{}) != nil {
		return fn(ctx)
	}

	m.txMu.Lock()
	defer m.txMu.Unlock()

	tables := []snapshotter{
		m.userType, m.reportStatusCode, m.workType, m.enterprise,
		m.assignmentStatusCode, m.user, m.session, m.loginAttempt,
		m.report, m.assignment, m.reportStatusHistory,
		m.assignmentStatusHistory, m.syncRun,
	}
	restores := make([]func(), 0, len(tables))
	for _, t := range tables {
		restores = append(restores, t.snapshot())
	}

	if err := fn(context.WithValue(ctx, txCtxKey{}, struct{}{})); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}
