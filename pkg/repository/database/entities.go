package database

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"gorm.io/gorm"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
)

type sessionRepository struct {
	*table[model.Session]
}

var _ interfaces.SessionRepository = &sessionRepository{}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	var s model.Session
	if err := r.db.conn(ctx).Where("token = ?", token).Order("id asc").Take(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "session not found")
		}
		return nil, goerr.Wrap(err, "failed to get session by token")
	}
	return &s, nil
}

type assignmentRepository struct {
	*table[model.Assignment]
}

var _ interfaces.AssignmentRepository = &assignmentRepository{}

func (r *assignmentRepository) ListByReport(ctx context.Context, reportID int64) ([]*model.Assignment, error) {
	return r.find(r.db.conn(ctx).Where("id_report = ?", reportID).Order("id asc"))
}

type reportStatusHistoryRepository struct {
	*table[model.StatusHistoryEntry]
}

var _ interfaces.ReportStatusHistoryRepository = &reportStatusHistoryRepository{}

func (r *reportStatusHistoryRepository) ListByReport(ctx context.Context, reportID int64) ([]*model.StatusHistoryEntry, error) {
	return r.find(r.db.conn(ctx).Where("id_report = ?", reportID).Order("changed_at desc").Order("id desc"))
}

type assignmentStatusHistoryRepository struct {
	*table[model.AssignmentStatusHistoryEntry]
}

var _ interfaces.AssignmentStatusHistoryRepository = &assignmentStatusHistoryRepository{}

func (r *assignmentStatusHistoryRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]*model.AssignmentStatusHistoryEntry, error) {
	return r.find(r.db.conn(ctx).Where("id_assignment = ?", assignmentID).Order("changed_at desc").Order("id desc"))
}

type syncRunRepository struct {
	db *Database
}

var _ interfaces.SyncRunRepository = &syncRunRepository{}

func (r *syncRunRepository) Create(ctx context.Context, run *model.SyncRun) error {
	if run == nil {
		return goerr.New("cannot create nil sync run")
	}
	run.ID = 0
	if err := r.db.conn(ctx).Create(run).Error; err != nil {
		return goerr.Wrap(err, "failed to create sync run", goerr.V("run_id", run.RunID))
	}
	return nil
}

func (r *syncRunRepository) LatestSuccess(ctx context.Context, remarkPattern string) (*model.SyncRun, error) {
	var run model.SyncRun
	err := r.db.conn(ctx).
		Where("success = ? AND remark LIKE ?", true, remarkPattern).
		Order("run_at desc").Order("id desc").
		Take(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "no successful sync run", goerr.V("pattern", remarkPattern))
		}
		return nil, goerr.Wrap(err, "failed to get latest sync run", goerr.V("pattern", remarkPattern))
	}
	return &run, nil
}

func (r *syncRunRepository) ListRecent(ctx context.Context, limit int) ([]*model.SyncRun, error) {
	query := r.db.conn(ctx).Order("run_at desc").Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var runs []*model.SyncRun
	if err := query.Find(&runs).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to list sync runs")
	}
	return runs, nil
}
