package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model/config"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/types"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

// StatusUseCase records report and assignment status changes. The current
// status of either is the latest entry of its append-only history log.
type StatusUseCase struct {
	repo  interfaces.Repository
	codes *config.StatusCodes
	now   func() time.Time
}

func NewStatusUseCase(repo interfaces.Repository, codes *config.StatusCodes, now func() time.Time) *StatusUseCase {
	if codes == nil {
		codes = config.DefaultStatusCodes()
	}
	if now == nil {
		now = time.Now
	}
	return &StatusUseCase{
		repo:  repo,
		codes: codes,
		now:   now,
	}
}

// SetReportStatus appends a status change to the report's history. at is the
// change time, now when nil; a nil at is moved up to the latest entry so it
// never precedes it. Moving to in_progress requires an accepted
// assignment; moving to resolved requires an assignment that is in_progress
// or completed.
func (uc *StatusUseCase) SetReportStatus(ctx context.Context, reportID, statusID int64, at *time.Time) (*model.Report, error) {
	var updated *model.Report

	err := uc.repo.WithTx(ctx, func(ctx context.Context) error {
		report, err := uc.getReport(ctx, reportID)
		if err != nil {
			return err
		}

		if _, err := uc.repo.ReportStatusCode().Get(ctx, statusID); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return goerr.Wrap(ErrStatusCodeNotFound, "report status code not found", goerr.V(StatusIDKey, statusID))
			}
			return goerr.Wrap(err, "failed to get report status code", goerr.V(StatusIDKey, statusID))
		}

		if err := uc.checkReportTransition(ctx, reportID, statusID); err != nil {
			return err
		}

		now := model.Timestamp(uc.now())
		changedAt := now
		if at != nil {
			changedAt = model.Timestamp(*at)
		}

		history, err := uc.repo.ReportStatusHistory().ListByReport(ctx, reportID)
		if err != nil {
			return goerr.Wrap(err, "failed to list report status history", goerr.V(ReportIDKey, reportID))
		}
		if len(history) > 0 && changedAt.Before(history[0].ChangedAt) {
			if at != nil {
				return goerr.Wrap(ErrHistoryOutOfOrder, "status change is older than the current status",
					goerr.V(ReportIDKey, reportID),
					goerr.V("changed_at", changedAt),
					goerr.V("latest_changed_at", history[0].ChangedAt))
			}
			// a pulled entry may be dated ahead of the local clock; ties
			// resolve by id, so the new entry still becomes current
			changedAt = history[0].ChangedAt
		}

		entry := &model.StatusHistoryEntry{
			ReportID:  reportID,
			StatusID:  statusID,
			ChangedAt: changedAt,
		}
		model.Touch(entry, now)
		if err := uc.repo.ReportStatusHistory().Save(ctx, entry); err != nil {
			return goerr.Wrap(err, "failed to append report status history", goerr.V(ReportIDKey, reportID))
		}

		model.Touch(report, now)
		if err := uc.repo.Report().Save(ctx, report); err != nil {
			return goerr.Wrap(err, "failed to save report", goerr.V(ReportIDKey, reportID))
		}

		logging.From(ctx).Info("report status changed",
			"report_id", reportID,
			"status_id", statusID,
			"status", uc.codes.ReportStatusOf(statusID),
			"changed_at", changedAt)

		updated = report
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (uc *StatusUseCase) checkReportTransition(ctx context.Context, reportID, statusID int64) error {
	var allowed []types.AssignmentStatus
	target := uc.codes.ReportStatusOf(statusID)
	switch target {
	case types.ReportStatusInProgress:
		allowed = []types.AssignmentStatus{types.AssignmentStatusAccepted}
	case types.ReportStatusResolved:
		allowed = []types.AssignmentStatus{types.AssignmentStatusInProgress, types.AssignmentStatusCompleted}
	default:
		return nil
	}

	assignments, err := uc.repo.Assignment().ListByReport(ctx, reportID)
	if err != nil {
		return goerr.Wrap(err, "failed to list assignments", goerr.V(ReportIDKey, reportID))
	}

	for _, a := range assignments {
		current, ok, err := uc.currentAssignmentStatusID(ctx, a)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		status := uc.codes.AssignmentStatusOf(current)
		for _, s := range allowed {
			if status == s {
				return nil
			}
		}
	}

	return goerr.Wrap(ErrTransitionNotAllowed, "no assignment allows the transition",
		goerr.V(ReportIDKey, reportID),
		goerr.V(StatusIDKey, statusID),
		goerr.V("target", target),
		goerr.V("required", allowed),
		goerr.V("assignments", len(assignments)))
}

// CurrentReportStatus returns the status id of the latest history entry, or
// the pending id when the report has no history yet.
func (uc *StatusUseCase) CurrentReportStatus(ctx context.Context, reportID int64) (int64, error) {
	if _, err := uc.getReport(ctx, reportID); err != nil {
		return 0, err
	}
	return uc.currentReportStatusID(ctx, reportID)
}

func (uc *StatusUseCase) currentReportStatusID(ctx context.Context, reportID int64) (int64, error) {
	history, err := uc.repo.ReportStatusHistory().ListByReport(ctx, reportID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list report status history", goerr.V(ReportIDKey, reportID))
	}
	if len(history) == 0 {
		return uc.codes.Report.Pending, nil
	}
	return history[0].StatusID, nil
}

// ReportStatusAt returns the status the report had at the given instant
func (uc *StatusUseCase) ReportStatusAt(ctx context.Context, reportID int64, at time.Time) (int64, error) {
	if _, err := uc.getReport(ctx, reportID); err != nil {
		return 0, err
	}

	history, err := uc.repo.ReportStatusHistory().ListByReport(ctx, reportID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list report status history", goerr.V(ReportIDKey, reportID))
	}

	at = model.Timestamp(at)
	for _, entry := range history {
		if !entry.ChangedAt.After(at) {
			return entry.StatusID, nil
		}
	}
	return uc.codes.Report.Pending, nil
}

// ReportProgress returns the status and completion percentage of a report at
// at, or now when at is nil.
func (uc *StatusUseCase) ReportProgress(ctx context.Context, reportID int64, at *time.Time) (*model.ReportProgress, error) {
	when := model.Timestamp(uc.now())
	if at != nil {
		when = model.Timestamp(*at)
	}

	statusID, err := uc.ReportStatusAt(ctx, reportID, when)
	if err != nil {
		return nil, err
	}

	status := uc.codes.ReportStatusOf(statusID)
	return &model.ReportProgress{
		ReportID: reportID,
		At:       when,
		StatusID: statusID,
		Status:   status,
		Percent:  status.Progress(),
	}, nil
}

// ReportHistory returns the status log of a report, newest first
func (uc *StatusUseCase) ReportHistory(ctx context.Context, reportID int64) ([]*model.StatusHistoryEntry, error) {
	if _, err := uc.getReport(ctx, reportID); err != nil {
		return nil, err
	}

	history, err := uc.repo.ReportStatusHistory().ListByReport(ctx, reportID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list report status history", goerr.V(ReportIDKey, reportID))
	}
	return history, nil
}

// SetAssignmentStatus records a new status for an assignment. Any known
// assignment status code may be set.
func (uc *StatusUseCase) SetAssignmentStatus(ctx context.Context, assignmentID, statusID int64) (*model.Assignment, error) {
	var updated *model.Assignment

	err := uc.repo.WithTx(ctx, func(ctx context.Context) error {
		assignment, err := uc.repo.Assignment().Get(ctx, assignmentID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return goerr.Wrap(ErrAssignmentNotFound, "assignment not found", goerr.V(AssignmentIDKey, assignmentID))
			}
			return goerr.Wrap(err, "failed to get assignment", goerr.V(AssignmentIDKey, assignmentID))
		}

		if _, err := uc.repo.AssignmentStatusCode().Get(ctx, statusID); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return goerr.Wrap(ErrStatusCodeNotFound, "assignment status code not found", goerr.V(StatusIDKey, statusID))
			}
			return goerr.Wrap(err, "failed to get assignment status code", goerr.V(StatusIDKey, statusID))
		}

		now := model.Timestamp(uc.now())
		if err := uc.appendAssignmentHistory(ctx, assignment, statusID, now); err != nil {
			return err
		}

		logging.From(ctx).Info("assignment status changed",
			"assignment_id", assignmentID,
			"report_id", assignment.ReportID,
			"status_id", statusID,
			"status", uc.codes.AssignmentStatusOf(statusID))

		updated = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// appendAssignmentHistory appends an entry, mirrors it on the row and saves both
func (uc *StatusUseCase) appendAssignmentHistory(ctx context.Context, assignment *model.Assignment, statusID int64, now time.Time) error {
	history, err := uc.repo.AssignmentStatusHistory().ListByAssignment(ctx, assignment.ID)
	if err != nil {
		return goerr.Wrap(err, "failed to list assignment status history", goerr.V(AssignmentIDKey, assignment.ID))
	}
	changedAt := now
	if len(history) > 0 && changedAt.Before(history[0].ChangedAt) {
		changedAt = history[0].ChangedAt
	}

	entry := &model.AssignmentStatusHistoryEntry{
		AssignmentID: assignment.ID,
		StatusID:     statusID,
		ChangedAt:    changedAt,
	}
	model.Touch(entry, now)
	if err := uc.repo.AssignmentStatusHistory().Save(ctx, entry); err != nil {
		return goerr.Wrap(err, "failed to append assignment status history", goerr.V(AssignmentIDKey, assignment.ID))
	}

	assignment.StatusID = &statusID
	model.Touch(assignment, now)
	if err := uc.repo.Assignment().Save(ctx, assignment); err != nil {
		return goerr.Wrap(err, "failed to save assignment", goerr.V(AssignmentIDKey, assignment.ID))
	}
	return nil
}

// CurrentAssignmentStatus returns the status id of the latest history entry,
// falling back to the status stored on the assignment. ok is false when the
// assignment has neither.
func (uc *StatusUseCase) CurrentAssignmentStatus(ctx context.Context, assignmentID int64) (int64, bool, error) {
	assignment, err := uc.repo.Assignment().Get(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return 0, false, goerr.Wrap(ErrAssignmentNotFound, "assignment not found", goerr.V(AssignmentIDKey, assignmentID))
		}
		return 0, false, goerr.Wrap(err, "failed to get assignment", goerr.V(AssignmentIDKey, assignmentID))
	}
	return uc.currentAssignmentStatusID(ctx, assignment)
}

func (uc *StatusUseCase) currentAssignmentStatusID(ctx context.Context, assignment *model.Assignment) (int64, bool, error) {
	history, err := uc.repo.AssignmentStatusHistory().ListByAssignment(ctx, assignment.ID)
	if err != nil {
		return 0, false, goerr.Wrap(err, "failed to list assignment status history", goerr.V(AssignmentIDKey, assignment.ID))
	}
	if len(history) > 0 {
		return history[0].StatusID, true, nil
	}
	if assignment.StatusID != nil {
		return *assignment.StatusID, true, nil
	}
	return 0, false, nil
}

// AssignEnterprise creates a pending assignment of an enterprise to a report
// together with its first history entry.
func (uc *StatusUseCase) AssignEnterprise(ctx context.Context, reportID, enterpriseID int64, amount decimal.Decimal, start, end time.Time) (*model.Assignment, error) {
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return nil, goerr.Wrap(ErrInvalidDateRange, "invalid assignment period",
			goerr.V("start_date", start),
			goerr.V("end_date", end))
	}
	if amount.IsNegative() {
		return nil, goerr.New("assignment amount must not be negative", goerr.V("amount", amount.String()))
	}

	var created *model.Assignment
	err := uc.repo.WithTx(ctx, func(ctx context.Context) error {
		if _, err := uc.getReport(ctx, reportID); err != nil {
			return err
		}

		if _, err := uc.repo.Enterprise().Get(ctx, enterpriseID); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return goerr.Wrap(ErrEnterpriseNotFound, "enterprise not found", goerr.V(EnterpriseIDKey, enterpriseID))
			}
			return goerr.Wrap(err, "failed to get enterprise", goerr.V(EnterpriseIDKey, enterpriseID))
		}

		now := model.Timestamp(uc.now())
		pending := uc.codes.Assignment.Pending
		assignment := &model.Assignment{
			ReportID:     reportID,
			EnterpriseID: enterpriseID,
			StatusID:     &pending,
			Amount:       amount,
			StartDate:    model.Timestamp(start),
			EndDate:      model.Timestamp(end),
			CreatedOn:    now,
		}
		model.Touch(assignment, now)
		if err := uc.repo.Assignment().Save(ctx, assignment); err != nil {
			return goerr.Wrap(err, "failed to create assignment",
				goerr.V(ReportIDKey, reportID),
				goerr.V(EnterpriseIDKey, enterpriseID))
		}

		if err := uc.appendAssignmentHistory(ctx, assignment, pending, now); err != nil {
			return err
		}

		logging.From(ctx).Info("enterprise assigned",
			"assignment_id", assignment.ID,
			"report_id", reportID,
			"enterprise_id", enterpriseID)

		created = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (uc *StatusUseCase) getReport(ctx context.Context, reportID int64) (*model.Report, error) {
	report, err := uc.repo.Report().Get(ctx, reportID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrReportNotFound, "report not found", goerr.V(ReportIDKey, reportID))
		}
		return nil, goerr.Wrap(err, "failed to get report", goerr.V(ReportIDKey, reportID))
	}
	return report, nil
}
