package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/shopspring/decimal"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/document"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/types"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/usecase"
)

func assign(t *testing.T, f *fixture, reportID, enterpriseID int64) *model.Assignment {
	t.Helper()
	a, err := f.uc.Status.AssignEnterprise(context.Background(), reportID, enterpriseID,
		decimal.NewFromInt(2500000), baseTime, baseTime.Add(30*24*time.Hour))
	gt.NoError(t, err).Required()
	return a
}

func TestSetReportStatus(t *testing.T) {
	t.Run("in_progress requires an accepted assignment", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.seedStatusCodes(t)
		report, enterprise := f.seedReport(t)
		inProgress := f.codes.Report.InProgress

		_, err := f.uc.Status.SetReportStatus(ctx, report.ID, inProgress, nil)
		gt.Error(t, err).Is(usecase.ErrTransitionNotAllowed)
		gt.Bool(t, usecase.IsValidationError(err)).True()

		a := assign(t, f, report.ID, enterprise.ID)
		_, err = f.uc.Status.SetReportStatus(ctx, report.ID, inProgress, nil)
		gt.Error(t, err).Is(usecase.ErrTransitionNotAllowed)

		f.clock.Advance(time.Minute)
		_, err = f.uc.Status.SetAssignmentStatus(ctx, a.ID, f.codes.Assignment.Accepted)
		gt.NoError(t, err).Required()

		f.clock.Advance(time.Minute)
		updated, err := f.uc.Status.SetReportStatus(ctx, report.ID, inProgress, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.LastUpdate).Equal(baseTime.Add(2 * time.Minute))

		history, err := f.uc.Status.ReportHistory(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(1)
		gt.Value(t, history[0].StatusID).Equal(inProgress)
		gt.Value(t, history[0].ChangedAt).Equal(baseTime.Add(2 * time.Minute))

		stored, err := f.repo.Report().Get(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.LastUpdate).Equal(baseTime.Add(2 * time.Minute))
	})

	t.Run("resolved requires an in_progress or completed assignment", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.seedStatusCodes(t)
		report, enterprise := f.seedReport(t)
		resolved := f.codes.Report.Resolved

		a := assign(t, f, report.ID, enterprise.ID)
		_, err := f.uc.Status.SetReportStatus(ctx, report.ID, resolved, nil)
		gt.Error(t, err).Is(usecase.ErrTransitionNotAllowed)

		history, err := f.uc.Status.ReportHistory(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(0)

		f.clock.Advance(time.Minute)
		_, err = f.uc.Status.SetAssignmentStatus(ctx, a.ID, f.codes.Assignment.InProgress)
		gt.NoError(t, err).Required()

		f.clock.Advance(time.Minute)
		_, err = f.uc.Status.SetReportStatus(ctx, report.ID, resolved, nil)
		gt.NoError(t, err).Required()

		current, err := f.uc.Status.CurrentReportStatus(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, current).Equal(resolved)
	})

	t.Run("completed assignment also allows resolved", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.seedStatusCodes(t)
		report, enterprise := f.seedReport(t)

		a := assign(t, f, report.ID, enterprise.ID)
		f.clock.Advance(time.Minute)
		_, err := f.uc.Status.SetAssignmentStatus(ctx, a.ID, f.codes.Assignment.Completed)
		gt.NoError(t, err).Required()

		_, err = f.uc.Status.SetReportStatus(ctx, report.ID, f.codes.Report.Resolved, nil)
		gt.NoError(t, err)
	})

	t.Run("assignment without history falls back to its stored status", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.seedStatusCodes(t)
		report, enterprise := f.seedReport(t)

		accepted := f.codes.Assignment.Accepted
		gt.NoError(t, f.repo.Assignment().Save(ctx, &model.Assignment{
			ID: 10, ReportID: report.ID, EnterpriseID: enterprise.ID, StatusID: &accepted, LastUpdate: baseTime,
		})).Required()

		current, ok, err := f.uc.Status.CurrentAssignmentStatus(ctx, 10)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
		gt.Value(t, current).Equal(accepted)

		_, err = f.uc.Status.SetReportStatus(ctx, report.ID, f.codes.Report.InProgress, nil)
		gt.NoError(t, err)
	})

	t.Run("unguarded transitions append one entry each", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.seedStatusCodes(t)
		report, _ := f.seedReport(t)

		sequence := []int64{
			f.codes.Report.Pending,
			f.codes.Report.Rejected,
			f.codes.Report.Pending,
			f.codes.Report.Rejected,
		}
		for _, statusID := range sequence {
			f.clock.Advance(time.Minute)
			_, err := f.uc.Status.SetReportStatus(ctx, report.ID, statusID, nil)
			gt.NoError(t, err).Required()
		}

		history, err := f.uc.Status.ReportHistory(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(len(sequence))
		for i := 1; i < len(history); i++ {
			gt.Bool(t, history[i-1].ChangedAt.After(history[i].ChangedAt)).True()
		}

		current, err := f.uc.Status.CurrentReportStatus(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, current).Equal(history[0].StatusID)
		gt.Value(t, current).Equal(f.codes.Report.Rejected)
	})

	t.Run("explicit change time older than the latest entry is rejected", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.seedStatusCodes(t)
		report, _ := f.seedReport(t)

		at := baseTime.Add(-time.Hour)
		_, err := f.uc.Status.SetReportStatus(ctx, report.ID, f.codes.Report.Rejected, &at)
		gt.NoError(t, err).Required()

		same := at
		_, err = f.uc.Status.SetReportStatus(ctx, report.ID, f.codes.Report.Pending, &same)
		gt.NoError(t, err).Required()

		earlier := at.Add(-time.Second)
		_, err = f.uc.Status.SetReportStatus(ctx, report.ID, f.codes.Report.Rejected, &earlier)
		gt.Error(t, err).Is(usecase.ErrHistoryOutOfOrder)

		history, err := f.uc.Status.ReportHistory(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(2)
		// equal timestamps: the later append is current
		gt.Value(t, history[0].StatusID).Equal(f.codes.Report.Pending)
	})

	t.Run("rejected request leaves nothing behind", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.seedStatusCodes(t)
		report, _ := f.seedReport(t)

		_, err := f.uc.Status.SetReportStatus(ctx, report.ID, f.codes.Report.InProgress, nil)
		gt.Error(t, err).Is(usecase.ErrTransitionNotAllowed)

		stored, err := f.repo.Report().Get(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.LastUpdate).Equal(report.LastUpdate)
	})

	t.Run("unknown report or status code", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.seedStatusCodes(t)
		report, _ := f.seedReport(t)

		_, err := f.uc.Status.SetReportStatus(ctx, 404, f.codes.Report.Pending, nil)
		gt.Error(t, err).Is(usecase.ErrReportNotFound)
		gt.Bool(t, usecase.IsNotFoundError(err)).True()

		_, err = f.uc.Status.SetReportStatus(ctx, report.ID, 77, nil)
		gt.Error(t, err).Is(usecase.ErrStatusCodeNotFound)
	})
}

func TestStatusChangesAfterEntriesDatedAhead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedStatusCodes(t)
	report, enterprise := f.seedReport(t)
	a := assign(t, f, report.ID, enterprise.ID)

	// a client with a fast clock wrote both entries five minutes ahead
	ahead := baseTime.Add(5 * time.Minute)
	f.putRemote(t, map[string]document.Document{
		"report_status_history": {
			"id": int64(50), "id_report": report.ID, "id_status": f.codes.Report.Pending,
			"changed_at": millis(ahead), "last_update": millis(ahead),
		},
		"assignment_status_history": {
			"id": int64(50), "id_assignment": a.ID, "id_status": f.codes.Assignment.Accepted,
			"changed_at": millis(ahead), "last_update": millis(ahead),
		},
	})
	pulled := f.uc.Sync.PullAll(ctx)
	gt.Bool(t, pulled.Success).True()
	gt.Value(t, pulled.Counts["report_status_history"]).Equal(1)
	gt.Value(t, pulled.Counts["assignment_status_history"]).Equal(1)

	f.clock.Advance(time.Minute)

	t.Run("assignment status is still settable", func(t *testing.T) {
		updated, err := f.uc.Status.SetAssignmentStatus(ctx, a.ID, f.codes.Assignment.Completed)
		gt.NoError(t, err).Required()
		gt.Value(t, *updated.StatusID).Equal(f.codes.Assignment.Completed)

		current, ok, err := f.uc.Status.CurrentAssignmentStatus(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
		gt.Value(t, current).Equal(f.codes.Assignment.Completed)

		history, err := f.repo.AssignmentStatusHistory().ListByAssignment(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, history[0].ChangedAt).Equal(ahead)
	})

	t.Run("report status without explicit time is still settable", func(t *testing.T) {
		_, err := f.uc.Status.SetReportStatus(ctx, report.ID, f.codes.Report.Rejected, nil)
		gt.NoError(t, err).Required()

		current, err := f.uc.Status.CurrentReportStatus(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, current).Equal(f.codes.Report.Rejected)

		history, err := f.uc.Status.ReportHistory(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(2)
		gt.Value(t, history[0].ChangedAt).Equal(ahead)
	})

	t.Run("explicit time before the latest entry is still rejected", func(t *testing.T) {
		at := f.clock.Now()
		_, err := f.uc.Status.SetReportStatus(ctx, report.ID, f.codes.Report.Pending, &at)
		gt.Error(t, err).Is(usecase.ErrHistoryOutOfOrder)
	})
}

func TestReportProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedStatusCodes(t)
	report, enterprise := f.seedReport(t)

	progress, err := f.uc.Status.ReportProgress(ctx, report.ID, nil)
	gt.NoError(t, err).Required()
	gt.Value(t, progress.Status).Equal(types.ReportStatusPending)
	gt.Number(t, progress.Percent).Equal(0)

	a := assign(t, f, report.ID, enterprise.ID)
	f.clock.Advance(time.Minute)
	_, err = f.uc.Status.SetAssignmentStatus(ctx, a.ID, f.codes.Assignment.Accepted)
	gt.NoError(t, err).Required()

	f.clock.Advance(time.Hour)
	startedAt := f.clock.Now()
	_, err = f.uc.Status.SetReportStatus(ctx, report.ID, f.codes.Report.InProgress, nil)
	gt.NoError(t, err).Required()

	f.clock.Advance(time.Minute)
	_, err = f.uc.Status.SetAssignmentStatus(ctx, a.ID, f.codes.Assignment.Completed)
	gt.NoError(t, err).Required()

	f.clock.Advance(24 * time.Hour)
	resolvedAt := f.clock.Now()
	_, err = f.uc.Status.SetReportStatus(ctx, report.ID, f.codes.Report.Resolved, nil)
	gt.NoError(t, err).Required()

	tests := []struct {
		name    string
		at      time.Time
		status  types.ReportStatus
		percent int
	}{
		{"before any change", startedAt.Add(-time.Second), types.ReportStatusPending, 0},
		{"at the start of work", startedAt, types.ReportStatusInProgress, 50},
		{"during work", resolvedAt.Add(-time.Minute), types.ReportStatusInProgress, 50},
		{"after resolution", resolvedAt.Add(time.Hour), types.ReportStatusResolved, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := tt.at
			progress, err := f.uc.Status.ReportProgress(ctx, report.ID, &at)
			gt.NoError(t, err).Required()
			gt.Value(t, progress.Status).Equal(tt.status)
			gt.Number(t, progress.Percent).Equal(tt.percent)
			gt.Value(t, progress.At).Equal(model.Timestamp(tt.at))
		})
	}

	current, err := f.uc.Status.ReportProgress(ctx, report.ID, nil)
	gt.NoError(t, err).Required()
	gt.Number(t, current.Percent).Equal(100)
}

func TestAssignEnterprise(t *testing.T) {
	t.Run("creates a pending assignment with its first history entry", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.seedStatusCodes(t)
		report, enterprise := f.seedReport(t)

		a := assign(t, f, report.ID, enterprise.ID)
		gt.Value(t, a.ID).NotEqual(int64(0))
		gt.Value(t, a.StatusID).NotNil()
		gt.Value(t, *a.StatusID).Equal(f.codes.Assignment.Pending)
		gt.Value(t, a.CreatedOn).Equal(baseTime)
		gt.Value(t, a.LastUpdate).Equal(baseTime)

		history, err := f.repo.AssignmentStatusHistory().ListByAssignment(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(1)
		gt.Value(t, history[0].StatusID).Equal(f.codes.Assignment.Pending)

		assignments, err := f.repo.Assignment().ListByReport(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, assignments).Length(1)
	})

	t.Run("rejects an inverted period", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		report, enterprise := f.seedReport(t)

		_, err := f.uc.Status.AssignEnterprise(ctx, report.ID, enterprise.ID, decimal.NewFromInt(10), baseTime, baseTime.Add(-time.Hour))
		gt.Error(t, err).Is(usecase.ErrInvalidDateRange)
	})

	t.Run("rejects unknown enterprise", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		report, _ := f.seedReport(t)

		_, err := f.uc.Status.AssignEnterprise(ctx, report.ID, 999, decimal.NewFromInt(10), baseTime, baseTime)
		gt.Error(t, err).Is(usecase.ErrEnterpriseNotFound)

		assignments, err := f.repo.Assignment().ListByReport(ctx, report.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, assignments).Length(0)
	})
}

func TestSetAssignmentStatus(t *testing.T) {
	t.Run("updates the row and appends history", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.seedStatusCodes(t)
		report, enterprise := f.seedReport(t)
		a := assign(t, f, report.ID, enterprise.ID)

		for _, statusID := range []int64{f.codes.Assignment.Refused, f.codes.Assignment.Pending, f.codes.Assignment.Accepted} {
			f.clock.Advance(time.Minute)
			updated, err := f.uc.Status.SetAssignmentStatus(ctx, a.ID, statusID)
			gt.NoError(t, err).Required()
			gt.Value(t, *updated.StatusID).Equal(statusID)
			gt.Value(t, updated.LastUpdate).Equal(f.clock.Now())
		}

		history, err := f.repo.AssignmentStatusHistory().ListByAssignment(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(4)
		gt.Value(t, history[0].StatusID).Equal(f.codes.Assignment.Accepted)

		current, ok, err := f.uc.Status.CurrentAssignmentStatus(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
		gt.Value(t, current).Equal(f.codes.Assignment.Accepted)
	})

	t.Run("unknown assignment or status code", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		f.seedStatusCodes(t)
		report, enterprise := f.seedReport(t)
		a := assign(t, f, report.ID, enterprise.ID)

		_, err := f.uc.Status.SetAssignmentStatus(ctx, 404, f.codes.Assignment.Accepted)
		gt.Error(t, err).Is(usecase.ErrAssignmentNotFound)

		_, err = f.uc.Status.SetAssignmentStatus(ctx, a.ID, 42)
		gt.Error(t, err).Is(usecase.ErrStatusCodeNotFound)
	})
}
