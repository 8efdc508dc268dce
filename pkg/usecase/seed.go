package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/types"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

// ManagerUserTypeLabel is the label given to the seeded manager user type
const ManagerUserTypeLabel = "manager"

// SeedReferenceData creates the status codes and the manager user type the
// status engine depends on. Rows that already exist are left untouched, so
// it is safe to run on every migration. Returns the number of rows created.
func (uc *StatusUseCase) SeedReferenceData(ctx context.Context) (int, error) {
	created := 0
	now := uc.now()

	err := uc.repo.WithTx(ctx, func(ctx context.Context) error {
		for _, s := range types.AllReportStatuses() {
			ok, err := seedRow(ctx, uc.repo.ReportStatusCode(), &model.ReportStatusCode{ID: uc.codes.ReportID(s), Label: s.String()}, now)
			if err != nil {
				return goerr.Wrap(err, "failed to seed report status code", goerr.V("status", s))
			}
			if ok {
				created++
			}
		}

		for _, s := range types.AllAssignmentStatuses() {
			ok, err := seedRow(ctx, uc.repo.AssignmentStatusCode(), &model.AssignmentStatusCode{ID: uc.codes.AssignmentID(s), Label: s.String()}, now)
			if err != nil {
				return goerr.Wrap(err, "failed to seed assignment status code", goerr.V("status", s))
			}
			if ok {
				created++
			}
		}

		ok, err := seedRow(ctx, uc.repo.UserType(), &model.UserType{ID: uc.codes.ManagerUserTypeID, Label: ManagerUserTypeLabel}, now)
		if err != nil {
			return goerr.Wrap(err, "failed to seed manager user type")
		}
		if ok {
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logging.From(ctx).Info("reference data seeded", "created", created)
	return created, nil
}

// seedRow saves row unless a row with the same id exists
func seedRow[T any, P record[T]](ctx context.Context, repo interfaces.EntityRepository[T], row P, now time.Time) (bool, error) {
	_, err := repo.Get(ctx, row.RecordID())
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return false, err
	}

	model.Touch(row, now)
	if err := repo.Save(ctx, (*T)(row)); err != nil {
		return false, err
	}
	return true, nil
}
