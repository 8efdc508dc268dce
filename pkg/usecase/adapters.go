package usecase

import (
	"context"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/document"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/types"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

// newAdapters returns one adapter per kind, in dependency order. Remote field
// names are the column names of the primary store.
func newAdapters(repo interfaces.Repository, store interfaces.DocumentStore, status *StatusUseCase) []syncAdapter {
	return []syncAdapter{
		&adapter[model.UserType, *model.UserType]{
			kind:   types.EntityKindUserType,
			repo:   repo,
			store:  store,
			table:  interfaces.Repository.UserType,
			decode: decodeUserType,
			encode: encodeUserType,
		},
		&adapter[model.ReportStatusCode, *model.ReportStatusCode]{
			kind:   types.EntityKindReportStatusCode,
			repo:   repo,
			store:  store,
			table:  interfaces.Repository.ReportStatusCode,
			decode: decodeReportStatusCode,
			encode: encodeReportStatusCode,
		},
		&adapter[model.WorkType, *model.WorkType]{
			kind:   types.EntityKindWorkType,
			repo:   repo,
			store:  store,
			table:  interfaces.Repository.WorkType,
			decode: decodeWorkType,
			encode: encodeWorkType,
		},
		&adapter[model.Enterprise, *model.Enterprise]{
			kind:   types.EntityKindEnterprise,
			repo:   repo,
			store:  store,
			table:  interfaces.Repository.Enterprise,
			decode: decodeEnterprise,
			encode: encodeEnterprise,
		},
		&adapter[model.AssignmentStatusCode, *model.AssignmentStatusCode]{
			kind:   types.EntityKindAssignmentStatusCode,
			repo:   repo,
			store:  store,
			table:  interfaces.Repository.AssignmentStatusCode,
			decode: decodeAssignmentStatusCode,
			encode: encodeAssignmentStatusCode,
		},
		&adapter[model.User, *model.User]{
			kind:   types.EntityKindUser,
			repo:   repo,
			store:  store,
			table:  interfaces.Repository.User,
			decode: decodeUser,
			encode: encodeUser,
		},
		&adapter[model.Session, *model.Session]{
			kind:   types.EntityKindSession,
			repo:   repo,
			store:  store,
			table:  sessionTable,
			decode: decodeSession,
			encode: encodeSession,
		},
		&adapter[model.LoginAttempt, *model.LoginAttempt]{
			kind:   types.EntityKindLoginAttempt,
			repo:   repo,
			store:  store,
			table:  interfaces.Repository.LoginAttempt,
			decode: decodeLoginAttempt,
			encode: encodeLoginAttempt,
		},
		&adapter[model.Report, *model.Report]{
			kind:   types.EntityKindReport,
			repo:   repo,
			store:  store,
			table:  interfaces.Repository.Report,
			decode: decodeReport,
			encode: reportEncoder(status),
		},
		&adapter[model.Assignment, *model.Assignment]{
			kind:   types.EntityKindAssignment,
			repo:   repo,
			store:  store,
			table:  assignmentTable,
			decode: decodeAssignment,
			encode: encodeAssignment,
		},
		&adapter[model.StatusHistoryEntry, *model.StatusHistoryEntry]{
			kind:   types.EntityKindReportStatusHistory,
			repo:   repo,
			store:  store,
			table:  reportStatusHistoryTable,
			decode: decodeReportStatusHistory,
			encode: encodeReportStatusHistory,
		},
		&adapter[model.AssignmentStatusHistoryEntry, *model.AssignmentStatusHistoryEntry]{
			kind:   types.EntityKindAssignmentStatusHistory,
			repo:   repo,
			store:  store,
			table:  assignmentStatusHistoryTable,
			decode: decodeAssignmentStatusHistory,
			encode: encodeAssignmentStatusHistory,
		},
	}
}

func sessionTable(r interfaces.Repository) interfaces.EntityRepository[model.Session] {
	return r.Session()
}

func assignmentTable(r interfaces.Repository) interfaces.EntityRepository[model.Assignment] {
	return r.Assignment()
}

func reportStatusHistoryTable(r interfaces.Repository) interfaces.EntityRepository[model.StatusHistoryEntry] {
	return r.ReportStatusHistory()
}

func assignmentStatusHistoryTable(r interfaces.Repository) interfaces.EntityRepository[model.AssignmentStatusHistoryEntry] {
	return r.AssignmentStatusHistory()
}

func decodeUserType(_ context.Context, _ interfaces.Repository, doc document.Document, x *model.UserType) (bool, error) {
	set(&x.Label)(doc.String("label"))
	return true, nil
}

func encodeUserType(_ context.Context, _ interfaces.Repository, x *model.UserType) (document.Document, error) {
	return document.Document{"label": x.Label}, nil
}

func decodeReportStatusCode(_ context.Context, _ interfaces.Repository, doc document.Document, x *model.ReportStatusCode) (bool, error) {
	set(&x.Label)(doc.String("label"))
	return true, nil
}

func encodeReportStatusCode(_ context.Context, _ interfaces.Repository, x *model.ReportStatusCode) (document.Document, error) {
	return document.Document{"label": x.Label}, nil
}

func decodeWorkType(_ context.Context, _ interfaces.Repository, doc document.Document, x *model.WorkType) (bool, error) {
	set(&x.Label)(doc.String("label"))
	return true, nil
}

func encodeWorkType(_ context.Context, _ interfaces.Repository, x *model.WorkType) (document.Document, error) {
	return document.Document{"label": x.Label}, nil
}

func decodeEnterprise(_ context.Context, _ interfaces.Repository, doc document.Document, x *model.Enterprise) (bool, error) {
	set(&x.Name)(doc.String("name"))
	set(&x.Email)(doc.String("email"))
	return true, nil
}

func encodeEnterprise(_ context.Context, _ interfaces.Repository, x *model.Enterprise) (document.Document, error) {
	return document.Document{"name": x.Name, "email": x.Email}, nil
}

func decodeAssignmentStatusCode(_ context.Context, _ interfaces.Repository, doc document.Document, x *model.AssignmentStatusCode) (bool, error) {
	set(&x.Label)(doc.String("label"))
	return true, nil
}

func encodeAssignmentStatusCode(_ context.Context, _ interfaces.Repository, x *model.AssignmentStatusCode) (document.Document, error) {
	return document.Document{"label": x.Label}, nil
}

func decodeUser(ctx context.Context, repo interfaces.Repository, doc document.Document, x *model.User) (bool, error) {
	userTypeID, ok, err := requiredRef(ctx, doc, "id_user_type", lookup(repo.UserType()))
	if err != nil || !ok {
		return false, err
	}
	x.UserTypeID = userTypeID

	set(&x.LastName)(doc.String("last_name"))
	set(&x.FirstName)(doc.String("first_name"))
	set(&x.Email)(doc.String("email"))
	set(&x.PasswordHash)(doc.String("password_hash"))
	set(&x.RemoteUID)(doc.String("remote_uid"))
	set(&x.Blocked)(doc.Bool("is_blocked"))
	return true, nil
}

func encodeUser(_ context.Context, _ interfaces.Repository, x *model.User) (document.Document, error) {
	return document.Document{
		"last_name":     x.LastName,
		"first_name":    x.FirstName,
		"email":         x.Email,
		"password_hash": x.PasswordHash,
		"remote_uid":    x.RemoteUID,
		"is_blocked":    x.Blocked,
		"id_user_type":  x.UserTypeID,
	}, nil
}

func decodeSession(ctx context.Context, repo interfaces.Repository, doc document.Document, x *model.Session) (bool, error) {
	userID, ok, err := requiredRef(ctx, doc, "id_user", lookup(repo.User()))
	if err != nil || !ok {
		return false, err
	}
	x.UserID = userID

	set(&x.Token)(doc.String("token"))
	set(&x.StartsAt)(doc.Time("starts_at"))
	set(&x.EndsAt)(doc.Time("ends_at"))
	return true, nil
}

func encodeSession(_ context.Context, _ interfaces.Repository, x *model.Session) (document.Document, error) {
	return document.Document{
		"token":     x.Token,
		"starts_at": document.Millis(x.StartsAt),
		"ends_at":   document.Millis(x.EndsAt),
		"id_user":   x.UserID,
	}, nil
}

func decodeLoginAttempt(ctx context.Context, repo interfaces.Repository, doc document.Document, x *model.LoginAttempt) (bool, error) {
	userID, ok, err := requiredRef(ctx, doc, "id_user", lookup(repo.User()))
	if err != nil || !ok {
		return false, err
	}
	x.UserID = userID

	set(&x.AttemptedAt)(doc.Time("attempted_at"))
	set(&x.Success)(doc.Bool("success"))
	return true, nil
}

func encodeLoginAttempt(_ context.Context, _ interfaces.Repository, x *model.LoginAttempt) (document.Document, error) {
	return document.Document{
		"attempted_at": document.Millis(x.AttemptedAt),
		"success":      x.Success,
		"id_user":      x.UserID,
	}, nil
}

func decodeReport(ctx context.Context, repo interfaces.Repository, doc document.Document, x *model.Report) (bool, error) {
	userID, ok, err := requiredRef(ctx, doc, "id_user", lookup(repo.User()))
	if err != nil || !ok {
		return false, err
	}
	workTypeID, ok, err := optionalRef(ctx, doc, "id_work_type", lookup(repo.WorkType()))
	if err != nil || !ok {
		return false, err
	}
	x.UserID = userID
	x.WorkTypeID = workTypeID

	set(&x.Title)(doc.String("title"))
	set(&x.Description)(doc.String("description"))
	set(&x.Latitude)(doc.Decimal("latitude"))
	set(&x.Longitude)(doc.Decimal("longitude"))
	set(&x.AreaM2)(doc.Decimal("area_m2"))
	set(&x.CreatedAt)(doc.Time("created_at"))
	return true, nil
}

// reportEncoder also publishes the derived current status as id_status. It
// is read-only for clients and ignored on pull.
func reportEncoder(status *StatusUseCase) func(context.Context, interfaces.Repository, *model.Report) (document.Document, error) {
	return func(ctx context.Context, _ interfaces.Repository, x *model.Report) (document.Document, error) {
		statusID, err := status.currentReportStatusID(ctx, x.ID)
		if err != nil {
			return nil, err
		}

		return document.Document{
			"title":        x.Title,
			"description":  x.Description,
			"latitude":     document.Number(x.Latitude),
			"longitude":    document.Number(x.Longitude),
			"area_m2":      document.Number(x.AreaM2),
			"created_at":   document.Millis(x.CreatedAt),
			"id_work_type": document.Ref(x.WorkTypeID),
			"id_user":      x.UserID,
			"id_status":    statusID,
		}, nil
	}
}

func decodeAssignment(ctx context.Context, repo interfaces.Repository, doc document.Document, x *model.Assignment) (bool, error) {
	reportID, ok, err := requiredRef(ctx, doc, "id_report", lookup(repo.Report()))
	if err != nil || !ok {
		return false, err
	}
	enterpriseID, ok, err := requiredRef(ctx, doc, "id_enterprise", lookup(repo.Enterprise()))
	if err != nil || !ok {
		return false, err
	}
	statusID, ok, err := optionalRef(ctx, doc, "id_assignment_status", lookup(repo.AssignmentStatusCode()))
	if err != nil || !ok {
		return false, err
	}
	x.ReportID = reportID
	x.EnterpriseID = enterpriseID
	x.StatusID = statusID

	set(&x.Amount)(doc.Decimal("amount"))
	set(&x.StartDate)(doc.Time("start_date"))
	set(&x.EndDate)(doc.Time("end_date"))
	set(&x.CreatedOn)(doc.Time("created_on"))
	return true, nil
}

func encodeAssignment(_ context.Context, _ interfaces.Repository, x *model.Assignment) (document.Document, error) {
	return document.Document{
		"id_report":            x.ReportID,
		"id_enterprise":        x.EnterpriseID,
		"id_assignment_status": document.Ref(x.StatusID),
		"amount":               document.Number(x.Amount),
		"start_date":           document.Millis(x.StartDate),
		"end_date":             document.Millis(x.EndDate),
		"created_on":           document.Millis(x.CreatedOn),
	}, nil
}

func decodeReportStatusHistory(ctx context.Context, repo interfaces.Repository, doc document.Document, x *model.StatusHistoryEntry) (bool, error) {
	reportID, ok, err := requiredRef(ctx, doc, "id_report", lookup(repo.Report()))
	if err != nil || !ok {
		return false, err
	}
	statusID, ok, err := requiredRef(ctx, doc, "id_status", lookup(repo.ReportStatusCode()))
	if err != nil || !ok {
		return false, err
	}
	x.ReportID = reportID
	x.StatusID = statusID

	set(&x.ChangedAt)(doc.Time("changed_at"))
	if x.ChangedAt.IsZero() {
		logging.From(ctx).Debug("missing required field", "field", "changed_at", "value", doc["changed_at"])
		return false, nil
	}
	return true, nil
}

func encodeReportStatusHistory(_ context.Context, _ interfaces.Repository, x *model.StatusHistoryEntry) (document.Document, error) {
	return document.Document{
		"id_report":  x.ReportID,
		"id_status":  x.StatusID,
		"changed_at": document.Millis(x.ChangedAt),
	}, nil
}

func decodeAssignmentStatusHistory(ctx context.Context, repo interfaces.Repository, doc document.Document, x *model.AssignmentStatusHistoryEntry) (bool, error) {
	assignmentID, ok, err := requiredRef(ctx, doc, "id_assignment", lookup(repo.Assignment()))
	if err != nil || !ok {
		return false, err
	}
	statusID, ok, err := requiredRef(ctx, doc, "id_status", lookup(repo.AssignmentStatusCode()))
	if err != nil || !ok {
		return false, err
	}
	x.AssignmentID = assignmentID
	x.StatusID = statusID

	set(&x.ChangedAt)(doc.Time("changed_at"))
	if x.ChangedAt.IsZero() {
		logging.From(ctx).Debug("missing required field", "field", "changed_at", "value", doc["changed_at"])
		return false, nil
	}
	return true, nil
}

func encodeAssignmentStatusHistory(_ context.Context, _ interfaces.Repository, x *model.AssignmentStatusHistoryEntry) (document.Document, error) {
	return document.Document{
		"id_assignment": x.AssignmentID,
		"id_status":     x.StatusID,
		"changed_at":    document.Millis(x.ChangedAt),
	}, nil
}
