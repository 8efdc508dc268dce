package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
)

const dateLayout = "2006-01-02"

type setReportStatusRequest struct {
	StatusID  int64   `json:"status_id"`
	ChangedAt *string `json:"changed_at,omitempty"`
}

type setAssignmentStatusRequest struct {
	StatusID int64 `json:"status_id"`
}

type assignEnterpriseRequest struct {
	EnterpriseID int64           `json:"enterprise_id"`
	Amount       decimal.Decimal `json:"amount"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
}

type reportResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	StatusID   int64     `json:"status_id,omitempty"`
	LastUpdate time.Time `json:"last_update"`
}

type assignmentResponse struct {
	ID           int64           `json:"id"`
	ReportID     int64           `json:"report_id"`
	EnterpriseID int64           `json:"enterprise_id"`
	StatusID     *int64          `json:"status_id"`
	Amount       decimal.Decimal `json:"amount"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	LastUpdate   time.Time       `json:"last_update"`
}

type progressResponse struct {
	ReportID int64     `json:"report_id"`
	At       time.Time `json:"at"`
	StatusID int64     `json:"status_id"`
	Status   string    `json:"status"`
	Percent  int       `json:"percent"`
}

type historyEntryResponse struct {
	ID        int64     `json:"id"`
	StatusID  int64     `json:"status_id"`
	ChangedAt time.Time `json:"changed_at"`
}

type historyResponse struct {
	ReportID int64                  `json:"report_id"`
	Entries  []historyEntryResponse `json:"entries"`
}

type assignmentStatusResponse struct {
	AssignmentID int64 `json:"assignment_id"`
	StatusID     int64 `json:"status_id"`
	Known        bool  `json:"known"`
}

func toAssignmentResponse(a *model.Assignment) assignmentResponse {
	return assignmentResponse{
		ID:           a.ID,
		ReportID:     a.ReportID,
		EnterpriseID: a.EnterpriseID,
		StatusID:     a.StatusID,
		Amount:       a.Amount,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		LastUpdate:   a.LastUpdate,
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerr.Wrap(errBadRequest, "invalid id in path", goerr.V(name, raw))
	}
	return id, nil
}

// parseTime accepts RFC 3339 timestamps and plain dates (midnight UTC)
func parseTime(field, raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, goerr.Wrap(errBadRequest, "invalid time, expected RFC 3339 or YYYY-MM-DD",
		goerr.V("field", field),
		goerr.V("value", raw))
}

func setReportStatusHandler(uc StatusUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID, err := pathID(r, "reportID")
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req setReportStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if req.StatusID <= 0 {
			writeError(w, r, goerr.Wrap(errBadRequest, "status_id is required"))
			return
		}

		var at *time.Time
		if req.ChangedAt != nil {
			t, err := parseTime("changed_at", *req.ChangedAt)
			if err != nil {
				writeError(w, r, err)
				return
			}
			at = &t
		}

		report, err := uc.SetReportStatus(r.Context(), reportID, req.StatusID, at)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, reportResponse{
			ID:         report.ID,
			Title:      report.Title,
			StatusID:   req.StatusID,
			LastUpdate: report.LastUpdate,
		})
	}
}

func reportProgressHandler(uc StatusUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID, err := pathID(r, "reportID")
		if err != nil {
			writeError(w, r, err)
			return
		}

		var at *time.Time
		if raw := r.URL.Query().Get("at"); raw != "" {
			t, err := parseTime("at", raw)
			if err != nil {
				writeError(w, r, err)
				return
			}
			// a plain date covers the whole day
			if len(raw) == len(dateLayout) {
				t = t.Add(24*time.Hour - time.Millisecond)
			}
			at = &t
		}

		progress, err := uc.ReportProgress(r.Context(), reportID, at)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, progressResponse{
			ReportID: progress.ReportID,
			At:       progress.At,
			StatusID: progress.StatusID,
			Status:   progress.Status.String(),
			Percent:  progress.Percent,
		})
	}
}

func reportHistoryHandler(uc StatusUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID, err := pathID(r, "reportID")
		if err != nil {
			writeError(w, r, err)
			return
		}

		entries, err := uc.ReportHistory(r.Context(), reportID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := historyResponse{ReportID: reportID, Entries: make([]historyEntryResponse, len(entries))}
		for i, e := range entries {
			resp.Entries[i] = historyEntryResponse{ID: e.ID, StatusID: e.StatusID, ChangedAt: e.ChangedAt}
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}

func assignEnterpriseHandler(uc StatusUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID, err := pathID(r, "reportID")
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req assignEnterpriseRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if req.EnterpriseID <= 0 {
			writeError(w, r, goerr.Wrap(errBadRequest, "enterprise_id is required"))
			return
		}

		start, err := parseTime("start_date", req.StartDate)
		if err != nil {
			writeError(w, r, err)
			return
		}
		end, err := parseTime("end_date", req.EndDate)
		if err != nil {
			writeError(w, r, err)
			return
		}

		assignment, err := uc.AssignEnterprise(r.Context(), reportID, req.EnterpriseID, req.Amount, start, end)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, toAssignmentResponse(assignment))
	}
}

func setAssignmentStatusHandler(uc StatusUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignmentID, err := pathID(r, "assignmentID")
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req setAssignmentStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if req.StatusID <= 0 {
			writeError(w, r, goerr.Wrap(errBadRequest, "status_id is required"))
			return
		}

		assignment, err := uc.SetAssignmentStatus(r.Context(), assignmentID, req.StatusID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toAssignmentResponse(assignment))
	}
}

func assignmentStatusHandler(uc StatusUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignmentID, err := pathID(r, "assignmentID")
		if err != nil {
			writeError(w, r, err)
			return
		}

		statusID, known, err := uc.CurrentAssignmentStatus(r.Context(), assignmentID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, assignmentStatusResponse{
			AssignmentID: assignmentID,
			StatusID:     statusID,
			Known:        known,
		})
	}
}
