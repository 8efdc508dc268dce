package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/usecase"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

const maxRunListLimit = 200

type syncResultResponse struct {
	Success       bool           `json:"success"`
	RunID         string         `json:"run_id"`
	Direction     string         `json:"direction"`
	RunTimestamp  time.Time      `json:"run_timestamp"`
	Message       string         `json:"message"`
	PerKindCounts map[string]int `json:"per_kind_counts"`
	Error         *string        `json:"error"`
}

type fullSyncResponse struct {
	Success bool                `json:"success"`
	Pull    *syncResultResponse `json:"pull"`
	Push    *syncResultResponse `json:"push"`
}

type syncRunResponse struct {
	ID        int64          `json:"id"`
	RunID     string         `json:"run_id"`
	RunAt     time.Time      `json:"run_at"`
	Direction string         `json:"direction"`
	Success   bool           `json:"success"`
	Remark    string         `json:"remark"`
	Counts    map[string]int `json:"counts"`
}

type syncRunsResponse struct {
	Runs []syncRunResponse `json:"runs"`
}

func toSyncResultResponse(result *model.SyncResult) *syncResultResponse {
	if result == nil {
		return nil
	}
	counts := result.Counts
	if counts == nil {
		counts = map[string]int{}
	}
	resp := &syncResultResponse{
		Success:       result.Success,
		RunID:         result.RunID,
		Direction:     result.Direction.String(),
		RunTimestamp:  result.RunAt,
		Message:       result.Message,
		PerKindCounts: counts,
	}
	if result.Error != "" {
		errMsg := result.Error
		resp.Error = &errMsg
	}
	return resp
}

// resultStatus is 500 for failed runs; the body carries the run either way
func resultStatus(success bool) int {
	if success {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

func logTrigger(r *http.Request, action string) {
	if user, ok := userFromContext(r.Context()); ok {
		logging.From(r.Context()).Info("sync triggered", "action", action, "manager_id", user.ID)
	}
}

func syncPullHandler(uc SyncUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logTrigger(r, "pull")
		result := uc.PullAll(r.Context())
		writeJSON(w, r, resultStatus(result.Success), toSyncResultResponse(result))
	}
}

func syncPushHandler(uc SyncUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logTrigger(r, "push")
		result := uc.PushAll(r.Context())
		writeJSON(w, r, resultStatus(result.Success), toSyncResultResponse(result))
	}
}

func syncFullHandler(uc SyncUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logTrigger(r, "full")
		result := uc.FullBidirectional(r.Context())
		writeJSON(w, r, resultStatus(result.Success), fullSyncResponse{
			Success: result.Success,
			Pull:    toSyncResultResponse(result.Pull),
			Push:    toSyncResultResponse(result.Push),
		})
	}
}

func syncRunsHandler(uc SyncUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := usecase.DefaultRunListLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > maxRunListLimit {
				writeError(w, r, goerr.Wrap(errBadRequest, "limit must be between 1 and 200", goerr.V("limit", v)))
				return
			}
			limit = n
		}

		runs, err := uc.ListRuns(r.Context(), limit)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp := syncRunsResponse{Runs: make([]syncRunResponse, len(runs))}
		for i, run := range runs {
			resp.Runs[i] = syncRunResponse{
				ID:        run.ID,
				RunID:     run.RunID,
				RunAt:     run.RunAt,
				Direction: run.Direction.String(),
				Success:   run.Success,
				Remark:    run.Remark,
				Counts:    run.Counts,
			}
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}
