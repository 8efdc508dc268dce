package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/errutil"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/safe"
)

// errBadRequest marks malformed path parameters, query strings and bodies
var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// writeError answers with the status mapped from err. Server errors are
// reported through errutil; caller mistakes are only logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		_ = errutil.Handle(r.Context(), err, "request failed")
	} else {
		logging.From(r.Context()).Warn("request rejected", "status", status, "error", err.Error())
	}
	writeJSON(w, r, status, errorResponse{Success: false, Error: err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(errBadRequest, "invalid JSON body", goerr.V("error", err.Error()))
	}
	return nil
}
