package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/usecase"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

type ctxUserKey struct{}

// userFromContext returns the manager resolved by managerMiddleware
func userFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(ctxUserKey{}).(*model.User)
	return user, ok && user != nil
}

// managerMiddleware only lets requests carrying the bearer token of an active
// manager session through
func managerMiddleware(authUC AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authUC == nil {
				writeError(w, r, goerr.Wrap(usecase.ErrUnauthenticated, "authentication is not configured"))
				return
			}

			token, ok := bearerToken(r)
			if !ok && !authUC.IsNoAuthn() {
				writeError(w, r, goerr.Wrap(usecase.ErrUnauthenticated, "bearer token required"))
				return
			}

			user, err := authUC.AuthorizeManager(r.Context(), token)
			if err != nil {
				writeError(w, r, err)
				return
			}

			logger := logging.From(r.Context()).With("user_id", user.ID)
			ctx := logging.With(r.Context(), logger)
			ctx = context.WithValue(ctx, ctxUserKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// statusOf maps use case errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case usecase.IsNotFoundError(err):
		return http.StatusNotFound
	case usecase.IsValidationError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
