package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/usecase"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

type AuthUseCase = usecase.AuthUseCaseInterface

// SyncUseCase triggers reconciliation runs
type SyncUseCase interface {
	PullAll(ctx context.Context) *model.SyncResult
	PushAll(ctx context.Context) *model.SyncResult
	FullBidirectional(ctx context.Context) *model.FullSyncResult
	ListRuns(ctx context.Context, limit int) ([]*model.SyncRun, error)
}

// StatusUseCase mutates and reads report and assignment statuses
type StatusUseCase interface {
	SetReportStatus(ctx context.Context, reportID, statusID int64, at *time.Time) (*model.Report, error)
	ReportProgress(ctx context.Context, reportID int64, at *time.Time) (*model.ReportProgress, error)
	ReportHistory(ctx context.Context, reportID int64) ([]*model.StatusHistoryEntry, error)
	SetAssignmentStatus(ctx context.Context, assignmentID, statusID int64) (*model.Assignment, error)
	CurrentAssignmentStatus(ctx context.Context, assignmentID int64) (int64, bool, error)
	AssignEnterprise(ctx context.Context, reportID, enterpriseID int64, amount decimal.Decimal, start, end time.Time) (*model.Assignment, error)
}

type Server struct {
	router   *chi.Mux
	authUC   AuthUseCase
	syncUC   SyncUseCase
	statusUC StatusUseCase
}

type Options func(*Server)

func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

func WithSync(syncUC SyncUseCase) Options {
	return func(s *Server) {
		s.syncUC = syncUC
	}
}

func WithStatus(statusUC StatusUseCase) Options {
	return func(s *Server) {
		s.statusUC = statusUC
	}
}

// New builds the router. Every /api route goes through the manager gate.
func New(opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(managerMiddleware(s.authUC))

		if s.syncUC != nil {
			r.Route("/sync", func(r chi.Router) {
				r.Post("/pull", syncPullHandler(s.syncUC))
				r.Post("/push", syncPushHandler(s.syncUC))
				r.Post("/full", syncFullHandler(s.syncUC))
				r.Get("/runs", syncRunsHandler(s.syncUC))
			})
		}

		if s.statusUC != nil {
			r.Route("/reports/{reportID}", func(r chi.Router) {
				r.Post("/status", setReportStatusHandler(s.statusUC))
				r.Get("/progress", reportProgressHandler(s.statusUC))
				r.Get("/history", reportHistoryHandler(s.statusUC))
				r.Post("/assignments", assignEnterpriseHandler(s.statusUC))
			})
			r.Route("/assignments/{assignmentID}", func(r chi.Router) {
				r.Post("/status", setAssignmentStatusHandler(s.statusUC))
				r.Get("/status", assignmentStatusHandler(s.statusUC))
			})
		}
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.From(r.Context()).With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, successResponse{Success: true})
}
