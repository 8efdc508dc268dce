package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	httpctrl "github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/controller/http"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/service/worker"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/usecase"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

const shutdownTimeout = 10 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var noAuthUID int64
	var syncInterval time.Duration
	var syncOnStart bool
	var engine engineConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CIVICSYNC_ADDR"),
			Destination: &addr,
		},
		&cli.Int64Flag{
			Name:        "no-auth",
			Usage:       "Skip authentication and act as the given user ID (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("CIVICSYNC_NO_AUTH"),
			Destination: &noAuthUID,
		},
		&cli.DurationFlag{
			Name:        "sync-interval",
			Usage:       "Run a full reconciliation on this interval (0 disables the scheduler)",
			Category:    "Sync",
			Sources:     cli.EnvVars("CIVICSYNC_SYNC_INTERVAL"),
			Destination: &syncInterval,
		},
		&cli.BoolFlag{
			Name:        "sync-on-start",
			Usage:       "Run a full reconciliation when the scheduler starts",
			Category:    "Sync",
			Sources:     cli.EnvVars("CIVICSYNC_SYNC_ON_START"),
			Destination: &syncOnStart,
		},
	}
	flags = append(flags, engine.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := engine.build(ctx)
			if err != nil {
				return err
			}
			defer closer()

			if noAuthUID > 0 {
				uc.Auth = usecase.NewNoAuthnUseCase(uc.Repository(), noAuthUID, uc.StatusCodes().ManagerUserTypeID)
				logging.Default().Warn("Running in no-auth mode (development only)", "user_id", noAuthUID)
			}

			handler := httpctrl.New(
				httpctrl.WithAuth(uc.Auth),
				httpctrl.WithSync(uc.Sync),
				httpctrl.WithStatus(uc.Status),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			var syncWorker *worker.SyncWorker
			if syncInterval > 0 {
				syncWorker = worker.NewSyncWorker(uc.Sync, syncInterval, worker.WithRunOnStart(syncOnStart))
				syncWorker.Start(ctx)
			}

			eg, ctx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
				return nil
			})
			eg.Go(func() error {
				<-ctx.Done()
				logging.Default().Info("Shutting down HTTP server")

				if syncWorker != nil {
					syncWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				logging.Default().Info("Server shutdown completed")
				return nil
			})

			return eg.Wait()
		},
	}
}
