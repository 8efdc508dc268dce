package cli

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/cli/config"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/usecase"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

type migrator interface {
	Migrate(ctx context.Context) error
}

func cmdMigrate() *cli.Command {
	var appCfg config.AppConfig
	var dbCfg config.Database
	var skipSeed bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "skip-seed",
			Usage:       "Create tables only, without seeding status codes and the manager user type",
			Sources:     cli.EnvVars("CIVICSYNC_SKIP_SEED"),
			Destination: &skipSeed,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, dbCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Create primary store tables and seed reference data",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			codes, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load configuration")
			}

			repo, err := dbCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize primary store")
			}
			defer closeWithLog(ctx, "primary store", repo.Close)

			logger.Info("Migrate configuration", "database", dbCfg, "skip_seed", skipSeed)

			if m, ok := repo.(migrator); ok {
				if err := m.Migrate(ctx); err != nil {
					return goerr.Wrap(err, "failed to migrate schema", goerr.V("driver", dbCfg.Driver()))
				}
				logger.Info("Schema migrated", "driver", dbCfg.Driver())
			} else {
				logger.Info("Backend has no schema, skipping migration", "driver", dbCfg.Driver())
			}

			if skipSeed {
				return nil
			}

			status := usecase.NewStatusUseCase(repo, codes, time.Now)
			created, err := status.SeedReferenceData(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to seed reference data")
			}
			logger.Info("Reference data seeded", "created", created)
			return nil
		},
	}
}
